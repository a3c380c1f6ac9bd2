// Package config loads, normalizes, and validates cinemap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TMDB_ACCESS_TOKEN environment
// fallback so the catalog credential never has to live in a checked-in file.
// The Config type centralizes every knob the CLI and web UI need.
package config
