// Package main hosts the cinemap CLI entrypoint and command graph.
//
// The Cobra command tree maps each collection action (reset, list, search,
// add, update, rate, delete, clear, and the two filters) onto a subcommand,
// offers the same actions through an interactive menu, and starts the local
// web UI. It centralizes configuration resolution, .env loading, logger
// setup, and library construction so subcommands only deal with output.
package main
