// Package logging assembles structured slog loggers used across cinemap.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so library and catalog code can
// tag log lines with movie IDs, operations, and correlation IDs. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
