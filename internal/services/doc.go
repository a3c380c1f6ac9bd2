// Package services defines shared utilities consumed by the library, the
// catalog integration, and both front ends.
//
// Key responsibilities:
//   - Context helpers that stamp movie IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (user input vs transient) with errors.Is.
package services
