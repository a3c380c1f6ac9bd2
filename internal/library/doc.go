// Package library owns the in-memory movie collection and keeps it in step
// with the persistent store.
//
// A Library is the single place that mutates the collection. Each mutation
// computes the next list with the pure functions in package movie, saves it,
// and only then replaces the in-memory copy, so a failed write leaves both
// sides unchanged. A mutex serializes callers because the web UI serves
// requests concurrently.
package library
