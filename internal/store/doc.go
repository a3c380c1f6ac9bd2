// Package store persists the movie collection as a single JSON-encoded list
// under one fixed key.
//
// Three backends share the same codec and semantics: SQLite (the default),
// a plain JSON file written atomically, and BadgerDB. Every Save overwrites
// the whole list; nothing is merged or appended. A value that fails to
// decode loads as an empty collection and is reported at WARN rather than
// returned, so a corrupt store never blocks startup. WithLock layers a
// cross-process file lock over any backend.
package store
