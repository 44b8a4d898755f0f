// Package sqlite provides a SQLite-based implementation of the fragment store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Tags are stored as a JSON array and timestamps as Unix nanoseconds.
//
// # Data Location
//
// The collection lives for one session only, so the database is opened as
// :memory: by default. A file path can be given for debugging.
//
// # Thread Safety
//
// All operations are thread-safe. The store holds a single connection, so
// statements are serialised and every read observes committed writes.
package sqlite
