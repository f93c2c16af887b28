// Package sqlite provides the SQLite-based implementation of driven.TodoStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The *sql.DB held by Store is the
// connection pool shared by every request.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in the schema_migrations table.
//
// # Data Location
//
// By default, the database is stored at ~/.todos/data/db.sqlite
//
// # Thread Safety
//
// All operations are thread-safe. Writers are serialised by SQLite itself,
// running in WAL mode with a busy timeout.
package sqlite
