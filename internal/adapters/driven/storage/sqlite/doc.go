// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - DocumentStore: Document, chunk and embedding persistence
//   - VectorIndex: Exact K-nearest-neighbour lookup over chunk vectors
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Foreign keys cascade deletes from documents to
// chunks to embeddings, so removing a document row removes everything
// derived from it.
//
// # Data Location
//
// By default, the database is stored at ~/.docvault/data/docvault.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
