// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document, chunk and embedding persistence
//   - VectorIndex: K-nearest-neighbour lookup over chunk vectors
//   - FileStore: Original file bytes and backup artifacts
//   - Extractor: Converts raw bytes into plain text
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - Chunker: Splits text into overlapping bounded chunks
//   - EmbeddingService: Generates vector embeddings
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
