// Package domain defines the core business entities for docvault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded file with ingestion metadata
//   - Chunk: A bounded substring of a document's extracted text
//   - Embedding: The vector representation of a chunk
//   - SearchResult: A ranked similarity hit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
