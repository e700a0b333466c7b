package domain

import "time"

// Document represents an uploaded file tracked by the store.
// The original bytes live on disk under MaskedName; the extracted
// text only exists as chunks once ingestion has run.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OriginalName is the filename supplied at upload time.
	OriginalName string

	// MaskedName is the anonymised on-disk filename.
	// Unique across all documents.
	MaskedName string

	// MIMEType is the declared content type of the upload.
	MIMEType string

	// SizeBytes is the size of the original file.
	SizeBytes int64

	// StoragePath is the absolute path of the stored file.
	StoragePath string

	// UploadedAt is when the document was uploaded.
	UploadedAt time.Time

	// ChunkCount is the number of persisted chunks.
	// Zero until ingestion commits the chunk batch.
	ChunkCount int
}

// Chunk is the retrieval unit: a bounded, contiguous substring of a
// document's extracted text. Chunks are written in a single batch
// during ingestion and are immutable afterwards.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// ChunkIndex is the 0-based position within the document.
	// Indexes are contiguous: {0, 1, ..., N-1}.
	ChunkIndex int

	// Content is the chunk text.
	Content string
}

// Embedding is the vector representation of a single chunk.
// Keyed 1:1 by ChunkID; re-ingestion overwrites.
type Embedding struct {
	// ChunkID is the owning chunk.
	ChunkID string

	// Vector is the fixed-width embedding vector.
	Vector []float32
}

// SearchResult is a ranked similarity hit. It is derived at query
// time by joining the vector index to chunks and documents, and is
// never persisted.
type SearchResult struct {
	// DocumentID is the owning document.
	DocumentID string

	// OriginalName is the document's upload filename.
	OriginalName string

	// ChunkIndex is the matched chunk's position.
	ChunkIndex int

	// Content is the matched chunk text.
	Content string

	// Distance is the vector distance to the query (lower is closer).
	Distance float64
}

// FileContent carries raw bytes for download.
type FileContent struct {
	// Name is the filename to present to the caller.
	Name string

	// MIMEType is the declared content type.
	MIMEType string

	// Data is the raw file content.
	Data []byte
}
