package driven

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// DocumentStore persists documents, chunks and embeddings.
// Backed by SQLite; the only durable state in the subsystem.
type DocumentStore interface {
	// CreateDocument inserts a new document row.
	// Returns domain.ErrIntegrityViolation if the masked name collides.
	CreateDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByMaskedName retrieves a document by its on-disk name.
	GetDocumentByMaskedName(ctx context.Context, name string) (*domain.Document, error)

	// ListDocuments returns documents newest-first, paginated.
	ListDocuments(ctx context.Context, limit, offset int) ([]domain.Document, error)

	// DeleteDocument removes the document row. Chunks and embeddings
	// cascade. Idempotent: deleting an absent document is not an error.
	DeleteDocument(ctx context.Context, id string) error

	// SaveChunks persists the ordered chunk texts with contiguous
	// zero-based indexes and sets the document's chunk count, all in
	// one transaction. Returns domain.ErrNotFound if the document no
	// longer exists.
	SaveChunks(ctx context.Context, documentID string, texts []string) ([]domain.Chunk, error)

	// GetChunks retrieves a document's chunks ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// SaveEmbeddings upserts the embeddings as one atomic batch,
	// keyed by chunk ID.
	SaveEmbeddings(ctx context.Context, embeddings []domain.Embedding) error

	// SearchSimilar returns up to limit results ordered by ascending
	// distance to the query vector.
	SearchSimilar(ctx context.Context, query []float32, limit int) ([]domain.SearchResult, error)

	// DocumentCount returns the total number of documents.
	DocumentCount(ctx context.Context) (int, error)
}
