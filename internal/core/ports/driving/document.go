package driving

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// Upload carries an incoming file from the external boundary.
type Upload struct {
	// OriginalName is the user-supplied filename.
	OriginalName string

	// MIMEType is the declared content type.
	MIMEType string

	// Data is the raw file content.
	Data []byte
}

// DocumentManager exposes document lifecycle operations to external actors.
type DocumentManager interface {
	// Upload stores the file, creates the metadata row and enqueues
	// background ingestion. It returns immediately with ChunkCount=0;
	// ingestion proceeds asynchronously.
	Upload(ctx context.Context, upload Upload) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns documents newest-first, paginated.
	List(ctx context.Context, limit, offset int) ([]domain.Document, error)

	// Download returns the original file bytes.
	Download(ctx context.Context, id string) (*domain.FileContent, error)

	// Delete removes the document, its chunks, embeddings, on-disk
	// file and backup artifact.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of documents.
	Count(ctx context.Context) (int, error)
}
