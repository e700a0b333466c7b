package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentManager = (*DocumentService)(nil)

// DocumentService manages the document lifecycle: upload, retrieval
// and deletion. Ingestion itself is delegated to the Ingestor.
type DocumentService struct {
	docStore  driven.DocumentStore
	fileStore driven.FileStore
	ingestor  driving.Ingestor
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	fileStore driven.FileStore,
	ingestor driving.Ingestor,
) *DocumentService {
	return &DocumentService{
		docStore:  docStore,
		fileStore: fileStore,
		ingestor:  ingestor,
	}
}

// Upload stores the file under a masked name, creates the metadata row
// and enqueues background ingestion. The returned document has
// ChunkCount zero; chunks appear once the pipeline commits them.
func (s *DocumentService) Upload(ctx context.Context, upload driving.Upload) (*domain.Document, error) {
	if strings.TrimSpace(upload.OriginalName) == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: file content is empty", domain.ErrInvalidInput)
	}

	doc := &domain.Document{
		ID:           uuid.New().String(),
		OriginalName: upload.OriginalName,
		MaskedName:   maskedName(upload.OriginalName),
		MIMEType:     upload.MIMEType,
		SizeBytes:    int64(len(upload.Data)),
		UploadedAt:   time.Now().UTC(),
	}

	path, err := s.fileStore.Save(ctx, doc.MaskedName, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	doc.StoragePath = path

	if err := s.docStore.CreateDocument(ctx, doc); err != nil {
		// Don't leave an orphaned blob behind.
		if cleanupErr := s.fileStore.Delete(ctx, doc.MaskedName); cleanupErr != nil {
			logger.Warn("Failed to clean up file %s: %v", doc.MaskedName, cleanupErr)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	logger.Info("Uploaded %s as %s", doc.OriginalName, doc.MaskedName)
	s.ingestor.Enqueue(doc.ID)

	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// List returns documents newest-first, paginated.
func (s *DocumentService) List(ctx context.Context, limit, offset int) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx, limit, offset)
}

// Download returns the original file bytes under the original name.
func (s *DocumentService) Download(ctx context.Context, id string) (*domain.FileContent, error) {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.fileStore.Read(ctx, doc.MaskedName)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return &domain.FileContent{
		Name:     doc.OriginalName,
		MIMEType: doc.MIMEType,
		Data:     data,
	}, nil
}

// Delete removes the document row, its chunks and embeddings (via
// cascade), the on-disk file and any backup artifact. Deletion during
// an in-flight ingestion run is safe: the run's late writes fail
// against the missing row and are discarded.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docStore.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.ingestor.Forget(id)

	if err := s.fileStore.Delete(ctx, doc.MaskedName); err != nil {
		logger.Warn("Failed to delete file %s: %v", doc.MaskedName, err)
	}
	if err := s.fileStore.DeleteBackup(ctx, id); err != nil {
		logger.Warn("Failed to delete backup for %s: %v", id, err)
	}

	logger.Info("Deleted document %s (%s)", id, doc.OriginalName)
	return nil
}

// Count returns the total number of documents.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	return s.docStore.DocumentCount(ctx)
}

// maskedName builds an anonymised on-disk filename. The extension is
// kept so file type remains inspectable; everything else is random.
func maskedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}
