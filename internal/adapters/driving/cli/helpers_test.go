package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

// stubDocumentManager implements driving.DocumentManager with canned data.
type stubDocumentManager struct {
	docs      map[string]*domain.Document
	uploadErr error
	deleteErr error
}

func newStubDocumentManager() *stubDocumentManager {
	return &stubDocumentManager{
		docs: map[string]*domain.Document{
			"doc-1": {
				ID:           "doc-1",
				OriginalName: "report.pdf",
				MaskedName:   "aaaa-bbbb.pdf",
				MIMEType:     "application/pdf",
				SizeBytes:    1024,
				UploadedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
				ChunkCount:   4,
			},
		},
	}
}

func (s *stubDocumentManager) Upload(_ context.Context, upload driving.Upload) (*domain.Document, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	doc := &domain.Document{
		ID:           "doc-new",
		OriginalName: upload.OriginalName,
		MaskedName:   "cccc-dddd" + upload.OriginalName[len(upload.OriginalName)-4:],
		MIMEType:     upload.MIMEType,
		SizeBytes:    int64(len(upload.Data)),
		UploadedAt:   time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *stubDocumentManager) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *stubDocumentManager) List(_ context.Context, _, _ int) ([]domain.Document, error) {
	var docs []domain.Document
	for _, doc := range s.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (s *stubDocumentManager) Download(_ context.Context, id string) (*domain.FileContent, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.FileContent{
		Name:     doc.OriginalName,
		MIMEType: doc.MIMEType,
		Data:     []byte("file content"),
	}, nil
}

func (s *stubDocumentManager) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *stubDocumentManager) Count(_ context.Context) (int, error) {
	return len(s.docs), nil
}

// stubSearcher implements driving.Searcher with canned results.
type stubSearcher struct {
	results   []domain.SearchResult
	searchErr error
}

func (s *stubSearcher) Search(_ context.Context, _ string, limit int) ([]domain.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if limit < len(s.results) {
		return s.results[:limit], nil
	}
	return s.results, nil
}

// stubIngestor implements driving.Ingestor with immediate completion.
type stubIngestor struct {
	statuses map[string]domain.IngestStatus
}

func newStubIngestor() *stubIngestor {
	return &stubIngestor{statuses: make(map[string]domain.IngestStatus)}
}

func (s *stubIngestor) Enqueue(documentID string) {
	s.statuses[documentID] = domain.IngestStatus{
		DocumentID: documentID,
		State:      domain.IngestStateEmbedded,
		ChunkCount: 2,
	}
}

func (s *stubIngestor) Status(documentID string) (domain.IngestStatus, bool) {
	status, ok := s.statuses[documentID]
	return status, ok
}

func (s *stubIngestor) Wait(_ context.Context, documentID string) (domain.IngestStatus, error) {
	if status, ok := s.statuses[documentID]; ok {
		return status, nil
	}
	return domain.IngestStatus{
		DocumentID: documentID,
		State:      domain.IngestStateEmbedded,
		ChunkCount: 2,
	}, nil
}

func (s *stubIngestor) Forget(documentID string) {
	delete(s.statuses, documentID)
}

// setupTestServices wires stub services into the package-level vars
// and returns a cleanup function restoring the previous state.
func setupTestServices() func() {
	oldDocument := documentService
	oldSearch := searchService
	oldIngest := ingestService

	documentService = newStubDocumentManager()
	searchService = &stubSearcher{
		results: []domain.SearchResult{
			{
				DocumentID:   "doc-1",
				OriginalName: "report.pdf",
				ChunkIndex:   0,
				Content:      "Revenue grew in the third quarter.",
				Distance:     0.12,
			},
			{
				DocumentID:   "doc-1",
				OriginalName: "report.pdf",
				ChunkIndex:   3,
				Content:      "Costs fell slightly.",
				Distance:     0.34,
			},
		},
	}
	ingestService = newStubIngestor()

	return func() {
		documentService = oldDocument
		searchService = oldSearch
		ingestService = oldIngest
	}
}
