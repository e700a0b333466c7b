package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDocumentStore is a thread-safe in-memory driven.DocumentStore.
type mockDocumentStore struct {
	mu         sync.Mutex
	docs       map[string]*domain.Document
	chunks     map[string][]domain.Chunk
	embeddings map[string]domain.Embedding

	createErr     error
	saveChunksErr error
	saveEmbedErr  error
	searchResults []domain.SearchResult
	searchErr     error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		docs:       make(map[string]*domain.Document),
		chunks:     make(map[string][]domain.Chunk),
		embeddings: make(map[string]domain.Embedding),
	}
}

func (m *mockDocumentStore) CreateDocument(_ context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.docs {
		if existing.MaskedName == doc.MaskedName {
			return domain.ErrIntegrityViolation
		}
	}
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *mockDocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocumentStore) GetDocumentByMaskedName(_ context.Context, name string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.MaskedName == name {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentStore) ListDocuments(_ context.Context, limit, offset int) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []domain.Document
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockDocumentStore) DeleteDocument(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	for _, chunk := range m.chunks[id] {
		delete(m.embeddings, chunk.ID)
	}
	delete(m.chunks, id)
	return nil
}

func (m *mockDocumentStore) SaveChunks(_ context.Context, documentID string, texts []string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveChunksErr != nil {
		return nil, m.saveChunksErr
	}
	doc, ok := m.docs[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    text,
		}
	}
	m.chunks[documentID] = chunks
	doc.ChunkCount = len(chunks)
	return chunks, nil
}

func (m *mockDocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chunks[documentID], nil
}

func (m *mockDocumentStore) SaveEmbeddings(_ context.Context, embeddings []domain.Embedding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveEmbedErr != nil {
		return m.saveEmbedErr
	}
	for _, emb := range embeddings {
		m.embeddings[emb.ChunkID] = emb
	}
	return nil
}

func (m *mockDocumentStore) SearchSimilar(_ context.Context, _ []float32, limit int) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit > len(m.searchResults) {
		return m.searchResults, nil
	}
	return m.searchResults[:limit], nil
}

func (m *mockDocumentStore) DocumentCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs), nil
}

func (m *mockDocumentStore) embeddingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.embeddings)
}

// mockFileStore is a thread-safe in-memory driven.FileStore.
type mockFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	backups map[string]string

	saveErr error
	readErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{
		files:   make(map[string][]byte),
		backups: make(map[string]string),
	}
}

func (m *mockFileStore) Save(_ context.Context, maskedName string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.files[maskedName] = data
	return "/data/files/" + maskedName, nil
}

func (m *mockFileStore) Read(_ context.Context, maskedName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.files[maskedName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockFileStore) Delete(_ context.Context, maskedName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, maskedName)
	return nil
}

func (m *mockFileStore) WriteBackup(_ context.Context, documentID string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backups[documentID] = content
	return nil
}

func (m *mockFileStore) DeleteBackup(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.backups, documentID)
	return nil
}

func (m *mockFileStore) backup(documentID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.backups[documentID]
	return content, ok
}

// mockExtractor returns fixed text for any input.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) SupportedMIMETypes() []string { return []string{"text/plain"} }
func (m *mockExtractor) Priority() int                { return 50 }

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

// mockRegistry returns a single extractor for every MIME type.
type mockRegistry struct {
	extractor driven.Extractor
	err       error
}

func (m *mockRegistry) ExtractorFor(_ string) (driven.Extractor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.extractor, nil
}

// mockChunker splits on a fixed separator, ignoring window semantics.
type mockChunker struct {
	chunks []string
}

func (m *mockChunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	return m.chunks
}

// mockEmbeddingService produces deterministic vectors derived from the
// input index, so ordering bugs show up as wrong vectors.
type mockEmbeddingService struct {
	mu        sync.Mutex
	calls     int
	embedErr  error
	dims      int
	queryVec  []float32
	batchSize []int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.queryVec != nil {
		return m.queryVec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.batchSize = append(m.batchSize, len(texts))
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{float32(i), 1, 0}
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

func (m *mockEmbeddingService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockIngestor records enqueued and forgotten document IDs.
type mockIngestor struct {
	mu        sync.Mutex
	enqueued  []string
	forgotten []string
}

func (m *mockIngestor) Enqueue(documentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued = append(m.enqueued, documentID)
}

func (m *mockIngestor) Status(_ string) (domain.IngestStatus, bool) {
	return domain.IngestStatus{}, false
}

func (m *mockIngestor) Wait(_ context.Context, documentID string) (domain.IngestStatus, error) {
	return domain.IngestStatus{DocumentID: documentID, State: domain.IngestStateEmbedded}, nil
}

func (m *mockIngestor) Forget(documentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forgotten = append(m.forgotten, documentID)
}

var errMockFailure = fmt.Errorf("mock failure")
