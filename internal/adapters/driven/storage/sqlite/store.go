package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that implements both the
// document store and the vector index over a single database file.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.VectorIndex   = (*Store)(nil)
)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docvault/data/docvault.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvault", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docvault.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign keys drive the documents -> chunks -> embeddings cascade
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// CreateDocument inserts a new document row.
func (s *Store) CreateDocument(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" || doc.MaskedName == "" {
		return fmt.Errorf("%w: document id and masked name are required", domain.ErrInvalidInput)
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, original_name, masked_name, mime_type, size_bytes, storage_path, uploaded_at, chunk_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.OriginalName, doc.MaskedName, doc.MIMEType,
		doc.SizeBytes, doc.StoragePath, doc.UploadedAt, doc.ChunkCount)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: masked name %q already exists", domain.ErrIntegrityViolation, doc.MaskedName)
		}
		return fmt.Errorf("%w: saving document: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, original_name, masked_name, mime_type, size_bytes, storage_path, uploaded_at, chunk_count
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetDocumentByMaskedName retrieves a document by its on-disk name.
func (s *Store) GetDocumentByMaskedName(ctx context.Context, name string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, original_name, masked_name, mime_type, size_bytes, storage_path, uploaded_at, chunk_count
		FROM documents WHERE masked_name = ?
	`, name)

	return scanDocument(row)
}

// ListDocuments returns documents newest-first, paginated.
// A limit of zero or less means no limit.
func (s *Store) ListDocuments(ctx context.Context, limit, offset int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, original_name, masked_name, mime_type, size_bytes, storage_path, uploaded_at, chunk_count
		FROM documents
		ORDER BY uploaded_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: querying documents: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.OriginalName, &doc.MaskedName, &doc.MIMEType,
			&doc.SizeBytes, &doc.StoragePath, &doc.UploadedAt, &doc.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes the document row. Chunks and embeddings go
// with it through the foreign key cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting document: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// SaveChunks persists the ordered chunk texts with contiguous zero-based
// indexes and updates the document's chunk count, all in one transaction.
// Any chunks from a previous ingestion run are replaced.
func (s *Store) SaveChunks(ctx context.Context, documentID string, texts []string) ([]domain.Chunk, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %v", domain.ErrStorageFailure, err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The chunk count update doubles as the existence check: if the
	// document was deleted mid-ingestion, nothing is written.
	res, err := tx.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ? WHERE id = ?", len(texts), documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: updating chunk count: %v", domain.ErrStorageFailure, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: checking chunk count update: %v", domain.ErrStorageFailure, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return nil, fmt.Errorf("%w: clearing previous chunks: %v", domain.ErrStorageFailure, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, chunk_index, content)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunk := domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    text,
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID,
			chunk.ChunkIndex, chunk.Content); err != nil {
			return nil, fmt.Errorf("%w: saving chunk %d: %v", domain.ErrStorageFailure, i, err)
		}
		chunks[i] = chunk
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing transaction: %v", domain.ErrStorageFailure, err)
	}
	return chunks, nil
}

// GetChunks retrieves a document's chunks ordered by chunk index.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_index, content
		FROM chunks WHERE document_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// SaveEmbeddings upserts the embeddings as one atomic batch.
// Embeddings whose chunk no longer exists make the whole batch fail,
// which keeps the store from accumulating orphaned vectors.
func (s *Store) SaveEmbeddings(ctx context.Context, embeddings []domain.Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", domain.ErrStorageFailure, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO embeddings (chunk_id, vector)
		VALUES (?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, emb := range embeddings {
		if _, err := stmt.ExecContext(ctx, emb.ChunkID, float32SliceToBytes(emb.Vector)); err != nil {
			return fmt.Errorf("%w: saving embedding for chunk %s: %v", domain.ErrStorageFailure, emb.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// SearchSimilar returns up to limit results ordered by ascending cosine
// distance to the query vector. The scan is exact: every stored vector
// is compared, then joined to its chunk and document.
func (s *Store) SearchSimilar(ctx context.Context, query []float32, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	hits, err := s.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		row := s.db.QueryRowContext(ctx, `
			SELECT c.document_id, d.original_name, c.chunk_index, c.content
			FROM chunks c
			JOIN documents d ON d.id = c.document_id
			WHERE c.id = ?
		`, hit.ChunkID)

		var result domain.SearchResult
		if err := row.Scan(&result.DocumentID, &result.OriginalName,
			&result.ChunkIndex, &result.Content); err != nil {
			if err == sql.ErrNoRows {
				continue // chunk deleted between scan and join
			}
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		result.Distance = hit.Distance
		results = append(results, result)
	}

	return results, nil
}

// DocumentCount returns the total number of documents.
func (s *Store) DocumentCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting documents: %v", domain.ErrStorageFailure, err)
	}
	return count, nil
}

// ==================== Vector Index ====================

// Upsert stores the vector for the given chunk ID.
func (s *Store) Upsert(ctx context.Context, chunkID string, vector []float32) error {
	return s.SaveEmbeddings(ctx, []domain.Embedding{{ChunkID: chunkID, Vector: vector}})
}

// Remove deletes the vector for the given chunk ID.
func (s *Store) Remove(ctx context.Context, chunkID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM embeddings WHERE chunk_id = ?", chunkID)
	if err != nil {
		return fmt.Errorf("%w: removing embedding: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// Query finds the k nearest vectors by cosine distance.
func (s *Store) Query(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 || len(query) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT chunk_id, vector FROM embeddings")
	if err != nil {
		return nil, fmt.Errorf("%w: querying embeddings: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunkID string
		var blob []byte
		if err := rows.Scan(&chunkID, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}

		vector := bytesToFloat32Slice(blob)
		if len(vector) != len(query) {
			continue // stale vector from a different model
		}

		hits = append(hits, driven.VectorHit{
			ChunkID:  chunkID,
			Distance: cosineDistance(query, vector),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	return hits, nil
}

// ==================== Helper Functions ====================

// cosineDistance computes 1 - cosine similarity. Zero vectors are
// treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite exposes no typed error for this, so the
// message text is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.OriginalName, &doc.MaskedName, &doc.MIMEType,
		&doc.SizeBytes, &doc.StoragePath, &doc.UploadedAt, &doc.ChunkCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}
