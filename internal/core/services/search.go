package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// DefaultSearchLimit is used when the caller passes no limit.
const DefaultSearchLimit = 10

// SearchService answers similarity queries by embedding the query text
// and scanning the stored vectors. Read-only: it never mutates the
// document store.
type SearchService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(docStore driven.DocumentStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		docStore: docStore,
		embedder: embedder,
	}
}

// Search embeds the query and returns up to limit results ordered by
// ascending vector distance. Documents still mid-ingestion simply
// contribute no results yet.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	logger.Debug("Embedding query (%d chars)", len(query))
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.docStore.SearchSimilar(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Search returned %d results", len(results))
	return results, nil
}
