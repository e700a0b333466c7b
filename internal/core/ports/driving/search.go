package driving

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// Searcher provides similarity search to external actors.
type Searcher interface {
	// Search embeds the query and returns up to limit results ordered
	// by ascending vector distance.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
