package driven

import "context"

// VectorIndex provides K-nearest-neighbour lookup over chunk vectors.
// Implementable by an exact scan at modest scale or an approximate
// index; callers only rely on this contract.
type VectorIndex interface {
	// Upsert stores the vector for the given chunk ID, overwriting
	// any previous vector.
	Upsert(ctx context.Context, chunkID string, vector []float32) error

	// Remove deletes the vector for the given chunk ID. Removing an
	// absent key is not an error.
	Remove(ctx context.Context, chunkID string) error

	// Query finds the k nearest vectors to the query, ordered by
	// ascending distance.
	Query(ctx context.Context, query []float32, k int) ([]VectorHit, error)
}

// VectorHit represents a similarity lookup result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Distance is the cosine distance (0 = identical direction).
	Distance float64
}
