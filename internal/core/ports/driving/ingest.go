package driving

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// Ingestor runs the background ingestion pipeline.
//
// Each enqueued document is processed independently; a failure in one
// document's run never affects another's. Completion is observable via
// Status and Wait so callers need not rely on scheduling order.
type Ingestor interface {
	// Enqueue schedules a document for ingestion.
	Enqueue(documentID string)

	// Status returns the current pipeline status for a document, or
	// false if the document has never been enqueued.
	Status(documentID string) (domain.IngestStatus, bool)

	// Wait blocks until the document's pipeline run reaches a terminal
	// state or the context is cancelled.
	Wait(ctx context.Context, documentID string) (domain.IngestStatus, error)

	// Forget drops status tracking for a document, typically after
	// deletion.
	Forget(documentID string)
}
