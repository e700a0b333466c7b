package domain

// IngestState tracks a document through the ingestion pipeline.
//
// The lifecycle is Created -> Chunked -> Embedded, with Failed a
// terminal state for that run only. A document is visible to search
// once it reaches Embedded, because search joins on embedding rows.
type IngestState string

// Ingestion lifecycle states.
const (
	// IngestStateCreated means the metadata row exists but no chunks
	// have been committed yet.
	IngestStateCreated IngestState = "created"

	// IngestStateChunked means the chunk batch and count are
	// committed; embeddings are pending.
	IngestStateChunked IngestState = "chunked"

	// IngestStateEmbedded means ingestion completed and the document
	// is searchable.
	IngestStateEmbedded IngestState = "embedded"

	// IngestStateFailed means this run aborted. The document remains
	// retrievable with its last committed chunk count.
	IngestStateFailed IngestState = "failed"
)

// Terminal returns true once the pipeline will do no further work
// for the document.
func (s IngestState) Terminal() bool {
	return s == IngestStateEmbedded || s == IngestStateFailed
}

// IngestStatus is the observable outcome of one document's pipeline run.
type IngestStatus struct {
	// DocumentID is the document being ingested.
	DocumentID string

	// State is the current lifecycle state.
	State IngestState

	// ChunkCount is the number of chunks committed so far.
	ChunkCount int

	// Err holds the failure when State is IngestStateFailed.
	Err error
}
