package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// documentTimeout bounds a single document's pipeline run.
const documentTimeout = 5 * time.Minute

// jobQueueSize is the enqueue buffer. Sends block once it fills,
// applying backpressure to uploads.
const jobQueueSize = 256

// vectorPreviewWidth is how many components of each vector the backup
// artifact shows.
const vectorPreviewWidth = 8

// ingestRun tracks one document's progress through the pipeline.
type ingestRun struct {
	status domain.IngestStatus
	done   chan struct{}
	closed bool
}

// IngestOrchestrator runs the background ingestion pipeline: extract,
// chunk, embed, store. Documents are processed by a bounded worker
// pool; each document's run is independent and a failure in one never
// affects another.
type IngestOrchestrator struct {
	docStore  driven.DocumentStore
	fileStore driven.FileStore
	registry  driven.ExtractorRegistry
	chunker   driven.Chunker
	embedder  driven.EmbeddingService
	settings  domain.IngestSettings

	// providerSem bounds concurrent embedding provider calls across
	// all workers; limiter spaces them out when a rate is configured.
	providerSem *semaphore.Weighted
	limiter     *rate.Limiter

	jobs chan string
	wg   sync.WaitGroup

	mu   sync.RWMutex
	runs map[string]*ingestRun
}

// NewIngestOrchestrator creates the orchestrator and starts its worker
// pool. Call Close to drain and stop the workers.
func NewIngestOrchestrator(
	docStore driven.DocumentStore,
	fileStore driven.FileStore,
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	settings domain.IngestSettings,
) *IngestOrchestrator {
	settings = settings.WithDefaults()

	o := &IngestOrchestrator{
		docStore:    docStore,
		fileStore:   fileStore,
		registry:    registry,
		chunker:     chunker,
		embedder:    embedder,
		settings:    settings,
		providerSem: semaphore.NewWeighted(int64(settings.MaxProviderCalls)),
		jobs:        make(chan string, jobQueueSize),
		runs:        make(map[string]*ingestRun),
	}

	if settings.ProviderRateLimit > 0 {
		o.limiter = rate.NewLimiter(rate.Limit(settings.ProviderRateLimit), 1)
	}

	for i := 0; i < settings.Workers; i++ {
		o.wg.Add(1)
		go o.worker()
	}

	return o
}

// Close stops accepting jobs, waits for in-flight runs to finish and
// returns. Safe to call once.
func (o *IngestOrchestrator) Close() {
	close(o.jobs)
	o.wg.Wait()
}

// Enqueue schedules a document for ingestion. Re-enqueueing restarts
// tracking for a fresh run.
func (o *IngestOrchestrator) Enqueue(documentID string) {
	o.mu.Lock()
	o.runs[documentID] = &ingestRun{
		status: domain.IngestStatus{
			DocumentID: documentID,
			State:      domain.IngestStateCreated,
		},
		done: make(chan struct{}),
	}
	o.mu.Unlock()

	o.jobs <- documentID
}

// Status returns the current pipeline status for a document.
func (o *IngestOrchestrator) Status(documentID string) (domain.IngestStatus, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	run, ok := o.runs[documentID]
	if !ok {
		return domain.IngestStatus{}, false
	}
	return run.status, true
}

// Wait blocks until the document's run reaches a terminal state or the
// context is cancelled.
func (o *IngestOrchestrator) Wait(ctx context.Context, documentID string) (domain.IngestStatus, error) {
	o.mu.RLock()
	run, ok := o.runs[documentID]
	o.mu.RUnlock()

	if !ok {
		return domain.IngestStatus{}, fmt.Errorf("%w: no ingestion tracked for document %s", domain.ErrNotFound, documentID)
	}

	select {
	case <-ctx.Done():
		return domain.IngestStatus{}, ctx.Err()
	case <-run.done:
		o.mu.RLock()
		defer o.mu.RUnlock()
		return run.status, nil
	}
}

// Forget drops status tracking for a document. Waiters are released.
func (o *IngestOrchestrator) Forget(documentID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	run, ok := o.runs[documentID]
	if !ok {
		return
	}
	if !run.closed {
		close(run.done)
		run.closed = true
	}
	delete(o.runs, documentID)
}

// worker pulls documents off the queue until the queue closes.
func (o *IngestOrchestrator) worker() {
	defer o.wg.Done()

	for documentID := range o.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), documentTimeout)
		if err := o.ingest(ctx, documentID); err != nil {
			// Ingestion failures are terminal for this run only; the
			// document stays retrievable and can be re-enqueued.
			logger.Warn("Ingestion failed for %s: %v", documentID, err)
			o.setTerminal(documentID, domain.IngestStateFailed, err)
		}
		cancel()
	}
}

// ingest runs the full pipeline for one document.
func (o *IngestOrchestrator) ingest(ctx context.Context, documentID string) error {
	doc, err := o.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	data, err := o.fileStore.Read(ctx, doc.MaskedName)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	extractor, err := o.registry.ExtractorFor(doc.MIMEType)
	if err != nil {
		return fmt.Errorf("select extractor: %w", err)
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	texts := o.chunker.Split(text)
	if len(texts) == 0 {
		logger.Info("Document %s has no extractable text, committing zero chunks", documentID)
	}

	chunks, err := o.docStore.SaveChunks(ctx, documentID, texts)
	if err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}
	o.setState(documentID, domain.IngestStateChunked, len(chunks))
	logger.Debug("Committed %d chunks for %s", len(chunks), documentID)

	if len(chunks) > 0 {
		vectors, err := o.embedChunks(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}

		embeddings := make([]domain.Embedding, len(chunks))
		for i, chunk := range chunks {
			embeddings[i] = domain.Embedding{ChunkID: chunk.ID, Vector: vectors[i]}
		}

		if err := o.docStore.SaveEmbeddings(ctx, embeddings); err != nil {
			return fmt.Errorf("save embeddings: %w", err)
		}

		if o.settings.WriteBackups {
			artifact := backupArtifact(doc, chunks, embeddings)
			if err := o.fileStore.WriteBackup(ctx, documentID, artifact); err != nil {
				// The artifact is advisory; never fail the run over it.
				logger.Warn("Failed to write backup for %s: %v", documentID, err)
			}
		}
	}

	o.setTerminal(documentID, domain.IngestStateEmbedded, nil)
	logger.Info("Ingested %s: %d chunks embedded", documentID, len(chunks))
	return nil
}

// embedChunks calls the provider under the shared concurrency bound
// and rate limit.
func (o *IngestOrchestrator) embedChunks(ctx context.Context, texts []string) ([][]float32, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if err := o.providerSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer o.providerSem.Release(1)

	vectors, err := o.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: provider returned %d vectors for %d texts",
			domain.ErrProviderError, len(vectors), len(texts))
	}
	return vectors, nil
}

// setState updates a tracked run's non-terminal state.
func (o *IngestOrchestrator) setState(documentID string, state domain.IngestState, chunkCount int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	run, ok := o.runs[documentID]
	if !ok || run.closed {
		return
	}
	run.status.State = state
	run.status.ChunkCount = chunkCount
}

// setTerminal marks a run finished and releases waiters.
func (o *IngestOrchestrator) setTerminal(documentID string, state domain.IngestState, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	run, ok := o.runs[documentID]
	if !ok || run.closed {
		return
	}
	run.status.State = state
	run.status.Err = err
	close(run.done)
	run.closed = true
}

// backupArtifact renders a human-readable embedding summary for
// operator inspection. It is never read back by the system.
func backupArtifact(doc *domain.Document, chunks []domain.Chunk, embeddings []domain.Embedding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "document: %s\n", doc.ID)
	fmt.Fprintf(&b, "original_name: %s\n", doc.OriginalName)
	fmt.Fprintf(&b, "chunks: %d\n\n", len(chunks))

	for i, chunk := range chunks {
		fmt.Fprintf(&b, "[%d] chunk %s\n", chunk.ChunkIndex, chunk.ID)
		if i < len(embeddings) {
			vector := embeddings[i].Vector
			fmt.Fprintf(&b, "    dimensions: %d\n", len(vector))
			preview := vector
			if len(preview) > vectorPreviewWidth {
				preview = preview[:vectorPreviewWidth]
			}
			fmt.Fprintf(&b, "    vector: %v...\n", preview)
		}
	}

	return b.String()
}
