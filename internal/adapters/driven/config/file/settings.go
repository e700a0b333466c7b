package file

import (
	"os"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Configuration keys. Dot notation maps to TOML tables, so
// "embedding.provider" is [embedding] provider = "...".
const (
	KeyEmbeddingProvider   = "embedding.provider"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingDimensions = "embedding.dimensions"
	KeyEmbeddingBaseURL    = "embedding.base_url"
	KeyEmbeddingAPIKey     = "embedding.api_key"

	KeyChunkingMaxSize = "chunking.max_chunk_size"
	KeyChunkingOverlap = "chunking.overlap"

	KeyIngestWorkers           = "ingest.workers"
	KeyIngestMaxProviderCalls  = "ingest.max_provider_calls"
	KeyIngestProviderRateLimit = "ingest.provider_rate_limit"
	KeyIngestWriteBackups      = "ingest.write_backups"
)

// envOpenAIKey overrides the stored OpenAI key so it need not live in
// the config file.
const envOpenAIKey = "OPENAI_API_KEY"

// EmbeddingSettings builds embedding settings from the config store.
func EmbeddingSettings(cfg driven.ConfigStore) *domain.EmbeddingSettings {
	settings := &domain.EmbeddingSettings{
		Provider:   domain.EmbeddingProvider(cfg.GetString(KeyEmbeddingProvider)),
		Model:      cfg.GetString(KeyEmbeddingModel),
		Dimensions: cfg.GetInt(KeyEmbeddingDimensions),
		BaseURL:    cfg.GetString(KeyEmbeddingBaseURL),
		APIKey:     cfg.GetString(KeyEmbeddingAPIKey),
	}

	if key := os.Getenv(envOpenAIKey); key != "" {
		settings.APIKey = key
	}

	return settings
}

// ChunkingSettings builds chunking settings from the config store,
// with defaults applied for unset keys.
func ChunkingSettings(cfg driven.ConfigStore) domain.ChunkingSettings {
	return domain.ChunkingSettings{
		MaxChunkSize: cfg.GetInt(KeyChunkingMaxSize),
		Overlap:      cfg.GetInt(KeyChunkingOverlap),
	}.WithDefaults()
}

// IngestSettings builds ingestion settings from the config store,
// with defaults applied for unset keys.
func IngestSettings(cfg driven.ConfigStore) domain.IngestSettings {
	return domain.IngestSettings{
		Workers:           cfg.GetInt(KeyIngestWorkers),
		MaxProviderCalls:  cfg.GetInt(KeyIngestMaxProviderCalls),
		ProviderRateLimit: cfg.GetFloat(KeyIngestProviderRateLimit),
		WriteBackups:      cfg.GetBool(KeyIngestWriteBackups),
	}.WithDefaults()
}
