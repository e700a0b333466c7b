package domain

const unknownDescription = "Unknown"

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

// Available embedding providers.
const (
	// ProviderOllama is a local Ollama instance. Its API accepts one
	// text per request, so batches are embedded sequentially.
	ProviderOllama EmbeddingProvider = "ollama"

	// ProviderOpenAI is the OpenAI cloud API. Batches are embedded
	// with a single request.
	ProviderOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p EmbeddingProvider) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
// The active backend is resolved once from these settings at startup,
// never re-dispatched per call.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// Dimensions is the output vector width. Zero means the model default.
	Dimensions int

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds text chunking configuration.
type ChunkingSettings struct {
	// MaxChunkSize is the window size in characters.
	MaxChunkSize int

	// Overlap is the number of characters shared between consecutive
	// chunks. Must be strictly less than MaxChunkSize.
	Overlap int
}

// Default chunking values.
const (
	DefaultMaxChunkSize = 2000
	DefaultChunkOverlap = 200
)

// WithDefaults returns the settings with zero values replaced by defaults.
func (c ChunkingSettings) WithDefaults() ChunkingSettings {
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = DefaultMaxChunkSize
	}
	if c.Overlap <= 0 {
		c.Overlap = DefaultChunkOverlap
	}
	return c
}

// IngestSettings holds background ingestion configuration.
type IngestSettings struct {
	// Workers is the number of concurrent ingestion workers.
	Workers int

	// MaxProviderCalls bounds concurrent embedding provider calls
	// across all workers.
	MaxProviderCalls int

	// ProviderRateLimit is the maximum embedding requests per second.
	// Zero disables rate limiting.
	ProviderRateLimit float64

	// WriteBackups enables per-document embedding backup artifacts.
	WriteBackups bool
}

// Default ingestion values.
const (
	DefaultIngestWorkers    = 4
	DefaultMaxProviderCalls = 2
)

// WithDefaults returns the settings with zero values replaced by defaults.
func (i IngestSettings) WithDefaults() IngestSettings {
	if i.Workers <= 0 {
		i.Workers = DefaultIngestWorkers
	}
	if i.MaxProviderCalls <= 0 {
		i.MaxProviderCalls = DefaultMaxProviderCalls
	}
	return i
}
