// Command docvault is a local document vault with semantic search.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docvault/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/docvault/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/files"
	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docvault/internal/adapters/driving/cli"
	"github.com/custodia-labs/docvault/internal/chunker"
	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/services"
	"github.com/custodia-labs/docvault/internal/extractors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	fileStore, err := files.NewStore("")
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}

	embedSettings := configfile.EmbeddingSettings(cfg)
	if embedSettings.Provider == "" {
		// Local Ollama works without credentials.
		embedSettings.Provider = domain.ProviderOllama
	}

	embedder, err := ai.CreateEmbeddingService(embedSettings)
	if err != nil {
		return fmt.Errorf("configure embedding provider: %w", err)
	}
	defer embedder.Close()

	ingestor := services.NewIngestOrchestrator(
		store,
		fileStore,
		extractors.DefaultRegistry(),
		chunker.FromSettings(configfile.ChunkingSettings(cfg)),
		embedder,
		configfile.IngestSettings(cfg),
	)
	defer ingestor.Close()

	cli.SetServices(
		services.NewDocumentService(store, fileStore, ingestor),
		services.NewSearchService(store, embedder),
		ingestor,
	)
	cli.SetVersion(version)

	return cli.Execute()
}
