package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute runs.
var (
	documentService driving.DocumentManager
	searchService   driving.Searcher
	ingestService   driving.Ingestor
)

// verboseFlag enables debug output on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Store documents and search them semantically",
	Long: `docvault is a local document vault with semantic search.

Uploaded files are stored under anonymised names, split into
overlapping text chunks and embedded with a configurable provider.
Search embeds your query and returns the closest chunks.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// SetServices injects the driving port implementations. Must be called
// by the composition root before Execute.
func SetServices(
	documents driving.DocumentManager,
	search driving.Searcher,
	ingest driving.Ingestor,
) {
	documentService = documents
	searchService = search
	ingestService = ingest
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
