package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

// snippetWidth truncates chunk content in table output.
const snippetWidth = 120

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored documents",
	Long: `Performs semantic search across all ingested documents.
The query is embedded and compared against stored chunk vectors;
results are ordered by vector distance, closest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()

	results, err := searchService.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (chunk %d, distance %.4f)\n",
			i+1, results[i].OriginalName, results[i].ChunkIndex, results[i].Distance)
		cmd.Printf("      %s\n", snippet(results[i].Content))
		cmd.Println()
	}

	return nil
}

// snippet flattens and truncates chunk content for single-line output.
func snippet(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) > snippetWidth {
		return flat[:snippetWidth] + "..."
	}
	return flat
}
