package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

// uploadWait blocks until background ingestion finishes.
var uploadWait bool

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Stores a file in the vault and starts background ingestion.
The command returns as soon as the file is stored; chunking and
embedding happen asynchronously unless --wait is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait for ingestion to complete")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	ctx := context.Background()

	doc, err := documentService.Upload(ctx, driving.Upload{
		OriginalName: name,
		MIMEType:     detectMIMEType(name, data),
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	cmd.Printf("Uploaded %s\n", doc.OriginalName)
	cmd.Printf("  ID:     %s\n", doc.ID)
	cmd.Printf("  Stored: %s\n", doc.MaskedName)
	cmd.Printf("  Size:   %d bytes\n", doc.SizeBytes)

	if !uploadWait {
		cmd.Println("\nIngestion running in background. Check progress with: docvault document get " + doc.ID)
		return nil
	}

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	cmd.Println("\nWaiting for ingestion...")
	status, err := ingestService.Wait(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to wait for ingestion: %w", err)
	}
	if status.Err != nil {
		return fmt.Errorf("ingestion failed: %w", status.Err)
	}

	cmd.Printf("Ingested: %d chunks embedded\n", status.ChunkCount)
	return nil
}

// detectMIMEType resolves a content type from the file extension,
// falling back to content sniffing.
func detectMIMEType(name string, data []byte) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		return mimeType
	}
	return http.DetectContentType(data)
}
