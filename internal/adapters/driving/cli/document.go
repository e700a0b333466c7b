package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `List, inspect, download or delete stored documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Download the original file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and everything derived from it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// Flags for list and download.
var (
	listLimit      int
	listOffset     int
	downloadOutput string
)

func init() {
	documentListCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum number of documents")
	documentListCmd.Flags().IntVar(&listOffset, "offset", 0, "number of documents to skip")
	documentDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path (defaults to the original name)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	docs, err := documentService.List(ctx, listLimit, listOffset)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:     %s\n", docs[i].OriginalName)
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("    Chunks:   %d\n", docs[i].ChunkCount)
		cmd.Println()
	}

	total, err := documentService.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}
	cmd.Printf("Showing %d of %d documents\n", len(docs), total)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := documentService.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.OriginalName)
	cmd.Printf("  Stored:   %s\n", doc.MaskedName)
	cmd.Printf("  Type:     %s\n", doc.MIMEType)
	cmd.Printf("  Size:     %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Chunks:   %d\n", doc.ChunkCount)

	if ingestService != nil {
		if status, ok := ingestService.Status(doc.ID); ok {
			cmd.Printf("  Ingestion: %s", status.State)
			if status.Err != nil {
				cmd.Printf(" (%v)", status.Err)
			}
			cmd.Println()
		}
	}

	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	content, err := documentService.Download(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to download document: %w", err)
	}

	output := downloadOutput
	if output == "" {
		output = content.Name
	}

	if err := os.WriteFile(output, content.Data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	cmd.Printf("Downloaded %s to %s (%d bytes)\n", content.Name, output, len(content.Data))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := documentService.Delete(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}
