package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List and inspect the documents in the current index generation.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentDetailsCmd = &cobra.Command{
	Use:   "details [doc-id]",
	Short: "Show document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDetails,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [doc-id]",
	Short: "Open document in default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

// documentCategory filters the list command to one library category.
var documentCategory string

func init() {
	documentListCmd.Flags().StringVarP(&documentCategory, "category", "c", "", "filter by category")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentDetailsCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	docs, err := documentService.List(ctx, documentCategory)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		if documentCategory != "" {
			cmd.Printf("No documents found in category: %s\n", documentCategory)
		} else {
			cmd.Println("No documents indexed. Run 'docent reindex' first.")
		}
		return nil
	}

	if documentCategory != "" {
		cmd.Printf("Documents in category %s:\n\n", documentCategory)
	} else {
		cmd.Println("Indexed documents:")
		cmd.Println()
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    Path: %s\n", docs[i].RelPath)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
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
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  Category: %s\n", doc.Category)
	cmd.Printf("  Path:     %s\n", doc.RelPath)
	cmd.Printf("  Pages:    %d\n", doc.Pages)
	cmd.Printf("  Indexed:  %s\n", doc.IndexedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	content, err := documentService.GetContent(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentDetails(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	details, err := documentService.GetDetails(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document details: %w", err)
	}

	cmd.Printf("Document Details: %s\n\n", details.ID)
	cmd.Printf("  Title:       %s\n", details.Title)
	cmd.Printf("  Category:    %s\n", details.Category)
	cmd.Printf("  Path:        %s\n", details.RelPath)
	cmd.Printf("  Pages:       %d\n", details.Pages)
	if details.Scanned {
		cmd.Printf("  Scanned:     yes (OCR)\n")
	}
	cmd.Printf("  Chunks:      %d\n", details.ChunkCount)
	cmd.Printf("  Size:        %s\n", formatSize(details.SizeBytes))
	cmd.Printf("  Modified:    %s\n", details.ModTime.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Indexed:     %s\n", details.IndexedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := documentService.Open(ctx, docID); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %s in default application.\n", docID)
	return nil
}

// formatSize renders a byte count in human-readable units.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
