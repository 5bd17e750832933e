package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	Long: `Shows the current index generation: how many documents and chunks
it holds, when it was built, and with which embedding model.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := context.Background()

	status, err := indexService.Status(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexEmpty) {
			cmd.Println("Index is empty. Run 'docent reindex' to build it.")
			return nil
		}
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Println("Index Status")
	cmd.Println()
	cmd.Printf("  Generation:  %s\n", status.Generation)
	cmd.Printf("  Built:       %s\n", status.BuiltAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Documents:   %d\n", status.DocumentCount)
	cmd.Printf("  Chunks:      %d\n", status.ChunkCount)
	cmd.Printf("  Embedding:   %s (%d dimensions)\n", status.EmbeddingModel, status.EmbeddingDimensions)

	if len(status.Categories) > 0 {
		cmd.Println()
		cmd.Println("  Categories:")
		for _, name := range sortedCategories(status.Categories) {
			cmd.Printf("    %s: %d\n", name, status.Categories[name])
		}
	}

	if indexService.Running() {
		cmd.Println()
		cmd.Println("A rebuild is currently in progress.")
	}

	return nil
}

// sortedCategories returns category names in stable order.
func sortedCategories(categories map[string]int) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
