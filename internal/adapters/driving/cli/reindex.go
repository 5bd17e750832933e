package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the document index",
	Long: `Runs the full indexing pipeline: discover library files, extract
text, chunk, embed, and swap in the new index generation. The previous
generation keeps serving queries until the swap.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := context.Background()

	cmd.Println("Rebuilding index...")

	report, err := reindexWithProgress(ctx, cmd, indexService)
	if err != nil {
		if errors.Is(err, domain.ErrReindexRunning) {
			cmd.Println("A rebuild is already in progress.")
			return nil
		}
		return fmt.Errorf("reindex failed: %w", err)
	}

	printReindexReport(cmd, report)
	return nil
}

// reindexResult carries the outcome across the progress goroutine.
type reindexResult struct {
	report *domain.IndexReport
	err    error
}

// reindexWithProgress runs the rebuild while printing elapsed time.
// The pipeline reports no intermediate counts, so progress is a clock.
func reindexWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	indexer driving.IndexService,
) (*domain.IndexReport, error) {
	resCh := make(chan reindexResult, 1)
	go func() {
		report, err := indexer.Reindex(ctx)
		resCh <- reindexResult{report: report, err: err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	started := time.Now()
	for {
		select {
		case res := <-resCh:
			cmd.Printf("\r")
			return res.report, res.err
		case <-ticker.C:
			cmd.Printf("\rIndexing... %s", time.Since(started).Round(time.Second))
		}
	}
}

func printReindexReport(cmd *cobra.Command, report *domain.IndexReport) {
	cmd.Printf("Indexed %d documents (%d chunks) in %s.\n",
		report.DocumentCount, report.ChunkCount, report.Duration().Round(time.Millisecond))

	if report.OCRPages > 0 {
		cmd.Printf("OCR processed %d scanned pages.\n", report.OCRPages)
	}

	if len(report.Skipped) > 0 {
		cmd.Printf("\nSkipped %d files:\n", len(report.Skipped))
		for _, skip := range report.Skipped {
			cmd.Printf("  %s: %s\n", skip.RelPath, skip.Reason)
		}
	}
}
