package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/core/domain"
)

var (
	searchLimit    int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Performs semantic search across all indexed documents.
Prints the best-matching passages with their documents and similarity
scores, without calling the LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict search to one category")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := domain.QueryOptions{
		Category: searchCategory,
		TopK:     searchLimit,
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// searchHit is the JSON shape for one result. Chunk text is trimmed to
// a preview; embeddings never leave the process.
type searchHit struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	RelPath    string  `json:"rel_path"`
	Page       int     `json:"page"`
	Score      float64 `json:"score"`
	Preview    string  `json:"preview"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	hits := make([]searchHit, 0, len(results))
	for i := range results {
		hits = append(hits, searchHit{
			DocumentID: results[i].Document.ID,
			Title:      results[i].Document.Title,
			Category:   results[i].Document.Category,
			RelPath:    results[i].Document.RelPath,
			Page:       results[i].Chunk.Page,
			Score:      results[i].Score,
			Preview:    domain.MakePreview(results[i].Chunk.Content),
		})
	}

	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Score) / Location / Snippet
		title := results[i].Document.Title
		if title == "" {
			title = results[i].Document.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		cmd.Printf("      %s\n", chunkLocation(results[i]))
		if snippet := domain.MakePreview(results[i].Chunk.Content); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}

func chunkLocation(hit domain.RetrievedChunk) string {
	if hit.Document.Pages > 1 {
		return fmt.Sprintf("%s, p.%d", hit.Document.RelPath, hit.Chunk.Page)
	}
	return hit.Document.RelPath
}
