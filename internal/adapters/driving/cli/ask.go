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
	askCategory string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the document library",
	Long: `Asks a one-shot question and prints the answer with cited sources.
Retrieval pulls the most relevant passages from the index and the
configured LLM generates the answer from them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCategory, "category", "c", "", "restrict retrieval to one category")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages given to the model (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()
	opts := domain.QueryOptions{
		Category: askCategory,
		TopK:     askTopK,
	}

	answer, err := answerService.Ask(ctx, question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.Sources) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i := range answer.Sources {
		src := answer.Sources[i]
		cmd.Printf("  [%d] %s (%s)\n", i+1, src.Title, sourceLocation(src))
	}

	return nil
}

// sourceLocation renders where a citation points, e.g. "HR/handbook.pdf, p.12".
func sourceLocation(src domain.SourceRef) string {
	if src.Page > 0 {
		return fmt.Sprintf("%s, p.%d", src.RelPath, src.Page)
	}
	return src.RelPath
}
