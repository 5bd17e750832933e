package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure AnswerService implements the interfaces.
var (
	_ driving.AnswerService   = (*AnswerService)(nil)
	_ driven.PromptStoreAware = (*AnswerService)(nil)
)

// Default prompts, used when no prompt store is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const (
	defaultAnswerPrompt = `You are Docent, an assistant that answers questions about the user's document library.

Answer using ONLY the numbered context blocks below. If the context does not contain the answer, say so plainly instead of guessing. Cite sources inline as [1], [2] etc., matching the context block numbers. Be concise.

Context:
%s

Conversation so far:
%s

Question: %s

Answer:`

	defaultNoContextPrompt = `I could not find anything relevant to that question in the document library. Try rephrasing the question, or run a re-index if documents were added recently.`
)

// AnswerService generates answers grounded in retrieved library
// content. Every answer carries references to the chunks it was
// generated from.
type AnswerService struct {
	retriever   driving.SearchService
	llm         driven.LLMService
	promptStore driven.PromptStore

	contextBudget int
	temperature   float64
}

// NewAnswerService creates a new answer service.
// The llm parameter is optional (can be nil); asking then fails with
// domain.ErrLLMUnavailable.
func NewAnswerService(retriever driving.SearchService, llm driven.LLMService) *AnswerService {
	return &AnswerService{
		retriever:     retriever,
		llm:           llm,
		contextBudget: domain.DefaultContextBudget,
		temperature:   domain.DefaultTemperature,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *AnswerService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// SetContextBudget overrides the character budget for the context
// section of the prompt. Non-positive values are ignored.
func (s *AnswerService) SetContextBudget(budget int) {
	if budget > 0 {
		s.contextBudget = budget
	}
}

// SetTemperature overrides the generation temperature.
// Negative values are ignored.
func (s *AnswerService) SetTemperature(temperature float64) {
	if temperature >= 0 {
		s.temperature = temperature
	}
}

// Ask answers a question from the library. The question is embedded
// and matched against the index; the best chunks become numbered
// context blocks in the prompt, and whatever the model cites comes
// back as source references. When retrieval finds nothing the answer
// is a canned reply and the LLM is never called.
func (s *AnswerService) Ask(ctx context.Context, question string, opts domain.QueryOptions) (*domain.Answer, error) {
	logger.Section("Answer Generation")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	results, err := s.retriever.Search(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		logger.Info("No relevant context found, skipping generation")
		return &domain.Answer{
			Text:      s.loadPrompt(driven.PromptNoContext, defaultNoContextPrompt),
			CreatedAt: time.Now().UTC(),
		}, nil
	}

	contextText, cited := s.buildContext(results)
	logger.Debug("Context: %d chunks, %d characters", len(cited), utf8.RuneCountInString(contextText))

	template := s.loadPrompt(driven.PromptAnswer, defaultAnswerPrompt)
	prompt := fmt.Sprintf(template, contextText, formatHistory(opts.History), question)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	answer := &domain.Answer{
		Text:      strings.TrimSpace(text),
		Sources:   buildSourceRefs(cited),
		Model:     s.llm.ModelName(),
		CreatedAt: time.Now().UTC(),
	}
	logger.Info("Answer: %d characters, %d sources", utf8.RuneCountInString(answer.Text), len(answer.Sources))
	return answer, nil
}

// buildContext renders retrieved chunks as numbered context blocks,
// stopping when the character budget is spent. The first chunk is
// always included so the prompt never goes out without context.
func (s *AnswerService) buildContext(results []domain.RetrievedChunk) (string, []domain.RetrievedChunk) {
	budget := s.contextBudget
	if budget <= 0 {
		budget = domain.DefaultContextBudget
	}

	var b strings.Builder
	cited := make([]domain.RetrievedChunk, 0, len(results))
	used := 0
	for i, r := range results {
		block := fmt.Sprintf("[%d] %s (%s, p.%d)\n%s",
			i+1, r.Document.Title, r.Document.Category, r.Chunk.Page, r.Chunk.Content)
		cost := utf8.RuneCountInString(block) + 2
		if len(cited) > 0 && used+cost > budget {
			logger.Debug("Context budget reached after %d of %d chunks", len(cited), len(results))
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block)
		used += cost
		cited = append(cited, r)
	}
	return b.String(), cited
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AnswerService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// formatHistory renders the conversation window for the prompt.
func formatHistory(history []domain.Turn) string {
	if len(history) == 0 {
		return "(no previous conversation)"
	}
	var b strings.Builder
	for _, turn := range history {
		label := "User"
		if turn.Role == domain.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildSourceRefs turns cited chunks into display references,
// deduplicated per document and page. When several chunks share a
// page the best score wins.
func buildSourceRefs(cited []domain.RetrievedChunk) []domain.SourceRef {
	type refKey struct {
		docID string
		page  int
	}
	index := make(map[refKey]int, len(cited))
	refs := make([]domain.SourceRef, 0, len(cited))
	for _, r := range cited {
		k := refKey{docID: r.Document.ID, page: r.Chunk.Page}
		if i, ok := index[k]; ok {
			if r.Score > refs[i].Score {
				refs[i].Score = r.Score
			}
			continue
		}
		index[k] = len(refs)
		refs = append(refs, domain.SourceRef{
			DocumentID: r.Document.ID,
			Title:      r.Document.Title,
			Category:   r.Document.Category,
			RelPath:    r.Document.RelPath,
			Page:       r.Chunk.Page,
			Preview:    domain.MakePreview(r.Chunk.Content),
			Score:      r.Score,
		})
	}
	return refs
}
