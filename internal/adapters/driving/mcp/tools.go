package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the document library"`
	Category string `json:"category,omitempty" jsonschema:"restrict retrieval to one library category"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of passages given to the model (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Model   string         `json:"model,omitempty"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput represents a single cited source.
type SourceOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	RelPath    string  `json:"rel_path"`
	Page       int     `json:"page,omitempty"`
	Preview    string  `json:"preview,omitempty"`
	Score      float64 `json:"score"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query to find relevant passages"`
	Category string `json:"category,omitempty" jsonschema:"restrict the search to one library category"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	RelPath    string  `json:"rel_path"`
	Page       int     `json:"page,omitempty"`
	Score      float64 `json:"score"`
	Content    string  `json:"content,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question and get an answer grounded in the indexed documents, with cited sources",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed documents",
	}, s.handleSearch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.QueryOptions{
		Category: input.Category,
		TopK:     input.TopK,
	}

	answer, err := s.ports.Answer.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Model:   answer.Model,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}

	for i := range answer.Sources {
		output.Sources[i] = SourceOutput{
			DocumentID: answer.Sources[i].DocumentID,
			Title:      answer.Sources[i].Title,
			Category:   answer.Sources[i].Category,
			RelPath:    answer.Sources[i].RelPath,
			Page:       answer.Sources[i].Page,
			Preview:    answer.Sources[i].Preview,
			Score:      answer.Sources[i].Score,
		}
	}

	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.QueryOptions{
		Category: input.Category,
		TopK:     limit,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Document.ID,
			Title:      results[i].Document.Title,
			Category:   results[i].Document.Category,
			RelPath:    results[i].Document.RelPath,
			Page:       results[i].Chunk.Page,
			Score:      results[i].Score,
			Content:    results[i].Chunk.Content,
		}
	}

	return nil, output, nil
}
