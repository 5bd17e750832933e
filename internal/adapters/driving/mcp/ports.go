package mcp

import (
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer generates cited answers over the index.
	Answer driving.AnswerService

	// Search provides raw retrieval without the LLM.
	Search driving.SearchService

	// Document exposes the indexed documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Document is optional; document resources degrade without it
	return nil
}
