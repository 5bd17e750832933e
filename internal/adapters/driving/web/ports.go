package web

import (
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the web server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs multi-turn conversations over the library.
	Chat driving.ChatService

	// Index triggers rebuilds and reports index status.
	Index driving.IndexService

	// Document exposes the indexed documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Index == nil {
		return ErrMissingIndexService
	}
	// Document is optional; the document listing degrades without it
	return nil
}
