// Package tui provides an interactive terminal user interface for docent.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs multi-turn conversations over the library.
	Chat driving.ChatService

	// Document exposes the indexed documents.
	Document driving.DocumentService

	// Index reports index status and categories.
	Index driving.IndexService

	// Action provides clipboard and opener actions on answers.
	Action driving.AnswerActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	document driving.DocumentService,
	index driving.IndexService,
	action driving.AnswerActionService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Document: document,
		Index:    index,
		Action:   action,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil. Action is optional; views
// degrade to showing a message when it is absent.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Index == nil {
		return ErrMissingIndexService
	}
	return nil
}
