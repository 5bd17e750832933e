// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docent/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the conversational question-answering view.
	ViewChat
	// ViewDocuments lists the indexed documents.
	ViewDocuments
	// ViewDocContent shows document content.
	ViewDocContent
	// ViewDocDetails shows document metadata.
	ViewDocDetails
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewDocDetails:
		return "doc_details"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConversationStarted carries the ID of a freshly opened conversation.
type ConversationStarted struct {
	ConversationID string
	Err            error
}

// AnswerReceived carries a generated answer back to the chat view.
// ConversationID identifies the conversation the exchange belongs to;
// it is set even when the conversation was opened lazily by the ask.
type AnswerReceived struct {
	ConversationID string
	Answer         *domain.Answer
	Err            error
}

// StatusLoaded carries the current index status.
type StatusLoaded struct {
	Status *domain.IndexStatus
	Err    error
}

// DocumentsLoaded carries the list of indexed documents.
type DocumentsLoaded struct {
	Category  string
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was selected.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentContentLoaded carries the content of a document.
type DocumentContentLoaded struct {
	DocumentID string
	Content    string
	Err        error
}

// DocumentDetailsLoaded carries the metadata of a document.
type DocumentDetailsLoaded struct {
	DocumentID string
	Details    interface{} // *driving.DocumentDetails
	Err        error
}
