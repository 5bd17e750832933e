// Package web provides the browser interface for Docent. It serves a
// single-page chat UI and a small JSON API over the same services the
// CLI and TUI use.
package web

import "errors"

// Adapter errors.
var (
	// ErrMissingChatService indicates the chat service was not provided.
	ErrMissingChatService = errors.New("web: chat service is required")

	// ErrMissingIndexService indicates the index service was not provided.
	ErrMissingIndexService = errors.New("web: index service is required")
)
