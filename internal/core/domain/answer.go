package domain

import "time"

// QueryOptions configures retrieval and answer generation.
type QueryOptions struct {
	// Category filters retrieval to one library category.
	// Empty means all categories.
	Category string

	// TopK is the number of chunks handed to the LLM. 0 uses the default.
	TopK int

	// FetchK is the number of nearest-neighbour candidates fetched
	// before diversity selection. 0 uses the default.
	FetchK int

	// History is the prior conversation rendered into the prompt.
	// The most recent turns win when the window is exceeded.
	History []Turn
}

// RetrievedChunk is a single retrieval hit: a chunk, its parent
// document, and the similarity score that ranked it.
type RetrievedChunk struct {
	// Document is the chunk's parent document.
	Document Document

	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the similarity score in [0, 1], higher is closer.
	Score float64
}

// SourceRef is a citation attached to an answer. References are
// deduplicated per document and page before display.
type SourceRef struct {
	// DocumentID identifies the cited document.
	DocumentID string

	// Title is the document title.
	Title string

	// Category is the document's library category.
	Category string

	// RelPath is the document path relative to the library root.
	RelPath string

	// Page is the 1-based page the cited chunk starts on.
	Page int

	// Preview is the first part of the cited chunk text,
	// truncated for display.
	Preview string

	// Score is the best similarity score among the chunks that
	// contributed this reference.
	Score float64
}

// Answer is a generated answer with its cited sources.
// Answers are ephemeral; they are never persisted.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources lists the cited documents in retrieval order.
	Sources []SourceRef

	// Model is the LLM model that produced the text.
	Model string

	// CreatedAt is when the answer was generated.
	CreatedAt time.Time
}

// PreviewLength is the number of characters of chunk text kept in a
// source reference.
const PreviewLength = 200

// MakePreview truncates chunk text for display in a source reference.
func MakePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}
