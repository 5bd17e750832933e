package domain

import (
	"strings"
	"time"
)

// Document represents a file from the library after text extraction.
// It is the canonical representation the index is built from.
type Document struct {
	// ID is the unique identifier for the document.
	// Derived from the relative path and content hash, so the same
	// file always produces the same ID across rebuilds.
	ID string

	// Category is the top-level library directory the file lives in.
	Category string

	// Title is the human-readable title (first heading or filename).
	Title string

	// RelPath is the path relative to the library root,
	// e.g. "HR/onboarding-handbook.pdf".
	RelPath string

	// AbsPath is the absolute path on disk.
	AbsPath string

	// Content is the full extracted text before chunking.
	Content string

	// Pages is the page count (1 for single-page formats).
	Pages int

	// PageOffsets holds the rune offset in Content where each page
	// starts (index i is page i+1). Populated while indexing so
	// chunks can be attributed to pages; not persisted.
	PageOffsets []int

	// Scanned is true when at least one page needed OCR.
	Scanned bool

	// ContentHash is the hex-encoded SHA-256 of the file bytes.
	ContentHash string

	// SizeBytes is the file size on disk.
	SizeBytes int64

	// ModTime is the file's modification time at index time.
	ModTime time.Time

	// IndexedAt is when the document entered the current generation.
	IndexedAt time.Time
}

// Chunk represents an embeddable unit within a document.
// Documents are split into overlapping chunks before embedding.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	// Derived from the document ID and Seq, so rebuilding the same
	// document produces the same chunk IDs.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Seq is the 0-based ordinal position within the document.
	Seq int

	// Page is the 1-based page the chunk starts on.
	Page int

	// Offset is the rune offset of the chunk within the document content.
	Offset int

	// Content is the text content of this chunk.
	Content string

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// FileInfo describes a library file discovered on disk, before extraction.
type FileInfo struct {
	// AbsPath is the absolute path on disk.
	AbsPath string

	// RelPath is the path relative to the library root.
	RelPath string

	// Category is the top-level directory the file lives in.
	Category string

	// SizeBytes is the file size on disk.
	SizeBytes int64

	// ModTime is the file's modification time.
	ModTime time.Time
}

// PageText is the extracted text of a single page.
type PageText struct {
	// Number is the 1-based page number.
	Number int

	// Text is the extracted text for the page.
	Text string

	// OCR is true when the text was produced by the OCR fallback
	// rather than direct extraction.
	OCR bool
}

// Extraction is the result of extracting text from one file.
type Extraction struct {
	// Title is the best-effort document title.
	Title string

	// Pages holds per-page text in page order.
	Pages []PageText
}

// Content joins all page text into the full document content.
// Pages are separated by blank lines.
func (e Extraction) Content() string {
	parts := make([]string, 0, len(e.Pages))
	for _, p := range e.Pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(p.Text))
	}
	return strings.Join(parts, "\n\n")
}

// Scanned returns true when any page needed OCR.
func (e Extraction) Scanned() bool {
	for _, p := range e.Pages {
		if p.OCR {
			return true
		}
	}
	return false
}

// OCRPages returns the number of pages produced by OCR.
func (e Extraction) OCRPages() int {
	n := 0
	for _, p := range e.Pages {
		if p.OCR {
			n++
		}
	}
	return n
}

// Empty returns true when no page yielded any text.
func (e Extraction) Empty() bool {
	for _, p := range e.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return false
		}
	}
	return true
}

// LibraryEventType is the kind of library file change.
type LibraryEventType int

const (
	// LibraryFileCreated indicates a new file appeared.
	LibraryFileCreated LibraryEventType = iota

	// LibraryFileModified indicates a file's content changed.
	LibraryFileModified

	// LibraryFileRemoved indicates a file was deleted or renamed away.
	LibraryFileRemoved
)

// LibraryEvent is a change notification from the library watcher.
// Events only signal that a rebuild is due; the index is always
// rebuilt wholesale, never patched incrementally.
type LibraryEvent struct {
	// Type is the kind of change.
	Type LibraryEventType

	// Path is the absolute path of the affected file.
	Path string
}
