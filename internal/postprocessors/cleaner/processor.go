// Package cleaner provides a text normalisation processor that runs
// before chunking.
package cleaner

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docent/internal/core/domain"
)

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// Processor normalises extracted text before it is chunked.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a new cleaner processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process rewrites the document content in place and passes chunks
// through untouched. When the document carries page offsets, each
// page is cleaned separately and the offsets are recomputed so page
// attribution stays correct.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		return chunks, nil
	}

	if !offsetsUsable(doc.PageOffsets, doc.Content) {
		doc.Content = Clean(doc.Content)
		doc.PageOffsets = nil
		return chunks, nil
	}

	runes := []rune(doc.Content)
	pages := make([]string, len(doc.PageOffsets))
	for i, start := range doc.PageOffsets {
		end := len(runes)
		if i+1 < len(doc.PageOffsets) {
			end = doc.PageOffsets[i+1]
		}
		pages[i] = Clean(string(runes[start:end]))
	}

	var b strings.Builder
	offsets := make([]int, len(pages))
	pos := 0
	for i, page := range pages {
		if page != "" && b.Len() > 0 {
			b.WriteString("\n\n")
			pos += 2
		}
		offsets[i] = pos
		b.WriteString(page)
		pos += utf8.RuneCountInString(page)
	}

	// Pages that cleaned away to nothing share their offset with the
	// following page, so chunks land on the page that holds their text.
	for i := len(pages) - 2; i >= 0; i-- {
		if pages[i] == "" {
			offsets[i] = offsets[i+1]
		}
	}

	doc.Content = b.String()
	doc.PageOffsets = offsets
	return chunks, nil
}

// offsetsUsable reports whether the page offsets are in range and
// non-decreasing.
func offsetsUsable(offsets []int, content string) bool {
	if len(offsets) == 0 {
		return false
	}
	total := utf8.RuneCountInString(content)
	prev := 0
	for _, off := range offsets {
		if off < prev || off > total {
			return false
		}
		prev = off
	}
	return true
}

// Clean normalises extracted text: Windows line endings become Unix,
// control and replacement characters are stripped, trailing space is
// trimmed from each line, and runs of blank lines collapse into one.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(dropControl, s)
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// dropControl removes control characters except newline and tab, and
// the Unicode replacement character that PDF extraction tends to
// leave behind.
func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if unicode.IsControl(r) || r == utf8.RuneError {
		return -1
	}
	return r
}
