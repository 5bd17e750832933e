// Package markdown provides text extraction for Markdown files.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract reads the file and strips markdown formatting so the
// embedded text is plain prose. Markdown files have no page
// structure, so the whole file becomes a single page.
func (e *Extractor) Extract(_ context.Context, file domain.FileInfo) (*domain.Extraction, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.RelPath, err)
	}

	raw := string(data)

	return &domain.Extraction{
		Title: extractMarkdownTitle(raw, file.RelPath),
		Pages: []domain.PageText{
			{Number: 1, Text: stripMarkdown(raw)},
		},
	}, nil
}

// extractMarkdownTitle extracts a title from the first H1 heading
// or falls back to the filename.
func extractMarkdownTitle(content, path string) string {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	// Fall back to filename
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// stripMarkdown removes common markdown formatting for plain text content.
// This is a simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	// Remove code blocks (```...```)
	codeBlock := regexp.MustCompile("(?s)```[^`]*```")
	content = codeBlock.ReplaceAllString(content, "")

	// Remove inline code (`code`)
	inlineCode := regexp.MustCompile("`[^`]+`")
	content = inlineCode.ReplaceAllString(content, "")

	// Remove images ![alt](url)
	images := regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	content = images.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	links := regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	content = links.ReplaceAllString(content, "$1")

	// Remove heading markers (# ## ### etc)
	headings := regexp.MustCompile(`(?m)^#{1,6}\s+`)
	content = headings.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	// Remove blockquote markers
	blockquote := regexp.MustCompile(`(?m)^>\s*`)
	content = blockquote.ReplaceAllString(content, "")

	// Remove horizontal rules
	hr := regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	content = hr.ReplaceAllString(content, "")

	// Remove list markers (- * + and numbered)
	listMarkers := regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	content = listMarkers.ReplaceAllString(content, "")
	numberedList := regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	content = numberedList.ReplaceAllString(content, "")

	// Collapse multiple newlines
	multiNewlines := regexp.MustCompile(`\n{3,}`)
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
