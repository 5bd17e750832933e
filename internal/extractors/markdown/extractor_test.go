package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// writeFile creates a file under dir and returns its FileInfo.
func writeFile(t *testing.T, dir, name, content string) domain.FileInfo {
	t.Helper()
	abs := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	return domain.FileInfo{
		AbsPath:  abs,
		RelPath:  filepath.Join("HR", name),
		Category: "HR",
	}
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestExtensions(t *testing.T) {
	extractor := New()
	exts := extractor.Extensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
	assert.Len(t, exts, 2)
}

func TestExtract_Success(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	file := writeFile(t, t.TempDir(), "doc.md", "# Hello World\n\nThis is a test.")

	extraction, err := extractor.Extract(ctx, file)
	require.NoError(t, err)
	require.NotNil(t, extraction)

	assert.Equal(t, "Hello World", extraction.Title) // Title from first H1
	require.Len(t, extraction.Pages, 1)
	assert.Equal(t, 1, extraction.Pages[0].Number)
	assert.Contains(t, extraction.Pages[0].Text, "This is a test.")
	assert.False(t, extraction.Scanned())
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	file := domain.FileInfo{
		AbsPath: filepath.Join(t.TempDir(), "does-not-exist.md"),
		RelPath: "HR/does-not-exist.md",
	}

	extraction, err := extractor.Extract(ctx, file)
	assert.Error(t, err)
	assert.Nil(t, extraction)
}

func TestExtract_TitleExtraction(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		filename      string
		expectedTitle string
	}{
		{
			name:          "H1 heading",
			content:       "# My Document\n\nContent here.",
			filename:      "doc.md",
			expectedTitle: "My Document",
		},
		{
			name:          "H1 with extra spaces",
			content:       "#   Spaced Title   \n\nContent",
			filename:      "doc.md",
			expectedTitle: "Spaced Title",
		},
		{
			name:          "no heading - fallback to filename",
			content:       "Just some content without heading.",
			filename:      "my_document.md",
			expectedTitle: "my document",
		},
		{
			name:          "H2 first - fallback to filename",
			content:       "## Second Level\n\nNo H1.",
			filename:      "readme.md",
			expectedTitle: "readme",
		},
	}

	extractor := New()
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			file := writeFile(t, t.TempDir(), tc.filename, tc.content)

			extraction, err := extractor.Extract(ctx, file)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTitle, extraction.Title)
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "headings removed",
			input:    "# Title\n## Subtitle\n### Third",
			expected: "Title\nSubtitle\nThird",
		},
		{
			name:     "bold removed",
			input:    "This is **bold** text",
			expected: "This is bold text",
		},
		{
			name:     "links converted",
			input:    "Click [here](https://example.com)",
			expected: "Click here",
		},
		{
			name:     "images removed",
			input:    "See ![alt text](image.png) here",
			expected: "See  here",
		},
		{
			name:     "code blocks removed",
			input:    "Before\n```go\ncode here\n```\nAfter",
			expected: "Before\n\nAfter",
		},
		{
			name:     "inline code removed",
			input:    "Use `code` here",
			expected: "Use  here",
		},
		{
			name:     "blockquotes cleaned",
			input:    "> This is a quote",
			expected: "This is a quote",
		},
		{
			name:     "list markers removed",
			input:    "- Item 1\n- Item 2",
			expected: "Item 1\nItem 2",
		},
		{
			name:     "numbered list markers removed",
			input:    "1. First\n2. Second",
			expected: "First\nSecond",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := stripMarkdown(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestExtract_ComplexMarkdown(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	complexMarkdown := `# Main Title

## Section 1

This is a paragraph with **bold** and *italic* text.

- List item 1
- List item 2
  - Nested item

### Subsection 1.1

` + "```go" + `
func main() {
    fmt.Println("Hello, World!")
}
` + "```" + `

## Section 2

[Link](https://example.com)

![Image](image.png)
`

	file := writeFile(t, t.TempDir(), "complex.md", complexMarkdown)

	extraction, err := extractor.Extract(ctx, file)
	require.NoError(t, err)
	require.NotNil(t, extraction)

	assert.Equal(t, "Main Title", extraction.Title)

	// Verify content is stripped of markdown
	text := extraction.Pages[0].Text
	assert.NotContains(t, text, "**bold**")
	assert.Contains(t, text, "bold")
	assert.NotContains(t, text, "[Link]")
	assert.Contains(t, text, "Link")
	assert.NotContains(t, text, "```")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func BenchmarkStripMarkdown(b *testing.B) {
	content := `# Heading

Paragraph with **bold** and *italic*.

- List item 1
- List item 2

[Link](https://example.com)

` + "```" + `
code block
` + "```"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = stripMarkdown(content)
	}
}
