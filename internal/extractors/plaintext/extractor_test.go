package plaintext

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
		RelPath:  filepath.Join("Technical", name),
		Category: "Technical",
	}
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestExtensions(t *testing.T) {
	extractor := New()
	assert.Equal(t, []string{".txt"}, extractor.Extensions())
}

func TestExtract_Success(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	file := writeFile(t, t.TempDir(), "release_notes.txt", "This is plain text content.")

	extraction, err := extractor.Extract(ctx, file)
	require.NoError(t, err)
	require.NotNil(t, extraction)

	assert.Equal(t, "release notes", extraction.Title)
	require.Len(t, extraction.Pages, 1)
	assert.Equal(t, 1, extraction.Pages[0].Number)
	assert.Equal(t, "This is plain text content.", extraction.Pages[0].Text)
	assert.False(t, extraction.Pages[0].OCR)
	assert.False(t, extraction.Scanned())
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	file := domain.FileInfo{
		AbsPath: filepath.Join(t.TempDir(), "does-not-exist.txt"),
		RelPath: "HR/does-not-exist.txt",
	}

	extraction, err := extractor.Extract(ctx, file)
	assert.Error(t, err)
	assert.Nil(t, extraction)
}

func TestExtract_EmptyFile(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	file := writeFile(t, t.TempDir(), "empty.txt", "")

	extraction, err := extractor.Extract(ctx, file)
	require.NoError(t, err)
	require.Len(t, extraction.Pages, 1)
	assert.Empty(t, extraction.Pages[0].Text)
	assert.True(t, extraction.Empty())
}

func TestExtract_UnicodeContent(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	unicodeContent := `多语言文本测试
こんにちは世界
Привет мир`

	file := writeFile(t, t.TempDir(), "unicode.txt", unicodeContent)

	extraction, err := extractor.Extract(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, unicodeContent, extraction.Pages[0].Text)
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectedTitle string
	}{
		{
			name:          "simple filename",
			path:          "HR/document.txt",
			expectedTitle: "document",
		},
		{
			name:          "underscores to spaces",
			path:          "HR/my_document_name.txt",
			expectedTitle: "my document name",
		},
		{
			name:          "dashes to spaces",
			path:          "Finance/my-document-name.txt",
			expectedTitle: "my document name",
		},
		{
			name:          "no extension",
			path:          "Technical/README",
			expectedTitle: "README",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedTitle, titleFromPath(tc.path))
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
