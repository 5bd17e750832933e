package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// mockIndexServiceSkips reports a rebuild with OCR pages and skipped files.
type mockIndexServiceSkips struct {
	mockIndexService
}

func (m *mockIndexServiceSkips) Reindex(_ context.Context) (*domain.IndexReport, error) {
	started := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	return &domain.IndexReport{
		Generation:    "gen-2",
		StartedAt:     started,
		FinishedAt:    started.Add(90 * time.Second),
		DocumentCount: 2,
		ChunkCount:    57,
		OCRPages:      3,
		Skipped: []domain.SkippedFile{
			{RelPath: "manuals/corrupt.pdf", Reason: "extracting text: unexpected EOF"},
		},
	}, nil
}

func TestReindexCmd_Use(t *testing.T) {
	assert.Equal(t, "reindex", reindexCmd.Use)
}

func TestReindexCmd_Short(t *testing.T) {
	assert.Equal(t, "Rebuild the document index", reindexCmd.Short)
}

func TestReindexCmd_PrintsReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Rebuilding index...")
	assert.Contains(t, buf.String(), "Indexed 2 documents (57 chunks) in 42s.")
	assert.NotContains(t, buf.String(), "OCR")
	assert.NotContains(t, buf.String(), "Skipped")
}

func TestReindexCmd_ReportsOCRAndSkips(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	indexService = &mockIndexServiceSkips{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "OCR processed 3 scanned pages.")
	assert.Contains(t, buf.String(), "Skipped 1 files:")
	assert.Contains(t, buf.String(), "manuals/corrupt.pdf: extracting text: unexpected EOF")
}

func TestReindexCmd_AlreadyRunning(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	indexService = &mockIndexServiceRunning{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "A rebuild is already in progress.")
}

func TestReindexCmd_ServiceNotConfigured(t *testing.T) {
	oldService := indexService
	indexService = nil
	defer func() {
		indexService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}

func TestReindexCmd_ServiceError(t *testing.T) {
	oldService := indexService
	indexService = &mockIndexServiceError{}
	defer func() {
		indexService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reindex failed")
	assert.Contains(t, err.Error(), "embedding service unavailable")
}
