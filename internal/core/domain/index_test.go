package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestIndexReport_Duration tests rebuild duration calculation
func TestIndexReport_Duration(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	report := IndexReport{
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
	}

	assert.Equal(t, 90*time.Second, report.Duration())
}

// TestIndexStatus_Categories tests per-category document counts
func TestIndexStatus_Categories(t *testing.T) {
	status := IndexStatus{
		Generation:    "gen-1",
		DocumentCount: 5,
		ChunkCount:    42,
		Categories: map[string]int{
			"HR":      2,
			"Finance": 3,
		},
	}

	total := 0
	for _, n := range status.Categories {
		total += n
	}
	assert.Equal(t, status.DocumentCount, total)
}

// TestIndexReport_Skipped tests skipped file reporting
func TestIndexReport_Skipped(t *testing.T) {
	report := IndexReport{
		Skipped: []SkippedFile{
			{RelPath: "HR/corrupt.pdf", Reason: "parse failed"},
		},
	}

	assert.Len(t, report.Skipped, 1)
	assert.Equal(t, "HR/corrupt.pdf", report.Skipped[0].RelPath)
}
