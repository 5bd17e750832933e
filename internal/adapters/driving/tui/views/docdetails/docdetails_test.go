package docdetails

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Helper function to create test document details.
func testDetails() *driving.DocumentDetails {
	return &driving.DocumentDetails{
		ID:         "doc-1",
		Title:      "Printer Manual",
		Category:   "manuals",
		RelPath:    "manuals/printer.pdf",
		Pages:      42,
		Scanned:    false,
		ChunkCount: 17,
		SizeBytes:  2048,
		ModTime:    time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		IndexedAt:  time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()

	view := NewView(s)

	require.NotNil(t, view)
	assert.Nil(t, view.details)
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil)

	cmd := view.Init()

	assert.Nil(t, cmd)
}

func TestView_SetDetails(t *testing.T) {
	view := NewView(nil)
	view.scrollOffset = 3
	view.err = errors.New("stale error")

	details := testDetails()
	view.SetDetails(details)

	assert.Equal(t, details, view.Details())
	assert.Equal(t, 0, view.scrollOffset)
	assert.NoError(t, view.Err())
}

func TestView_SetError(t *testing.T) {
	view := NewView(nil)

	view.SetError(errors.New("lookup failed"))

	assert.Error(t, view.Err())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 40, view.height)
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil)

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Error(t, view.Err())
}

func TestView_Update_KeyMsg_Scroll(t *testing.T) {
	view := NewView(nil)
	view.height = 7 // one visible line
	view.SetDetails(testDetails())

	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)
	assert.Equal(t, 1, view.scrollOffset)

	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(msg)
	assert.Equal(t, 2, view.scrollOffset)

	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 1, view.scrollOffset)

	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(msg)
	assert.Equal(t, 0, view.scrollOffset)

	// Boundary: cannot scroll above the top
	view.Update(msg)
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_KeyMsg_Scroll_Boundary(t *testing.T) {
	view := NewView(nil)
	view.height = 40 // everything fits
	view.SetDetails(testDetails())

	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)

	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_KeyMsg_Back(t *testing.T) {
	view := NewView(nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDocuments, changed.View)
}

func TestView_BuildContent(t *testing.T) {
	view := NewView(nil)
	view.SetDetails(testDetails())

	lines := view.buildContent()

	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "ID:")
	assert.Contains(t, lines[0], "doc-1")
	assert.Contains(t, lines[1], "Printer Manual")
	assert.Contains(t, lines[2], "manuals")
	assert.Contains(t, lines[3], "manuals/printer.pdf")
	assert.Contains(t, lines[4], "42")
	assert.Contains(t, lines[5], "false")
	assert.Contains(t, lines[6], "17")
	assert.Contains(t, lines[7], "2.0 KiB")
	assert.Contains(t, lines[8], "2025-03-14 09:26:53")
	assert.Contains(t, lines[9], "2025-03-15 10:00:00")
}

func TestView_BuildContent_NoDetails(t *testing.T) {
	view := NewView(nil)

	lines := view.buildContent()

	assert.Nil(t, lines)
}

func TestView_BuildContent_ZeroTimestamps(t *testing.T) {
	view := NewView(nil)
	details := testDetails()
	details.ModTime = time.Time{}
	details.IndexedAt = time.Time{}
	view.SetDetails(details)

	lines := view.buildContent()

	assert.Len(t, lines, 8)
}

func TestFormatSize(t *testing.T) {
	testCases := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5242880, "5.0 MiB"},
		{1073741824, "1.0 GiB"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatSize(tc.size))
		})
	}
}

func TestView_View_NoDetails(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s)
	view.width = 80
	view.height = 24
	view.ready = true

	output := view.View()

	assert.Contains(t, output, "Document Details")
	assert.Contains(t, output, "No document details available")
}

func TestView_View_WithDetails(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s)
	view.width = 80
	view.height = 24
	view.ready = true
	view.SetDetails(testDetails())

	output := view.View()

	assert.Contains(t, output, "Document Details")
	assert.Contains(t, output, "doc-1")
	assert.Contains(t, output, "Printer Manual")
	assert.Contains(t, output, "manuals/printer.pdf")
	assert.Contains(t, output, "2.0 KiB")
}

func TestView_View_Error(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s)
	view.width = 80
	view.height = 24
	view.ready = true
	view.SetError(errors.New("lookup failed"))

	output := view.View()

	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "lookup failed")
}

func TestView_View_Help(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s)
	view.width = 80
	view.height = 24
	view.ready = true

	output := view.View()

	assert.Contains(t, output, "[esc] back")
}

func TestView_View_ScrollIndicator(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s)
	view.width = 80
	view.height = 7 // one visible line
	view.ready = true
	view.SetDetails(testDetails())

	output := view.View()

	assert.Contains(t, output, "of 10")
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
	assert.True(t, view.ready)
}

func TestView_Details(t *testing.T) {
	view := NewView(nil)

	assert.Nil(t, view.Details())

	details := testDetails()
	view.SetDetails(details)
	assert.Equal(t, details, view.Details())
}

func TestMinInt(t *testing.T) {
	assert.Equal(t, 3, minInt(3, 4))
	assert.Equal(t, 3, minInt(4, 3))
	assert.Equal(t, 0, minInt(0, 1))
}
