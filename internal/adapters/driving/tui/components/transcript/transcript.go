// Package transcript provides the scrolling conversation history component
// for the TUI. It wraps a bubbles viewport so long conversations can be
// scrolled with the usual keys.
package transcript

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docent/internal/core/domain"
)

// Transcript renders conversation turns inside a scrollable viewport.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles
	turns    []domain.Turn
	width    int
	height   int
}

// NewTranscript creates a new transcript component.
func NewTranscript(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	vp := viewport.New(80, 16)

	return &Transcript{
		viewport: vp,
		styles:   s,
		width:    80,
		height:   16,
	}
}

// Init initialises the transcript.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update forwards messages to the viewport so its default keymap
// (up/down, j/k, pgup/pgdown) drives scrolling.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the transcript viewport.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// Append adds a turn and scrolls to the bottom.
func (t *Transcript) Append(turn domain.Turn) {
	t.turns = append(t.turns, turn)
	t.refresh()
	t.viewport.GotoBottom()
}

// SetTurns replaces the transcript contents.
func (t *Transcript) SetTurns(turns []domain.Turn) {
	t.turns = turns
	t.refresh()
	t.viewport.GotoBottom()
}

// Turns returns the current turns.
func (t *Transcript) Turns() []domain.Turn {
	return t.turns
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Clear removes all turns.
func (t *Transcript) Clear() {
	t.turns = nil
	t.refresh()
	t.viewport.GotoTop()
}

// ScrollPercent returns the vertical scroll position as a fraction.
func (t *Transcript) ScrollPercent() float64 {
	return t.viewport.ScrollPercent()
}

// AtBottom reports whether the viewport is scrolled to the bottom.
func (t *Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

// SetDimensions sets the transcript dimensions and re-wraps content.
func (t *Transcript) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

// Width returns the current width.
func (t *Transcript) Width() int {
	return t.width
}

// Height returns the current height.
func (t *Transcript) Height() int {
	return t.height
}

// refresh re-renders the turns into the viewport.
func (t *Transcript) refresh() {
	t.viewport.SetContent(t.renderTurns())
}

// renderTurns renders all turns as wrapped, styled text.
func (t *Transcript) renderTurns() string {
	if len(t.turns) == 0 {
		return t.styles.Muted.Render("Ask a question to get started.")
	}

	blocks := make([]string, 0, len(t.turns))
	for i := range t.turns {
		blocks = append(blocks, t.renderTurn(&t.turns[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// renderTurn renders a single turn with its role label and citations.
func (t *Transcript) renderTurn(turn *domain.Turn) string {
	wrap := t.contentWidth()
	body := t.styles.Normal.Width(wrap).Render(turn.Content)

	switch turn.Role {
	case domain.RoleUser:
		return t.styles.Question.Render("You") + "\n" + body

	case domain.RoleAssistant:
		var b strings.Builder
		b.WriteString(t.styles.Title.Render("Docent"))
		b.WriteString("\n")
		b.WriteString(body)
		for i, src := range turn.Sources {
			b.WriteString("\n")
			b.WriteString(t.styles.Citation.Render(formatSource(i+1, src)))
		}
		return b.String()
	}

	return body
}

// contentWidth returns the wrap width for turn bodies.
func (t *Transcript) contentWidth() int {
	w := t.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// formatSource formats a citation line for display.
func formatSource(n int, src domain.SourceRef) string {
	loc := src.RelPath
	if src.Page > 0 {
		loc = fmt.Sprintf("%s, p.%d", loc, src.Page)
	}
	return fmt.Sprintf("  [%d] %s (%s)", n, src.Title, loc)
}
