// Package chat provides the conversational question-answering view for the TUI.
package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// View represents the chat view with question input, transcript, and status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	transcript *transcript.Transcript
	statusbar  *status.Bar

	chatService   driving.ChatService
	indexService  driving.IndexService
	actionService driving.AnswerActionService
	ctx           context.Context

	conversationID string
	categories     []string
	categoryIdx    int // 0 = all categories
	lastAnswer     *domain.Answer

	width      int
	height     int
	ready      bool
	err        error
	thinking   bool
	focusInput bool // true = input mode (typing), false = browse mode (scrolling)
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	indexService driving.IndexService,
	actionService driving.AnswerActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQuestionInput(s),
		transcript:    transcript.NewTranscript(s),
		statusbar:     status.NewBar(s, km),
		chatService:   chatService,
		indexService:  indexService,
		actionService: actionService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view. The conversation and category list are
// loaded once; re-entering the view keeps the running conversation.
func (v *View) Init() tea.Cmd {
	cmds := []tea.Cmd{v.input.Init()}
	if v.conversationID == "" {
		cmds = append(cmds, v.startConversation())
	}
	if len(v.categories) == 0 {
		cmds = append(cmds, v.loadStatus())
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConversationStarted:
		v.handleConversationStarted(msg)
		return v, nil

	case messages.AnswerReceived:
		v.handleAnswerReceived(msg)
		return v, nil

	case messages.StatusLoaded:
		v.handleStatusLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to transcript component
	var transcriptCmd tea.Cmd
	v.transcript, transcriptCmd = v.transcript.Update(msg)
	if transcriptCmd != nil {
		cmds = append(cmds, transcriptCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Tab cycles the category filter in both modes
	if msg.Type == tea.KeyTab {
		v.cycleCategory()
		return v, nil
	}

	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := strings.TrimSpace(v.input.Value())
		if question == "" || v.thinking {
			return v, nil
		}
		return v, v.submit(question)
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Browse mode: plain keys are commands
	switch msg.String() {
	case "n":
		// New question: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, nil
	case "c":
		v.copyAnswer()
		return v, nil
	case "o":
		v.openTopSource()
		return v, nil
	}

	// Everything else scrolls the transcript
	var cmd tea.Cmd
	v.transcript, cmd = v.transcript.Update(msg)
	return v, cmd
}

// submit appends the user turn and fires the ask command.
func (v *View) submit(question string) tea.Cmd {
	v.transcript.Append(domain.Turn{
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})
	v.thinking = true
	v.focusInput = false
	v.input.Blur()
	v.input.SetValue("")
	v.statusbar.SetState(status.StateThinking)
	v.statusbar.SetMessage("")
	return v.ask(v.conversationID, question, domain.QueryOptions{Category: v.category()})
}

// ask answers the question within the conversation. When the opening
// ConversationStarted is still in flight the conversation is opened
// lazily here; the resulting ID travels back on AnswerReceived.
func (v *View) ask(conversationID, question string, opts domain.QueryOptions) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.AnswerReceived{Err: ErrNoChatService}
		}

		if conversationID == "" {
			conv, err := v.chatService.StartConversation(v.ctx)
			if err != nil {
				return messages.AnswerReceived{Err: err}
			}
			conversationID = conv.ID
		}

		answer, err := v.chatService.Ask(v.ctx, conversationID, question, opts)
		return messages.AnswerReceived{ConversationID: conversationID, Answer: answer, Err: err}
	}
}

// startConversation opens a new conversation.
func (v *View) startConversation() tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.ConversationStarted{Err: ErrNoChatService}
		}

		conv, err := v.chatService.StartConversation(v.ctx)
		if err != nil {
			return messages.ConversationStarted{Err: err}
		}
		return messages.ConversationStarted{ConversationID: conv.ID}
	}
}

// loadStatus fetches the index status for the category filter.
func (v *View) loadStatus() tea.Cmd {
	return func() tea.Msg {
		if v.indexService == nil {
			return messages.StatusLoaded{}
		}

		st, err := v.indexService.Status(v.ctx)
		return messages.StatusLoaded{Status: st, Err: err}
	}
}

// handleConversationStarted records the opened conversation.
func (v *View) handleConversationStarted(msg messages.ConversationStarted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	// A lazily opened conversation from an in-flight ask wins.
	if v.conversationID == "" {
		v.conversationID = msg.ConversationID
	}
}

// handleAnswerReceived appends the assistant turn.
func (v *View) handleAnswerReceived(msg messages.AnswerReceived) {
	v.thinking = false
	if msg.ConversationID != "" {
		v.conversationID = msg.ConversationID
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	if msg.Answer == nil {
		return
	}

	v.err = nil
	v.lastAnswer = msg.Answer
	v.transcript.Append(domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   msg.Answer.Text,
		Sources:   msg.Answer.Sources,
		CreatedAt: msg.Answer.CreatedAt,
	})
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetSourceCount(len(msg.Answer.Sources))
}

// handleStatusLoaded records the available categories.
func (v *View) handleStatusLoaded(msg messages.StatusLoaded) {
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrIndexEmpty) {
			v.statusbar.SetMessage("Index is empty. Run a reindex first.")
		}
		return
	}
	if msg.Status == nil {
		return
	}

	names := make([]string, 0, len(msg.Status.Categories))
	for name := range msg.Status.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	v.categories = names
}

// copyAnswer copies the latest answer text to the clipboard.
func (v *View) copyAnswer() {
	if v.lastAnswer == nil {
		v.statusbar.SetMessage("No answer to copy")
		return
	}
	if v.actionService == nil {
		v.statusbar.SetMessage("Copy not available")
		return
	}

	if err := v.actionService.CopyAnswer(v.ctx, v.lastAnswer); err != nil {
		v.statusbar.SetMessage("Copy: " + err.Error())
	} else {
		v.statusbar.SetMessage("Copied to clipboard")
	}
}

// openTopSource opens the first cited document of the latest answer.
func (v *View) openTopSource() {
	if v.lastAnswer == nil || len(v.lastAnswer.Sources) == 0 {
		v.statusbar.SetMessage("No source to open")
		return
	}
	if v.actionService == nil {
		v.statusbar.SetMessage("Open not available")
		return
	}

	if err := v.actionService.OpenSource(v.ctx, v.lastAnswer.Sources[0]); err != nil {
		v.statusbar.SetMessage("Open: " + err.Error())
	} else {
		v.statusbar.SetMessage("Opening document...")
	}
}

// cycleCategory advances the category filter: all, then each category.
func (v *View) cycleCategory() {
	if len(v.categories) == 0 {
		return
	}
	v.categoryIdx = (v.categoryIdx + 1) % (len(v.categories) + 1)
}

// category returns the active category filter, empty for all.
func (v *View) category() string {
	if v.categoryIdx == 0 || v.categoryIdx > len(v.categories) {
		return ""
	}
	return v.categories[v.categoryIdx-1]
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("Docent")
	sections = append(sections, header, "")

	// Question input
	inputView := v.input.View()
	sections = append(sections, inputView, "")

	// Category filter
	sections = append(sections, v.renderFilter(), "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Conversation transcript
	sections = append(sections, v.transcript.View())

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilter renders the active category filter line.
func (v *View) renderFilter() string {
	label := "all"
	if c := v.category(); c != "" {
		label = c
	}
	return v.styles.Muted.Render("Category: " + label + "  [tab] cycle")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	transcriptHeight := height - 12 // Reserve space for header, input, filter, status
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	v.transcript.SetDimensions(width, transcriptHeight)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// ConversationID returns the active conversation ID.
func (v *View) ConversationID() string {
	return v.conversationID
}

// Question returns the current input value.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the input value.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Turns returns the transcript turns.
func (v *View) Turns() []domain.Turn {
	return v.transcript.Turns()
}

// LastAnswer returns the most recent answer.
func (v *View) LastAnswer() *domain.Answer {
	return v.lastAnswer
}

// Categories returns the known category names.
func (v *View) Categories() []string {
	return v.categories
}

// Category returns the active category filter, empty for all.
func (v *View) Category() string {
	return v.category()
}

// Thinking returns whether an ask is in flight.
func (v *View) Thinking() bool {
	return v.thinking
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset discards the conversation and returns to input mode.
func (v *View) Reset() {
	v.conversationID = ""
	v.lastAnswer = nil
	v.err = nil
	v.thinking = false
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.transcript.Clear()
	v.statusbar.Clear()
}
