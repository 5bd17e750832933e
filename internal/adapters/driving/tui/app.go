package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/views/docdetails"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chatView is the conversational question-answering view component.
	chatView *chat.View

	// documentsView is the documents list view component.
	documentsView *documents.View

	// docContentView is the document content view component.
	docContentView *doccontent.View

	// docDetailsView is the document details view component.
	docDetailsView *docdetails.View

	// selectedDocument tracks the currently selected document for navigation.
	selectedDocument *domain.Document

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	menuView := menu.NewView(s)
	chatView := chat.NewView(s, nil, ports.Chat, ports.Index, ports.Action)
	documentsView := documents.NewView(s, ports.Document, ports.Index)
	docContentView := doccontent.NewView(s, ports.Document)
	docDetailsView := docdetails.NewView(s)

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menuView,
		chatView:       chatView,
		documentsView:  documentsView,
		docContentView: docContentView,
		docDetailsView: docDetailsView,
		currentView:    messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its service-backed views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView = a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docent - Document Q&A"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.docContentView.SetDimensions(msg.Width, msg.Height)
		a.docDetailsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			a.err = a.chatView.Err()
			return a, cmd

		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd

		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
			return a, cmd

		case messages.ViewDocDetails:
			a.docDetailsView, cmd = a.docDetailsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ConversationStarted:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.AnswerReceived:
		// Forward to chatView
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.StatusLoaded:
		// Both the chat and documents views track categories
		var chatCmd, docsCmd tea.Cmd
		a.chatView, chatCmd = a.chatView.Update(msg)
		a.documentsView, docsCmd = a.documentsView.Update(msg)
		return a, tea.Batch(chatCmd, docsCmd)

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChat:
			// The running conversation is kept when re-entering
			return a, a.chatView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewMenu, messages.ViewHelp,
			messages.ViewDocContent, messages.ViewDocDetails:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		// Navigate to document content
		a.selectedDocument = &msg.Document
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.SetDocument(&msg.Document)

	case messages.DocumentContentLoaded:
		a.docContentView, cmd = a.docContentView.Update(msg)
		return a, cmd

	case messages.DocumentDetailsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else if details, ok := msg.Details.(*driving.DocumentDetails); ok {
			a.docDetailsView.SetDetails(details)
			a.currentView = messages.ViewDocDetails
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewDocDetails:
			a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewDocDetails:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewDocDetails:
		return a.docDetailsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chat:
  (type)      Enter question
  enter       Submit question
  tab         Cycle category filter
  esc         Back to Menu

Answers:
  j/k, ↑/↓    Scroll transcript
  n           New question
  c           Copy answer
  o           Open cited document
  esc         Back to Menu

Documents:
  j/k, ↑/↓    Navigate documents
  enter       Document actions
  tab         Cycle category filter
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ConversationID returns the active conversation ID.
func (a *App) ConversationID() string {
	return a.chatView.ConversationID()
}

// Question returns the current question input value.
func (a *App) Question() string {
	return a.chatView.Question()
}

// Turns returns the current conversation transcript.
func (a *App) Turns() []domain.Turn {
	return a.chatView.Turns()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Also set chatView dimensions so it renders properly
	a.chatView.SetDimensions(width, height)
}
