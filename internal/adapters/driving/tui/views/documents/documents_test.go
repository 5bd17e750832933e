package documents

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	ListFunc       func(ctx context.Context, category string) ([]domain.Document, error)
	GetFunc        func(ctx context.Context, documentID string) (*domain.Document, error)
	GetContentFunc func(ctx context.Context, documentID string) (string, error)
	GetDetailsFunc func(ctx context.Context, documentID string) (*driving.DocumentDetails, error)
	OpenFunc       func(ctx context.Context, documentID string) error
}

func (m *MockDocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return []domain.Document{}, nil
}

func (m *MockDocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *MockDocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, documentID)
	}
	return "", nil
}

func (m *MockDocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	if m.GetDetailsFunc != nil {
		return m.GetDetailsFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *MockDocumentService) Open(ctx context.Context, documentID string) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, documentID)
	}
	return nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	ReindexFunc func(ctx context.Context) (*domain.IndexReport, error)
	StatusFunc  func(ctx context.Context) (*domain.IndexStatus, error)
	RunningFunc func() bool
}

func (m *MockIndexService) Reindex(ctx context.Context) (*domain.IndexReport, error) {
	if m.ReindexFunc != nil {
		return m.ReindexFunc(ctx)
	}
	return nil, nil
}

func (m *MockIndexService) Status(ctx context.Context) (*domain.IndexStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return &domain.IndexStatus{}, nil
}

func (m *MockIndexService) Running() bool {
	if m.RunningFunc != nil {
		return m.RunningFunc()
	}
	return false
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mock := &MockDocumentService{}

	view := NewView(s, mock, nil)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.documents)
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.styles)
	assert.Nil(t, view.documentService)
}

func TestView_Init(t *testing.T) {
	mock := &MockDocumentService{
		ListFunc: func(ctx context.Context, category string) ([]domain.Document, error) {
			assert.Equal(t, "", category)
			return []domain.Document{{ID: "doc-1", Title: "Doc 1"}}, nil
		},
	}
	view := NewView(nil, mock, nil)

	cmd := view.Init()

	require.NotNil(t, cmd)
	assert.True(t, view.loading)
}

func TestView_LoadDocuments(t *testing.T) {
	mock := &MockDocumentService{
		ListFunc: func(ctx context.Context, category string) ([]domain.Document, error) {
			return []domain.Document{
				{ID: "doc-1", Title: "Doc 1"},
			}, nil
		},
	}
	view := NewView(nil, mock, nil)

	cmd := view.loadDocuments()

	require.NotNil(t, cmd)
	result := cmd()
	loaded, ok := result.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.Equal(t, "", loaded.Category)
	assert.Len(t, loaded.Documents, 1)
}

func TestView_LoadDocuments_CapturesCategory(t *testing.T) {
	var gotCategory string
	mock := &MockDocumentService{
		ListFunc: func(ctx context.Context, category string) ([]domain.Document, error) {
			gotCategory = category
			return nil, nil
		},
	}
	view := NewView(nil, mock, nil)
	view.categories = []string{"manuals", "papers"}
	view.categoryIdx = 2 // papers

	cmd := view.loadDocuments()
	result := cmd()

	loaded, ok := result.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.Equal(t, "papers", gotCategory)
	assert.Equal(t, "papers", loaded.Category)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestView_Update_DocumentsLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.loading = true
	view.selected = 3

	docs := []domain.Document{
		{ID: "doc-1", Title: "Doc 1"},
		{ID: "doc-2", Title: "Doc 2"},
	}
	msg := messages.DocumentsLoaded{Category: "", Documents: docs, Err: nil}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Len(t, view.documents, 2)
	assert.Equal(t, 0, view.selected)
	assert.False(t, view.loading)
}

func TestView_Update_DocumentsLoaded_Error(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.loading = true

	msg := messages.DocumentsLoaded{Documents: nil, Err: errors.New("failed")}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Error(t, view.err)
	assert.False(t, view.loading)
}

func TestView_Update_StatusLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)

	st := &domain.IndexStatus{
		Categories: map[string]int{"papers": 2, "manuals": 5},
	}
	view.Update(messages.StatusLoaded{Status: st})

	assert.Equal(t, []string{"manuals", "papers"}, view.Categories())
}

func TestView_Update_StatusLoaded_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.StatusLoaded{Err: domain.ErrIndexEmpty})

	assert.Empty(t, view.Categories())
}

func TestView_Update_KeyMsg_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.documents = []domain.Document{
		{ID: "doc-1", Title: "Doc 1"},
		{ID: "doc-2", Title: "Doc 2"},
		{ID: "doc-3", Title: "Doc 3"},
	}

	// Test down navigation
	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)
	assert.Equal(t, 1, view.selected)

	// Test j navigation
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(msg)
	assert.Equal(t, 2, view.selected)

	// Test boundary (should not go past last)
	msg = tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)
	assert.Equal(t, 2, view.selected)

	// Test up navigation
	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 1, view.selected)

	// Test k navigation
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(msg)
	assert.Equal(t, 0, view.selected)

	// Test boundary (should not go below 0)
	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 0, view.selected)
}

func TestView_Update_KeyMsg_OpenMenu(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{
		{ID: "doc-1", Title: "Doc 1"},
	}

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	view.Update(msg)

	assert.True(t, view.showingMenu)
	assert.Equal(t, ActionShowContent, view.menuSelected)
}

func TestView_Update_KeyMsg_OpenMenu_NoDocuments(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	view.Update(msg)

	assert.False(t, view.showingMenu)
}

func TestView_Update_KeyMsg_Tab_CyclesCategoryAndReloads(t *testing.T) {
	listCategories := []string{}
	mock := &MockDocumentService{
		ListFunc: func(ctx context.Context, category string) ([]domain.Document, error) {
			listCategories = append(listCategories, category)
			return nil, nil
		},
	}
	view := NewView(nil, mock, nil)
	view.categories = []string{"manuals", "papers"}

	msg := tea.KeyMsg{Type: tea.KeyTab}
	_, cmd := view.Update(msg)

	assert.Equal(t, "manuals", view.Category())
	assert.True(t, view.loading)
	require.NotNil(t, cmd)

	result := cmd()
	loaded, ok := result.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.Equal(t, "manuals", loaded.Category)
	assert.Equal(t, []string{"manuals"}, listCategories)
}

func TestView_Update_KeyMsg_Reload(t *testing.T) {
	listCalled := false
	mock := &MockDocumentService{
		ListFunc: func(ctx context.Context, category string) ([]domain.Document, error) {
			listCalled = true
			return nil, nil
		},
	}
	view := NewView(nil, mock, nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	_, cmd := view.Update(msg)

	assert.True(t, view.loading)
	require.NotNil(t, cmd)
	cmd()
	assert.True(t, listCalled)
}

func TestView_Update_KeyMsg_Back(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	assert.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_HandleMenuKeyMsg_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true
	view.menuSelected = ActionShowContent

	// Navigate down
	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)
	assert.Equal(t, ActionShowDetails, view.menuSelected)

	// Navigate up
	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, ActionShowContent, view.menuSelected)
}

func TestView_HandleMenuKeyMsg_Cancel(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	view.Update(msg)

	assert.False(t, view.showingMenu)
}

func TestView_HandleMenuSelect_ShowContent(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1", Title: "Test Doc"}}
	view.showingMenu = true
	view.menuSelected = ActionShowContent

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	assert.False(t, view.showingMenu)
	require.NotNil(t, cmd)

	result := cmd()
	selected, ok := result.(messages.DocumentSelected)
	assert.True(t, ok)
	assert.Equal(t, "doc-1", selected.Document.ID)
}

func TestView_HandleMenuSelect_ShowDetails(t *testing.T) {
	detailsCalled := false
	mock := &MockDocumentService{
		GetDetailsFunc: func(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
			detailsCalled = true
			assert.Equal(t, "doc-1", documentID)
			return &driving.DocumentDetails{ID: "doc-1", Title: "Test"}, nil
		},
	}
	view := NewView(nil, mock, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true
	view.menuSelected = ActionShowDetails

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	assert.False(t, view.showingMenu)
	require.NotNil(t, cmd)

	result := cmd()
	loaded, ok := result.(messages.DocumentDetailsLoaded)
	assert.True(t, ok)
	assert.True(t, detailsCalled)
	assert.Equal(t, "doc-1", loaded.DocumentID)
}

func TestView_HandleMenuSelect_OpenDocument(t *testing.T) {
	openCalled := false
	mock := &MockDocumentService{
		OpenFunc: func(ctx context.Context, documentID string) error {
			openCalled = true
			return nil
		},
	}
	view := NewView(nil, mock, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true
	view.menuSelected = ActionOpenDocument

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	cmd()
	assert.True(t, openCalled)
}

func TestView_HandleMenuSelect_OpenDocument_Error(t *testing.T) {
	mock := &MockDocumentService{
		OpenFunc: func(ctx context.Context, documentID string) error {
			return errors.New("no opener")
		},
	}
	view := NewView(nil, mock, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true
	view.menuSelected = ActionOpenDocument

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	occurred, ok := result.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.Error(t, occurred.Err)
}

func TestView_HandleMenuSelect_Cancel(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}
	view.showingMenu = true
	view.menuSelected = ActionCancel

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	view.Update(msg)

	assert.False(t, view.showingMenu)
}

func TestView_View_EmptyState(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.documents = []domain.Document{}

	output := view.View()

	assert.Contains(t, output, "No documents")
}

func TestView_View_Loading(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.loading = true

	output := view.View()

	assert.Contains(t, output, "Loading documents")
}

func TestView_View_Error(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.err = errors.New("listing failed")

	output := view.View()

	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "listing failed")
}

func TestView_View_WithDocuments(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.documents = []domain.Document{
		{ID: "doc-1", Title: "Printer Manual", RelPath: "manuals/printer.pdf"},
		{ID: "doc-2", Title: "Router Guide", RelPath: "manuals/router.pdf"},
	}

	output := view.View()

	assert.Contains(t, output, "Documents - all (2)")
	assert.Contains(t, output, "Printer Manual")
	assert.Contains(t, output, "Router Guide")
	assert.Contains(t, output, ">") // Selection indicator
}

func TestView_View_CategoryInTitle(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.categories = []string{"manuals"}
	view.categoryIdx = 1

	output := view.View()

	assert.Contains(t, output, "Documents - manuals")
}

func TestView_View_ActionMenu(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.documents = []domain.Document{{ID: "doc-1", Title: "Test Doc"}}
	view.showingMenu = true

	output := view.View()

	assert.Contains(t, output, "Actions for: Test Doc")
	assert.Contains(t, output, "Show Content")
	assert.Contains(t, output, "Show Details")
	assert.Contains(t, output, "Open Document")
	assert.Contains(t, output, "Cancel")
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
	assert.True(t, view.ready)
}

func TestView_Documents(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{{ID: "doc-1"}}

	assert.Len(t, view.Documents(), 1)
}

func TestView_SelectedIndex(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.selected = 2

	assert.Equal(t, 2, view.SelectedIndex())
}

func TestView_SelectedDocument(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.documents = []domain.Document{
		{ID: "doc-1", Title: "Doc 1"},
		{ID: "doc-2", Title: "Doc 2"},
	}
	view.selected = 1

	doc := view.SelectedDocument()

	require.NotNil(t, doc)
	assert.Equal(t, "doc-2", doc.ID)
}

func TestView_SelectedDocument_OutOfRange(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.selected = 5

	assert.Nil(t, view.SelectedDocument())
}

func TestView_IsShowingMenu(t *testing.T) {
	view := NewView(nil, nil, nil)

	assert.False(t, view.IsShowingMenu())

	view.showingMenu = true
	assert.True(t, view.IsShowingMenu())
}

func TestView_Err(t *testing.T) {
	view := NewView(nil, nil, nil)
	err := errors.New("test error")
	view.err = err

	assert.Equal(t, err, view.Err())
}

func TestMinInt(t *testing.T) {
	assert.Equal(t, 1, minInt(1, 2))
	assert.Equal(t, 1, minInt(2, 1))
	assert.Equal(t, 5, minInt(5, 5))
	assert.Equal(t, -1, minInt(-1, 0))
}
