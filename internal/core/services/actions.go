package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure AnswerActionService implements the interface.
var _ driving.AnswerActionService = (*AnswerActionService)(nil)

// AnswerActionService provides actions on answers and their citations.
type AnswerActionService struct {
	docStore driven.DocumentStore
}

// NewAnswerActionService creates a new answer action service.
func NewAnswerActionService(docStore driven.DocumentStore) *AnswerActionService {
	return &AnswerActionService{docStore: docStore}
}

// CopyAnswer copies the answer text to the system clipboard.
func (s *AnswerActionService) CopyAnswer(_ context.Context, answer *domain.Answer) error {
	if answer == nil {
		return fmt.Errorf("answer is nil")
	}
	return copyToClipboard(answer.Text)
}

// OpenSource opens the cited document in the default application.
// The path is resolved through the document store rather than the
// reference, so a citation stays openable after the library root
// moved and was re-indexed.
func (s *AnswerActionService) OpenSource(ctx context.Context, ref domain.SourceRef) error {
	doc, err := s.docStore.GetDocument(ctx, ref.DocumentID)
	if err != nil {
		return fmt.Errorf("get cited document: %w", err)
	}
	return openURL(doc.AbsPath)
}

// copyToClipboard copies text to the system clipboard using OS-specific commands.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("pbcopy")
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
		}
	case osWindows:
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
