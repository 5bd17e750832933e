package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/adapters/driving/tui"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// TUIConfig holds configuration for the chat command.
type TUIConfig struct {
	ChatService     driving.ChatService
	DocumentService driving.DocumentService
	IndexService    driving.IndexService
	ActionService   driving.AnswerActionService
	Refresher       driving.Refresher
	RefreshPolicy   domain.RefreshPolicy
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat UI",
	Long: `Launch the interactive terminal user interface for Docent.

The chat UI runs multi-turn conversations over your document library,
with cited sources you can open or copy, a document browser, and
index controls.

Controls:
  Tab       - Cycle focus
  Enter     - Ask / Select
  Esc       - Back / Cancel
  ?         - Toggle help
  Ctrl+C    - Quit`,
	RunE: runChat,
}

// SetTUIConfig sets the configuration for the chat command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Start the refresher if enabled (the chat UI is long-running, so
	// automatic rebuilds are worth having in the background)
	if tuiConfig != nil && tuiConfig.RefreshPolicy.Enabled && tuiConfig.Refresher != nil {
		refreshCtx, refreshCancel := context.WithCancel(context.Background())
		defer refreshCancel()

		go func() {
			if err := tuiConfig.Refresher.Start(refreshCtx); err != nil {
				// Log but don't fail - refresher errors shouldn't block the UI
				fmt.Fprintf(os.Stderr, "refresher stopped: %v\n", err)
			}
		}()

		defer func() {
			if err := tuiConfig.Refresher.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "refresher stop error: %v\n", err)
			}
		}()
	}

	// Build ports from configuration
	ports := &tui.Ports{}

	if tuiConfig != nil {
		ports.Chat = tuiConfig.ChatService
		ports.Document = tuiConfig.DocumentService
		ports.Index = tuiConfig.IndexService
		ports.Action = tuiConfig.ActionService
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	// Set up context from command
	app.WithContext(cmd.Context())

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}
