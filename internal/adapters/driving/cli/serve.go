package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/adapters/driving/web"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// WebConfig holds configuration for the serve command.
type WebConfig struct {
	ChatService     driving.ChatService
	IndexService    driving.IndexService
	DocumentService driving.DocumentService

	// Listen is the configured listen address, host:port.
	Listen string

	// RefreshPolicy is the configured automatic rebuild policy.
	RefreshPolicy domain.RefreshPolicy

	// NewRefresher builds a refresher for the given policy. The serve
	// command constructs its own so --watch can override the policy.
	NewRefresher func(policy domain.RefreshPolicy) driving.Refresher
}

// webConfig holds the current web configuration.
var webConfig *WebConfig

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface",
	Long: `Starts the local web interface: a browser chat over the document
library with the same cited answers as the CLI and chat UI.

The server binds to localhost by default. Use --watch to rebuild the
index automatically when library files change while serving.`,
	RunE: runServe,
}

// SetWebConfig sets the configuration for the serve command.
func SetWebConfig(config *WebConfig) {
	webConfig = config
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when library files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if webConfig == nil {
		return errors.New("web interface not configured")
	}

	// Start the refresher if enabled; --watch opts in for this run
	policy := webConfig.RefreshPolicy
	if serveWatch {
		policy.Enabled = true
		policy.WatchLibrary = true
	}

	if policy.Enabled && webConfig.NewRefresher != nil {
		refresher := webConfig.NewRefresher(policy)

		refreshCtx, refreshCancel := context.WithCancel(context.Background())
		defer refreshCancel()

		go func() {
			if err := refresher.Start(refreshCtx); err != nil {
				// Log but don't fail - refresher errors shouldn't take the server down
				fmt.Fprintf(os.Stderr, "refresher stopped: %v\n", err)
			}
		}()

		defer func() {
			if err := refresher.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "refresher stop error: %v\n", err)
			}
		}()
	}

	ports := &web.Ports{
		Chat:     webConfig.ChatService,
		Index:    webConfig.IndexService,
		Document: webConfig.DocumentService,
	}

	server, err := web.NewServer(ports)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	addr := serveListen
	if addr == "" {
		addr = webConfig.Listen
	}
	if addr == "" {
		addr = "127.0.0.1:8173"
	}

	cmd.Printf("Web interface listening on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
