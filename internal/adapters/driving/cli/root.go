// Package cli implements the Docent command line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// version is the build version, overridden via SetVersion.
var version = "dev"

// Application services injected by the composition root. Commands
// nil-check the ones they use so partial wiring fails with a clear
// message instead of a panic.
var (
	answerService   driving.AnswerService
	searchService   driving.SearchService
	indexService    driving.IndexService
	documentService driving.DocumentService
	settingsService driving.SettingsService
)

// verbose enables debug logging on stderr.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docent",
	Short: "Ask questions against a local document library",
	Long: `Docent is a local retrieval-augmented chatbot for your documents.

Point it at a folder of PDFs, Markdown, and text files, build the index
once with 'docent reindex', and ask questions in plain language. Answers
cite the documents and pages they came from. Files never leave your
machine except as embedding and completion requests to the configured
AI provider.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the commands need.
type Services struct {
	Answer   driving.AnswerService
	Search   driving.SearchService
	Index    driving.IndexService
	Document driving.DocumentService
	Settings driving.SettingsService
}

// SetServices injects the application services into the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	answerService = s.Answer
	searchService = s.Search
	indexService = s.Index
	documentService = s.Document
	settingsService = s.Settings
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	// Load .env before anything reads provider API keys.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// The config directory is consumed by main before Execute runs,
	// since services are wired from the config. Registered here so the
	// flag parses and shows up in help.
	rootCmd.PersistentFlags().String("config", "", "config directory (default ~/.docent)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
