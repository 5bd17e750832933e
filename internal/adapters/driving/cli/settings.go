package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docent/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the document library, AI providers, and other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsLibraryCmd = &cobra.Command{
	Use:   "library [path]",
	Short: "Set the document library root",
	Long: `Set the root directory of the document library.

Each top-level subdirectory becomes a category; files directly under
the root fall into the "general" category. Changes take effect on the
next reindex.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLibrary,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used to index and retrieve documents.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider that generates answers from retrieved passages.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsLibraryCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Library settings
	cmd.Println("[Library]")
	cmd.Printf("  Root: %s\n", settings.Library.Root)
	if len(settings.Library.Exclude) > 0 {
		cmd.Printf("  Exclude: %s\n", strings.Join(settings.Library.Exclude, ", "))
	}
	cmd.Println()

	// Embedding settings
	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		printAPIKey(cmd, settings.Embedding.Provider, settings.Embedding.APIKey)
	}
	status := "configured"
	if !settings.Embedding.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		printAPIKey(cmd, settings.LLM.Provider, settings.LLM.APIKey)
	}
	cmd.Printf("  Temperature: %.1f\n", settings.LLM.Temperature)
	status = "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Chunking settings
	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d characters\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d characters\n", settings.Chunking.Overlap)
	cmd.Println()

	// Retrieval settings
	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Fetch K: %d\n", settings.Retrieval.FetchK)
	cmd.Printf("  MMR lambda: %.2f\n", settings.Retrieval.MMRLambda)
	cmd.Printf("  Context budget: %d characters\n", settings.Retrieval.ContextBudget)
	cmd.Printf("  History window: %d turns\n", settings.Retrieval.HistoryWindow)
	cmd.Println()

	// Refresh settings
	cmd.Println("[Refresh]")
	if settings.Refresh.Enabled {
		cmd.Printf("  Enabled: yes\n")
		if settings.Refresh.Interval > 0 {
			cmd.Printf("  Interval: %s\n", settings.Refresh.Interval)
		}
		watch := "no"
		if settings.Refresh.WatchLibrary {
			watch = "yes"
		}
		cmd.Printf("  Watch library: %s\n", watch)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	// Web settings
	cmd.Println("[Web]")
	cmd.Printf("  Listen: %s\n", settings.Web.Listen)
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docent settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Docent Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: Library Root
	cmd.Println("Step 1: Set Library Root")
	cmd.Println("------------------------")
	cmd.Println("The library root holds your documents, one subdirectory per category.")

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Printf("\nEnter library root [%s]: ", settings.Library.Root)
	root := readLine(reader)
	if root == "" {
		root = settings.Library.Root
	}

	if err := settingsService.SetLibraryRoot(root); err != nil {
		return fmt.Errorf("failed to set library root: %w", err)
	}
	cmd.Printf("Library root set to: %s\n\n", root)

	// Step 2: Configure Embedding Provider
	cmd.Println("Step 2: Configure Embedding Provider")
	cmd.Println("------------------------------------")
	cmd.Println("Embeddings power retrieval. Changing the provider or model takes")
	cmd.Println("effect on the next reindex.")
	cmd.Println()

	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}

	// Step 3: Configure LLM Provider
	cmd.Println("Step 3: Configure LLM Provider")
	cmd.Println("------------------------------")
	cmd.Println("The LLM generates answers from the retrieved passages.")
	cmd.Println()

	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
		cmd.Println("Run 'docent reindex' to build the index.")
	}

	return nil
}

func runSettingsLibrary(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	root := args[0]
	if err := settingsService.SetLibraryRoot(root); err != nil {
		return fmt.Errorf("failed to set library root: %w", err)
	}

	cmd.Printf("Library root set to: %s\n", root)
	cmd.Println("Run 'docent reindex' to index the new library.")
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureEmbeddingProvider(cmd, reader)
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLLMProvider(cmd, reader)
}

//nolint:dupl // Similar to configureLLMProvider but for embeddings - intentional for CLI flow clarity
func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultEmbeddingModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed and not already in the environment
	apiKey := ""
	if selectedProvider.RequiresAPIKey() {
		if envKey := os.Getenv(selectedProvider.KeyEnvVar()); envKey != "" {
			cmd.Printf("Using API key from %s.\n", selectedProvider.KeyEnvVar())
		} else {
			cmd.Print("Enter API key: ")
			apiKey = readPassword()
			cmd.Println()
			if apiKey == "" {
				return errors.New("API key is required for this provider")
			}
		}
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

//nolint:dupl // Similar to configureEmbeddingProvider but for LLM - intentional for CLI flow clarity
func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed and not already in the environment
	apiKey := ""
	if selectedProvider.RequiresAPIKey() {
		if envKey := os.Getenv(selectedProvider.KeyEnvVar()); envKey != "" {
			cmd.Printf("Using API key from %s.\n", selectedProvider.KeyEnvVar())
		} else {
			cmd.Print("Enter API key: ")
			apiKey = readPassword()
			cmd.Println()
			if apiKey == "" {
				return errors.New("API key is required for this provider")
			}
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

// printAPIKey shows where the key comes from; environment wins.
func printAPIKey(cmd *cobra.Command, provider domain.AIProvider, key string) {
	if envKey := os.Getenv(provider.KeyEnvVar()); envKey != "" {
		cmd.Printf("  API Key: %s (from %s)\n", maskAPIKey(envKey), provider.KeyEnvVar())
		return
	}
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
		return
	}
	cmd.Printf("  API Key: (not set)\n")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
