// Command docent is a retrieval-augmented chatbot over a local folder
// of documents. It indexes PDF, Markdown, and plain-text files and
// answers questions with cited sources via the CLI, a chat TUI, a web
// UI, and an MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docent/internal/adapters/driven/ai"
	"github.com/custodia-labs/docent/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docent/internal/adapters/driven/library/filesystem"
	"github.com/custodia-labs/docent/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docent/internal/adapters/driven/vector/chromem"
	"github.com/custodia-labs/docent/internal/adapters/driving/cli"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/core/services"
	"github.com/custodia-labs/docent/internal/extractors"
	"github.com/custodia-labs/docent/internal/postprocessors"
)

// version is set at build time: -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	cleanup, err := wire()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli.SetVersion(version)

	// Command errors are printed by cobra; cleanup must run before the
	// exit because os.Exit skips deferred calls.
	err = cli.Execute()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// wire assembles the application from the settings and injects the
// services into the command tree. The stores must open or nothing can
// run; the AI providers and the vector index are optional, so a broken
// one degrades the commands that need it instead of taking out the
// whole CLI.
func wire() (func(), error) {
	ctx := context.Background()

	dir, err := docentDir(os.Args[1:])
	if err != nil {
		return nil, err
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}
	docStore := store.DocumentStore()
	stateStore := store.IndexStateStore()

	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	result := &ai.InitResult{EmbeddingService: embedder, LLMService: llm}

	if vectorIndex, err := chromem.New(chromem.Config{
		Path: filepath.Join(dir, "data", "vectors"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: opening vector index: %v\n", err)
	} else {
		result.VectorIndex = vectorIndex
	}

	if promptStore, err := file.NewPromptStore(filepath.Join(dir, "prompts")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: opening prompt store: %v\n", err)
	} else {
		result.PromptStore = promptStore
	}

	registry := extractors.NewDefaultRegistry()

	library, err := filesystem.New(filesystem.Config{
		Root:       settings.Library.Root,
		Extensions: registry.SupportedExtensions(),
		Exclude:    settings.Library.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("opening document library: %w", err)
	}

	pipeline, err := buildPipeline(settingsService.GetPipelineConfig())
	if err != nil {
		return nil, err
	}

	indexer := services.NewIndexerService(
		library, registry, pipeline,
		result.EmbeddingService, result.VectorIndex,
		docStore, stateStore,
	)

	searcher := services.NewSearchService(docStore, result.VectorIndex, result.EmbeddingService)
	searcher.SetMMRLambda(settings.Retrieval.MMRLambda)
	searcher.SetDefaultTopK(settings.Retrieval.TopK)
	searcher.SetDefaultFetchK(settings.Retrieval.FetchK)

	answerer := services.NewAnswerService(searcher, result.LLMService)
	answerer.SetPromptStore(result.PromptStore)
	answerer.SetContextBudget(settings.Retrieval.ContextBudget)
	answerer.SetTemperature(settings.LLM.Temperature)

	chatter := services.NewChatService(answerer)
	chatter.SetHistoryWindow(settings.Retrieval.HistoryWindow)

	documents := services.NewDocumentService(docStore)
	actions := services.NewAnswerActionService(docStore)

	// The serve command builds its own refresher so --watch can widen
	// the policy for that run.
	newRefresher := func(policy domain.RefreshPolicy) driving.Refresher {
		return services.NewRefresher(policy, indexer, library, stateStore)
	}

	cli.SetServices(&cli.Services{
		Answer:   answerer,
		Search:   searcher,
		Index:    indexer,
		Document: documents,
		Settings: settingsService,
	})

	cli.SetTUIConfig(&cli.TUIConfig{
		ChatService:     chatter,
		DocumentService: documents,
		IndexService:    indexer,
		ActionService:   actions,
		Refresher:       newRefresher(settings.Refresh),
		RefreshPolicy:   settings.Refresh,
	})

	cli.SetWebConfig(&cli.WebConfig{
		ChatService:     chatter,
		IndexService:    indexer,
		DocumentService: documents,
		Listen:          settings.Web.Listen,
		RefreshPolicy:   settings.Refresh,
		NewRefresher:    newRefresher,
	})

	cleanup := func() {
		result.Close()
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing metadata store: %v\n", err)
		}
	}
	return cleanup, nil
}

// buildPipeline constructs the post-processor pipeline named by the
// configuration.
func buildPipeline(cfg domain.PipelineConfig) (*postprocessors.Pipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	pipeline := postprocessors.NewPipeline()
	for _, name := range cfg.Processors {
		processor, err := registry.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("building %s post-processor: %w", name, err)
		}
		pipeline.Add(processor)
	}
	return pipeline, nil
}

// docentDir returns the directory holding the config file, the prompt
// templates, and the index data. The --config flag wins over the
// default ~/.docent. It is read straight from the arguments because
// the stores must be open before cobra parses anything.
func docentDir(args []string) (string, error) {
	for i, arg := range args {
		switch {
		case arg == "--config":
			if i+1 < len(args) {
				return args[i+1], nil
			}
		case strings.HasPrefix(arg, "--config="):
			if dir := strings.TrimPrefix(arg, "--config="); dir != "" {
				return dir, nil
			}
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".docent"), nil
}
