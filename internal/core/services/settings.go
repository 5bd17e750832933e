package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLibraryRoot     = "library.root"
	keyLibraryExclude  = "library.exclude"
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMTemperature  = "llm.temperature"
	keyChunkSize       = "chunking.size"
	keyChunkOverlap    = "chunking.overlap"
	keyTopK            = "retrieval.top_k"
	keyFetchK          = "retrieval.fetch_k"
	keyMMRLambda       = "retrieval.mmr_lambda"
	keyContextBudget   = "retrieval.context_budget"
	keyHistoryWindow   = "retrieval.history_window"
	keyRefreshEnabled  = "refresh.enabled"
	keyRefreshInterval = "refresh.interval"
	keyRefreshWatch    = "refresh.watch_library"
	keyWebListen       = "web.listen"
)

// localBaseURL is the default endpoint for local providers.
const localBaseURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Library: domain.LibrarySettings{
			Root:    s.getString(keyLibraryRoot, defaults.Library.Root),
			Exclude: s.getStringSlice(keyLibraryExclude, defaults.Library.Exclude),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:          s.getInt(keyTopK, defaults.Retrieval.TopK),
			FetchK:        s.getInt(keyFetchK, defaults.Retrieval.FetchK),
			MMRLambda:     s.getFloat(keyMMRLambda, defaults.Retrieval.MMRLambda),
			ContextBudget: s.getInt(keyContextBudget, defaults.Retrieval.ContextBudget),
			HistoryWindow: s.getInt(keyHistoryWindow, defaults.Retrieval.HistoryWindow),
		},
		Refresh: domain.RefreshPolicy{
			Enabled:      s.getBool(keyRefreshEnabled, defaults.Refresh.Enabled),
			Interval:     s.getDuration(keyRefreshInterval, defaults.Refresh.Interval),
			WatchLibrary: s.getBool(keyRefreshWatch, defaults.Refresh.WatchLibrary),
		},
		Web: domain.WebSettings{
			Listen: s.getString(keyWebListen, defaults.Web.Listen),
		},
	}

	return settings, nil
}

// Save persists application settings.
//
//nolint:gocyclo // Flat sequence of per-key writes.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save library settings
	if err := s.configStore.Set(keyLibraryRoot, settings.Library.Root); err != nil {
		return fmt.Errorf("save library root: %w", err)
	}
	if err := s.configStore.Set(keyLibraryExclude, settings.Library.Exclude); err != nil {
		return fmt.Errorf("save library exclude: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}

	// Save chunking settings
	if err := s.configStore.Set(keyChunkSize, settings.Chunking.Size); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.Overlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}

	// Save retrieval settings
	if err := s.configStore.Set(keyTopK, settings.Retrieval.TopK); err != nil {
		return fmt.Errorf("save top_k: %w", err)
	}
	if err := s.configStore.Set(keyFetchK, settings.Retrieval.FetchK); err != nil {
		return fmt.Errorf("save fetch_k: %w", err)
	}
	if err := s.configStore.Set(keyMMRLambda, settings.Retrieval.MMRLambda); err != nil {
		return fmt.Errorf("save mmr_lambda: %w", err)
	}
	if err := s.configStore.Set(keyContextBudget, settings.Retrieval.ContextBudget); err != nil {
		return fmt.Errorf("save context_budget: %w", err)
	}
	if err := s.configStore.Set(keyHistoryWindow, settings.Retrieval.HistoryWindow); err != nil {
		return fmt.Errorf("save history_window: %w", err)
	}

	// Save refresh settings
	if err := s.configStore.Set(keyRefreshEnabled, settings.Refresh.Enabled); err != nil {
		return fmt.Errorf("save refresh enabled: %w", err)
	}
	if err := s.configStore.Set(keyRefreshInterval, settings.Refresh.Interval.String()); err != nil {
		return fmt.Errorf("save refresh interval: %w", err)
	}
	if err := s.configStore.Set(keyRefreshWatch, settings.Refresh.WatchLibrary); err != nil {
		return fmt.Errorf("save refresh watch_library: %w", err)
	}

	// Save web settings
	if err := s.configStore.Set(keyWebListen, settings.Web.Listen); err != nil {
		return fmt.Errorf("save web listen: %w", err)
	}

	return nil
}

// SetLibraryRoot updates the document library root directory.
// The directory does not have to exist yet; it is checked when the
// library is read.
func (s *SettingsService) SetLibraryRoot(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return fmt.Errorf("%w: library root must not be empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Library.Root = root

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	validProviders := domain.AllEmbeddingProviders()
	valid := false
	for _, p := range validProviders {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = localBaseURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = localBaseURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are complete enough to run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if strings.TrimSpace(settings.Library.Root) == "" {
		return fmt.Errorf("library root is not set")
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider is not configured")
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider is not configured")
	}

	if settings.Chunking.Size <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	if settings.Chunking.Overlap < 0 || settings.Chunking.Overlap >= settings.Chunking.Size {
		return fmt.Errorf("chunk overlap must be smaller than the chunk size")
	}

	if settings.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval top_k must be positive")
	}
	if settings.Retrieval.FetchK < settings.Retrieval.TopK {
		return fmt.Errorf("retrieval fetch_k must be at least top_k")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetPipelineConfig returns the post-processor pipeline configuration
// with the chunking settings applied. Returns the default pipeline if
// nothing is configured.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()

	if processors := s.configStore.GetStringSlice("pipeline.processors"); len(processors) > 0 {
		cfg.Processors = processors
	}

	chunker := cfg.GetProcessorConfig("chunker")
	if chunker == nil {
		chunker = make(map[string]any)
	}
	chunker["chunk_size"] = s.getInt(keyChunkSize, domain.DefaultChunkSize)
	chunker["overlap"] = s.getInt(keyChunkOverlap, domain.DefaultChunkOverlap)
	if cfg.ProcessorConfigs == nil {
		cfg.ProcessorConfigs = make(map[string]map[string]any)
	}
	cfg.ProcessorConfigs["chunker"] = chunker

	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
