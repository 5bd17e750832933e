package domain

const unknownDescription = "Unknown"

// Pipeline and retrieval defaults. These apply wherever the
// corresponding setting is zero.
const (
	// DefaultChunkSize is the chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the overlap between adjacent chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the number of chunks handed to the LLM.
	DefaultTopK = 5

	// DefaultFetchK is the number of candidates fetched before
	// diversity selection.
	DefaultFetchK = 10

	// DefaultMMRLambda balances relevance against diversity when
	// selecting among fetched candidates. 1 is pure relevance.
	DefaultMMRLambda = 0.5

	// DefaultContextBudget is the character budget for retrieved
	// context rendered into the prompt.
	DefaultContextBudget = 8000

	// DefaultHistoryWindow is the number of conversation turns kept
	// when rendering history into the prompt.
	DefaultHistoryWindow = 10

	// DefaultTemperature is the LLM sampling temperature.
	DefaultTemperature = 0.2
)

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// KeyEnvVar returns the environment variable consulted for the
// provider's API key, or "" for local providers.
func (p AIProvider) KeyEnvVar() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// LibrarySettings holds document library configuration.
type LibrarySettings struct {
	// Root is the library root directory containing one
	// subdirectory per category.
	Root string

	// Exclude holds glob patterns matched against paths relative to
	// the root. Matching files are skipped during discovery.
	Exclude []string
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key. The provider's environment variable
	// takes precedence over this value.
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.IsValid()
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key. The provider's environment variable
	// takes precedence over this value.
	APIKey string

	// Temperature is the sampling temperature. Zero uses the default.
	Temperature float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid()
}

// ChunkingSettings holds document splitting configuration.
type ChunkingSettings struct {
	// Size is the chunk length in characters.
	Size int

	// Overlap is the overlap between adjacent chunks in characters.
	Overlap int
}

// RetrievalSettings holds retrieval behaviour configuration.
type RetrievalSettings struct {
	// TopK is the number of chunks handed to the LLM.
	TopK int

	// FetchK is the number of candidates fetched before diversity
	// selection. Must be >= TopK.
	FetchK int

	// MMRLambda balances relevance against diversity in [0, 1].
	MMRLambda float64

	// ContextBudget is the character budget for retrieved context.
	ContextBudget int

	// HistoryWindow is the number of conversation turns rendered
	// into the prompt.
	HistoryWindow int
}

// WebSettings holds the web interface configuration.
type WebSettings struct {
	// Listen is the address the web UI binds, host:port.
	Listen string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Library holds document library settings.
	Library LibrarySettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Chunking holds document splitting settings.
	Chunking ChunkingSettings

	// Retrieval holds retrieval behaviour settings.
	Retrieval RetrievalSettings

	// Refresh holds the automatic rebuild policy.
	Refresh RefreshPolicy

	// Web holds web interface settings.
	Web WebSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The AI providers default to OpenAI; keys come from the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Library: LibrarySettings{
			Root: "documents",
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    DefaultEmbeddingModels()[AIProviderOpenAI],
		},
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       DefaultLLMModels()[AIProviderOpenAI],
			Temperature: DefaultTemperature,
		},
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			TopK:          DefaultTopK,
			FetchK:        DefaultFetchK,
			MMRLambda:     DefaultMMRLambda,
			ContextBudget: DefaultContextBudget,
			HistoryWindow: DefaultHistoryWindow,
		},
		Refresh: DefaultRefreshPolicy(),
		Web: WebSettings{
			Listen: "127.0.0.1:8173",
		},
	}
}

// AllAIProviders returns every supported provider.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "text-embedding-004",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
		AIProviderGemini:    "gemini-2.5-flash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"text-embedding-004": 768,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// The cleaner runs before the chunker so chunk boundaries are computed
// on normalised text.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"cleaner", "chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": DefaultChunkSize,
				"overlap":    DefaultChunkOverlap,
			},
		},
	}
}
