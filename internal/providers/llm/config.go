package llm

import "time"

type Config struct {
	// Provider: "gemini", "vertex", "openai", "anthropic", "mock" or "none".
	Provider string

	Gemini    GeminiConfig
	Vertex    VertexConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Retry     RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

type VertexConfig struct {
	ProjectID string
	Location  string
	Model     string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model:          defaultGeminiModel,
			EmbeddingModel: defaultEmbedModel,
		},
		Vertex: VertexConfig{
			Location: "us-central1",
			Model:    defaultGeminiModel,
		},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}
