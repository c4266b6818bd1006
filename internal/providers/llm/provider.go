package llm

import "context"

// Provider turns a prompt into raw model text. Implementations must be safe
// for concurrent use.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	ModelID() string
}

// Embedder produces a vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
