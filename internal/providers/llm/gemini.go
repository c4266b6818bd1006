package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.0-flash-lite-001"
	defaultEmbedModel  = "text-embedding-004"
)

var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.0-flash",
	"gemini-flash-lite": "gemini-2.0-flash-lite-001",
	"gemini-pro":        "gemini-2.0-pro",
}

// GeminiProvider uses the Gemini API with an API key.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	embedModel string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := resolveModel(cfg.Model, geminiModels)
	if model == "" {
		model = defaultGeminiModel
	}
	embed := cfg.EmbeddingModel
	if embed == "" {
		embed = defaultEmbedModel
	}
	return &GeminiProvider{client: client, model: model, embedModel: embed}, nil
}

func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return "", mapGeminiError(err)
	}
	return result.Text(), nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: text}},
	}}

	res, err := p.client.Models.EmbedContent(ctx, p.embedModel, contents, nil)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, errors.New("no embedding in Gemini response")
	}
	return res.Embeddings[0].Values, nil
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
