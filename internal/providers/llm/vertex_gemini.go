package llm

import (
	"context"
	"errors"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

// VertexGemini talks to Gemini through Vertex AI using application default
// credentials.
type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
	name   string
}

func NewVertexGemini(ctx context.Context, cfg VertexConfig) (*VertexGemini, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("vertex project id is required")
	}
	c, err := vertexgenai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, err
	}

	name := resolveModel(cfg.Model, geminiModels)
	if name == "" {
		name = defaultGeminiModel
	}
	m := c.GenerativeModel(name)
	return &VertexGemini{client: c, model: m, name: name}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) ModelID() string { return v.name }

// GenerateText drains the streaming API so long answers are not cut by a
// single response size limit.
func (v *VertexGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	var b strings.Builder

	it := v.model.GenerateContentStream(ctx, vertexgenai.Text(prompt))
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			return b.String(), nil
		}
		if err != nil {
			return "", &ErrProviderUnavailable{Err: err}
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}
}
