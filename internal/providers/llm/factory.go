package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Client bundles the decorated text provider with the optional embedder and
// the hook that releases SDK clients.
type Client struct {
	Provider Provider
	Embedder Embedder
	close    func() error
}

func (c *Client) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// New builds the configured provider. A provider without credentials is not
// an error: the returned Client has a nil Provider and every caller takes its
// fallback path.
func New(ctx context.Context, cfg Config, log *logrus.Logger) (*Client, error) {
	var (
		base  Provider
		out   = &Client{}
		name  = strings.ToLower(strings.TrimSpace(cfg.Provider))
		unset = func(key string) (*Client, error) {
			if log != nil {
				log.WithField("provider", name).Warnf("%s not set, using fallback questions and heuristic scoring", key)
			}
			return out, nil
		}
	)

	switch name {
	case "", "none":
		return out, nil
	case "mock":
		base = NewMockProvider()
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return unset("GEMINI_API_KEY")
		}
		p, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		base, out.Embedder = p, p
	case "vertex":
		if cfg.Vertex.ProjectID == "" {
			return unset("VERTEX_PROJECT")
		}
		p, err := NewVertexGemini(ctx, cfg.Vertex)
		if err != nil {
			return nil, err
		}
		base, out.close = p, p.Close
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return unset("OPENAI_API_KEY")
		}
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		base = p
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return unset("ANTHROPIC_API_KEY")
		}
		p, err := NewAnthropicProvider(cfg.Anthropic)
		if err != nil {
			return nil, err
		}
		base = p
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	out.Provider = WithTimeout(WithRetry(WithLogging(base, log), cfg.Retry), cfg.Timeout)
	return out, nil
}
