package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingProvider writes one structured log line per model call.
type LoggingProvider struct {
	inner Provider
	log   *logrus.Logger
}

func WithLogging(p Provider, l *logrus.Logger) Provider {
	if l == nil {
		return p
	}
	return &LoggingProvider{inner: p, log: l}
}

func (l *LoggingProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := l.inner.GenerateText(ctx, prompt)

	entry := l.log.WithFields(logrus.Fields{
		"model":        l.inner.ModelID(),
		"purpose":      PurposeFrom(ctx),
		"latency_ms":   time.Since(start).Milliseconds(),
		"prompt_chars": len(prompt),
		"output_chars": len(text),
	})
	if err != nil {
		entry.WithError(err).Warn("llm call failed")
	} else {
		entry.Debug("llm call")
	}
	return text, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
