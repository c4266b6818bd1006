package llm

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Result is either model text or a GenerationError, never both.
type Result struct {
	Text string
	Err  *GenerationError
}

func (r Result) OK() bool { return r.Err == nil }

// Call runs a single prompt and folds every failure mode into a Result.
// A nil provider yields KindUnavailable so callers can run without a model.
func Call(ctx context.Context, p Provider, prompt string) Result {
	if p == nil {
		return Result{Err: genErr(KindUnavailable, errors.New("no provider configured"))}
	}
	text, err := p.GenerateText(ctx, prompt)
	if err != nil {
		return Result{Err: genErr(KindUnavailable, err)}
	}
	if strings.TrimSpace(text) == "" {
		return Result{Err: genErr(KindEmpty, nil)}
	}
	return Result{Text: text}
}

var fenceLine = regexp.MustCompile("(?m)^\\s*```[A-Za-z]*\\s*$")

// StripCodeFence removes markdown code fences and any prose around the
// outermost JSON object.
func StripCodeFence(s string) string {
	s = fenceLine.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// Decode strips fences from a successful Result, validates it against
// schema and unmarshals it into T.
func Decode[T any](r Result, schema *Schema) (T, *GenerationError) {
	var out T
	if r.Err != nil {
		return out, r.Err
	}

	raw := json.RawMessage(StripCodeFence(r.Text))
	if len(raw) == 0 {
		return out, genErr(KindEmpty, nil)
	}
	if err := validateResponse(schema, raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, genErr(KindMalformed, err)
	}
	return out, nil
}
