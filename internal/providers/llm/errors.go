package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or not configured.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model provider unavailable: %v", e.Err)
	}
	return "model provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrorKind classifies why a generation could not be used.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable"
	KindEmpty       ErrorKind = "empty"
	KindMalformed   ErrorKind = "malformed"
	KindInvalid     ErrorKind = "invalid"
)

// GenerationError is the failure half of a Result. Callers branch on Kind
// to pick their fallback.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("generation %s", e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func genErr(kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}
