// Package llm wraps the hosted chat models behind a single Completer.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("API key not configured")
	ErrEmptyResponse = errors.New("empty response from model")
)

// Request is one chat completion. Zero sampling values are left to the
// provider defaults.
type Request struct {
	System           string
	User             string
	Model            string
	Temperature      float32
	TopP             float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32
	// JSON asks the provider for a JSON object response.
	JSON bool
}

type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// StatusError is returned when the provider answered with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}
