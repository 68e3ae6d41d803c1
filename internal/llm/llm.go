package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies the provider and model for logs, e.g. "gemini/gemini-1.5-flash".
	Name() string
}

// Request is a single prompt sent to a provider.
type Request struct {
	Prompt string
	// JSON asks the provider for a JSON response body when it supports it.
	JSON bool
}

// ErrEmptyResponse is returned by providers that produced no text.
var ErrEmptyResponse = errors.New("llm response empty")
