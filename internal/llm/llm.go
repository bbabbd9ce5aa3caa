package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey means the Gemini credential is missing. Callers treat this as
// fatal configuration and abort before running any external tool.
var ErrNoAPIKey = errors.New("llm: GEMINI_API_KEY is not set")

// ErrEmptyResponse means the model returned no usable candidates.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client is the model capability both pipelines depend on. Prompt content
// is opaque at this boundary: callers pass ordered text parts and get the
// generated text back.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, parts []string) (string, error)
	Close() error
}
