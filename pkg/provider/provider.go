package provider

import "context"

// Provider is a remote text-generation backend.
type Provider interface {
	// Generate sends the request to the backend and returns the extracted
	// text. An empty result with a nil error never happens: unusable output
	// is reported as a *ProviderError.
	Generate(ctx context.Context, req Request) (string, error)

	// Name returns the provider's identifier.
	Name() string

	// Model returns the backend-specific model identifier.
	Model() string

	// Priority orders providers within the chain; lower is tried first.
	Priority() int
}

// Request carries per-call generation parameters.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}
