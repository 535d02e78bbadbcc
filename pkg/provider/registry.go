package provider

import (
	"fmt"
	"sort"
)

// Credentials holds the API keys available to the registry. A provider is
// included only when its key is non-empty; everything else about the
// registry is fixed.
type Credentials struct {
	OpenAI      string
	Anthropic   string
	Google      string
	HuggingFace string
}

// BuildRegistry constructs the ordered provider chain from the available
// credentials. The result is sorted ascending by priority, stable with
// respect to construction order for equal priorities. An empty registry is
// valid and means no remote capability is available.
func BuildRegistry(creds Credentials, opts ...Option) ([]Provider, error) {
	var providers []Provider

	if creds.OpenAI != "" {
		p, err := NewOpenAIProvider(creds.OpenAI, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai provider: %w", err)
		}
		providers = append(providers, p)
	}

	if creds.Anthropic != "" {
		p, err := NewAnthropicProvider(creds.Anthropic, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic provider: %w", err)
		}
		providers = append(providers, p)
	}

	if creds.Google != "" {
		p, err := NewGoogleProvider(creds.Google, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create google provider: %w", err)
		}
		providers = append(providers, p)
	}

	if creds.HuggingFace != "" {
		p, err := NewHuggingFaceProvider(creds.HuggingFace, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create huggingface provider: %w", err)
		}
		providers = append(providers, p)
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority() < providers[j].Priority()
	})

	return providers, nil
}
