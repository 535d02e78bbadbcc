package provider

import (
	"context"
	"fmt"
)

// MockProvider returns deterministic responses for local runs and tests.
type MockProvider struct {
	responses       map[string]string
	defaultResponse string
	priority        int

	// Calls counts Generate invocations.
	Calls int
	// Err, when set, is returned from every Generate call.
	Err error
}

// NewMockProvider creates a mock provider with a default response.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		responses:       make(map[string]string),
		defaultResponse: "mock response:",
	}
}

// NewMockProviderWithResponses creates a mock provider with predefined
// responses keyed by prompt.
func NewMockProviderWithResponses(responses map[string]string, defaultResponse string) *MockProvider {
	if defaultResponse == "" {
		defaultResponse = "mock response:"
	}
	return &MockProvider{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the provider identifier.
func (p *MockProvider) Name() string {
	return "mock"
}

// Model returns the mock model identifier.
func (p *MockProvider) Model() string {
	return "mock-1"
}

// Priority returns the chain priority.
func (p *MockProvider) Priority() int {
	return p.priority
}

// Generate returns a deterministic response for the prompt.
func (p *MockProvider) Generate(_ context.Context, req Request) (string, error) {
	p.Calls++
	if p.Err != nil {
		return "", p.Err
	}
	if response, ok := p.responses[req.Prompt]; ok {
		return response, nil
	}
	return fmt.Sprintf("%s\n%s", p.defaultResponse, req.Prompt), nil
}
