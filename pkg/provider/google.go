package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGoogleModel    = "gemini-2.0-flash"
	defaultGooglePriority = 3
)

// GoogleProvider implements the Provider interface for Gemini models.
type GoogleProvider struct {
	client   *genai.Client
	model    string
	priority int
}

// NewGoogleProvider creates a new Google Gemini provider.
func NewGoogleProvider(apiKey string, opts ...Option) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google API key is required")
	}

	o := buildOptions(defaultGoogleModel, defaultGooglePriority, opts)

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions.BaseURL = o.baseURL
	}

	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}

	return &GoogleProvider{
		client:   client,
		model:    o.model,
		priority: o.priority,
	}, nil
}

// Name returns the provider identifier.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Model returns the configured model identifier.
func (p *GoogleProvider) Model() string {
	return p.model
}

// Priority returns the chain priority.
func (p *GoogleProvider) Priority() int {
	return p.priority
}

// Generate sends the request to Gemini and returns the first candidate's
// concatenated text parts.
func (p *GoogleProvider) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", p.wrapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}

	var content string
	if resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				content += part.Text
			}
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}
	return content, nil
}

func (p *GoogleProvider) wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.Name(), Status: apiErr.Code, Err: err}
	}
	return &ProviderError{Provider: p.Name(), Err: err}
}
