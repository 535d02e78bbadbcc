package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel    = "claude-3-5-haiku-latest"
	defaultAnthropicPriority = 2
)

// AnthropicProvider implements the Provider interface for message-style
// backends.
type AnthropicProvider struct {
	client   anthropic.Client
	model    string
	priority int
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey string, opts ...Option) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	o := buildOptions(defaultAnthropicModel, defaultAnthropicPriority, opts)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}

	return &AnthropicProvider{
		client:   anthropic.NewClient(clientOpts...),
		model:    o.model,
		priority: o.priority,
	}, nil
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns the configured model identifier.
func (p *AnthropicProvider) Model() string {
	return p.model
}

// Priority returns the chain priority.
func (p *AnthropicProvider) Priority() int {
	return p.priority
}

// Generate sends the request to Anthropic and returns the concatenated text
// blocks of the response.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 150
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", p.wrapError(err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}
	return content, nil
}

func (p *AnthropicProvider) wrapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.Name(), Status: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: p.Name(), Err: err}
}
