package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOpenAIPriority = 1
)

// OpenAIProvider implements the Provider interface for chat-completion
// style backends.
type OpenAIProvider struct {
	client   openai.Client
	model    string
	priority int
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, opts ...Option) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	o := buildOptions(defaultOpenAIModel, defaultOpenAIPriority, opts)

	// Retries are disabled at the SDK level: the chain owns the retry and
	// backoff policy.
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}

	return &OpenAIProvider{
		client:   openai.NewClient(clientOpts...),
		model:    o.model,
		priority: o.priority,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the configured model identifier.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Priority returns the chain priority.
func (p *OpenAIProvider) Priority() int {
	return p.priority
}

// Generate sends the request to OpenAI and returns the first choice's
// message content.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}
	return content, nil
}

func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.Name(), Status: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: p.Name(), Err: err}
}
