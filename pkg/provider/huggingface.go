package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultHFBaseURL  = "https://api-inference.huggingface.co"
	defaultHFModel    = "mistralai/Mistral-7B-Instruct-v0.2"
	defaultHFPriority = 4
)

// HuggingFaceProvider implements the Provider interface for inference
// endpoints. Unlike the SDK-backed providers it speaks the raw HTTP API:
// the request carries an "inputs" string, and the response is an array
// whose first element carries the generated text.
type HuggingFaceProvider struct {
	apiKey     string
	baseURL    string
	model      string
	priority   int
	httpClient *http.Client
}

// hfRequest is the inference endpoint request payload.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// hfResult is one element of the inference endpoint response array.
type hfResult struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFaceProvider creates a new Hugging Face provider.
func NewHuggingFaceProvider(apiKey string, opts ...Option) (*HuggingFaceProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("huggingface API key is required")
	}

	o := buildOptions(defaultHFModel, defaultHFPriority, opts)
	if o.baseURL == "" {
		o.baseURL = defaultHFBaseURL
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}

	return &HuggingFaceProvider{
		apiKey:     apiKey,
		baseURL:    o.baseURL,
		model:      o.model,
		priority:   o.priority,
		httpClient: o.httpClient,
	}, nil
}

// Name returns the provider identifier.
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// Model returns the configured model identifier.
func (p *HuggingFaceProvider) Model() string {
	return p.model
}

// Priority returns the chain priority.
func (p *HuggingFaceProvider) Priority() int {
	return p.priority
}

// Generate sends the request to the inference endpoint and extracts the
// generated text. Instruct models echo the input before the completion, so
// the prompt prefix is stripped when present.
func (p *HuggingFaceProvider) Generate(ctx context.Context, req Request) (string, error) {
	input := req.Prompt
	if req.SystemPrompt != "" {
		input = req.SystemPrompt + "\n\n" + req.Prompt
	}

	reqBody := hfRequest{
		Inputs: input,
		Parameters: hfParameters{
			MaxNewTokens: req.MaxTokens,
			Temperature:  req.Temperature,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("huggingface request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("huggingface returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var results []hfResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(results) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}

	content := results[0].GeneratedText
	content = strings.TrimSpace(strings.TrimPrefix(content, input))
	if content == "" {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyOutput}
	}
	return content, nil
}
