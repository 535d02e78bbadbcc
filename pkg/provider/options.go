package provider

import "net/http"

// Option adjusts provider construction. Defaults are production values;
// tests override the base URL to point at local mock endpoints.
type Option func(*options)

type options struct {
	baseURL    string
	model      string
	priority   int
	httpClient *http.Client
}

// WithBaseURL overrides the backend endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithPriority overrides the default chain priority.
func WithPriority(p int) Option {
	return func(o *options) {
		o.priority = p
	}
}

// WithHTTPClient overrides the HTTP client for providers that speak raw HTTP.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func buildOptions(model string, priority int, opts []Option) options {
	o := options{model: model, priority: priority}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
