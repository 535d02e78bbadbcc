// Package pipeline runs generation requests through an ordered provider
// chain with bounded retries, falling back to local canned responses when
// every remote option is exhausted.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/charmlabs/wingman/pkg/fallback"
	"github.com/charmlabs/wingman/pkg/provider"
)

// Markers used in results produced without a remote provider.
const (
	FallbackProvider = "fallback"
	FallbackModel    = "local"
)

// Default generation and retry settings.
const (
	DefaultMaxTokens      = 150
	DefaultTemperature    = 0.8
	DefaultMaxAttempts    = 3
	DefaultAttemptTimeout = 30 * time.Second
	DefaultRetryDelay     = time.Second
)

// Context carries per-call generation configuration.
type Context struct {
	// SystemPrompt steers tone and persona; optional.
	SystemPrompt string
	// MaxTokens bounds the generated length; defaults to DefaultMaxTokens.
	MaxTokens int
	// Temperature controls randomness in [0,1]; defaults to DefaultTemperature.
	Temperature float64
	// Kind selects the fallback template family; unused by remote providers.
	Kind string
	// Name is the addressee, consumed only by the fallback renderer.
	Name string
}

func (c Context) withDefaults() Context {
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// Result is the uniform outcome of a Generate call. Text is never empty;
// Provider is FallbackProvider iff no remote call produced usable output.
type Result struct {
	Text     string          `json:"text"`
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	Reports  []AttemptReport `json:"-"`
}

// AttemptReport captures the outcome of one provider's retry budget.
type AttemptReport struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error,omitempty"`
}

// Chain executes the failover algorithm over an immutable provider list.
// A Chain is safe for concurrent use; each Generate call is independent.
type Chain struct {
	providers      []provider.Provider
	maxAttempts    int
	attemptTimeout time.Duration
	retryDelay     time.Duration
	logger         zerolog.Logger
}

// ChainOption adjusts chain construction.
type ChainOption func(*Chain)

// WithMaxAttempts sets the attempt budget per provider.
func WithMaxAttempts(n int) ChainOption {
	return func(c *Chain) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithAttemptTimeout sets the per-attempt deadline.
func WithAttemptTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// WithRetryDelay sets the linear backoff base.
func WithRetryDelay(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d >= 0 {
			c.retryDelay = d
		}
	}
}

// WithLogger sets the chain logger.
func WithLogger(logger zerolog.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// NewChain creates a chain over the given providers, which must already be
// ordered by ascending priority (see provider.BuildRegistry).
func NewChain(providers []provider.Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers:      providers,
		maxAttempts:    DefaultMaxAttempts,
		attemptTimeout: DefaultAttemptTimeout,
		retryDelay:     DefaultRetryDelay,
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns the chain's provider list in attempt order.
func (c *Chain) Providers() []provider.Provider {
	return c.providers
}

// Generate runs the message through the provider chain and always returns
// a usable result. Provider-side failures are recorded and skipped; they
// never surface to the caller.
func (c *Chain) Generate(ctx context.Context, message string, gctx Context) Result {
	gctx = gctx.withDefaults()
	req := provider.Request{
		Prompt:       message,
		SystemPrompt: gctx.SystemPrompt,
		MaxTokens:    gctx.MaxTokens,
		Temperature:  gctx.Temperature,
	}

	var reports []AttemptReport
	for _, p := range c.providers {
		text, attempts, err := c.tryProvider(ctx, p, req)
		report := AttemptReport{Provider: p.Name(), Model: p.Model(), Attempts: attempts}
		if err == nil {
			reports = append(reports, report)
			c.logger.Debug().
				Str("provider", p.Name()).
				Str("model", p.Model()).
				Int("attempts", attempts).
				Msg("generation succeeded")
			return Result{Text: text, Provider: p.Name(), Model: p.Model(), Reports: reports}
		}

		report.Error = err.Error()
		reports = append(reports, report)
		c.logger.Warn().
			Str("provider", p.Name()).
			Int("attempts", attempts).
			Err(err).
			Msg("provider failed, trying next")

		if ctx.Err() != nil {
			break
		}
	}

	return Result{
		Text:     fallback.Render(message, fallback.Options{Kind: gctx.Kind, Name: gctx.Name}),
		Provider: FallbackProvider,
		Model:    FallbackModel,
		Reports:  reports,
	}
}

// tryProvider spends up to the attempt budget on a single provider.
// Transient failures wait retryDelay * attemptNumber before the next try;
// permanent failures abandon the provider at once.
func (c *Chain) tryProvider(ctx context.Context, p provider.Provider, req provider.Request) (string, int, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := p.Generate(attemptCtx, req)
		cancel()

		if err == nil {
			return text, attempt, nil
		}
		lastErr = err

		if !provider.IsTransient(err) || attempt == c.maxAttempts {
			return "", attempt, lastErr
		}

		backoff := time.Duration(attempt) * c.retryDelay
		if err := sleepWithContext(ctx, backoff); err != nil {
			return "", attempt, lastErr
		}
	}
	return "", c.maxAttempts, lastErr
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
