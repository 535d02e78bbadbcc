package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmlabs/wingman/pkg/provider"
)

// End-to-end: a real HTTP provider behind the chain, rate limited twice
// before succeeding.
func TestChainRetriesRateLimitedHTTPProvider(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[{"generated_text": "here you go"}]`)
	}))
	defer srv.Close()

	p, err := provider.NewHuggingFaceProvider("test-key", provider.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	chain := NewChain([]provider.Provider{p},
		WithRetryDelay(time.Millisecond),
		WithAttemptTimeout(time.Second),
	)

	result := chain.Generate(context.Background(), "write something", Context{})
	if result.Provider != "huggingface" {
		t.Fatalf("expected huggingface result, got %q", result.Provider)
	}
	if result.Text != "here you go" {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if hits != 3 {
		t.Fatalf("expected 3 requests, got %d", hits)
	}
}

// End-to-end: a provider that always serves errors never blocks the
// caller; the chain lands on the fallback.
func TestChainFallsBackPastFailingHTTPProvider(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := provider.NewHuggingFaceProvider("test-key", provider.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	chain := NewChain([]provider.Provider{p},
		WithRetryDelay(time.Millisecond),
		WithAttemptTimeout(time.Second),
	)

	result := chain.Generate(context.Background(), "hi", Context{Kind: "pickup_line"})
	if result.Provider != FallbackProvider {
		t.Fatalf("expected fallback, got %q", result.Provider)
	}
	if hits != 1 {
		t.Fatalf("expected single request for permanent failure, got %d", hits)
	}
	if result.Text == "" {
		t.Fatal("expected non-empty fallback text")
	}
}
