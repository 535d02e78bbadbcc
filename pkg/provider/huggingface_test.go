package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func newHFServer(t *testing.T, handler http.HandlerFunc) (*HuggingFaceProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewHuggingFaceProvider("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return p, srv
}

func TestHuggingFaceExtractsAndStripsEcho(t *testing.T) {
	p, _ := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if r.URL.Path != "/models/"+defaultHFModel {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `[{"generated_text": "write me a line  Sure, here is a line. "}]`)
	})

	got, err := p.Generate(context.Background(), Request{Prompt: "write me a line"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Sure, here is a line." {
		t.Fatalf("expected echoed prompt stripped and trimmed, got %q", got)
	}
}

func TestHuggingFacePrependsSystemPrompt(t *testing.T) {
	var gotInputs string
	p, _ := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req hfRequest
		if err := decodeJSONBody(r, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotInputs = req.Inputs
		fmt.Fprint(w, `[{"generated_text": "ok"}]`)
	})

	if _, err := p.Generate(context.Background(), Request{Prompt: "hi", SystemPrompt: "be nice"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotInputs != "be nice\n\nhi" {
		t.Fatalf("unexpected inputs %q", gotInputs)
	}
}

func TestHuggingFaceErrorStatuses(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"server error", http.StatusInternalServerError, false},
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"error": "nope"}`)
			})

			_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
			if err == nil {
				t.Fatal("expected error")
			}

			var provErr *ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("expected *ProviderError, got %T", err)
			}
			if provErr.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, provErr.Status)
			}
			if IsTransient(err) != tt.wantTransient {
				t.Fatalf("IsTransient = %v, want %v", IsTransient(err), tt.wantTransient)
			}
		})
	}
}

func TestHuggingFaceMalformedBody(t *testing.T) {
	p, _ := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"generated_text": "object not array"}`)
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if IsTransient(err) {
		t.Fatal("malformed body must be permanent")
	}
}

func TestHuggingFaceEmptyOutput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty array", `[]`},
		{"empty text", `[{"generated_text": ""}]`},
		{"echo only", `[{"generated_text": "hi"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})

			_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
			if !errors.Is(err, ErrEmptyOutput) {
				t.Fatalf("expected ErrEmptyOutput, got %v", err)
			}
			if IsTransient(err) {
				t.Fatal("empty output must be permanent")
			}
		})
	}
}

func TestHuggingFaceRequiresAPIKey(t *testing.T) {
	if _, err := NewHuggingFaceProvider(""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
