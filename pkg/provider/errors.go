package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ProviderError wraps backend failures with status metadata.
type ProviderError struct {
	Provider  string
	Status    int
	Temporary bool
	Err       error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: provider error (status=%d)", e.Provider, e.Status)
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrEmptyOutput marks a 2xx response whose extracted text was empty.
// Empty output is unusable and never retried.
var ErrEmptyOutput = errors.New("provider returned empty output")

// IsTransient reports whether an error is safe to retry against the same
// provider. Rate limiting, transport failures and per-attempt timeouts are
// transient; every other failure (bad status, malformed body, empty output)
// is permanent and the provider is skipped.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrEmptyOutput) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		if provErr.Temporary {
			return true
		}
		if provErr.Status == 429 {
			return true
		}
		return IsTransient(provErr.Err)
	}
	return false
}
