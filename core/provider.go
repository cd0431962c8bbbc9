package core

import "context"

// Provider is the interface implemented by all backend adapters. It exposes a
// single-shot classification completion plus a pure availability check while
// remaining backend-agnostic.
type Provider interface {
	// Complete sends one rendered prompt to the backend and decodes the model
	// output into a Decision. It performs exactly one network call; retry and
	// backoff, if any, belong to the backend client underneath.
	Complete(ctx context.Context, prompt string) (*Decision, error)

	// IsAvailable reports whether the adapter can serve calls: the backend is
	// enabled, a credential is present, and the client handle was built. It
	// has no side effects and performs no I/O.
	IsAvailable() bool

	// Name returns the backend kind identifier (e.g. "openai").
	Name() string
}
