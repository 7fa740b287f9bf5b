// Package provider defines the interface for communicating with an LLM
// and an OpenAI-backed implementation.
package provider

import "context"

// Provider is the interface for communicating with an LLM.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}

// Factory produces a Provider from runtime state. Construction fails with
// keys.ErrNotConfigured when no model-provider key has been saved yet, which
// forces every call site to handle the absent-credentials case.
type Factory func() (Provider, error)
