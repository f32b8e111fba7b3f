// Package llm abstracts the generative backends behind a single text
// completion interface so the application layer never touches SDK types.
package llm

import "context"

// Provider is the abstraction over a generative backend.
type Provider interface {
	// Generate sends a prompt and returns the model's text reply.
	Generate(ctx context.Context, req Request) (string, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user-facing content of the request.
	Prompt string

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0.
	Temperature float64
}
