// Package llm provides the provider clients used to execute a template's
// example prompt: OpenRouter and Ollama, plus a file-backed response
// cache. Clients are plain HTTP; streaming is out of scope.
package llm

import "context"

// Client generates a completion for a prompt.
type Client interface {
	// Generate sends the prompt and returns the model's text response.
	Generate(ctx context.Context, prompt string) (string, error)
}
