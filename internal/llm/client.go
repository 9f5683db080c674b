// Package llm wraps the generative-AI backend behind a narrow interface.
// The application treats the service as opaque: prompt in, text out. Retry
// and timeout policy live here and nowhere else.
package llm

import "context"

// Client defines the minimal interface the assistance features use to call
// an LLM.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
