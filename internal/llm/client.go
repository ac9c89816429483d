// Package llm talks to an OpenAI-compatible completion backend.
package llm

import "context"

// Client produces a completion for a prompt. Implementations must be
// safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
