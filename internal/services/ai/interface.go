// File: internal/services/ai/interface.go
package ai

import "context"

// Provider-side role vocabulary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a completion request.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is a single, non-streamed chat completion call.
type CompletionRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// CompletionProvider handles chat completions. An empty string with a nil
// error means the provider answered without content.
type CompletionProvider interface {
	CreateCompletion(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}
