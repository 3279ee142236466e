// G:\go_spurchat\internal\services\chat\config.go
package chat

import "fmt"

const (
	DefaultFallbackReply = "I'm sorry, I couldn't generate a response."
	DefaultMaxTokens     = 500
	DefaultModel         = "gpt-4o-mini"
)

type Config struct {
	// Model Configuration
	ChatModel string // model passed to the completion provider
	MaxTokens int    // bound on the reply length

	// FallbackReply is stored and returned when the provider answers with nothing.
	FallbackReply string

	// SystemPromptFile overrides the embedded support persona when set.
	SystemPromptFile string
}

func (c *Config) Validate() error {
	if c.ChatModel == "" {
		return fmt.Errorf("chat_model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.FallbackReply == "" {
		return fmt.Errorf("fallback_reply is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ChatModel:     DefaultModel,
		MaxTokens:     DefaultMaxTokens,
		FallbackReply: DefaultFallbackReply,
	}
}
