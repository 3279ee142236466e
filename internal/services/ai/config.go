// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

const (
	ProviderOpenAI          = "openai"
	ProviderOllama          = "ollama"
	ProviderAnthropic       = "anthropic"
	ProviderLangChainOpenAI = "langchain-openai"
)

type Config struct {
	Provider string

	// OpenAI-compatible endpoint
	APIKey  string
	BaseURL string

	// langchaingo backends
	OllamaHost      string
	AnthropicAPIKey string

	Model     string
	MaxTokens int

	// Timeout bounds the HTTP client. Zero keeps the SDK default.
	Timeout time.Duration
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderAnthropic, ProviderLangChainOpenAI:
	default:
		return fmt.Errorf("unsupported LLM provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderOpenAI,
		Model:      "gpt-4o-mini",
		MaxTokens:  500,
		OllamaHost: "http://localhost:11434",
	}
}
