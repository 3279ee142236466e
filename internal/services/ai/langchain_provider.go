// File: internal/services/ai/langchain_provider.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// LangChainProvider serves completions through any langchaingo model, which
// lets the widget run against Ollama or Anthropic without code changes.
type LangChainProvider struct {
	name  string
	model llms.Model
}

func NewLangChainProvider(name string, model llms.Model) *LangChainProvider {
	return &LangChainProvider{name: name, model: model}
}

// NewLangChainModel builds the langchaingo backend named by config.Provider.
func NewLangChainModel(config *Config) (llms.Model, error) {
	switch config.Provider {
	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithModel(config.Model),
			ollama.WithServerURL(config.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return model, nil

	case ProviderAnthropic:
		if config.AnthropicAPIKey == "" {
			return nil, NewConfigError("ANTHROPIC_API_KEY is not set")
		}
		model, err := anthropic.New(
			anthropic.WithToken(config.AnthropicAPIKey),
			anthropic.WithModel(config.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return model, nil

	case ProviderLangChainOpenAI:
		if config.APIKey == "" {
			return nil, NewConfigError("OPENAI_API_KEY is not set")
		}
		opts := []lcopenai.Option{
			lcopenai.WithToken(config.APIKey),
			lcopenai.WithModel(config.Model),
		}
		if config.BaseURL != "" {
			opts = append(opts, lcopenai.WithBaseURL(config.BaseURL))
		}
		model, err := lcopenai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return model, nil

	default:
		return nil, fmt.Errorf("unsupported langchain provider: %s", config.Provider)
	}
}

func (p *LangChainProvider) Name() string { return p.name }

func (p *LangChainProvider) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llms.TextParts(langChainRole(m.Role), m.Content))
	}

	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", classifyLangChainError(req.Model, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func langChainRole(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// classifyLangChainError inspects the error text; langchaingo backends do not
// share a typed error for HTTP status codes.
func classifyLangChainError(model string, err error) *AIError {
	aiErr := &AIError{
		Type:      ErrTypeProvider,
		Operation: "completion",
		Message:   "failed to create completion",
		Model:     model,
		Cause:     err,
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"), strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "invalid api key"), strings.Contains(msg, "invalid x-api-key"):
		aiErr.Type = ErrTypeAuth
		aiErr.Code = 401
		aiErr.Message = "provider rejected the API key"
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"):
		aiErr.Type = ErrTypeRateLimit
		aiErr.Code = 429
		aiErr.Message = "provider rate limit exceeded"
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(msg, "connection refused"):
		aiErr.Type = ErrTypeNetwork
		aiErr.Message = "provider unreachable"
	}
	return aiErr
}
