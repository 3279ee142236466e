// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"errors"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigError("OPENAI_API_KEY is not set")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(model, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError maps SDK errors onto AIError types by HTTP status.
func classifyOpenAIError(model string, err error) *AIError {
	aiErr := &AIError{
		Type:      ErrTypeProvider,
		Operation: "completion",
		Message:   "failed to create completion",
		Model:     model,
		Cause:     err,
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		aiErr.Code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		aiErr.Code = reqErr.HTTPStatusCode
	}

	var netErr net.Error
	switch {
	case aiErr.Code == http.StatusUnauthorized:
		aiErr.Type = ErrTypeAuth
		aiErr.Message = "provider rejected the API key"
	case aiErr.Code == http.StatusTooManyRequests:
		aiErr.Type = ErrTypeRateLimit
		aiErr.Message = "provider rate limit exceeded"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		aiErr.Type = ErrTypeNetwork
		aiErr.Message = "provider unreachable"
	}
	return aiErr
}
