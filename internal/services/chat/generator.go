// G:\go_spurchat\internal\services\chat\generator.go
package chat

import (
	"context"

	"github.com/iyunix/go-spurchat/internal/services/ai"
)

// ReplyGenerator assembles the persona, the prior turns and the new user
// message into one completion request.
type ReplyGenerator struct {
	config   *Config
	provider ai.CompletionProvider
	prompts  PromptSource
	logger   Logger
}

func NewReplyGenerator(config *Config, provider ai.CompletionProvider, prompts PromptSource, logger Logger) (*ReplyGenerator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}
	if provider == nil {
		return nil, NewValidationError("constructor", "completion provider is required")
	}
	if prompts == nil {
		return nil, NewValidationError("constructor", "prompt source is required")
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &ReplyGenerator{config: config, provider: provider, prompts: prompts, logger: logger}, nil
}

// BuildMessages lays out the request: system block, prior turns, new user turn.
func (g *ReplyGenerator) BuildMessages(prior []Turn, message string) ([]ai.Message, error) {
	messages := make([]ai.Message, 0, len(prior)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: g.prompts.SystemPrompt()})

	for _, turn := range prior {
		role, err := ProviderRole(turn.Sender)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Text})
	}

	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})
	return messages, nil
}

// GenerateReply calls the provider once. Credential problems become
// configuration errors; every other failure is a generation error.
func (g *ReplyGenerator) GenerateReply(ctx context.Context, prior []Turn, message string) (string, error) {
	messages, err := g.BuildMessages(prior, message)
	if err != nil {
		return "", NewInternalError("build_prompt", err)
	}

	reply, err := g.provider.CreateCompletion(ctx, ai.CompletionRequest{
		Model:     g.config.ChatModel,
		Messages:  messages,
		MaxTokens: g.config.MaxTokens,
	})
	if err != nil {
		g.logger.Error("completion failed", "provider", g.provider.Name(), "model", g.config.ChatModel, "error", err)
		if ai.IsCredentialError(err) {
			return "", NewConfigurationError("generate_reply", err)
		}
		return "", NewGenerationError("generate_reply", err)
	}

	if reply == "" {
		g.logger.Warn("provider returned empty completion, using fallback", "provider", g.provider.Name())
		return g.config.FallbackReply, nil
	}
	return reply, nil
}
