package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangChainProviderMapsRoles(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Returns are free."}}}}
	provider := NewLangChainProvider(ProviderOllama, model)

	reply, err := provider.CreateCompletion(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "q1"},
			{Role: RoleAssistant, Content: "a1"},
			{Role: RoleUser, Content: "q2"},
		},
		MaxTokens: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Returns are free.", reply)
	assert.Equal(t, ProviderOllama, provider.Name())

	require.Len(t, model.messages, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[3].Role)
	assert.Equal(t, 500, model.opts.MaxTokens)
}

func TestLangChainProviderEmptyResponse(t *testing.T) {
	provider := NewLangChainProvider(ProviderOllama, &fakeModel{resp: &llms.ContentResponse{}})

	reply, err := provider.CreateCompletion(context.Background(), CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestClassifyLangChainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"unauthorized", errors.New("API returned unexpected status code: 401: invalid x-api-key"), ErrTypeAuth},
		{"rate limited", errors.New("status code: 429"), ErrTypeRateLimit},
		{"deadline", context.DeadlineExceeded, ErrTypeNetwork},
		{"refused", errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"), ErrTypeNetwork},
		{"other", errors.New("model not found"), ErrTypeProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyLangChainError("m", tt.err)
			assert.Equal(t, tt.want, got.Type)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestNewLangChainModelRequiresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	_, err := NewLangChainModel(cfg)
	assert.True(t, IsCredentialError(err))

	cfg.Provider = ProviderLangChainOpenAI
	_, err = NewLangChainModel(cfg)
	assert.True(t, IsCredentialError(err))
}
