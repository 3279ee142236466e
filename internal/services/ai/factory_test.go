package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Provider = "cohere"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxTokens = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Model = ""
	assert.Error(t, cfg.Validate())
}

func TestNewProviderDefaultsToOpenAI(t *testing.T) {
	provider, err := NewProvider(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, provider.Name())
	assert.IsType(t, &OpenAIProvider{}, provider)
}

func TestNewProviderOllama(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llama3.2"

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, provider.Name())
}

func TestNewProviderInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "nope"
	_, err := NewProvider(cfg)
	assert.True(t, IsCredentialError(err))
}

func TestUnavailableProvider(t *testing.T) {
	cause := NewConfigError("ANTHROPIC_API_KEY is not set")
	provider := NewUnavailableProvider(ProviderAnthropic, cause)

	_, err := provider.CreateCompletion(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ProviderAnthropic, provider.Name())
}
