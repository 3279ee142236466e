// File: internal/services/ai/factory.go
package ai

import "context"

// NewProvider picks the completion backend named in config.
func NewProvider(config *Config) (CompletionProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	if config.Provider == ProviderOpenAI {
		return NewOpenAIProvider(config), nil
	}

	model, err := NewLangChainModel(config)
	if err != nil {
		return nil, err
	}
	return NewLangChainProvider(config.Provider, model), nil
}

// UnavailableProvider answers every request with the error that prevented the
// real backend from being built, so a missing credential is reported per call
// instead of keeping the server from starting.
type UnavailableProvider struct {
	name string
	err  error
}

func NewUnavailableProvider(name string, err error) *UnavailableProvider {
	return &UnavailableProvider{name: name, err: err}
}

func (p *UnavailableProvider) Name() string { return p.name }

func (p *UnavailableProvider) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	return "", p.err
}
