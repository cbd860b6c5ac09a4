package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// Options selects and tunes a provider client.
type Options struct {
	Provider    Provider
	APIKey      string
	Model       string // empty picks the provider default
	MaxTokens   int
	Temperature float64
}

// New builds the client for the configured provider.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Client, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		}, logger), nil
	case ProviderAnthropic:
		return NewAnthropicClient(AnthropicConfig{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		}, logger), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", opts.Provider)
	}
}
