package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

type ProviderConfig struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGenerator builds the configured variant. The client handle is created once here
// and owned by the returned generator.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	switch cfg.Provider {
	case ProviderGroq, ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s provider requires an API key", cfg.Provider)
		}
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == ProviderGroq {
			baseURL = GroqBaseURL
		}
		model := cfg.Model
		if model == "" && cfg.Provider == ProviderOpenAI {
			model = "gpt-4o-mini"
		}
		return NewOpenAIGenerator(NewOpenAIClient(cfg.APIKey, baseURL, cfg.HTTPClient), model), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.BaseURL, cfg.HTTPClient)
		if err != nil {
			return nil, err
		}
		return NewGeminiGenerator(client, cfg.Model), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return NewAnthropicGenerator(NewAnthropicClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient), cfg.Model), nil
	case ProviderMock:
		return NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// DefaultVision reports whether a provider's variant accepts image turns out of the box.
func DefaultVision(provider string) bool {
	switch provider {
	case ProviderGroq, ProviderOpenAI, ProviderGemini, ProviderAnthropic:
		return true
	default:
		return false
	}
}
