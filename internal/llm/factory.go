package llm

import (
	"context"
	"fmt"
)

// Config selects and configures the backend provider.
type Config struct {
	Provider string
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Retry    RetryConfig
}

// NewProvider builds a Provider from configuration, wrapped with retry.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "", "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(base, cfg.Retry), nil
}
