package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider constructs the configured backend wrapped with request
// logging and retry. recorder may be nil.
func NewProvider(ctx context.Context, cfg Config, recorder RequestRecorder, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, recorder, logger)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from EPISTEMIQ_* variables,
// falling back to the standard vendor key variables (GEMINI_API_KEY,
// OPENAI_API_KEY, ANTHROPIC_API_KEY) when no explicit key is set.
func NewProviderFromEnv(ctx context.Context, recorder RequestRecorder, logger *zap.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no generator API key found: set EPISTEMIQ_GEMINI_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY")
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, recorder, logger)
}
