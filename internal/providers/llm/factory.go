package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	model := cfg.GetModel()
	maxTokens := cfg.GetMaxOutputTokens()

	switch cfg.GetProvider() {
	case "gemini":
		return NewGemini(cfg.GetAPIKey(), model, maxTokens), nil
	case "openai":
		return NewOpenAI(cfg.GetAPIKey(), model, maxTokens), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAPIKey(), model, maxTokens), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetAPIKey(), model, maxTokens), nil
	case "ollama":
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), model, maxTokens), nil
	case "custom":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:         cfg.GetBaseURL(),
			APIKey:          cfg.GetAPIKey(),
			Model:           model,
			MaxOutputTokens: maxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider: %s", core.ErrConfiguration, cfg.GetProvider())
	}
}
