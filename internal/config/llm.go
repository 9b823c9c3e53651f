package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskchat/internal/core"
)

type LLMConfig struct {
	mu sync.RWMutex

	Provider        string `env:"TUSK_LLM_PROVIDER" envDefault:"gemini"`
	Model           string `env:"TUSK_MODEL"`
	MaxOutputTokens int    `env:"TUSK_MAX_OUTPUT_TOKENS" envDefault:"1000"`

	GeminiAPIKey        string `env:"TUSK_GEMINI_API_KEY"`
	OpenAIAPIKey        string `env:"TUSK_OPENAI_API_KEY"`
	AnthropicAPIKey     string `env:"TUSK_ANTHROPIC_API_KEY"`
	OpenRouterAPIKey    string `env:"TUSK_OPENROUTER_API_KEY"`
	OllamaAPIKey        string `env:"TUSK_OLLAMA_API_KEY"`
	OllamaBaseURL       string `env:"TUSK_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	CustomOpenAIBaseURL string `env:"TUSK_CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"TUSK_CUSTOM_OPENAI_API_KEY"`
}

var defaultModels = map[string]string{
	"gemini":     "gemini-pro",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-3-5-haiku-latest",
	"openrouter": "google/gemma-3-27b-it:free",
	"ollama":     "llama3.2",
}

func NewLLMConfig() (*LLMConfig, error) {
	return parseLLMConfig(env.Options{})
}

func parseLLMConfig(opts env.Options) (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("%w: llm: %w", core.ErrConfiguration, err)
	}

	c.Provider = strings.ToLower(c.Provider)
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.MaxOutputTokens <= 0 {
		return nil, fmt.Errorf("%w: llm: max output tokens must be positive", core.ErrConfiguration)
	}

	switch c.Provider {
	case "gemini", "openai", "anthropic", "openrouter":
		if c.GetAPIKey() == "" {
			return nil, fmt.Errorf("%w: llm: api key for provider %q is not set", core.ErrConfiguration, c.Provider)
		}
	case "ollama":
	case "custom":
		if c.CustomOpenAIBaseURL == "" {
			return nil, fmt.Errorf("%w: llm: TUSK_CUSTOM_OPENAI_BASE_URL is not set", core.ErrConfiguration)
		}
	default:
		return nil, fmt.Errorf("%w: llm: unknown provider %q", core.ErrConfiguration, c.Provider)
	}

	if c.Model == "" {
		return nil, fmt.Errorf("%w: llm: TUSK_MODEL is not set", core.ErrConfiguration)
	}
	return c, nil
}

func (c *LLMConfig) GetProvider() string {
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel changes the model for the running process only.
func (c *LLMConfig) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model name must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
	return nil
}

func (c *LLMConfig) GetMaxOutputTokens() int {
	return c.MaxOutputTokens
}

func (c *LLMConfig) GetAPIKey() string {
	switch c.Provider {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "openrouter":
		return c.OpenRouterAPIKey
	case "ollama":
		return c.OllamaAPIKey
	case "custom":
		return c.CustomOpenAIAPIKey
	}
	return ""
}

func (c *LLMConfig) GetBaseURL() string {
	switch c.Provider {
	case "ollama":
		return c.OllamaBaseURL
	case "custom":
		return c.CustomOpenAIBaseURL
	}
	return ""
}
