package installer

import "strings"

// InstallState collects answers. Tagged fields are written to .env.
type InstallState struct {
	Provider        string `env:"TUSK_LLM_PROVIDER"`
	GeminiAPIKey    string `env:"TUSK_GEMINI_API_KEY"`
	OpenAIAPIKey    string `env:"TUSK_OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"TUSK_ANTHROPIC_API_KEY"`
	OpenRouterKey   string `env:"TUSK_OPENROUTER_API_KEY"`
	OllamaAPIKey    string `env:"TUSK_OLLAMA_API_KEY"`
	OllamaBaseURL   string `env:"TUSK_OLLAMA_BASE_URL"`
	CustomBaseURL   string `env:"TUSK_CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey    string `env:"TUSK_CUSTOM_OPENAI_API_KEY"`

	UserID  string `env:"TUSK_USER_ID"`
	Backend string `env:"TUSK_HISTORY_BACKEND"`
	KVURL   string `env:"KV_REST_API_URL"`
	KVToken string `env:"KV_REST_API_TOKEN"`

	EnableCLI       bool   `env:"TUSK_ENABLE_CLI"`
	EnableTelegram  bool   `env:"TUSK_ENABLE_TELEGRAM"`
	TelegramToken   string `env:"TUSK_TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"TUSK_TELEGRAM_OWNER_ID"`

	// Channel is only used between steps.
	Channel string
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

// SetAPIKey stores the key in the field the selected provider reads.
func (s *InstallState) SetAPIKey(key string) {
	key = strings.TrimSpace(key)
	switch s.Provider {
	case "gemini":
		s.GeminiAPIKey = key
	case "openai":
		s.OpenAIAPIKey = key
	case "anthropic":
		s.AnthropicAPIKey = key
	case "openrouter":
		s.OpenRouterKey = key
	case "ollama":
		s.OllamaAPIKey = key
	case "custom":
		s.CustomAPIKey = key
	}
}
