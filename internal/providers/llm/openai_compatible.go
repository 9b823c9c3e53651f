package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandevgo/tuskchat/internal/core"
)

type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL         string
	APIKey          string
	Model           string
	MaxOutputTokens int
	AuthHeader      string // e.g., "Authorization"
	AuthPrefix      string // e.g., "Bearer "
	ExtraHeaders    map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "Authorization"
		cfg.AuthPrefix = "Bearer "
	}
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxOutputTokens),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

// NewOpenAI targets the public OpenAI API.
func NewOpenAI(apiKey, model string, maxOutputTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:         "https://api.openai.com",
		APIKey:          apiKey,
		Model:           model,
		MaxOutputTokens: maxOutputTokens,
	})
}

func NewOpenRouter(apiKey, model string, maxOutputTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:         "https://openrouter.ai/api",
		APIKey:          apiKey,
		Model:           model,
		MaxOutputTokens: maxOutputTokens,
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.TuskRepositoryURL,
			"X-Title":      core.TuskName,
		},
	})
}

// NewOllama talks to a local Ollama server through its OpenAI-compatible endpoint.
// The API key is optional.
func NewOllama(baseURL, apiKey, model string, maxOutputTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:         baseURL,
		APIKey:          apiKey,
		Model:           model,
		MaxOutputTokens: maxOutputTokens,
	})
}

func (o *OpenAICompatible) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []core.Message{
			{Role: core.RoleUser, Content: prompt},
		},
	}
	if o.maxOutputTokens > 0 {
		payload["max_tokens"] = o.maxOutputTokens
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := readOK(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message.Content, nil
}
