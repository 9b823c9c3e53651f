package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Generate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"},{"text":" there"}]}}]}`)
	}))
	defer srv.Close()

	g := NewGemini("g-key", "gemini-pro", 1000)
	g.baseURL = srv.URL

	out, err := g.Generate(context.Background(), "Context:\n\n\nUser: hi\n\nAssistant:")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", out)

	cfg := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, float64(1000), cfg["maxOutputTokens"])
}

func TestGemini_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "http_error", status: http.StatusBadRequest, body: `{"error":{"message":"API key not valid"}}`, wantErr: "http 400"},
		{name: "blocked", status: http.StatusOK, body: `{"promptFeedback":{"blockReason":"SAFETY"}}`, wantErr: "prompt blocked"},
		{name: "no_candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: "empty candidates"},
		{name: "bad_json", status: http.StatusOK, body: `not-json`, wantErr: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			g := NewGemini("k", "gemini-pro", 10)
			g.baseURL = srv.URL

			_, err := g.Generate(context.Background(), "hi")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAICompatible_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body.Model)
		assert.Equal(t, 256, body.MaxTokens)
		if assert.Len(t, body.Messages, 1) {
			assert.Equal(t, "user", body.Messages[0].Role)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"pong"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:         srv.URL,
		APIKey:          "sk-test",
		Model:           "gpt-test",
		MaxOutputTokens: 256,
		ExtraHeaders:    map[string]string{"X-Extra": "yes"},
	})

	out, err := p.Generate(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestOpenAICompatible_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "", "llama3.2", 100)
	_, err := p.Generate(context.Background(), "ping")
	assert.ErrorContains(t, err, "empty choices")
}

func TestAnthropic_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "a-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hi"},{"type":"tool_use"},{"type":"text","text":"!"}]}`)
	}))
	defer srv.Close()

	a := NewAnthropic("a-key", "claude", 64)
	a.baseURL = srv.URL

	out, err := a.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi!", out)
}
