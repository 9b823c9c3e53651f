package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// newFakeServer emulates the REST command endpoint on top of the in-memory list store.
func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewListStore()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON := func(status int, v any) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(v)
		}

		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		var cmd []string
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || len(cmd) < 2 {
			writeJSON(http.StatusBadRequest, map[string]string{"error": "ERR bad command"})
			return
		}

		ctx := r.Context()
		key := cmd[1]
		parse := func(s string) int64 {
			n, _ := strconv.ParseInt(s, 10, 64)
			return n
		}

		switch cmd[0] {
		case "LRANGE":
			items, _ := store.LRange(ctx, key, parse(cmd[2]), parse(cmd[3]))
			writeJSON(http.StatusOK, map[string]any{"result": items})
		case "RPUSH":
			n, _ := store.RPush(ctx, key, cmd[2:]...)
			writeJSON(http.StatusOK, map[string]any{"result": n})
		case "LTRIM":
			_ = store.LTrim(ctx, key, parse(cmd[2]), parse(cmd[3]))
			writeJSON(http.StatusOK, map[string]any{"result": "OK"})
		case "DEL":
			n, _ := store.Del(ctx, key)
			writeJSON(http.StatusOK, map[string]any{"result": n})
		default:
			writeJSON(http.StatusBadRequest, map[string]string{"error": "ERR unknown command"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url, token string) *Client {
	t.Helper()
	c, err := NewClient(&config.KVConfig{URL: url, Token: token})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.KVConfig
	}{
		{name: "nil", cfg: nil},
		{name: "no_url", cfg: &config.KVConfig{Token: "t"}},
		{name: "no_token", cfg: &config.KVConfig{URL: "https://kv.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration))
		})
	}
}

func TestClient_ListCommands(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL, testToken)
	ctx := context.Background()

	items, err := c.LRange(ctx, "user:u1:history", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, items)

	for i := 1; i <= 52; i++ {
		n, err := c.RPush(ctx, "user:u1:history", fmt.Sprintf(`{"role":"user","content":"m%d"}`, i))
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	require.NoError(t, c.LTrim(ctx, "user:u1:history", -50, -1))

	items, err = c.LRange(ctx, "user:u1:history", 0, -1)
	require.NoError(t, err)
	require.Len(t, items, 50)
	assert.Equal(t, `{"role":"user","content":"m3"}`, items[0])
	assert.Equal(t, `{"role":"user","content":"m52"}`, items[49])

	n, err := c.Del(ctx, "user:u1:history")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Del(ctx, "user:u1:history")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestClient_Unauthorized(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL, "wrong")

	_, err := c.LRange(context.Background(), "k", 0, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream down")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testToken)
	_, err := c.RPush(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, testToken)
	err := c.LTrim(context.Background(), "k", -50, -1)
	assert.Error(t, err)
}

func TestClient_NullRangeResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testToken)
	items, err := c.LRange(context.Background(), "k", 0, -1)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_RPushRequiresValues(t *testing.T) {
	c := newTestClient(t, "https://kv.example", testToken)
	_, err := c.RPush(context.Background(), "k")
	assert.Error(t, err)
}
