package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	msgs     []core.Message
	cleared  []string
	clearErr error
}

func (f *fakeChat) History(_ context.Context, _ string) ([]core.Message, error) {
	return f.msgs, nil
}

func (f *fakeChat) Clear(_ context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	f.msgs = nil
	return nil
}

type fakeProviderConfig struct {
	provider, model string
}

func (c *fakeProviderConfig) GetProvider() string     { return c.provider }
func (c *fakeProviderConfig) GetModel() string        { return c.model }
func (c *fakeProviderConfig) SetModel(m string) error { c.model = m; return nil }
func (c *fakeProviderConfig) GetMaxOutputTokens() int { return 1000 }
func (c *fakeProviderConfig) GetAPIKey() string       { return "" }
func (c *fakeProviderConfig) GetBaseURL() string      { return "" }

type fakeState struct {
	cfg *fakeProviderConfig
	err error
}

func (s *fakeState) ChangeModel(_ context.Context, model string) error {
	if s.err != nil {
		return s.err
	}
	return s.cfg.SetModel(model)
}

func newTestRouter(chat *fakeChat, state *fakeState) *Router {
	return New(NewCommands(chat, state.cfg, state))
}

func TestRouter_Execute(t *testing.T) {
	chat := &fakeChat{msgs: []core.Message{{Role: core.RoleUser, Content: "hi"}}}
	state := &fakeState{cfg: &fakeProviderConfig{provider: "gemini", model: "gemini-pro"}}
	router := newTestRouter(chat, state)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       string
		wantHandled bool
		contains    string
	}{
		{name: "plain_text", input: "hello", wantHandled: false},
		{name: "unknown", input: "/nope", wantHandled: true, contains: "Unknown command: /nope"},
		{name: "help", input: "/help", wantHandled: true, contains: "/clear"},
		{name: "bot_suffix", input: "/Help@TuskChatBot", wantHandled: true, contains: "/history"},
		{name: "model_show", input: "/model", wantHandled: true, contains: "gemini-pro"},
		{name: "history", input: "/history", wantHandled: true, contains: "**user**: hi"},
		{name: "history_bad_count", input: "/history zero", wantHandled: true, contains: "Error: invalid count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := router.Execute(ctx, "u1", tt.input)
			assert.Equal(t, tt.wantHandled, handled)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
		})
	}
}

func TestClearCommand(t *testing.T) {
	chat := &fakeChat{msgs: []core.Message{{Role: core.RoleUser, Content: "hi"}}}
	router := newTestRouter(chat, &fakeState{cfg: &fakeProviderConfig{}})

	out, handled := router.Execute(context.Background(), "u1", "/clear")
	require.True(t, handled)
	assert.Contains(t, out, "Conversation history cleared")
	assert.Equal(t, []string{"u1"}, chat.cleared)
	assert.Empty(t, chat.msgs)
}

func TestClearCommand_StorageError(t *testing.T) {
	chat := &fakeChat{clearErr: fmt.Errorf("%w: connection refused", core.ErrStorageUnavailable)}
	router := newTestRouter(chat, &fakeState{cfg: &fakeProviderConfig{}})

	out, handled := router.Execute(context.Background(), "u1", "/clear")
	require.True(t, handled)
	assert.True(t, strings.HasPrefix(out, "Error:"))
	assert.Contains(t, out, "connection refused")
}

func TestHistoryCommand_ShowsLatest(t *testing.T) {
	msgs := make([]core.Message, 0, 12)
	for i := 1; i <= 12; i++ {
		msgs = append(msgs, core.Message{Role: core.RoleUser, Content: fmt.Sprintf("m%02d", i)})
	}
	cmd := NewHistoryCommand(&fakeChat{msgs: msgs})

	out, err := cmd.Execute(context.Background(), "u1", []string{"3"})
	require.NoError(t, err)
	assert.Contains(t, out, "`12`")
	assert.Contains(t, out, "m10")
	assert.Contains(t, out, "m12")
	assert.NotContains(t, out, "m09")
}

func TestHistoryCommand_Empty(t *testing.T) {
	cmd := NewHistoryCommand(&fakeChat{})

	out, err := cmd.Execute(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "`0`")
}

func TestModelCommand(t *testing.T) {
	cfg := &fakeProviderConfig{provider: "openai", model: "gpt-4o-mini"}

	t.Run("switch", func(t *testing.T) {
		cmd := NewModelCommand(cfg, &fakeState{cfg: cfg})
		out, err := cmd.Execute(context.Background(), "u1", []string{"gpt-4o"})
		require.NoError(t, err)
		assert.Contains(t, out, "openai/gpt-4o")
		assert.Equal(t, "gpt-4o", cfg.GetModel())
	})

	t.Run("failure", func(t *testing.T) {
		cmd := NewModelCommand(cfg, &fakeState{cfg: cfg, err: errors.New("bad model")})
		_, err := cmd.Execute(context.Background(), "u1", []string{"x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad model")
	})
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\n  b"))

	long := strings.Repeat("x", historyPreviewLen+10)
	got := preview(long)
	assert.Len(t, []rune(got), historyPreviewLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestRouter_ListCommands(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakeState{cfg: &fakeProviderConfig{}})

	var names []string
	for _, cmd := range router.ListCommands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"clear", "help", "history", "model"}, names)
}
