package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/stretchr/testify/assert"
)

type fakeChat struct {
	sent  []string
	reply core.Message
	err   error
}

func (f *fakeChat) History(_ context.Context, _ string) ([]core.Message, error) {
	return nil, nil
}

func (f *fakeChat) Send(_ context.Context, userID, input string) (core.Message, error) {
	f.sent = append(f.sent, userID+"|"+input)
	return f.reply, f.err
}

type fakeRouter struct{}

func (fakeRouter) Execute(_ context.Context, _ string, input string) (string, bool) {
	if input == "/clear" {
		return "cleared", true
	}
	return "", false
}

func (fakeRouter) ListCommands() []core.Command { return nil }

func TestReadLine_HandleLine(t *testing.T) {
	tests := []struct {
		name     string
		chat     *fakeChat
		line     string
		wantSent int
		contains string
	}{
		{
			name:     "command",
			chat:     &fakeChat{},
			line:     "/clear",
			wantSent: 0,
			contains: "cleared",
		},
		{
			name:     "chat_reply",
			chat:     &fakeChat{reply: core.Message{Role: core.RoleAssistant, Content: "Hi there"}},
			line:     "Hello",
			wantSent: 1,
			contains: "Hi there",
		},
		{
			name:     "inference_error",
			chat:     &fakeChat{err: fmt.Errorf("%w: quota", core.ErrInference)},
			line:     "Hello",
			wantSent: 1,
			contains: "no reply from the model",
		},
		{
			name:     "storage_error",
			chat:     &fakeChat{err: fmt.Errorf("%w: dial tcp", core.ErrStorageUnavailable)},
			line:     "Hello",
			wantSent: 1,
			contains: "history storage is unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ReadLine{
				cfg:    &config.AppConfig{UserID: "u1"},
				chat:   tt.chat,
				router: fakeRouter{},
			}
			var buf bytes.Buffer

			r.handleLine(context.Background(), &buf, tt.line)

			assert.Len(t, tt.chat.sent, tt.wantSent)
			if tt.wantSent > 0 {
				assert.Equal(t, "u1|"+tt.line, tt.chat.sent[0])
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	renderHistory(&buf, []core.Message{
		{Role: core.RoleUser, Content: "first"},
		core.PlaceholderMessage(),
	})

	out := buf.String()
	assert.Contains(t, out, "2 stored messages")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "Error: Failed to load message")

	buf.Reset()
	renderHistory(&buf, nil)
	assert.Empty(t, buf.String())
}
