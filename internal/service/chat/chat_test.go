package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/internal/service/history"
	"github.com/sandevgo/tuskchat/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAI struct {
	prompts  []string
	response string
	err      error
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type countingTokens struct {
	calls int
}

func (c *countingTokens) Count(text string) int {
	c.calls++
	return len(text)
}

func newTestService(ai core.AIProvider, opts ...Option) (*Service, *history.Store) {
	store := history.NewStore(memory.NewListStore())
	return NewService(store, ai, opts...), store
}

func TestService_Send(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{response: "Hi! How can I help?"}
	svc, _ := newTestService(ai)

	reply, err := svc.Send(ctx, "u1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "Hi! How can I help?"}, reply)

	msgs, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []core.Message{
		{Role: core.RoleUser, Content: "Hello"},
		{Role: core.RoleAssistant, Content: "Hi! How can I help?"},
	}, msgs)

	require.Len(t, ai.prompts, 1)
	assert.Equal(t, "Context:\n\n\nUser: Hello\n\nAssistant:", ai.prompts[0])
}

func TestService_Send_UsesLastTurnsAsContext(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{response: "ok"}
	svc, store := newTestService(ai, WithContextTurns(2))

	for i := 1; i <= 4; i++ {
		require.NoError(t, store.AppendMessage(ctx, "u1", core.Message{Role: core.RoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	_, err := svc.Send(ctx, "u1", "next")
	require.NoError(t, err)

	assert.Equal(t, "Context:\nuser: m3\nuser: m4\n\nUser: next\n\nAssistant:", ai.prompts[0])
}

func TestService_Send_InferenceFailure(t *testing.T) {
	tests := []struct {
		name string
		ai   *fakeAI
	}{
		{name: "provider_error", ai: &fakeAI{err: errors.New("quota exceeded")}},
		{name: "empty_response", ai: &fakeAI{response: ""}},
		{name: "blank_response", ai: &fakeAI{response: "  \n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _ := newTestService(tt.ai)

			_, err := svc.Send(ctx, "u1", "Hello")
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInference)

			msgs, err := svc.History(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, []core.Message{{Role: core.RoleUser, Content: "Hello"}}, msgs,
				"a failed assistant turn must not be stored")
		})
	}
}

func TestService_Send_EmptyInput(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{response: "unused"}
	svc, _ := newTestService(ai)

	_, err := svc.Send(ctx, "u1", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyInput)
	assert.Empty(t, ai.prompts)

	msgs, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestService_Send_EmptyUserID(t *testing.T) {
	svc, _ := newTestService(&fakeAI{response: "x"})

	_, err := svc.Send(context.Background(), "", "hi")
	assert.ErrorIs(t, err, core.ErrEmptyUserID)
}

func TestService_Send_CountsTokens(t *testing.T) {
	counter := &countingTokens{}
	svc, _ := newTestService(&fakeAI{response: "x"}, WithTokenCounter(counter))

	_, err := svc.Send(context.Background(), "u1", "hi")
	require.NoError(t, err)
	assert.Equal(t, 1, counter.calls)
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&fakeAI{response: "reply"})

	_, err := svc.Send(ctx, "u1", "Hello")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))
	require.NoError(t, svc.Clear(ctx, "u1"))

	msgs, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestService_RetentionAcrossTurns(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(&fakeAI{response: "reply"})

	for i := 0; i < 30; i++ {
		_, err := svc.Send(ctx, "u1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	entries, err := store.ReadAll(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, entries, history.DefaultLimit)

	msgs, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "q5"}, msgs[0])
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name  string
		turns []core.Message
		input string
		want  string
	}{
		{
			name:  "no_context",
			input: "hi",
			want:  "Context:\n\n\nUser: hi\n\nAssistant:",
		},
		{
			name: "with_context",
			turns: []core.Message{
				{Role: core.RoleUser, Content: "a"},
				{Role: core.RoleAssistant, Content: "b"},
			},
			input: "c",
			want:  "Context:\nuser: a\nassistant: b\n\nUser: c\n\nAssistant:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPrompt(tt.turns, tt.input))
		})
	}
}

func TestLastTurns(t *testing.T) {
	msgs := []core.Message{{Content: "1"}, {Content: "2"}, {Content: "3"}}

	assert.Nil(t, lastTurns(msgs, 0))
	assert.Equal(t, msgs, lastTurns(msgs, 5))
	assert.Equal(t, msgs[1:], lastTurns(msgs, 2))
}
