// Package chat runs one conversation turn at a time: it records the user
// turn, asks the model for a reply and records the reply.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/log"
)

// DefaultContextTurns is how many stored turns accompany each prompt.
const DefaultContextTurns = 5

type Service struct {
	store        core.HistoryStore
	ai           core.AIProvider
	contextTurns int
	tokens       core.TokenCounter
}

type Option func(*Service)

func WithContextTurns(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.contextTurns = n
		}
	}
}

// WithTokenCounter enables prompt size logging.
func WithTokenCounter(c core.TokenCounter) Option {
	return func(s *Service) {
		s.tokens = c
	}
}

func NewService(store core.HistoryStore, ai core.AIProvider, opts ...Option) *Service {
	s := &Service{
		store:        store,
		ai:           ai,
		contextTurns: DefaultContextTurns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// History returns the decoded log for display.
func (s *Service) History(ctx context.Context, userID string) ([]core.Message, error) {
	return s.store.Messages(ctx, userID)
}

// Send records the user turn, generates a reply and records it.
// When generation fails the reply is not stored; the user turn stays.
func (s *Service) Send(ctx context.Context, userID, input string) (core.Message, error) {
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(input) == "" {
		return core.Message{}, core.ErrEmptyInput
	}

	history, err := s.store.Messages(ctx, userID)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to load history: %w", err)
	}

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	if err := s.store.AppendMessage(ctx, userID, userMsg); err != nil {
		return core.Message{}, fmt.Errorf("failed to save user message: %w", err)
	}

	prompt := BuildPrompt(lastTurns(history, s.contextTurns), input)
	if s.tokens != nil {
		logger.Debug().Int("tokens", s.tokens.Count(prompt)).Msg("prompt built")
	}

	response, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return core.Message{}, fmt.Errorf("%w: %w", core.ErrInference, err)
	}
	if strings.TrimSpace(response) == "" {
		return core.Message{}, fmt.Errorf("%w: no response generated", core.ErrInference)
	}

	assistantMsg := core.Message{Role: core.RoleAssistant, Content: response}
	if err := s.store.AppendMessage(ctx, userID, assistantMsg); err != nil {
		return assistantMsg, fmt.Errorf("failed to save assistant message: %w", err)
	}

	logger.Debug().Int("response_len", len(response)).Msg("turn completed")
	return assistantMsg, nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func lastTurns(history []core.Message, n int) []core.Message {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}
