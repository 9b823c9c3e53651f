// Package history persists one bounded, ordered conversation log per user.
//
// Entries are serialized messages kept in a keyed list. Every append is
// followed by a trim to the most recent entries, so the oldest are evicted
// first and the log never exceeds the retention limit.
package history

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/log"
)

// DefaultLimit is the retention window: entries kept per user.
const DefaultLimit = 50

type Store struct {
	backend core.ListBackend
	limit   int64
}

type Option func(*Store)

// WithLimit overrides the retention window. Non-positive values are ignored.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = int64(limit)
		}
	}
}

func NewStore(backend core.ListBackend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the list key that holds a user's history.
func Key(userID string) string {
	return "user:" + userID + ":history"
}

func (s *Store) Limit() int {
	return int(s.limit)
}

// ReadAll returns every stored entry in insertion order.
// A user without history gets an empty slice.
func (s *Store) ReadAll(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}

	entries, err := s.backend.LRange(ctx, Key(userID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: read history: %w", core.ErrStorageUnavailable, err)
	}
	if entries == nil {
		entries = []string{}
	}

	log.FromCtx(ctx).Debug().Int("count", len(entries)).Msg("loaded history entries")
	return entries, nil
}

// Messages reads the log and decodes it. Entries that fail to decode are
// replaced by a placeholder so one bad entry never hides the rest.
func (s *Store) Messages(ctx context.Context, userID string) ([]core.Message, error) {
	entries, err := s.ReadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DecodeAll(ctx, entries), nil
}

// Append adds a serialized entry at the tail and enforces the retention window.
func (s *Store) Append(ctx context.Context, userID, serialized string) error {
	if userID == "" {
		return core.ErrEmptyUserID
	}

	key := Key(userID)
	n, err := s.backend.RPush(ctx, key, serialized)
	if err != nil {
		return fmt.Errorf("%w: append history: %w", core.ErrStorageUnavailable, err)
	}

	if err := s.backend.LTrim(ctx, key, -s.limit, -1); err != nil {
		return fmt.Errorf("%w: trim history: %w", core.ErrStorageUnavailable, err)
	}

	log.FromCtx(ctx).Debug().Int64("length", min(n, s.limit)).Msg("appended history entry")
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, userID string, msg core.Message) error {
	serialized, err := Encode(msg)
	if err != nil {
		return err
	}
	return s.Append(ctx, userID, serialized)
}

// Clear removes the whole log. Clearing a missing log succeeds.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return core.ErrEmptyUserID
	}

	removed, err := s.backend.Del(ctx, Key(userID))
	if err != nil {
		return fmt.Errorf("%w: clear history: %w", core.ErrStorageUnavailable, err)
	}

	log.FromCtx(ctx).Debug().Int64("removed", removed).Msg("cleared history")
	return nil
}
