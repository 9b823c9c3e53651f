package core

import "context"

// ListBackend is a keyed list store with Redis list semantics:
// inclusive stop index, negative indices count from the tail.
type ListBackend interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	RPush(ctx context.Context, key string, values ...string) (int64, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	Del(ctx context.Context, key string) (int64, error)
}

type HistoryStore interface {
	ReadAll(ctx context.Context, userID string) ([]string, error)
	Messages(ctx context.Context, userID string) ([]Message, error)
	Append(ctx context.Context, userID, serialized string) error
	AppendMessage(ctx context.Context, userID string, msg Message) error
	Clear(ctx context.Context, userID string) error
}
