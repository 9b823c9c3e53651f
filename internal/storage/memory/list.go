// Package memory provides an in-process list backend, interchangeable with
// the remote KV store for environments where no backend is available.
package memory

import (
	"context"
	"sync"

	"github.com/sandevgo/tuskchat/pkg/listidx"
)

type ListStore struct {
	mu    sync.RWMutex
	lists map[string][]string
}

func NewListStore() *ListStore {
	return &ListStore{
		lists: make(map[string][]string),
	}
}

func (s *ListStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	from, to, ok := listidx.Bounds(start, stop, int64(len(list)))
	if !ok {
		return []string{}, nil
	}

	// Copy so callers cannot mutate stored entries
	out := make([]string, to-from)
	copy(out, list[from:to])
	return out, nil
}

func (s *ListStore) RPush(_ context.Context, key string, values ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[key] = append(s.lists[key], values...)
	return int64(len(s.lists[key])), nil
}

func (s *ListStore) LTrim(_ context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, exists := s.lists[key]
	if !exists {
		return nil
	}

	from, to, ok := listidx.Bounds(start, stop, int64(len(list)))
	if !ok {
		// Redis removes the key when the trimmed list is empty
		delete(s.lists, key)
		return nil
	}

	trimmed := make([]string, to-from)
	copy(trimmed, list[from:to])
	s.lists[key] = trimmed
	return nil
}

func (s *ListStore) Del(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[key]; !ok {
		return 0, nil
	}
	delete(s.lists, key)
	return 1, nil
}
