// Package memory is an in-process kv.Store. Data is lost on restart; it is
// the default backend for local use and the fake used by tests.
package memory

import (
	"context"
	"sync"
)

// Store keeps values in a map guarded by a RWMutex.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

// New creates an empty store, optionally seeded with initial values.
func New(seed map[string]string) *Store {
	items := make(map[string]string, len(seed))
	for k, v := range seed {
		items[k] = v
	}
	return &Store{items: items}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
