package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by navdir.
const KeyPrefix = "navdir:"

// Key returns the Redis key for a store key.
func Key(name string) string {
	return KeyPrefix + name
}

// Store implements kv.Store on plain Redis strings without expiry.
type Store struct {
	client *redis.Client
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves a value; redis.Nil is reported as absent, not as an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, Key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores a value with no TTL.
func (s *Store) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
