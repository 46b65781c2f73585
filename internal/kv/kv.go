// Package kv defines the key-value contract the store accessor is built on.
//
// Backends are not required to be strongly consistent: a Put followed by a
// Get may still observe the previous value. Both operations may fail
// transiently.
package kv

import "context"

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}
