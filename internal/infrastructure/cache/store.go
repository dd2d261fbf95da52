package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-key expiration
type Store interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Get returns the value and whether the key was present and unexpired
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
