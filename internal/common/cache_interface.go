package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations.
// Values are stored JSON-encoded so every backend round-trips the same types.
type CacheInterface interface {
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get decodes the value stored under key into dest.
	// Returns false when the key is absent or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
