package cache

import (
	"context"
	"time"
)

// Store defines the interface for the transliteration memo store
type Store interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key for ttl (0 means no expiry)
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Health checks if the backend is reachable
	Health(ctx context.Context) error

	// Close releases the backend connection
	Close() error

	// Name identifies the backend in health output
	Name() string
}
