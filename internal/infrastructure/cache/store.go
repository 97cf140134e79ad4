package cache

import (
	"context"
	"time"
)

// Store is a small TTL'd key-value cache. The gateway uses it for
// acquired bearer tokens and resolved workspace regions, both of
// which are expensive to fetch and safe to reuse until expiry.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value with the given TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
