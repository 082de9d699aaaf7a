package cache

import (
	"context"
	"time"
)

// Cache is the advisory cache the photo resolver consults. Losing the cache
// must never change correctness, only performance; callers treat any error
// as a miss.
type Cache interface {
	// Set stores value under key with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value for key; (nil, nil) means absent
	Get(ctx context.Context, key string) ([]byte, error)
	// Remove deletes key; removing a missing key is not an error
	Remove(ctx context.Context, key string) error
	// GetMany returns the values for keys in one round trip. The result slice
	// is positional: result[i] is nil when keys[i] is absent.
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
}
