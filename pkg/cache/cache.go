// Package cache stores solved slideshows so repeated runs over the same input
// and seed can skip the sequencer.
//
// # Backends
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files, for the CLI
//   - [RedisCache] keeps entries in Redis, for the HTTP server
//
// # Keys
//
// A [Keyer] builds cache keys from an input fingerprint and the options that
// affect the result. [ScopedKeyer] prefixes every key with a namespace so
// several deployments can share one Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLResult is how long a solved slideshow stays cached.
const TTLResult = 30 * 24 * time.Hour

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that is always empty.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
