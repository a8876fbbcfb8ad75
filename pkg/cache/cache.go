// Package cache stores analysis results keyed by graph content so repeated
// runs over the same graph skip the orderers.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [MemoryCache]: process-local map, for tests and short-lived servers
//   - [NullCache]: stores nothing; caching disabled
//
// # Keys
//
// A [Keyer] turns a graph hash plus the options that influence a result into
// a cache key. [DefaultKeyer] hashes the options, so any change to them
// produces a fresh key. Wrap it in a [ScopedKeyer] to isolate namespaces.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries. Results depend only on graph content
// and options, so entries stay valid until evicted.
const (
	TTLReport   = 7 * 24 * time.Hour
	TTLOrdering = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get returns hit=false with a nil error on a miss. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
