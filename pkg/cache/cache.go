// Package cache provides the caching layer used by the layout pipeline.
//
// Computed charts and exported artifacts are stored as opaque byte slices
// under keys produced by a [Keyer]. Three backends are available:
//
//   - [FileCache]: entry files on local disk, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// All backends implement [Cache] and are safe for concurrent use.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// Default lifetimes for cached values.
const (
	// TTLChart is how long a computed chart stays valid. Charts are a pure
	// function of their inputs, so this only bounds disk usage.
	TTLChart = 7 * 24 * time.Hour

	// TTLArtifact is how long an exported artifact stays valid.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores byte slices by key.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers in this module treat them as misses after logging.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache discards writes and misses on every read. It backs --no-cache
// and the fallback when Redis cannot be reached.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
