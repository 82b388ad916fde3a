// Package cache wraps the Redis cache and pub/sub broker behind a small
// byte-oriented interface so the service layer never sees a redis client.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the key/value and pub/sub abstraction consumed by the service
// layer. Values are raw bytes; callers marshal/unmarshal as needed.
type Cache interface {
	// Get returns the value at key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores value at key with automatic expiry.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeleteByPattern removes every key matching any of the glob patterns.
	// Best effort: partial failure leaves entries to expire via TTL.
	DeleteByPattern(ctx context.Context, patterns ...string) error
	// Publish broadcasts payload on the named channel. At-most-once.
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}

// FirstPageKey derives the cache key holding the first-page snapshot for an
// owner. Keeping key construction in one place stops schemes drifting apart
// between the read and invalidation paths.
func FirstPageKey(prefix string, creatorID int64) string {
	return fmt.Sprintf("%s:%d", prefix, creatorID)
}

// OwnerPatterns returns the glob patterns covering every cache entry that
// belongs to one owner: the first-page key itself plus any windowed keys a
// future scheme may add under it. The ":" separator keeps creator 1 from
// matching creator 10.
func OwnerPatterns(prefix string, creatorID int64) []string {
	base := FirstPageKey(prefix, creatorID)
	return []string{base, base + ":*"}
}
