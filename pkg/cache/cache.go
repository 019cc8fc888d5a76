// Package cache wraps a TTL key/value store as a best-effort memoization
// layer. The cache is an optimization, never a dependency for correctness:
// every backend failure is swallowed and treated as a miss, and a nil *Cache
// degrades every operation to a no-op so callers always fall through to
// direct computation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrMiss signals that a key is absent from the backend.
var ErrMiss = errors.New("cache: miss")

// Store is the minimal get/set/delete-with-TTL port the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache memoizes JSON-serializable values and counts hits and misses.
type Cache struct {
	store Store
	log   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// New builds a Cache over a store. A nil logger falls back to slog.Default.
func New(store Store, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{store: store, log: log}
}

// GetJSON reads key and unmarshals it into dst. It returns false on a miss,
// a backend error or a corrupt entry; a corrupt entry is also deleted so it
// cannot shadow a recomputation.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil || c.store == nil {
		return false
	}
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("cache read failed, falling through", "key", key, "err", err)
		}
		c.misses.Add(1)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "err", err)
		_ = c.store.Del(ctx, key)
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

// SetJSON stores v under key with a TTL. Failures are logged and swallowed.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil || c.store == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", key, "err", err)
		return
	}
	if err := c.store.Set(ctx, key, string(raw), ttl); err != nil {
		c.log.Warn("cache write failed", "key", key, "err", err)
	}
}

// Invalidate deletes keys immediately, ahead of their TTL. Used when a
// dependent entity changes (e.g. a posting's counters move).
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.store == nil || len(keys) == 0 {
		return
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.log.Warn("cache invalidation failed", "keys", keys, "err", err)
	}
}

// Stats reports hit/miss counters since startup.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
