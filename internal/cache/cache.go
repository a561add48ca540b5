// Package cache provides a bounded in-memory TTL cache for list data.
//
// Entries expire after a fixed TTL and refreshes of expired entries are
// throttled with a rate limiter: when the limiter denies a refresh and a
// stale value is still present, the stale value is served instead of hitting
// the backing store again.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/quietriver/kino/internal/shared"
)

// Loader fetches a fresh value for a cache key from the backing store.
type Loader[V any] func() (V, error)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a mutex-guarded expiring map with a fixed entry bound. The zero
// value is not usable; construct with [New].
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	limiter    *rate.Limiter
	logger     *log.Logger
}

// New creates a Cache from the shared cache configuration. A nil logger
// defaults to the shared stderr logger.
func New[V any](cfg shared.CacheConfig, logger *log.Logger) *Cache[V] {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1024
	}

	refresh := cfg.RefreshPerSecond
	if refresh <= 0 {
		refresh = 5.0
	}

	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		limiter:    rate.NewLimiter(rate.Limit(refresh), 1),
		logger:     shared.WithLogger(logger, "component", "cache"),
	}
}

// Get returns the cached value for key, loading it with load on a miss or
// after expiry. An expired entry whose refresh the limiter denies is served
// stale rather than reloaded.
func (c *Cache[V]) Get(key string, load Loader[V]) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	e, ok := c.entries[key]
	if ok && now.Before(e.expiresAt) {
		return e.value, nil
	}

	// every load draws on the limiter, but only refreshes can fall back to a
	// stale value; true misses always hit the store
	if !c.limiter.Allow() && ok {
		c.logger.Debug("refresh throttled, serving stale entry", "key", key)
		return e.value, nil
	}

	value, err := load()
	if err != nil {
		var zero V
		return zero, fmt.Errorf("failed to load %q: %w", key, err)
	}

	c.set(key, value, now)
	return value, nil
}

// Invalidate drops the entry for key, if present.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of live entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// set stores a value, evicting to stay within the entry bound. Callers hold
// the mutex.
func (c *Cache[V]) set(key string, value V, now time.Time) {
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// evict removes expired entries, falling back to the entry closest to expiry
// when nothing has expired yet. Callers hold the mutex.
func (c *Cache[V]) evict(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
		dropped   bool
	)

	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			dropped = true
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
		}
	}

	if !dropped && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
