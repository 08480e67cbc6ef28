package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ecoscan/backend/internal/domain"
)

// DefaultCleanupInterval is how often expired analyses are swept
const DefaultCleanupInterval = time.Minute

// entry is one serialized analysis and its deadline
type entry struct {
	value      []byte
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are copied in and out so callers can never mutate a stored entry.
type MemoryCache struct {
	data      map[string]entry
	mu        sync.RWMutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop.
// A non-positive interval uses DefaultCleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	cache := &MemoryCache{
		data: make(map[string]entry),
		stop: make(chan struct{}),
	}

	go cache.janitor(cleanupInterval)

	return cache
}

// Get returns a copy of the live value stored under key, or ErrCacheMiss
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || time.Now().After(e.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return clone(e.value), nil
}

// Set stores a copy of value for ttl; ttl must be positive
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return domain.ErrInvalidRequest
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = entry{
		value:      clone(value),
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete drops key; missing keys are not an error
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

// Exists reports whether key holds a live value
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	return ok && !time.Now().After(e.expiration), nil
}

// Close stops the cleanup loop. The cache stays usable afterwards.
func (c *MemoryCache) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
}

// janitor sweeps expired entries until Close
func (c *MemoryCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *MemoryCache) removeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.data {
		if now.After(e.expiration) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Size counts stored entries, expired ones included until the next sweep
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear empties the cache
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]entry)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
