// Package cache provides a small in-memory TTL cache keyed by string.
package cache

import (
	"sync"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a concurrency-safe map whose entries expire after a TTL.
// Expired entries are invisible to Get and removed lazily or by DeleteExpired.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clock   timeutil.Clock
}

// New creates an empty cache. A nil clock uses the wall clock.
func New[T any](clock timeutil.Clock) *Cache[T] {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clock:   clock,
	}
}

// Get returns the value stored under key if it has not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if !c.clock.Now().Before(e.expiry) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiry.Equal(e.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiry: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}

// Touch extends a live entry's expiry to now+ttl. It reports false if the key
// is absent or already expired.
func (c *Cache[T]) Touch(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	e, ok := c.entries[key]
	if !ok || !now.Before(e.expiry) {
		return false
	}
	e.expiry = now.Add(ttl)
	c.entries[key] = e
	return true
}

// Delete removes key and returns the value it held, expired or not.
func (c *Cache[T]) Delete(key string) (T, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()
	return e.value, ok
}

// DeleteExpired removes every expired entry and returns the removed values.
func (c *Cache[T]) DeleteExpired() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	var evicted []T
	for key, e := range c.entries {
		if !now.Before(e.expiry) {
			evicted = append(evicted, e.value)
			delete(c.entries, key)
		}
	}
	return evicted
}

// Len returns the number of stored entries, including expired ones not yet removed.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
