// Package marketdata provides a bounded session cache for fetched market
// and financial data. Chart generation fetches the same (ticker, window)
// series repeatedly within one report; the cache keeps those fetches from
// hitting the network more than once, with explicit invalidation instead of
// process-wide memoization.
package marketdata

import (
	"container/list"
	"context"
	"sync"
)

// DefaultCapacity bounds a cache built with a non-positive capacity.
const DefaultCapacity = 128

// Key identifies one fetched series: a ticker symbol and a lookback window
// such as "1d" or "3mo".
type Key struct {
	Ticker string
	Window string
}

// FetchFunc loads the value for a key, typically over the network. It is
// only called on a cache miss.
type FetchFunc func(ctx context.Context, key Key) (any, error)

// Cache is a bounded LRU keyed by (ticker, window). Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[Key]*list.Element
	order    *list.List // front is most recently used
}

type entry struct {
	key   Key
	value any
}

// NewCache returns a cache holding at most capacity entries. A non-positive
// capacity falls back to DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[Key]*list.Element),
		order:    list.New(),
	}
}

// Fetch returns the cached value for key, calling fn to load it on a miss.
// Errors from fn are returned as-is and never cached, so a failed fetch is
// retried on the next call.
func (c *Cache) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		value := elem.Value.(*entry).value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	// The lock is not held across fn: a slow fetch must not block reads of
	// other keys. Concurrent misses on the same key may fetch twice; the
	// second result simply refreshes the entry.
	value, err := fn(ctx, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*entry).value = value
		c.order.MoveToFront(elem)
		return value, nil
	}
	c.entries[key] = c.order.PushFront(&entry{key: key, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
	return value, nil
}

// Invalidate drops the entry for key, if present.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
}

// InvalidateTicker drops every window cached for a ticker.
func (c *Cache) InvalidateTicker(ticker string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, elem := range c.entries {
		if key.Ticker == ticker {
			c.order.Remove(elem)
			delete(c.entries, key)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
