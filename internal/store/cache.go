// Package store provides a bounded in-memory cache for lookup results.
package store

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a thread-safe LRU cache keyed by the original link URL. It keeps
// repeat links in busy chats from re-hitting the aggregation API; nothing is
// persisted across restarts.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New creates a cache holding at most size entries.
func New[V any](size int) (*Cache[V], error) {
	inner, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: inner}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Add stores a value for key, evicting the least recently used entry when full.
func (c *Cache[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
