// Package lrucache provides a capacity bounded LRU cache with a predicate
// based invalidation sweep.
package lrucache

import (
	"container/list"
	"errors"
)

// ErrInvalidSize is returned by NewLRUCache for a capacity below one.
var ErrInvalidSize = errors.New("cache size must be at least 1")

// LRUCache is a fixed capacity key/value store ordered by recency.
//
// It is not safe for concurrent use.
type LRUCache[K comparable, V any] struct {
	size      int
	evictList *list.List
	items     map[K]*list.Element
}

// Entry struct containing key value pair to represent a cache entry
type cacheEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRUCache constructs a new cache instance holding at most size entries.
func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &LRUCache[K, V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}, nil
}

// Put inserts or overwrites the value for key and marks it most recently used.
// Returns true if the least recently used entry was evicted to make room.
func (c *LRUCache[K, V]) Put(key K, value V) (evicted bool) {
	// update existing
	if e, ok := c.items[key]; ok {
		c.evictList.MoveToFront(e)
		e.Value.(*cacheEntry[K, V]).value = value
		return false
	}

	// evict before inserting so the key count never exceeds size
	if c.evictList.Len() >= c.size {
		c.removeOldest()
		evicted = true
	}

	entry := c.evictList.PushFront(&cacheEntry[K, V]{key, value})
	c.items[key] = entry
	return evicted
}

// Get returns the value for key and marks it most recently used.
// A miss returns the zero value and false and leaves the cache untouched.
func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	e, ok := c.items[key]
	if !ok {
		return value, false
	}

	// move to MRU
	c.evictList.MoveToFront(e)
	return e.Value.(*cacheEntry[K, V]).value, true
}

// Peek returns the value for key without updating the recent-ness.
func (c *LRUCache[K, V]) Peek(key K) (value V, ok bool) {
	e, ok := c.items[key]
	if !ok {
		return value, false
	}
	return e.Value.(*cacheEntry[K, V]).value, true
}

func (c *LRUCache[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

func (c *LRUCache[K, V]) Remove(key K) bool {
	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(e)
	return true
}

// InvalidateMatching removes every entry whose key satisfies match and
// returns the number of removed entries. The sweep visits each cached key
// once; recency of the surviving entries is unchanged.
func (c *LRUCache[K, V]) InvalidateMatching(match func(key K) bool) int {
	removed := 0
	for e := c.evictList.Front(); e != nil; {
		next := e.Next()
		if match(e.Value.(*cacheEntry[K, V]).key) {
			c.removeElement(e)
			removed++
		}
		e = next
	}
	return removed
}

// Keys returns keys in MRU -> LRU order (does not change recency).
func (c *LRUCache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for e := c.evictList.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*cacheEntry[K, V]).key)
	}
	return keys
}

func (c *LRUCache[K, V]) Length() int {
	return c.evictList.Len()
}

// Capacity returns the configured maximum number of entries.
func (c *LRUCache[K, V]) Capacity() int {
	return c.size
}

func (c *LRUCache[K, V]) Purge() {
	clear(c.items)
	c.evictList.Init()
}

func (c *LRUCache[K, V]) removeOldest() {
	if e := c.evictList.Back(); e != nil {
		c.removeElement(e)
	}
}

func (c *LRUCache[K, V]) removeElement(entry *list.Element) {
	c.evictList.Remove(entry)
	e := entry.Value.(*cacheEntry[K, V])
	delete(c.items, e.key)
}

// Pair is a key/value copy returned by Snapshot.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Snapshot returns a copy of the cache contents in MRU -> LRU order.
// It does NOT change recency.
func (c *LRUCache[K, V]) Snapshot() []Pair[K, V] {
	entries := make([]Pair[K, V], 0, c.evictList.Len())
	for e := c.evictList.Front(); e != nil; e = e.Next() {
		ent := e.Value.(*cacheEntry[K, V])
		entries = append(entries, Pair[K, V]{Key: ent.key, Value: ent.value})
	}
	return entries
}
