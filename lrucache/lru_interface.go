package lrucache

// Cache defines the interface for the LRU cache
type Cache[K comparable, V any] interface {
	// Insert or overwrite a value and update the recent-ness. Returns true if an eviction occurred.
	Put(key K, value V) bool

	// Return a key's value if found in the cache and updates the recent-ness.
	Get(key K) (value V, ok bool)

	// Return a key's value without updating the recent-ness.
	Peek(key K) (value V, ok bool)

	// Check if a key exists without updating the recent-ness.
	Contains(key K) (ok bool)

	// Remove a key from the cache.
	Remove(key K) bool

	// Remove every entry whose key matches and return how many were removed.
	InvalidateMatching(match func(key K) bool) int

	// Return a slice which all keys ordered by newest to oldest.
	Keys() []K

	// Return number of entry in the cache.
	Length() int

	// Remove all entries form the cache.
	Purge()
}

var _ Cache[string, int] = (*LRUCache[string, int])(nil)
