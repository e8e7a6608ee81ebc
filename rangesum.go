package memobench

import (
	"fmt"

	lru "github.com/PascalMinder/memobench/lrucache"
)

const workloadRangeSum = "rangesum"

// Range is the cache key of a range sum, both bounds inclusive.
type Range struct {
	Left  int
	Right int
}

// Contains reports whether index lies within the range.
func (r Range) Contains(index int) bool {
	return r.Left <= index && index <= r.Right
}

// RangeSumNoCache returns the sum of array[left..right].
func RangeSumNoCache(array []int, left, right int) (int, error) {
	if err := checkRange(array, left, right); err != nil {
		return 0, err
	}
	return sum(array, left, right), nil
}

// UpdateNoCache sets array[index] to value.
func UpdateNoCache(array []int, index, value int) error {
	if err := checkUpdate(array, index, value); err != nil {
		return err
	}
	array[index] = value
	return nil
}

// RangeSumWithCache returns the sum of array[left..right], serving it from
// cache when the same range was computed before and not invalidated since.
func RangeSumWithCache(array []int, left, right int, cache *lru.LRUCache[Range, int]) (int, error) {
	s, _, err := rangeSumWithCache(array, left, right, cache)
	return s, err
}

// UpdateWithCache sets array[index] to value and drops every cached range
// that covers index.
func UpdateWithCache(array []int, index, value int, cache *lru.LRUCache[Range, int]) error {
	_, err := updateWithCache(array, index, value, cache)
	return err
}

func rangeSumWithCache(array []int, left, right int, cache *lru.LRUCache[Range, int]) (s int, hit bool, err error) {
	if err := checkRange(array, left, right); err != nil {
		return 0, false, err
	}

	key := Range{Left: left, Right: right}
	if s, ok := cache.Get(key); ok {
		return s, true, nil
	}

	s = sum(array, left, right)
	cache.Put(key, s)
	return s, false, nil
}

func updateWithCache(array []int, index, value int, cache *lru.LRUCache[Range, int]) (int, error) {
	if err := UpdateNoCache(array, index, value); err != nil {
		return 0, err
	}
	return cache.InvalidateMatching(func(r Range) bool {
		return r.Contains(index)
	}), nil
}

func checkRange(array []int, left, right int) error {
	if left > right || left < 0 || right >= len(array) {
		return fmt.Errorf("%w: [%d, %d] for array of length %d", ErrInvalidRange, left, right, len(array))
	}
	return nil
}

func checkUpdate(array []int, index, value int) error {
	if index < 0 || index >= len(array) {
		return fmt.Errorf("%w: %d for array of length %d", ErrIndexOutOfRange, index, len(array))
	}
	if value <= 0 {
		return fmt.Errorf("%w: %d is not a positive integer", ErrInvalidValue, value)
	}
	return nil
}

func sum(array []int, left, right int) int {
	s := 0
	for _, v := range array[left : right+1] {
		s += v
	}
	return s
}

// RangeSumService owns an integer array together with the cache of range
// sums computed over it.
type RangeSumService struct {
	values  []int
	cache   *lru.LRUCache[Range, int]
	metrics *Metrics
}

// NewRangeSumService copies values and creates a cache of cacheSize entries.
// metrics may be nil.
func NewRangeSumService(values []int, cacheSize int, metrics *Metrics) (*RangeSumService, error) {
	cache, err := lru.NewLRUCache[Range, int](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create range cache: %w", err)
	}

	return &RangeSumService{
		values:  append([]int(nil), values...),
		cache:   cache,
		metrics: metrics,
	}, nil
}

// Sum returns the sum of the values in [left, right].
func (s *RangeSumService) Sum(left, right int) (int, error) {
	total, hit, err := rangeSumWithCache(s.values, left, right, s.cache)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordLookup(workloadRangeSum, hit)
	return total, nil
}

// Update sets the value at index and invalidates the cached sums covering it.
func (s *RangeSumService) Update(index, value int) error {
	removed, err := updateWithCache(s.values, index, value, s.cache)
	if err != nil {
		return err
	}
	s.metrics.RecordUpdate(removed)
	return nil
}

// Len returns the length of the owned array.
func (s *RangeSumService) Len() int {
	return len(s.values)
}

// Value returns the element at index.
func (s *RangeSumService) Value(index int) (int, error) {
	if index < 0 || index >= len(s.values) {
		return 0, fmt.Errorf("%w: %d for array of length %d", ErrIndexOutOfRange, index, len(s.values))
	}
	return s.values[index], nil
}

// CachedRanges returns the cached keys, most recently used first.
func (s *RangeSumService) CachedRanges() []Range {
	return s.cache.Keys()
}
