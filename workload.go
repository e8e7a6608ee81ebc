package memobench

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// QueryKind tells a range query from an update.
type QueryKind int

const (
	QueryRange QueryKind = iota
	QueryUpdate
)

func (k QueryKind) String() string {
	switch k {
	case QueryRange:
		return "Range"
	case QueryUpdate:
		return "Update"
	default:
		return "unknown"
	}
}

// Query is one step of the range-sum workload. Range queries use Left and
// Right; updates use Index and Value.
type Query struct {
	Kind  QueryKind
	Left  int
	Right int
	Index int
	Value int
}

// WorkloadResult compares a query list executed without and with the cache.
type WorkloadResult struct {
	Queries     int
	NoCache     time.Duration
	WithCache   time.Duration
	Hits        int
	Misses      int
	Invalidated int
}

// GenerateArray returns n random values in [1, maxValue].
func GenerateArray(rng *rand.Rand, n, maxValue int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = 1 + rng.IntN(maxValue)
	}
	return values
}

// GenerateQueries returns q queries over an array of length n, an even mix of
// range queries with left <= right and updates with values in [1, maxValue].
func GenerateQueries(rng *rand.Rand, n, q, maxValue int) []Query {
	queries := make([]Query, 0, q)
	for i := 0; i < q; i++ {
		if rng.IntN(2) == 0 {
			left := rng.IntN(n)
			right := left + rng.IntN(n-left)
			queries = append(queries, Query{Kind: QueryRange, Left: left, Right: right})
			continue
		}
		queries = append(queries, Query{
			Kind:  QueryUpdate,
			Index: rng.IntN(n),
			Value: 1 + rng.IntN(maxValue),
		})
	}
	return queries
}

// RunWorkload executes queries twice on independent copies of values, first
// by direct summation and then through a RangeSumService with a cache of
// cacheSize entries. Both passes must agree on every range answer.
func RunWorkload(values []int, queries []Query, cacheSize int, metrics *Metrics) (WorkloadResult, error) {
	result := WorkloadResult{Queries: len(queries)}

	direct := append([]int(nil), values...)
	answers := make([]int, 0, len(queries))

	start := time.Now()
	for i, q := range queries {
		switch q.Kind {
		case QueryRange:
			s, err := RangeSumNoCache(direct, q.Left, q.Right)
			if err != nil {
				return result, fmt.Errorf("query %d: %w", i, err)
			}
			answers = append(answers, s)
		case QueryUpdate:
			if err := UpdateNoCache(direct, q.Index, q.Value); err != nil {
				return result, fmt.Errorf("query %d: %w", i, err)
			}
		}
	}
	result.NoCache = time.Since(start)

	service, err := NewRangeSumService(values, cacheSize, nil)
	if err != nil {
		return result, err
	}

	answer := 0
	start = time.Now()
	for i, q := range queries {
		switch q.Kind {
		case QueryRange:
			s, hit, err := rangeSumWithCache(service.values, q.Left, q.Right, service.cache)
			if err != nil {
				return result, fmt.Errorf("query %d: %w", i, err)
			}
			if s != answers[answer] {
				return result, fmt.Errorf("query %d: cached sum of [%d, %d] is %d, direct sum is %d",
					i, q.Left, q.Right, s, answers[answer])
			}
			answer++
			if hit {
				result.Hits++
			} else {
				result.Misses++
			}
			metrics.RecordLookup(workloadRangeSum, hit)
		case QueryUpdate:
			removed, err := updateWithCache(service.values, q.Index, q.Value, service.cache)
			if err != nil {
				return result, fmt.Errorf("query %d: %w", i, err)
			}
			result.Invalidated += removed
			metrics.RecordUpdate(removed)
		}
	}
	result.WithCache = time.Since(start)

	return result, nil
}
