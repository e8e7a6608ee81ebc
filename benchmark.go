package memobench

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"

	lru "github.com/PascalMinder/memobench/lrucache"
	"github.com/PascalMinder/memobench/splaytree"
)

const (
	ApproachLRU   = "lru"
	ApproachSplay = "splay"
)

// Measurement holds the average duration of one memoized Fibonacci call for
// each approach.
type Measurement struct {
	N     int
	LRU   time.Duration
	Splay time.Duration
}

// Result is the outcome of one benchmark run.
type Result struct {
	RunID        uuid.UUID
	Trials       int
	Measurements []Measurement
}

// Benchmark times FibonacciLRU against FibonacciSplay for every n in Ns.
// Each n gets a fresh cache and a fresh tree that then serve all Trials calls.
type Benchmark struct {
	Trials    int
	Ns        []int
	CacheSize int
	Metrics   *Metrics
	Logger    *log.Logger
	Name      string
}

// Ns returns start, start+step, ... up to and including end.
func Ns(start, end, step int) ([]int, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if end < start {
		return nil, fmt.Errorf("end %d is before start %d", end, start)
	}

	ns := make([]int, 0, (end-start)/step+1)
	for n := start; n <= end; n += step {
		ns = append(ns, n)
	}
	return ns, nil
}

// Run measures every n in order. A failing measurement is logged and skipped;
// a canceled context stops the run and returns what was measured so far.
func (b *Benchmark) Run(ctx context.Context) (Result, error) {
	result := Result{RunID: uuid.New(), Trials: b.Trials}

	if b.Trials <= 0 {
		return result, fmt.Errorf("trials must be positive, got %d", b.Trials)
	}
	if b.CacheSize < 1 {
		return result, lru.ErrInvalidSize
	}

	logger := b.Logger
	if logger == nil {
		logger = infoLogger
	}

	for _, n := range b.Ns {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		m, err := b.measure(n)
		if err != nil {
			b.Metrics.RecordFailedMeasurement()
			logger.Printf("%s: measurement for n=%d skipped: %v", b.Name, n, err)
			continue
		}
		result.Measurements = append(result.Measurements, m)
	}

	return result, nil
}

var errApproachMismatch = errors.New("approaches disagree")

func (b *Benchmark) measure(n int) (Measurement, error) {
	m := Measurement{N: n}

	cache, err := lru.NewLRUCache[int, *big.Int](b.CacheSize)
	if err != nil {
		return m, err
	}

	var lruValue *big.Int
	start := time.Now()
	for i := 0; i < b.Trials; i++ {
		if lruValue, err = FibonacciLRU(n, cache); err != nil {
			return m, err
		}
	}
	m.LRU = time.Since(start) / time.Duration(b.Trials)

	tree := splaytree.New[int, *big.Int]()

	var splayValue *big.Int
	start = time.Now()
	for i := 0; i < b.Trials; i++ {
		if splayValue, err = FibonacciSplay(n, tree); err != nil {
			return m, err
		}
	}
	m.Splay = time.Since(start) / time.Duration(b.Trials)

	if lruValue.Cmp(splayValue) != 0 {
		return m, fmt.Errorf("%w for n=%d: lru %s, splay %s", errApproachMismatch, n, lruValue, splayValue)
	}

	b.Metrics.RecordTrial(ApproachLRU, m.LRU)
	b.Metrics.RecordTrial(ApproachSplay, m.Splay)
	b.Metrics.SetRotations(tree.Rotations())

	return m, nil
}
