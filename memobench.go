// Package memobench compares an LRU cache and a splay tree as memo stores
// for two workloads: cached range sums over a mutable array and memoized
// Fibonacci numbers.
package memobench

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	infoLogger = log.New(io.Discard, "INFO: memobench: ", log.Ldate|log.Ltime)
)

// MemoBench runs the configured workloads. Every run creates its own cache
// and tree, nothing is shared between runs.
type MemoBench struct {
	name      string
	config    Config
	ns        []int
	chartPath string
	arrowPath string
	metrics   *Metrics
	logFile   *os.File
}

// New validates config and prepares a MemoBench instance. Metrics are
// registered on reg under the name as namespace; reg may be nil.
func New(ctx context.Context, config *Config, name string, reg prometheus.Registerer) (*MemoBench, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ns, err := Ns(config.NStart, config.NEnd, config.NStep)
	if err != nil {
		return nil, err
	}

	chartPath, err := ValidateOutputPath(config.ChartPath)
	if err != nil {
		return nil, fmt.Errorf("chart path: %w", err)
	}
	arrowPath, err := ValidateOutputPath(config.ArrowPath)
	if err != nil {
		return nil, fmt.Errorf("arrow path: %w", err)
	}

	infoLogger.SetOutput(os.Stdout)

	// create custom log target if needed
	logFile, err := CreateCustomLogTarget(ctx, infoLogger, name, config.LogFilePath)
	if err != nil {
		infoLogger.Printf("%s: error initializing log file: %v", name, err)
	}

	// output configuration of the instance
	if !config.SilentStartUp {
		printConfiguration(config, infoLogger)
	}

	return &MemoBench{
		name:      name,
		config:    *config,
		ns:        ns,
		chartPath: chartPath,
		arrowPath: arrowPath,
		metrics:   NewMetrics(name, reg),
		logFile:   logFile,
	}, nil
}

// Metrics returns the collectors the instance records into.
func (m *MemoBench) Metrics() *Metrics {
	return m.metrics
}

// RunFibonacci benchmarks FibonacciLRU against FibonacciSplay, writes the
// table to w and, when configured, the chart and the Arrow results file.
func (m *MemoBench) RunFibonacci(ctx context.Context, w io.Writer) (Result, error) {
	b := &Benchmark{
		Trials:    m.config.Trials,
		Ns:        m.ns,
		CacheSize: m.config.CacheSize,
		Metrics:   m.metrics,
		Logger:    infoLogger,
		Name:      m.name,
	}

	result, err := b.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("fibonacci benchmark: %w", err)
	}

	if err := WriteTable(w, result); err != nil {
		return result, fmt.Errorf("write table: %w", err)
	}

	if m.chartPath != "" {
		err := writeFileAtomic(m.chartPath, func(f *os.File) error {
			return RenderChart(f, result)
		})
		if err != nil {
			return result, fmt.Errorf("write chart: %w", err)
		}
		infoLogger.Printf("%s: chart written to %s", m.name, m.chartPath)
	}

	if m.arrowPath != "" {
		err := writeFileAtomic(m.arrowPath, func(f *os.File) error {
			return WriteResultsArrow(f, result)
		})
		if err != nil {
			return result, fmt.Errorf("write arrow results: %w", err)
		}
		infoLogger.Printf("%s: results written to %s", m.name, m.arrowPath)
	}

	return result, nil
}

// RunRangeSum generates a random array and query list from the configured
// seed and compares direct summation with the cached service.
func (m *MemoBench) RunRangeSum(ctx context.Context, w io.Writer) (WorkloadResult, error) {
	if err := ctx.Err(); err != nil {
		return WorkloadResult{}, err
	}

	seed := m.config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	infoLogger.Printf("%s: range-sum workload seed %d", m.name, seed)

	rng := rand.New(rand.NewPCG(seed, seed>>1))
	values := GenerateArray(rng, m.config.ArraySize, m.config.MaxValue)
	queries := GenerateQueries(rng, m.config.ArraySize, m.config.Queries, m.config.MaxValue)

	result, err := RunWorkload(values, queries, m.config.CacheSize, m.metrics)
	if err != nil {
		return result, fmt.Errorf("range-sum workload: %w", err)
	}

	_, err = fmt.Fprintf(w,
		"Execution time without caching: %.3f seconds\n"+
			"Execution time with LRU cache: %.3f seconds\n"+
			"cache hits: %d, misses: %d, invalidated entries: %d\n",
		result.NoCache.Seconds(), result.WithCache.Seconds(),
		result.Hits, result.Misses, result.Invalidated)
	return result, err
}
