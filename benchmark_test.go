package memobench_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/PascalMinder/memobench"
)

func TestNs(t *testing.T) {
	ns, err := memobench.Ns(0, 950, 50)
	if err != nil {
		t.Fatalf("Ns() error = %v", err)
	}
	if len(ns) != 20 || ns[0] != 0 || ns[19] != 950 {
		t.Errorf("Ns(0, 950, 50) = %v", ns)
	}

	ns, _ = memobench.Ns(3, 10, 4)
	if diff := cmp.Diff([]int{3, 7}, ns); diff != "" {
		t.Errorf("Ns(3, 10, 4) mismatch (-want +got):\n%s", diff)
	}

	if _, err := memobench.Ns(0, 10, 0); err == nil {
		t.Errorf("Ns() with step 0 error = nil")
	}
	if _, err := memobench.Ns(10, 0, 1); err == nil {
		t.Errorf("Ns() with end before start error = nil")
	}
}

func TestBenchmarkRun(t *testing.T) {
	metrics := memobench.NewMetrics("test", prometheus.NewRegistry())
	b := &memobench.Benchmark{
		Trials:    5,
		Ns:        []int{0, 10, 100},
		CacheSize: 16,
		Metrics:   metrics,
	}

	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.RunID == uuid.Nil {
		t.Errorf("Run() left RunID empty")
	}
	if result.Trials != 5 {
		t.Errorf("Trials = %v, want %v", result.Trials, 5)
	}

	var got []int
	for _, m := range result.Measurements {
		got = append(got, m.N)
		if m.LRU < 0 || m.Splay < 0 {
			t.Errorf("measurement for n=%d has negative duration: %+v", m.N, m)
		}
	}
	if diff := cmp.Diff([]int{0, 10, 100}, got); diff != "" {
		t.Errorf("measured ns mismatch (-want +got):\n%s", diff)
	}

	if n := testutil.CollectAndCount(metrics.TrialDuration); n != 2 {
		t.Errorf("trial duration series = %v, want %v", n, 2)
	}
	if got := testutil.ToFloat64(metrics.SplayRotations); got <= 0 {
		t.Errorf("splay rotations = %v, want > 0", got)
	}
}

func TestBenchmarkRunSkipsFailedMeasurement(t *testing.T) {
	var logs bytes.Buffer
	metrics := memobench.NewMetrics("test", nil)
	b := &memobench.Benchmark{
		Trials:    2,
		Ns:        []int{5, -1, 6},
		CacheSize: 4,
		Metrics:   metrics,
		Logger:    log.New(&logs, "", 0),
		Name:      "bench",
	}

	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Measurements) != 2 || result.Measurements[1].N != 6 {
		t.Errorf("Measurements = %+v, want n=5 and n=6", result.Measurements)
	}
	if !strings.Contains(logs.String(), "bench: measurement for n=-1 skipped") {
		t.Errorf("missing skip log line, got %q", logs.String())
	}
	if got := testutil.ToFloat64(metrics.MeasurementsFailed); got != 1 {
		t.Errorf("failed measurements = %v, want %v", got, 1)
	}
}

func TestBenchmarkRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &memobench.Benchmark{Trials: 1, Ns: []int{1, 2}, CacheSize: 4}

	result, err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	if len(result.Measurements) != 0 {
		t.Errorf("Measurements = %+v, want none", result.Measurements)
	}
}

func TestBenchmarkRunInvalidSettings(t *testing.T) {
	if _, err := (&memobench.Benchmark{Trials: 0, CacheSize: 4}).Run(context.Background()); err == nil {
		t.Errorf("Run() with zero trials error = nil")
	}
	if _, err := (&memobench.Benchmark{Trials: 1, CacheSize: 0}).Run(context.Background()); err == nil {
		t.Errorf("Run() with zero cache size error = nil")
	}
}

func BenchmarkMeasurement_500(b *testing.B) {
	benchmarkMeasurement(b, 500)
}

func BenchmarkMeasurement_950(b *testing.B) {
	benchmarkMeasurement(b, 950)
}

func benchmarkMeasurement(b *testing.B, n int) {
	bench := &memobench.Benchmark{Trials: 10, Ns: []int{n}, CacheSize: 1000}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := bench.Run(context.Background()); err != nil {
			b.Fatalf("Run() error = %v", err)
		}
	}
}
