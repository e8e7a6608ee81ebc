package memobench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a memobench instance.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Cache metrics
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations prometheus.Counter
	RangeUpdates       prometheus.Counter

	// Benchmark metrics
	TrialDuration      *prometheus.HistogramVec
	MeasurementsFailed prometheus.Counter
	SplayRotations     prometheus.Gauge
}

// NewMetrics creates the collectors under namespace and registers them on
// reg. A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Memo lookups answered from the cache, by workload",
		}, []string{"workload"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Memo lookups that had to be computed, by workload",
		}, []string{"workload"}),
		CacheInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidated_entries_total",
			Help:      "Cached range sums dropped because an update touched them",
		}),
		RangeUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_updates_total",
			Help:      "Array updates applied by the range-sum service",
		}),

		TrialDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_duration_seconds",
			Help:      "Average duration of one benchmark call, by approach",
			Buckets:   prometheus.ExponentialBuckets(1e-8, 4, 12),
		}, []string{"approach"}),
		MeasurementsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_failed_total",
			Help:      "Benchmark measurements skipped because of an error",
		}),
		SplayRotations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "splay_rotations",
			Help:      "Rotations performed by the splay tree of the last measurement",
		}),
	}
}

// RecordLookup records a memo lookup for workload.
func (m *Metrics) RecordLookup(workload string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues(workload).Inc()
	} else {
		m.CacheMisses.WithLabelValues(workload).Inc()
	}
}

// RecordUpdate records an array update that invalidated removed cache entries.
func (m *Metrics) RecordUpdate(removed int) {
	if m == nil {
		return
	}
	m.RangeUpdates.Inc()
	m.CacheInvalidations.Add(float64(removed))
}

// RecordTrial records the average call duration of approach.
func (m *Metrics) RecordTrial(approach string, d time.Duration) {
	if m == nil {
		return
	}
	m.TrialDuration.WithLabelValues(approach).Observe(d.Seconds())
}

// RecordFailedMeasurement counts a skipped measurement.
func (m *Metrics) RecordFailedMeasurement() {
	if m == nil {
		return
	}
	m.MeasurementsFailed.Inc()
}

// SetRotations publishes the rotation count of a splay tree.
func (m *Metrics) SetRotations(n uint64) {
	if m == nil {
		return
	}
	m.SplayRotations.Set(float64(n))
}
