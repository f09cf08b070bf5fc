// Package metrics records host crossings, resolutions and batch outcomes as
// Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Host crossing metrics
	NativeCallsTotal   *prometheus.CounterVec
	NativeCallDuration *prometheus.HistogramVec

	// Resolution metrics
	ResolutionsTotal *prometheus.CounterVec

	// Batch metrics
	BatchesTotal     *prometheus.CounterVec
	BatchItemsTotal  *prometheus.CounterVec
	BatchFailures    *prometheus.CounterVec
	TruncationsTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with registry.
// A nil registry leaves them unregistered, which is useful in tests. When
// registry already holds metrics from an earlier NewMetrics, for example
// after the extension was reloaded, those are reused.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		NativeCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_native_calls_total",
				Help: "Total number of calls into the host, by operation",
			},
			[]string{"op"},
		),
		NativeCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reaper_bridge_native_call_duration_seconds",
				Help:    "Host call duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"op"},
		),
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_resolutions_total",
				Help: "Total number of entry point lookups, by result",
			},
			[]string{"result"},
		),
		BatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_batches_total",
				Help: "Total number of completed batches",
			},
			[]string{"kind"},
		),
		BatchItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_batch_items_total",
				Help: "Total number of items processed by batches",
			},
			[]string{"kind"},
		),
		BatchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_batch_item_failures_total",
				Help: "Total number of batch items the host did not accept",
			},
			[]string{"kind"},
		),
		TruncationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reaper_bridge_batch_truncations_total",
				Help: "Total number of batches clipped to the caller's capacity",
			},
			[]string{"kind"},
		),
	}

	if registry != nil {
		m.NativeCallsTotal = register(registry, m.NativeCallsTotal)
		m.NativeCallDuration = register(registry, m.NativeCallDuration)
		m.ResolutionsTotal = register(registry, m.ResolutionsTotal)
		m.BatchesTotal = register(registry, m.BatchesTotal)
		m.BatchItemsTotal = register(registry, m.BatchItemsTotal)
		m.BatchFailures = register(registry, m.BatchFailures)
		m.TruncationsTotal = register(registry, m.TruncationsTotal)
	}

	return m
}

// ObserveCall records one host crossing.
func (m *Metrics) ObserveCall(op string, elapsed time.Duration) {
	m.NativeCallsTotal.WithLabelValues(op).Inc()
	m.NativeCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveResolution records one capability table lookup.
func (m *Metrics) ObserveResolution(_ string, result string) {
	m.ResolutionsTotal.WithLabelValues(result).Inc()
}

// ObserveBatch records a completed batch.
func (m *Metrics) ObserveBatch(kind string, items, failures int) {
	m.BatchesTotal.WithLabelValues(kind).Inc()
	m.BatchItemsTotal.WithLabelValues(kind).Add(float64(items))
	m.BatchFailures.WithLabelValues(kind).Add(float64(failures))
}

// ObserveTruncation records a batch whose output was clipped.
func (m *Metrics) ObserveTruncation(kind string) {
	m.TruncationsTotal.WithLabelValues(kind).Inc()
}

// register adds c to registry. If an identical collector is already
// registered it is returned instead, so both callers share one series.
func register[C prometheus.Collector](registry prometheus.Registerer, c C) C {
	err := registry.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	return c
}
