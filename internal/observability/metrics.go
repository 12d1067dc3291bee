package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// explorer engine.
type Metrics struct {
	RowsLoaded   prometheus.Counter
	RowsRejected *prometheus.CounterVec // label: reason
	DatasetSize  prometheus.Gauge

	FilterChanges     *prometheus.CounterVec // label: dimension
	RecomputeDuration prometheus.Histogram
	ActiveSubsetSize  prometheus.Gauge
	DebounceCoalesced prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsRejected,
		m.DatasetSize,
		m.FilterChanges,
		m.RecomputeDuration,
		m.ActiveSubsetSize,
		m.DebounceCoalesced,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_insights",
			Name:      "rows_loaded_total",
			Help:      "Total raw CSV rows read from the dataset.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_insights",
			Name:      "rows_rejected_total",
			Help:      "Raw rows dropped during validation, by reason.",
		}, []string{"reason"}),
		DatasetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_insights",
			Name:      "dataset_size",
			Help:      "Number of validated incidents in the enriched record set.",
		}),
		FilterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_insights",
			Name:      "filter_changes_total",
			Help:      "Filter state mutations, by dimension.",
		}, []string{"dimension"}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_insights",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full recompute: filtered view, all aggregations, and insights.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ActiveSubsetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_insights",
			Name:      "active_subset_size",
			Help:      "Number of incidents matching the current filter state.",
		}),
		DebounceCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_insights",
			Name:      "debounce_coalesced_total",
			Help:      "Pending recomputes discarded in favor of a newer filter state.",
		}),
	}
}
