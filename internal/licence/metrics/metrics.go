// Package metrics exposes Prometheus instrumentation for the licence
// workflow. All methods are nil-safe so tests can pass a nil receiver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the licence workflow.
type Metrics struct {
	SectionUpdates    prometheus.Counter
	NoopUpdates       prometheus.Counter
	VersionConflicts  prometheus.Counter
	Handovers         *prometheus.CounterVec
	RecordListOps     *prometheus.CounterVec
	DeriveDuration    prometheus.Histogram
	StatusCacheHits   prometheus.Counter
	StatusCacheMisses prometheus.Counter
}

// New creates and registers all licence workflow metrics.
func New() *Metrics {
	return &Metrics{
		SectionUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hdc_section_updates_total",
			Help: "Total number of section updates written to the store",
		}),
		NoopUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hdc_section_updates_noop_total",
			Help: "Total number of section updates skipped because the document was unchanged",
		}),
		VersionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hdc_version_conflicts_total",
			Help: "Total number of document writes lost to a concurrent version bump",
		}),
		Handovers: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hdc_handovers_total",
			Help: "Total number of stage handovers by transition name",
		}, []string{"transition"}),
		RecordListOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hdc_record_list_operations_total",
			Help: "Total number of reject/withdraw/reinstate operations by kind",
		}, []string{"operation"}),
		DeriveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hdc_status_derive_duration_seconds",
			Help:    "Time spent deriving task and decision state from a document",
			Buckets: prometheus.DefBuckets,
		}),
		StatusCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hdc_status_cache_hits_total",
			Help: "Total number of derived status reads served from cache",
		}),
		StatusCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hdc_status_cache_misses_total",
			Help: "Total number of derived status reads that required derivation",
		}),
	}
}

func (m *Metrics) RecordSectionUpdate() {
	if m == nil {
		return
	}
	m.SectionUpdates.Inc()
}

func (m *Metrics) RecordNoopUpdate() {
	if m == nil {
		return
	}
	m.NoopUpdates.Inc()
}

func (m *Metrics) RecordVersionConflict() {
	if m == nil {
		return
	}
	m.VersionConflicts.Inc()
}

func (m *Metrics) RecordHandover(transition string) {
	if m == nil {
		return
	}
	m.Handovers.WithLabelValues(transition).Inc()
}

func (m *Metrics) RecordListOperation(operation string) {
	if m == nil {
		return
	}
	m.RecordListOps.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveDeriveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.DeriveDuration.Observe(seconds)
}

func (m *Metrics) RecordStatusCacheHit() {
	if m == nil {
		return
	}
	m.StatusCacheHits.Inc()
}

func (m *Metrics) RecordStatusCacheMiss() {
	if m == nil {
		return
	}
	m.StatusCacheMisses.Inc()
}
