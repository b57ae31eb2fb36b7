// Package metrics exposes Prometheus instrumentation for analysis runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns a private registry and the pipeline metrics registered in it.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	matchesProcessed prometheus.Counter
	matchesFailed    prometheus.Counter
	eventsAnnotated  prometheus.Counter
	estimatedShots   prometheus.Counter
	pipelineDuration prometheus.Histogram
	workers          prometheus.Gauge
}

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		m.namespace = namespace
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		m.histogramBuckets = buckets
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "postmatch",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_processed_total",
		Help:      "Matches analyzed successfully",
	})
	m.matchesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_failed_total",
		Help:      "Matches rejected or failed during analysis",
	})
	m.eventsAnnotated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_annotated_total",
		Help:      "Raw events annotated by the event processor",
	})
	m.estimatedShots = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "heuristic_xg_shots_total",
		Help:      "Shots whose xG came from the heuristic model",
	})
	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_duration_seconds",
		Help:      "Wall time to analyze one match",
		Buckets:   m.histogramBuckets,
	})
	m.workers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workers",
		Help:      "Size of the batch worker pool",
	})
}

// ObserveMatch records one successfully analyzed match. Safe on a nil Manager.
func (m *Manager) ObserveMatch(events, estimatedShots int, took time.Duration) {
	if m == nil {
		return
	}
	m.matchesProcessed.Inc()
	m.eventsAnnotated.Add(float64(events))
	m.estimatedShots.Add(float64(estimatedShots))
	m.pipelineDuration.Observe(took.Seconds())
}

func (m *Manager) ObserveFailure() {
	if m == nil {
		return
	}
	m.matchesFailed.Inc()
}

func (m *Manager) SetWorkers(n int) {
	if m == nil {
		return
	}
	m.workers.Set(float64(n))
}

// Gatherer exposes the private registry, e.g. for testutil or an HTTP handler.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every metric in the text exposition format, suitable for
// the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
