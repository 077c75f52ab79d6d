// Package telemetry wires the dispatcher's node-count and timing
// bookkeeping to real Prometheus collectors instead of a log line alone.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the dispatcher updates after every solve.
type Metrics struct {
	NodeCount *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
}

// NewMetrics registers the dispatcher's collectors against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the default
// global registry across parallel test packages.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowsolve_node_count_total",
			Help: "Cumulative search nodes expanded, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowsolve_solve_duration_seconds",
			Help:    "Solve wall-clock duration, by strategy.",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
	reg.MustRegister(m.NodeCount, m.Duration)
	return m
}

// Observe records one solve's outcome.
func (m *Metrics) Observe(strategy, outcome string, nodeCount int, durationSeconds float64) {
	if m == nil {
		return
	}
	m.NodeCount.WithLabelValues(strategy, outcome).Add(float64(nodeCount))
	m.Duration.WithLabelValues(strategy).Observe(durationSeconds)
}
