// SPDX-License-Identifier: MIT

// Package observability wires structured logging and in-process metrics.
//
// Metrics are registered on a caller-supplied prometheus.Registerer; nothing
// touches the global registry and no HTTP endpoint is exposed.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/matprod/internal/prompt"
	"github.com/katalvlaran/matprod/matrix"
)

const metricsNamespace = "matprod"

// Metrics holds the counters of one process.
type Metrics struct {
	AllocationsTotal     prometheus.Counter
	ReleasesTotal        prometheus.Counter
	LiveMatrices         prometheus.Gauge
	ElementsAllocated    prometheus.Counter
	InputRetriesTotal    *prometheus.CounterVec
	MultiplicationsTotal prometheus.Counter
}

var (
	_ matrix.AllocationRecorder = (*Metrics)(nil)
	_ prompt.RetryRecorder      = (*Metrics)(nil)
)

// NewMetrics creates the metric set and registers it on reg.
// A nil reg leaves the metrics unregistered, which is what tests that only
// read values through testutil need.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AllocationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "matrix",
			Name:      "allocations_total",
			Help:      "Matrices allocated",
		}),
		ReleasesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "matrix",
			Name:      "releases_total",
			Help:      "Matrices released",
		}),
		LiveMatrices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "matrix",
			Name:      "live",
			Help:      "Matrices allocated and not yet released",
		}),
		ElementsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "matrix",
			Name:      "elements_allocated_total",
			Help:      "float64 slots allocated across all matrices",
		}),
		InputRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "input",
			Name:      "retries_total",
			Help:      "Rejected input tokens by kind",
		}, []string{"kind"}),
		MultiplicationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "multiplications_total",
			Help:      "Completed matrix products",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.AllocationsTotal,
			m.ReleasesTotal,
			m.LiveMatrices,
			m.ElementsAllocated,
			m.InputRetriesTotal,
			m.MultiplicationsTotal,
		)
	}

	return m
}

// RecordAllocation implements matrix.AllocationRecorder.
func (m *Metrics) RecordAllocation(rows, cols int) {
	m.AllocationsTotal.Inc()
	m.LiveMatrices.Inc()
	m.ElementsAllocated.Add(float64(rows * cols))
}

// RecordRelease implements matrix.AllocationRecorder.
func (m *Metrics) RecordRelease(_, _ int) {
	m.ReleasesTotal.Inc()
	m.LiveMatrices.Dec()
}

// RecordRetry counts one rejected input token; kind is prompt.KindDimension
// or prompt.KindElement.
func (m *Metrics) RecordRetry(kind string) {
	m.InputRetriesTotal.WithLabelValues(kind).Inc()
}

// RecordMultiplication counts one completed product.
func (m *Metrics) RecordMultiplication() {
	m.MultiplicationsTotal.Inc()
}
