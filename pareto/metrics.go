// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// metrics.go — Prometheus collectors for probes, commits, defers, settlements
// and run outcomes. A nil *Metrics records nothing.

package pareto

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "fairalloc"

// Metrics are the Prometheus collectors updated by an Engine.
type Metrics struct {
	Probes      prometheus.Counter
	Commits     prometheus.Counter
	Defers      prometheus.Counter
	Settlements prometheus.Counter
	Iterations  prometheus.Histogram
	Runs        *prometheus.CounterVec // label "outcome"
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves them unregistered. Collectors already registered with reg
// are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Probes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "probes_total",
			Help: "Edge feasibility probes evaluated.",
		}),
		Commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "commits_total",
			Help: "Probes that committed their edge.",
		}),
		Defers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "defers_total",
			Help: "Probes that deferred their edge.",
		}),
		Settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "settlements_total",
			Help: "Items decided after the candidate graph became acyclic.",
		}),
		Iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "iterations",
			Help:    "Cycle iterations per run.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "pareto", Name: "runs_total",
			Help: "Improvement runs by outcome.",
		}, []string{"outcome"}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.Probes, err = register(reg, m.Probes); err != nil {
		return nil, err
	}
	if m.Commits, err = register(reg, m.Commits); err != nil {
		return nil, err
	}
	if m.Defers, err = register(reg, m.Defers); err != nil {
		return nil, err
	}
	if m.Settlements, err = register(reg, m.Settlements); err != nil {
		return nil, err
	}
	if m.Iterations, err = register(reg, m.Iterations); err != nil {
		return nil, err
	}
	if m.Runs, err = register(reg, m.Runs); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, returning the existing collector when one is already there.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("NewMetrics: %w", err)
	}

	return c, nil
}

// Run outcomes.
const (
	outcomeDone     = "done"
	outcomeShortcut = "shortcut"
	outcomePartial  = "partial"
	outcomeFailed   = "failed"
)

func (m *Metrics) probe(committed bool) {
	if m == nil {
		return
	}
	m.Probes.Inc()
	if committed {
		m.Commits.Inc()
	} else {
		m.Defers.Inc()
	}
}

func (m *Metrics) settled() {
	if m != nil {
		m.Settlements.Inc()
	}
}

func (m *Metrics) finish(outcome string, iterations int) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	m.Iterations.Observe(float64(iterations))
}
