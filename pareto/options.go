// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// options.go — functional options of the Engine.
//
// Option constructors validate their argument eagerly and panic on programmer
// error; Improve itself never panics on user input.

package pareto

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/fairalloc/feasibility"
)

// Log verbosity levels used by the engine.
const (
	levelDecision = 1 // per-edge verdicts
	levelLP       = 2 // LP values behind each verdict
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Without it the engine logs to
// logr.FromContextOrDiscard(ctx) of each Improve call.
func WithLogger(l logr.Logger) Option {
	return func(e *Engine) {
		e.log = l
		e.hasLog = true
	}
}

// WithMaxIterations caps the number of cycle iterations; 0 means "the initial
// number of candidate edges". Panics if n is negative.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("pareto: WithMaxIterations(%d): must be ≥ 0", n))
	}

	return func(e *Engine) { e.maxIter = n }
}

// WithTolerance sets the opt1/opt2 comparison tolerance of the oracle.
// Panics if eps is negative, NaN or infinite.
func WithTolerance(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("pareto: WithTolerance(%v): must be finite and ≥ 0", eps))
	}

	return func(e *Engine) { e.tol = eps }
}

// WithSolver replaces the default simplex solver. Panics on nil.
func WithSolver(s feasibility.Solver) Option {
	if s == nil {
		panic("pareto: WithSolver(nil)")
	}

	return func(e *Engine) { e.solver = s }
}

// WithMetrics attaches Prometheus collectors; nil disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}
