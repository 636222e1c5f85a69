// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// result.go — Result, the outcome and counters of one Improve call.

package pareto

import (
	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/consumption"
)

// Result is the outcome of one Improve call.
//
// When Partial is true the run stopped early (ErrNoProgress, ErrIterationLimit or
// context cancellation): decided items are integral, the others keep the former
// fractions. Allocation always satisfies the sum-to-1 invariant.
type Result struct {
	Allocation *allocation.Allocation
	State      State
	Partial    bool

	Iterations int // cycles processed
	Probes     int // oracle evaluations
	Commits    int
	Defers     int
	Settled    int // items decided after the candidate graph became acyclic

	CandidateEdges []consumption.Edge // undecided edges at the end of the run
	ResultEdges    []consumption.Edge // decided edges, weight 1 or 0
}
