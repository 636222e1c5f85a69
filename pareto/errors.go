// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// errors.go — sentinel errors of the improvement engine.
//
// ErrNoProgress and ErrIterationLimit are recoverable: Improve returns them
// together with a partial Result whose allocation is still valid. Every other
// error is fatal and comes without a Result.

package pareto

import "errors"

var (
	// ErrNoProgress indicates a cycle on which every probed edge deferred,
	// including the widened probe over the cycle's items.
	ErrNoProgress = errors.New("pareto: no edge of the cycle can be committed")

	// ErrIterationLimit indicates the candidate graph still had a cycle after
	// the configured number of iterations.
	ErrIterationLimit = errors.New("pareto: iteration limit reached")

	// ErrCandidateNotShrunk indicates a commit that left the candidate graph
	// with as many edges as before. It is fatal.
	ErrCandidateNotShrunk = errors.New("pareto: commit did not shrink the candidate graph")
)
