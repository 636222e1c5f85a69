// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// state.go — State, the INIT → ITERATING → DONE phases of a run.

package pareto

// State is the phase of one improvement run.
type State uint8

const (
	// Init validates the input and builds the candidate/result graphs.
	Init State = iota
	// Iterating removes cycles from the candidate graph.
	Iterating
	// Done materializes the result graph into the final allocation.
	Done
)

// String returns "INIT", "ITERATING" or "DONE".
func (s State) String() string {
	switch s {
	case Init:
		return "INIT"
	case Iterating:
		return "ITERATING"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
