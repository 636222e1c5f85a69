// Package matrix holds the labeled agents×items valuation matrix used by the
// feasibility LP.
//
// Valuation wraps a gonum mat.Dense with row labels (agents) and column labels
// (items). Indices are checked and errors are the package sentinels wrapped with
// the method name, for example:
//
//	Valuation.At(3,0): matrix: index out of range
//
// Cells are raw valuations, not fractions; the LP weights them with its own
// decision variables through Dot and Flatten, both agent-major.
package matrix
