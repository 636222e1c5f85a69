// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions in this package return these sentinels (wrapped with method
// context via %w) and tests check them via errors.Is. Nothing here panics on
// caller-supplied input.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines are easy to grep.
// Context is attached at the call site with fmt.Errorf("Valuation.At(%d,%d): %w", ...).

var (
	// ErrBadShape is returned when a valuation matrix would have no agents or no items.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row (agent) or column (item) index is outside bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between two valuation matrices.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrLabelMismatch indicates two matrices of equal shape whose agent or item
	// labels differ, so element-wise arithmetic would mix unrelated cells.
	ErrLabelMismatch = errors.New("matrix: agent or item labels differ")

	// ErrNaNInf signals a NaN or ±Inf valuation; valuations must be finite.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Valuation was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrDuplicateLabel indicates a repeated agent or item label.
	ErrDuplicateLabel = errors.New("matrix: duplicate label")
)
