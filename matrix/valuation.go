// SPDX-License-Identifier: MIT
// Package: matrix
//
// valuation.go — Valuation, the agents×items raw valuation matrix.
//
// Contract:
//   • Rows are agents in caller order, columns are items in caller order
//     (allocation passes items sorted, which gives the stable item ordering).
//   • Cells hold raw valuations (not fractions); every cell is finite.
//   • Labels are unique per axis.
//   • Accessors are bounds-checked and return sentinel errors, never panic.
//
// Storage:
//   • Backed by gonum mat.Dense so the LP layer can consume rows without copying
//     through an intermediate representation.
//
// Complexity:
//   • NewValuation O(r·c); At/Set O(1); Sub O(r·c); AgentValueForBundle O(len(cols)).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// valuationErrorf wraps an underlying error with Valuation method context.
func valuationErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Valuation.%s(%d,%d): %w", method, row, col, err)
}

// Valuation is a labeled agents×items matrix of raw valuations.
type Valuation struct {
	agents []string       // row labels
	items  []string       // column labels
	rowOf  map[string]int // agent label → row index
	colOf  map[string]int // item label → column index
	data   *mat.Dense     // r×c backing storage
}

// NewValuation creates a zero-filled valuation matrix with the given labels.
// Returns ErrBadShape if either axis is empty and ErrDuplicateLabel if a label repeats.
func NewValuation(agents, items []string) (*Valuation, error) {
	if len(agents) == 0 || len(items) == 0 {
		return nil, fmt.Errorf("NewValuation: agents=%d, items=%d: %w", len(agents), len(items), ErrBadShape)
	}

	rowOf := make(map[string]int, len(agents))
	for i, a := range agents {
		if _, dup := rowOf[a]; dup {
			return nil, fmt.Errorf("NewValuation: agent %q: %w", a, ErrDuplicateLabel)
		}
		rowOf[a] = i
	}
	colOf := make(map[string]int, len(items))
	for j, it := range items {
		if _, dup := colOf[it]; dup {
			return nil, fmt.Errorf("NewValuation: item %q: %w", it, ErrDuplicateLabel)
		}
		colOf[it] = j
	}

	return &Valuation{
		agents: append([]string(nil), agents...),
		items:  append([]string(nil), items...),
		rowOf:  rowOf,
		colOf:  colOf,
		data:   mat.NewDense(len(agents), len(items), nil),
	}, nil
}

// Rows returns the number of agents.
func (v *Valuation) Rows() int { return len(v.agents) }

// Cols returns the number of items.
func (v *Valuation) Cols() int { return len(v.items) }

// Agents returns a copy of the row labels.
func (v *Valuation) Agents() []string { return append([]string(nil), v.agents...) }

// Items returns a copy of the column labels.
func (v *Valuation) Items() []string { return append([]string(nil), v.items...) }

// AgentIndex returns the row of agent, if present.
func (v *Valuation) AgentIndex(agent string) (int, bool) {
	i, ok := v.rowOf[agent]
	return i, ok
}

// ItemIndex returns the column of item, if present.
func (v *Valuation) ItemIndex(item string) (int, bool) {
	j, ok := v.colOf[item]
	return j, ok
}

// checkIndex validates (row, col) against the matrix bounds.
func (v *Valuation) checkIndex(method string, row, col int) error {
	if v == nil {
		return valuationErrorf(method, row, col, ErrNilMatrix)
	}
	if row < 0 || row >= len(v.agents) || col < 0 || col >= len(v.items) {
		return valuationErrorf(method, row, col, ErrOutOfRange)
	}

	return nil
}

// At returns the valuation of agent row for item col.
func (v *Valuation) At(row, col int) (float64, error) {
	if err := v.checkIndex("At", row, col); err != nil {
		return 0, err
	}

	return v.data.At(row, col), nil
}

// Set stores a finite valuation at (row, col).
func (v *Valuation) Set(row, col int, x float64) error {
	if err := v.checkIndex("Set", row, col); err != nil {
		return err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return valuationErrorf("Set", row, col, ErrNaNInf)
	}
	v.data.Set(row, col, x)

	return nil
}

// Row returns a copy of the valuations of agent row.
func (v *Valuation) Row(row int) ([]float64, error) {
	if err := v.checkIndex("Row", row, 0); err != nil {
		return nil, err
	}

	return mat.Row(nil, row, v.data), nil
}

// AgentValueForBundle returns Σ v[row][c] over the given columns.
// Valuations are additive, so a bundle value is the plain sum of its cells.
func (v *Valuation) AgentValueForBundle(row int, cols []int) (float64, error) {
	if err := v.checkIndex("AgentValueForBundle", row, 0); err != nil {
		return 0, err
	}
	var sum float64
	for _, c := range cols {
		if c < 0 || c >= len(v.items) {
			return 0, valuationErrorf("AgentValueForBundle", row, c, ErrOutOfRange)
		}
		sum += v.data.At(row, c)
	}

	return sum, nil
}

// Dot returns Σ v[i][j]·x[i][j] for a row-major weight vector x of length r·c.
func (v *Valuation) Dot(x []float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("Valuation.Dot: %w", ErrNilMatrix)
	}
	if len(x) != v.Rows()*v.Cols() {
		return 0, fmt.Errorf("Valuation.Dot: len(x)=%d, want %d: %w", len(x), v.Rows()*v.Cols(), ErrDimensionMismatch)
	}

	return floats.Dot(v.data.RawMatrix().Data, x), nil
}

// Flatten returns the cells in row-major order (agent-major), a fresh slice.
func (v *Valuation) Flatten() []float64 {
	out := make([]float64, 0, v.Rows()*v.Cols())
	for i := 0; i < v.Rows(); i++ {
		out = append(out, mat.Row(nil, i, v.data)...)
	}

	return out
}

// Sub returns v − o as a new matrix. Both operands must share shape and labels.
func (v *Valuation) Sub(o *Valuation) (*Valuation, error) {
	if v == nil || o == nil {
		return nil, fmt.Errorf("Valuation.Sub: %w", ErrNilMatrix)
	}
	if v.Rows() != o.Rows() || v.Cols() != o.Cols() {
		return nil, fmt.Errorf("Valuation.Sub: %dx%d vs %dx%d: %w",
			v.Rows(), v.Cols(), o.Rows(), o.Cols(), ErrDimensionMismatch)
	}
	for i := range v.agents {
		if v.agents[i] != o.agents[i] {
			return nil, fmt.Errorf("Valuation.Sub: agent %d %q vs %q: %w", i, v.agents[i], o.agents[i], ErrLabelMismatch)
		}
	}
	for j := range v.items {
		if v.items[j] != o.items[j] {
			return nil, fmt.Errorf("Valuation.Sub: item %d %q vs %q: %w", j, v.items[j], o.items[j], ErrLabelMismatch)
		}
	}

	out, err := NewValuation(v.agents, v.items)
	if err != nil {
		return nil, err
	}
	out.data.Sub(v.data, o.data)

	return out, nil
}

// Dense returns a copy of the backing matrix for read-only numeric use.
func (v *Valuation) Dense() *mat.Dense {
	return mat.DenseCopyOf(v.data)
}

// String implements fmt.Stringer for easy debugging.
func (v *Valuation) String() string {
	if v == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%v", mat.Formatted(v.data, mat.Squeeze()))
}
