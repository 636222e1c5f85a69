// SPDX-License-Identifier: MIT
// Package: fairalloc/feasibility
//
// problem.go — the LP model of one probe.
//
// Layout:
//   • One variable x[i][o] per agent i and item o, agent-major:
//     index(i, o) = i·|items| + o, items in sorted order.
//   • Maximize Objective·x subject to
//       Ineq·x ≤ IneqRHS          (positivity, literal value row, welfare floor)
//       Eq·x   = EqRHS            (Σ_i x[i][o] = 1 per item)
//       x[k]   = 0 where Zero[k]  (structural: pair outside the tentative support)
//
// Complexity:
//   • Building a problem is O(n·m) rows of O(n·m) cells.

package feasibility

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/fairalloc/matrix"
)

// Problem is a maximization LP in general form plus per-variable zero bounds.
type Problem struct {
	Agents []string
	Items  []string

	Objective []float64  // maximize Objective·x
	Ineq      *mat.Dense // rows of Ineq·x ≤ IneqRHS
	IneqRHS   []float64
	Eq        *mat.Dense // rows of Eq·x = EqRHS
	EqRHS     []float64
	Zero      []bool // Zero[k] pins x[k] to 0
}

// NumVars returns the number of LP variables.
func (p *Problem) NumVars() int { return len(p.Objective) }

// Index returns the variable index of agent row i and item column o.
func (p *Problem) Index(i, o int) int { return i*len(p.Items) + o }

// Validate checks that all parts agree on the variable count.
func (p *Problem) Validate() error {
	n := len(p.Objective)
	if n == 0 || n != len(p.Agents)*len(p.Items) {
		return fmt.Errorf("Problem: %d variables for %dx%d: %w", n, len(p.Agents), len(p.Items), ErrBadProblem)
	}
	if len(p.Zero) != n {
		return fmt.Errorf("Problem: zero mask %d, want %d: %w", len(p.Zero), n, ErrBadProblem)
	}
	if p.Ineq != nil {
		r, c := p.Ineq.Dims()
		if r != len(p.IneqRHS) || c != n {
			return fmt.Errorf("Problem: Ineq %dx%d, rhs %d: %w", r, c, len(p.IneqRHS), ErrBadProblem)
		}
	}
	if p.Eq == nil {
		return fmt.Errorf("Problem: no equality rows: %w", ErrBadProblem)
	}
	r, c := p.Eq.Dims()
	if r != len(p.EqRHS) || c != n {
		return fmt.Errorf("Problem: Eq %dx%d, rhs %d: %w", r, c, len(p.EqRHS), ErrBadProblem)
	}

	return nil
}

// model carries what every probe of one run shares.
type model struct {
	former  *matrix.Valuation // M_former
	welfare float64           // realized welfare of the former allocation
	slack   float64           // welfare floor slack
}

// build assembles the Problem for valuation matrix mh restricted to allowed pairs.
func (m model) build(mh *matrix.Valuation, allowed func(i, o int) bool) (*Problem, error) {
	agents, items := mh.Agents(), mh.Items()
	na, ni := len(agents), len(items)
	n := na * ni

	objective := mh.Flatten()
	diff, err := m.former.Sub(mh) // M_former − M_H
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	// positivity (n rows) + literal value row + welfare floor
	rows := n + 2
	ineq := mat.NewDense(rows, n, nil)
	rhs := make([]float64, rows)
	for k := 0; k < n; k++ {
		ineq.Set(k, k, -1)
	}
	// Σ x·M_H ≥ Σ x·M_former  ⇔  Σ x·(M_former − M_H) ≤ 0
	ineq.SetRow(n, diff.Flatten())
	// Σ x·M_H ≥ W − slack  ⇔  −Σ x·M_H ≤ slack − W
	floor := make([]float64, n)
	for k, v := range objective {
		floor[k] = -v
	}
	ineq.SetRow(n+1, floor)
	rhs[n+1] = m.slack - m.welfare

	eq := mat.NewDense(ni, n, nil)
	eqRHS := make([]float64, ni)
	zero := make([]bool, n)
	for o := 0; o < ni; o++ {
		eqRHS[o] = 1
		for i := 0; i < na; i++ {
			k := i*ni + o
			eq.Set(o, k, 1)
			zero[k] = !allowed(i, o)
		}
	}

	return &Problem{
		Agents:    agents,
		Items:     items,
		Objective: objective,
		Ineq:      ineq,
		IneqRHS:   rhs,
		Eq:        eq,
		EqRHS:     eqRHS,
		Zero:      zero,
	}, nil
}
