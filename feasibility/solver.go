// SPDX-License-Identifier: MIT
// Package: fairalloc/feasibility
//
// solver.go — Solver contract and the gonum simplex implementation.
//
// Contract:
//   • Solve returns the maximizing point and value of a Problem, ErrInfeasible
//     when no point exists, ErrSolverNotConverged on numerical failure.
//   • Solve never mutates the Problem.
//
// SimplexSolver:
//   • Variables pinned by Problem.Zero are substituted out before solving;
//     their value in the Solution is exactly 0.
//   • Constraint rows left without a free variable are checked directly and dropped.
//   • The reduced problem is brought to standard form with lp.Convert and solved
//     with lp.Simplex (minimizing −Objective).

package feasibility

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// DefaultSimplexTolerance is the reduced-cost tolerance handed to lp.Simplex.
const DefaultSimplexTolerance = 1e-10

// Solution is the optimum of one Problem.
type Solution struct {
	X     []float64 // one value per Problem variable
	Value float64   // Objective·X
}

// Solver solves a maximization Problem.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}

// SimplexSolver solves problems with gonum's Dantzig simplex.
type SimplexSolver struct {
	// Tol is the simplex reduced-cost tolerance; zero means DefaultSimplexTolerance.
	Tol float64
}

// NewSimplexSolver returns a SimplexSolver with the given tolerance.
// Panics if tol is negative.
func NewSimplexSolver(tol float64) *SimplexSolver {
	if tol < 0 {
		panic(fmt.Sprintf("feasibility: NewSimplexSolver(%v): negative tolerance", tol))
	}

	return &SimplexSolver{Tol: tol}
}

// Solve implements Solver.
func (s *SimplexSolver) Solve(ctx context.Context, p *Problem) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, err
	}
	if err := p.Validate(); err != nil {
		return Solution{}, err
	}
	tol := s.Tol
	if tol == 0 {
		tol = DefaultSimplexTolerance
	}

	free := make([]int, 0, p.NumVars())
	for k, z := range p.Zero {
		if !z {
			free = append(free, k)
		}
	}
	if len(free) == 0 {
		return Solution{}, fmt.Errorf("SimplexSolver.Solve: every variable is pinned: %w", ErrInfeasible)
	}

	c := make([]float64, len(free))
	for j, k := range free {
		c[j] = -p.Objective[k]
	}
	g, h, err := reduceRows(p.Ineq, p.IneqRHS, free, false, tol)
	if err != nil {
		return Solution{}, fmt.Errorf("SimplexSolver.Solve: inequality rows: %w", err)
	}
	a, b, err := reduceRows(p.Eq, p.EqRHS, free, true, tol)
	if err != nil {
		return Solution{}, fmt.Errorf("SimplexSolver.Solve: equality rows: %w", err)
	}

	cNew, aNew, bNew := lp.Convert(c, g, h, a, b)
	optF, xNew, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return Solution{}, fmt.Errorf("SimplexSolver.Solve: %w", classify(err))
	}

	// Convert splits every free variable into xp − xn.
	nf := len(free)
	x := make([]float64, p.NumVars())
	for j, k := range free {
		v := xNew[j] - xNew[nf+j]
		if v < 0 && v > -tol {
			v = 0
		}
		x[k] = v
	}

	return Solution{X: x, Value: -optF}, nil
}

// reduceRows keeps the columns listed in free and drops rows without any
// remaining coefficient, checking those rows against rhs first.
// It returns a nil matrix (untyped, as lp.Convert expects) when no row survives.
func reduceRows(m *mat.Dense, rhs []float64, free []int, equality bool, tol float64) (mat.Matrix, []float64, error) {
	if m == nil {
		return nil, nil, nil
	}
	rows, _ := m.Dims()
	var data []float64
	var keptRHS []float64
	for r := 0; r < rows; r++ {
		row := make([]float64, len(free))
		nonZero := false
		for j, k := range free {
			row[j] = m.At(r, k)
			if row[j] != 0 {
				nonZero = true
			}
		}
		if !nonZero {
			// 0 ≤ rhs or 0 = rhs
			if rhs[r] < -tol || (equality && rhs[r] > tol) {
				return nil, nil, fmt.Errorf("row %d: 0 vs %v: %w", r, rhs[r], ErrInfeasible)
			}
			continue
		}
		data = append(data, row...)
		keptRHS = append(keptRHS, rhs[r])
	}
	if len(keptRHS) == 0 {
		return nil, nil, nil
	}

	return mat.NewDense(len(keptRHS), len(free), data), keptRHS, nil
}

// classify maps gonum lp errors onto the package sentinels. Everything but
// infeasibility (ErrUnbounded, ErrSingular, ErrLinSolve, ErrBland, ErrZeroColumn,
// ErrZeroRow) counts as non-convergence.
func classify(err error) error {
	if errors.Is(err, lp.ErrInfeasible) {
		return fmt.Errorf("%w: %w", ErrInfeasible, err)
	}

	return fmt.Errorf("%w: %w", ErrSolverNotConverged, err)
}
