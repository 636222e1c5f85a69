// SPDX-License-Identifier: MIT
// Package: fairalloc/feasibility
//
// errors.go — sentinel errors of the LP layer.
//
// Solver-level errors (ErrInfeasible, ErrSolverNotConverged) describe one LP;
// the Oracle turns an infeasible baseline LP into ErrInfeasibleAllocation and an
// infeasible probe LP into a DEFER decision. Non-convergence is never turned
// into a decision.

package feasibility

import "errors"

var (
	// ErrInfeasible indicates the linear program has no feasible point.
	ErrInfeasible = errors.New("feasibility: linear program is infeasible")

	// ErrSolverNotConverged indicates a numerical failure of the solver
	// (singular basis, failed linear solve, Bland rule breakdown, unboundedness).
	ErrSolverNotConverged = errors.New("feasibility: solver did not converge")

	// ErrInfeasibleAllocation indicates the baseline LP of the current state has
	// no feasible point, which cannot happen for a valid former allocation.
	ErrInfeasibleAllocation = errors.New("feasibility: allocation is infeasible")

	// ErrBadProblem indicates a Problem whose dimensions do not agree.
	ErrBadProblem = errors.New("feasibility: malformed problem")

	// ErrNilAllocation indicates NewOracle was given a nil allocation.
	ErrNilAllocation = errors.New("feasibility: allocation is nil")
)
