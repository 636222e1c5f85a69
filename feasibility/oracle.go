// SPDX-License-Identifier: MIT
// Package: fairalloc/feasibility
//
// oracle.go — Oracle, the per-edge COMMIT/DEFER decision.
//
// Protocol of Evaluate(edge, pair):
//   1. H = former allocation with edge.Item forced wholly to edge.Agent.
//   2. M_H = H.ValuationMatrix().
//   3. opt1 = max Σ x·M_H over the tentative support (pair.Allowed).
//   4. opt2 = the same LP with edge.Item restricted to edge.Agent.
//   5. COMMIT iff opt2 exists and opt1 ≈ opt2 (scalar.EqualWithinAbsOrRel).
//
// Failure modes:
//   • opt1 infeasible          → ErrInfeasibleAllocation
//   • opt2 infeasible          → DEFER
//   • numerical failure        → ErrSolverNotConverged, never a decision
//   • edge not in Candidate    → consumption.ErrEdgeNotFound
//
// Determinism: the LP layout follows the sorted item order of the former allocation.

package feasibility

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/consumption"
	"github.com/katalvlaran/fairalloc/matrix"
)

// DefaultTolerance is the absolute/relative tolerance used to compare opt1 and opt2
// and to size the welfare floor slack.
const DefaultTolerance = 1e-6

// Verdict is the outcome of one edge probe.
type Verdict uint8

const (
	// Defer leaves the edge in the candidate graph.
	Defer Verdict = iota
	// Commit moves the edge to the result graph.
	Commit
)

// String returns "DEFER" or "COMMIT".
func (v Verdict) String() string {
	if v == Commit {
		return "COMMIT"
	}

	return "DEFER"
}

// Decision is the verdict on one edge with the LP values behind it.
type Decision struct {
	Edge    consumption.Edge
	Verdict Verdict
	Opt1    float64
	Opt2    float64 // NaN when the probe LP was infeasible
	Reason  string
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithSolver replaces the default SimplexSolver. Panics on nil.
func WithSolver(s Solver) Option {
	if s == nil {
		panic("feasibility: WithSolver(nil)")
	}

	return func(o *Oracle) { o.solver = s }
}

// WithTolerance sets the opt1/opt2 comparison tolerance. Panics if eps is
// negative, NaN or infinite.
func WithTolerance(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("feasibility: WithTolerance(%v): must be finite and ≥ 0", eps))
	}

	return func(o *Oracle) { o.tol = eps }
}

// Oracle decides whether a candidate edge may be committed.
// An Oracle holds no per-run mutable state and may be shared by sequential runs
// over the same former allocation.
type Oracle struct {
	former *allocation.Allocation
	model  model
	solver Solver
	tol    float64
}

// NewOracle prepares an Oracle for the given former allocation.
func NewOracle(former *allocation.Allocation, opts ...Option) (*Oracle, error) {
	if former == nil {
		return nil, fmt.Errorf("NewOracle: %w", ErrNilAllocation)
	}
	o := &Oracle{
		former: former,
		solver: NewSimplexSolver(DefaultSimplexTolerance),
		tol:    DefaultTolerance,
	}
	for _, opt := range opts {
		opt(o)
	}

	mf, err := former.ValuationMatrix()
	if err != nil {
		return nil, fmt.Errorf("NewOracle: %w", err)
	}
	w := former.Welfare()
	o.model = model{
		former:  mf,
		welfare: w,
		slack:   o.tol * math.Max(1, math.Abs(w)),
	}

	return o, nil
}

// Tolerance returns the comparison tolerance.
func (o *Oracle) Tolerance() float64 { return o.tol }

// Evaluate probes edge e against the current candidate/result state.
func (o *Oracle) Evaluate(ctx context.Context, e consumption.Edge, pair *consumption.Pair) (Decision, error) {
	d := Decision{Edge: consumption.Edge{Agent: e.Agent, Item: e.Item}, Verdict: Defer, Opt2: math.NaN()}
	if !pair.Candidate.HasEdge(e.Agent, e.Item) {
		return d, fmt.Errorf("Evaluate(%s,%s): %w", e.Agent, e.Item, consumption.ErrEdgeNotFound)
	}

	h, err := o.former.WithForcedAssignment(e.Item, e.Agent)
	if err != nil {
		return d, fmt.Errorf("Evaluate(%s,%s): %w", e.Agent, e.Item, err)
	}
	mh, err := h.ValuationMatrix()
	if err != nil {
		return d, fmt.Errorf("Evaluate(%s,%s): %w", e.Agent, e.Item, err)
	}

	base, err := o.solve(ctx, mh, o.allowed(mh, pair, "", ""))
	if err != nil {
		if errors.Is(err, ErrInfeasible) {
			return d, fmt.Errorf("Evaluate(%s,%s): opt1: %w: %w", e.Agent, e.Item, ErrInfeasibleAllocation, err)
		}
		return d, fmt.Errorf("Evaluate(%s,%s): opt1: %w", e.Agent, e.Item, err)
	}
	d.Opt1 = base.Value

	probe, err := o.solve(ctx, mh, o.allowed(mh, pair, e.Agent, e.Item))
	switch {
	case errors.Is(err, ErrInfeasible):
		d.Reason = "committing the edge leaves no allocation above the welfare floor"
		return d, nil
	case err != nil:
		return d, fmt.Errorf("Evaluate(%s,%s): opt2: %w", e.Agent, e.Item, err)
	}
	d.Opt2 = probe.Value

	if scalar.EqualWithinAbsOrRel(d.Opt1, d.Opt2, o.tol, o.tol) {
		d.Verdict = Commit
		d.Reason = "optimum unchanged"
	} else {
		d.Reason = fmt.Sprintf("optimum drops by %g", d.Opt1-d.Opt2)
	}

	return d, nil
}

// Solve returns the baseline optimum over the current tentative support.
func (o *Oracle) Solve(ctx context.Context, pair *consumption.Pair) (Solution, error) {
	mf := o.model.former
	sol, err := o.solve(ctx, mf, o.allowed(mf, pair, "", ""))
	if errors.Is(err, ErrInfeasible) {
		return sol, fmt.Errorf("Solve: %w: %w", ErrInfeasibleAllocation, err)
	}
	if err != nil {
		return sol, fmt.Errorf("Solve: %w", err)
	}

	return sol, nil
}

// Problem exposes the baseline LP of the current state, mainly for inspection.
func (o *Oracle) Problem(pair *consumption.Pair) (*Problem, error) {
	mf := o.model.former

	return o.model.build(mf, o.allowed(mf, pair, "", ""))
}

func (o *Oracle) solve(ctx context.Context, mh *matrix.Valuation, allowed func(i, j int) bool) (Solution, error) {
	p, err := o.model.build(mh, allowed)
	if err != nil {
		return Solution{}, err
	}

	return o.solver.Solve(ctx, p)
}

// allowed returns the structural predicate over (agent row, item column).
// When item is non-empty, that item is restricted to agent.
func (o *Oracle) allowed(mh *matrix.Valuation, pair *consumption.Pair, agent, item string) func(i, j int) bool {
	agents, items := mh.Agents(), mh.Items()

	return func(i, j int) bool {
		if item != "" && items[j] == item {
			return agents[i] == agent
		}

		return pair.Allowed(agents[i], items[j])
	}
}
