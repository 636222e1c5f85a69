// SPDX-License-Identifier: MIT
// Package: fairalloc/pareto
//
// engine.go — the INIT → ITERATING → DONE state machine.
//
// Contract:
//   • INIT: items must equal the former allocation's item set (nil = take them
//     from the allocation). One agent, or an already integral allocation (whose
//     support is a star forest), finishes immediately with the input unchanged.
//   • ITERATING: while the candidate graph has a cycle, probe every cycle edge
//     still undecided; COMMIT decides the edge's item. When the whole cycle
//     defers, probe every candidate edge of the cycle's items; when that defers
//     too, stop with ErrNoProgress.
//   • DONE: decide leftover items, then materialize the weight-1 result edges.
//
// Termination:
//   • Every commit strictly shrinks the candidate graph, and every iteration
//     either commits or stops, so a run needs at most |initial candidate edges|
//     iterations. WithMaxIterations lowers that cap.
//
// Concurrency:
//   • An Engine is immutable after New and may serve concurrent Improve calls;
//     every call owns its graphs and oracle.

package pareto

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/consumption"
	"github.com/katalvlaran/fairalloc/feasibility"
)

// Engine turns a fractional allocation into an acyclic, integral one without
// lowering its aggregate value.
type Engine struct {
	log     logr.Logger
	hasLog  bool
	maxIter int
	tol     float64
	solver  feasibility.Solver
	metrics *Metrics
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		tol:    feasibility.DefaultTolerance,
		solver: feasibility.NewSimplexSolver(feasibility.DefaultSimplexTolerance),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// run is the per-call state.
type run struct {
	*Engine
	log    logr.Logger
	former *allocation.Allocation
	pair   *consumption.Pair
	oracle *feasibility.Oracle
	res    *Result
}

// Improve runs the procedure on former.
//
// Errors:
//   - allocation.ErrInvalidAllocation  nil allocation or mismatched item set
//   - feasibility.ErrInfeasibleAllocation, feasibility.ErrSolverNotConverged,
//     ErrCandidateNotShrunk  (fatal)
//   - ErrNoProgress, ErrIterationLimit, ctx.Err()  returned with a partial Result
func (e *Engine) Improve(ctx context.Context, former *allocation.Allocation, items []string) (*Result, error) {
	log := e.log
	if !e.hasLog {
		log = logr.FromContextOrDiscard(ctx)
	}
	r := &run{Engine: e, log: log, former: former, res: &Result{State: Init}}

	res, err := r.exec(ctx, items)
	outcome := outcomeDone
	switch {
	case err != nil && res != nil:
		outcome = outcomePartial
	case err != nil:
		outcome = outcomeFailed
	case r.pair == nil:
		outcome = outcomeShortcut
	}
	e.metrics.finish(outcome, r.res.Iterations)

	return res, err
}

func (r *run) exec(ctx context.Context, items []string) (*Result, error) {
	if r.former == nil {
		return nil, fmt.Errorf("Improve: nil allocation: %w", allocation.ErrInvalidAllocation)
	}
	if err := checkItems(r.former, items); err != nil {
		return nil, fmt.Errorf("Improve: %w", err)
	}
	r.log.Info("pareto improvement started", "state", Init.String(),
		"agents", r.former.NumAgents(), "items", r.former.NumItems())

	if r.former.NumAgents() == 1 {
		r.log.Info("single agent, nothing to improve", "state", Done.String())
		return r.finishUnchanged(), nil
	}
	if r.former.IsComplete() {
		r.log.Info("allocation already integral and acyclic", "state", Done.String())
		return r.finishUnchanged(), nil
	}

	pair, err := consumption.Complete(r.former.AgentNames(), r.former.Items())
	if err != nil {
		return nil, fmt.Errorf("Improve: %w", err)
	}
	r.pair = pair
	r.oracle, err = feasibility.NewOracle(r.former,
		feasibility.WithSolver(r.solver), feasibility.WithTolerance(r.tol))
	if err != nil {
		return nil, fmt.Errorf("Improve: %w", err)
	}

	limit := r.maxIter
	if limit == 0 {
		limit = pair.Candidate.EdgeCount()
	}
	r.res.State = Iterating
	r.log.Info("iterating", "state", Iterating.String(), "candidateEdges", pair.Candidate.EdgeCount(), "maxIterations", limit)

	if err = r.iterate(ctx, limit); err != nil {
		if errors.Is(err, ErrNoProgress) || errors.Is(err, ErrIterationLimit) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return r.partial(err)
		}
		return nil, err
	}

	r.res.State = Done
	if err = r.settle(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return r.partial(err)
		}
		return nil, err
	}

	return r.materialize()
}

// iterate removes cycles from the candidate graph.
func (r *run) iterate(ctx context.Context, limit int) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("Improve: %w", err)
		}
		cycle, ok := consumption.FindCycle(r.pair.Candidate)
		if !ok {
			return nil
		}
		if r.res.Iterations >= limit {
			return fmt.Errorf("Improve: %d iterations, cycle %s: %w", limit, cycle, ErrIterationLimit)
		}
		r.res.Iterations++
		r.log.V(levelDecision).Info("cycle", "iteration", r.res.Iterations, "cycle", cycle.String())

		committed, err := r.sweep(ctx, cycle.Edges())
		if err != nil {
			return err
		}
		if committed > 0 {
			continue
		}

		widened := r.widen(cycle)
		r.log.V(levelDecision).Info("whole cycle deferred, widening", "edges", len(widened))
		if committed, err = r.sweep(ctx, widened); err != nil {
			return err
		}
		if committed == 0 {
			return fmt.Errorf("Improve: cycle %s: %w", cycle, ErrNoProgress)
		}
	}
}

// sweep probes each edge still in the candidate graph and commits the
// accepted ones. It returns the number of commits.
func (r *run) sweep(ctx context.Context, edges []consumption.Edge) (int, error) {
	committed := 0
	for _, e := range edges {
		if !r.pair.Candidate.HasEdge(e.Agent, e.Item) {
			continue
		}
		ok, err := r.probe(ctx, e)
		if err != nil {
			return committed, err
		}
		if ok {
			committed++
		}
	}

	return committed, nil
}

// probe evaluates one edge and commits it on COMMIT.
func (r *run) probe(ctx context.Context, e consumption.Edge) (bool, error) {
	d, err := r.oracle.Evaluate(ctx, e, r.pair)
	if err != nil {
		return false, fmt.Errorf("Improve: %w", err)
	}
	r.res.Probes++
	r.log.V(levelDecision).Info("edge decision", "agent", e.Agent, "item", e.Item, "verdict", d.Verdict.String())
	r.log.V(levelLP).Info("lp values", "agent", e.Agent, "item", e.Item, "opt1", d.Opt1, "opt2", d.Opt2, "reason", d.Reason)

	if d.Verdict != feasibility.Commit {
		r.res.Defers++
		r.metrics.probe(false)
		return false, nil
	}
	if err = r.commit(e.Agent, e.Item); err != nil {
		return false, err
	}
	r.res.Commits++
	r.metrics.probe(true)

	return true, nil
}

// commit decides item for agent and checks the candidate graph shrank.
func (r *run) commit(agent, item string) error {
	before := r.pair.Candidate.EdgeCount()
	if _, err := r.pair.Commit(agent, item); err != nil {
		return fmt.Errorf("Improve: %w", err)
	}
	after := r.pair.Candidate.EdgeCount()
	r.log.V(levelDecision).Info("edge committed", "agent", agent, "item", item,
		"candidateEdgesBefore", before, "candidateEdges", after)

	return checkShrunk(agent, item, before, after)
}

// checkShrunk fails with ErrCandidateNotShrunk unless after < before.
func checkShrunk(agent, item string, before, after int) error {
	if after >= before {
		return fmt.Errorf("Improve: commit (%s,%s) left %d candidate edges of %d: %w",
			agent, item, after, before, ErrCandidateNotShrunk)
	}

	return nil
}

// widen lists every candidate edge of the cycle's items, item by item.
func (r *run) widen(c consumption.Cycle) []consumption.Edge {
	var out []consumption.Edge
	seen := make(map[string]struct{})
	for _, it := range c.Items() {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		es, err := r.pair.Candidate.ItemEdges(it)
		if err != nil {
			continue
		}
		out = append(out, es...)
	}

	return out
}

// settle decides every item that still owns candidate edges once the candidate
// graph is acyclic.
func (r *run) settle(ctx context.Context) error {
	for _, it := range r.pair.Undecided() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("Improve: %w", err)
		}
		edges, err := r.pair.Candidate.ItemEdges(it)
		if err != nil {
			return fmt.Errorf("Improve: %w", err)
		}
		done := false
		for _, e := range edges {
			if done, err = r.probe(ctx, e); err != nil {
				return err
			}
			if done {
				break
			}
		}
		if !done {
			agent, err := r.largestShare(ctx, it, edges)
			if err != nil {
				return err
			}
			if err = r.commit(agent, it); err != nil {
				return err
			}
			r.log.V(levelDecision).Info("item settled by LP share", "item", it, "agent", agent)
		}
		r.res.Settled++
		r.metrics.settled()
	}

	return nil
}

// largestShare returns the candidate agent with the largest LP share of item,
// the first one on ties.
func (r *run) largestShare(ctx context.Context, item string, edges []consumption.Edge) (string, error) {
	sol, err := r.oracle.Solve(ctx, r.pair)
	if err != nil {
		return "", fmt.Errorf("Improve: %w", err)
	}
	o, _ := r.former.ItemIndex(item)
	items := r.former.NumItems()
	best, bestShare := edges[0].Agent, -1.0
	for _, e := range edges {
		i, _ := r.former.AgentIndex(e.Agent)
		if x := sol.X[i*items+o]; x > bestShare {
			best, bestShare = e.Agent, x
		}
	}

	return best, nil
}

// materialize builds the final integral allocation from the result graph.
func (r *run) materialize() (*Result, error) {
	final, err := allocation.FromAssignment(r.former.Agents(), r.former.Items(), r.pair.Assignment(),
		allocation.WithTolerance(r.former.Tolerance()))
	if err != nil {
		return nil, fmt.Errorf("Improve: %w", err)
	}
	r.res.Allocation = final
	r.snapshotEdges()
	r.log.Info("pareto improvement finished", "state", Done.String(),
		"iterations", r.res.Iterations, "commits", r.res.Commits, "defers", r.res.Defers,
		"settled", r.res.Settled, "welfare", final.Welfare())

	return r.res, nil
}

// partial returns the decided items applied on top of the former allocation.
func (r *run) partial(cause error) (*Result, error) {
	alloc, err := r.former.WithAssignments(r.pair.Assignment())
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	r.res.Allocation = alloc
	r.res.Partial = true
	r.snapshotEdges()
	r.log.Info("pareto improvement stopped early", "state", r.res.State.String(),
		"reason", cause.Error(), "iterations", r.res.Iterations, "commits", r.res.Commits)

	return r.res, cause
}

func (r *run) finishUnchanged() *Result {
	r.res.State = Done
	r.res.Allocation = r.former

	return r.res
}

func (r *run) snapshotEdges() {
	r.res.CandidateEdges = r.pair.Candidate.Edges()
	r.res.ResultEdges = r.pair.Result.Edges()
}

// checkItems verifies items names exactly the allocation's item set.
func checkItems(a *allocation.Allocation, items []string) error {
	if items == nil {
		return nil
	}
	got := append([]string(nil), items...)
	sort.Strings(got)
	want := a.Items()
	if len(got) != len(want) {
		return fmt.Errorf("%d items given, allocation has %d: %w", len(got), len(want), allocation.ErrInvalidAllocation)
	}
	for k := range got {
		if got[k] != want[k] {
			return fmt.Errorf("item %q not in allocation: %w", got[k], allocation.ErrInvalidAllocation)
		}
	}

	return nil
}
