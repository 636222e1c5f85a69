// Package pareto removes cycles from the consumption graph of a fractional
// allocation, producing an integral allocation that is at least as valuable in
// aggregate.
//
// The Engine is a three-state machine:
//
//	INIT       validate input; shortcut single-agent and already-integral inputs
//	ITERATING  find a cycle in the candidate graph, probe its edges with the
//	           feasibility oracle, commit the accepted ones
//	DONE       decide leftover items, materialize the result graph
//
// Usage:
//
//	eng := pareto.New(pareto.WithLogger(log), pareto.WithMetrics(m))
//	res, err := eng.Improve(ctx, former, nil)
//	switch {
//	case errors.Is(err, pareto.ErrIterationLimit), errors.Is(err, pareto.ErrNoProgress):
//	    // res.Allocation is a valid partial result
//	case err != nil:
//	    return err
//	}
//
// Logging goes through logr: state transitions at V(0), edge verdicts and commits
// (with candidate edge counts) at V(1),
// LP values at V(2). Metrics are optional Prometheus collectors (see NewMetrics).
package pareto
