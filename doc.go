// Package fairalloc turns fractional allocations of indivisible items into
// integral ones without lowering total welfare.
//
// Given agents with additive valuations and an allocation in which some items
// are shared, the improvement procedure removes every cycle from the allocation's
// consumption graph (the bipartite agent–item graph of non-zero shares). What
// remains is a forest, so each item can be handed to exactly one agent.
//
// Packages:
//
//	allocation/   — Agent, AdditiveAgent and the immutable fractional Allocation
//	matrix/       — labeled agents×items valuation matrix over gonum mat.Dense
//	consumption/  — thread-safe bipartite graph, cycle search, candidate/result pair
//	feasibility/  — the edge feasibility LP and its gonum simplex solver
//	pareto/       — INIT → ITERATING → DONE improvement engine, logr logging, metrics
//	instance/     — YAML/JSON/CSV instance files and result reports
//	config/       — viper-backed configuration and validation
//	cmd/paretoimprove — the command-line front end
//
// Quick start:
//
//	former, _ := allocation.FromFractions(agents, fractions)
//	res, err := pareto.New().Improve(ctx, former, nil)
//	fmt.Print(res.Allocation)
//
// Determinism: agent order is caller order, items are sorted, graph iteration is
// insertion-ordered and the simplex solver is deterministic, so the same input
// always produces the same output.
package fairalloc
