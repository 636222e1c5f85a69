// Package feasibility decides, one edge at a time, whether assigning an item
// wholly to an agent keeps the best achievable aggregate value.
//
// The decision rests on two linear programs over the variables x[agent][item]:
//
//	maximize   Σ x[i][o]·M_H[i][o]
//	subject to x[i][o] ≥ 0
//	           Σ_i x[i][o] = 1                   for every item o
//	           Σ x·M_H ≥ Σ x·M_former
//	           Σ x·M_H ≥ W(former) − slack        (welfare floor)
//	           x[i][o] = 0                         for pairs outside the tentative support
//
// The first program (opt1) uses the support of the current candidate/result
// state; the second (opt2) additionally restricts the probed item to the probed
// agent. Equal optima mean the edge can be committed.
//
// Solving is delegated to a Solver. The default SimplexSolver reduces the
// problem, converts it to standard form with gonum's lp.Convert and runs
// lp.Simplex.
package feasibility
