// Package allocation defines the agents, valuations and fractional allocations
// consumed and produced by the Pareto-improvement procedure.
//
// What:
//
//   - Agent: identity plus an additive valuation capability Value(bundle...).
//   - AdditiveAgent: the map-backed Agent used by instance files and tests.
//   - Allocation: an immutable agent×item table of fractions in [0,1] where every
//     item's fractions sum to 1.
//
// Operations:
//
//   - FromFractions(agents, fractions)     validate and build an Allocation
//   - FromAssignment(agents, items, owner) build an integral Allocation
//   - (*Allocation).ValuationMatrix()      agents×items singleton valuations
//   - (*Allocation).IsComplete()           every item wholly held by one agent
//   - (*Allocation).WithForcedAssignment() copy with one item moved wholly to one agent
//   - (*Allocation).Render()               per-agent report
//
// Errors:
//
//   - ErrInvalidAllocation  any validation failure (errors.Is matches all below)
//   - ErrUnknownAgent       agent name not in the allocation
//   - ErrUnknownItem        item id not in the allocation
//   - ErrItemSum            an item's fractions do not sum to 1
//
// Items are always kept in sorted order; that order defines the columns of
// ValuationMatrix and the LP variable layout downstream.
package allocation
