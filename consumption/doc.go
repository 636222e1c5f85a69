// Package consumption tracks which agent may consume which item while an
// allocation is being made acyclic.
//
// A consumption graph is a simple, undirected bipartite graph whose two
// partitions are agents and items. Edges are always stored agent→item.
//
// Two graphs share the node set during a run (see Pair):
//
//   - Candidate holds the edges that are still undecided;
//   - Result holds the decided edges, weight 1 for an assignment and weight 0
//     for a pair released because the item went to someone else.
//
// Core operations:
//
//	NewGraph()                         // empty graph
//	(*Graph).AddAgent/AddItem/AddEdge  // O(1)
//	(*Graph).RemoveEdge                // O(1), ErrEdgeNotFound when absent
//	Complete(agents, items)            // K(agents, items) + empty result graph
//	FindCycle(g)                       // deterministic DFS, first cycle or (nil,false)
//	MoveEdge(e, from, to)              // remove from one graph, insert into the other
//	(*Pair).Commit(agent, item)        // decide a whole item in one step
//
// Determinism: iteration follows node insertion order everywhere, so FindCycle
// returns the same cycle for equal inputs.
//
// Concurrency: every Graph is guarded by its own sync.RWMutex. MoveEdge locks both
// graphs in a fixed order.
package consumption
