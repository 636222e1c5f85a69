// SPDX-License-Identifier: MIT
// File: cycle.go
// Role: Deterministic first-cycle search on a bipartite Graph.
// Determinism:
//   - Roots are visited agents first (insertion order), then items (insertion order).
//   - Neighbors are visited in the opposite partition's insertion order.
//   - The first back edge found closes the returned cycle, so equal graphs
//     always yield the same cycle.
// Concurrency:
//   - FindCycle snapshots the graph under its read lock; the walk itself runs on
//     the snapshot and never holds the lock.
// AI-HINT (file):
//   - In a simple bipartite graph every cycle has even length ≥ 4, so the
//     parent skip alone rules out trivial backtracks.

package consumption

import "strings"

// Visitation colors for the DFS.
const (
	white = iota // unvisited
	gray         // on the current path
	black        // fully explored
)

// Cycle is a closed walk [v0, v1, ..., v0] alternating agent and item nodes.
type Cycle []Node

// Len returns the number of distinct nodes on the cycle.
func (c Cycle) Len() int {
	if len(c) == 0 {
		return 0
	}

	return len(c) - 1
}

// Edges returns the cycle's edges in walk order, normalized agent→item.
func (c Cycle) Edges() []Edge {
	if len(c) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(c)-1)
	for k := 0; k+1 < len(c); k++ {
		u, v := c[k], c[k+1]
		if u.Kind == ItemNode {
			u, v = v, u
		}
		out = append(out, Edge{Agent: u.ID, Item: v.ID})
	}

	return out
}

// Items returns the item IDs on the cycle in walk order.
func (c Cycle) Items() []string {
	var out []string
	for _, n := range c.open() {
		if n.Kind == ItemNode {
			out = append(out, n.ID)
		}
	}

	return out
}

// String renders the walk as "agent:a → item:x → ... → agent:a".
func (c Cycle) String() string {
	var sb strings.Builder
	for k, n := range c {
		if k > 0 {
			sb.WriteString(" → ")
		}
		sb.WriteString(n.String())
	}

	return sb.String()
}

// open drops the closing repeat of v0.
func (c Cycle) open() []Node {
	if len(c) == 0 {
		return nil
	}

	return c[:len(c)-1]
}

// snapshot is an index-based adjacency view taken under the read lock.
type snapshot struct {
	nodes []Node
	adj   [][]int // adj[v] in deterministic neighbor order
}

func takeSnapshot(g *Graph) snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	na := len(g.agents)
	s := snapshot{
		nodes: make([]Node, 0, na+len(g.items)),
		adj:   make([][]int, na+len(g.items)),
	}
	for _, a := range g.agents {
		s.nodes = append(s.nodes, Node{Kind: AgentNode, ID: a})
	}
	for _, it := range g.items {
		s.nodes = append(s.nodes, Node{Kind: ItemNode, ID: it})
	}
	for ai, a := range g.agents {
		row := g.byAgent[a]
		for ii, it := range g.items {
			if _, ok := row[it]; ok {
				s.adj[ai] = append(s.adj[ai], na+ii)
				s.adj[na+ii] = append(s.adj[na+ii], ai)
			}
		}
	}

	return s
}

// FindCycle returns the first cycle found by a deterministic DFS over g,
// or (nil, false) when g is a forest. A nil graph has no cycle.
// Complexity: O(V + E).
func FindCycle(g *Graph) (Cycle, bool) {
	if g == nil {
		return nil, false
	}
	s := takeSnapshot(g)
	state := make([]int, len(s.nodes))
	path := make([]int, 0, len(s.nodes))

	for root := range s.nodes {
		if state[root] != white || len(s.adj[root]) == 0 {
			continue
		}
		if c, ok := visit(s, root, -1, state, &path); ok {
			return c, true
		}
	}

	return nil, false
}

// Acyclic reports whether g contains no cycle.
func Acyclic(g *Graph) bool {
	_, found := FindCycle(g)

	return !found
}

// visit runs the DFS from v; parent is -1 for roots.
func visit(s snapshot, v, parent int, state []int, path *[]int) (Cycle, bool) {
	state[v] = gray
	*path = append(*path, v)

	for _, w := range s.adj[v] {
		if w == parent {
			continue
		}
		switch state[w] {
		case white:
			if c, ok := visit(s, w, v, state, path); ok {
				return c, true
			}
		case gray:
			return closeCycle(s, w, *path), true
		}
	}

	*path = (*path)[:len(*path)-1]
	state[v] = black

	return nil, false
}

// closeCycle cuts path at start and closes the walk back to it.
func closeCycle(s snapshot, start int, path []int) Cycle {
	idx := 0
	for k, v := range path {
		if v == start {
			idx = k
			break
		}
	}
	out := make(Cycle, 0, len(path)-idx+1)
	for _, v := range path[idx:] {
		out = append(out, s.nodes[v])
	}

	return append(out, s.nodes[start])
}
