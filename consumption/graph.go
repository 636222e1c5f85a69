// SPDX-License-Identifier: MIT
// File: graph.go
// Role: Bipartite agent–item edge set: nodes, edge lifecycle, queries, cloning.
// Determinism:
//   - Agents() and Items() return insertion order.
//   - Edges() is agent-major in agent insertion order, then item insertion order.
//   - AgentEdges/ItemEdges follow the opposite partition's insertion order.
// Concurrency:
//   - One sync.RWMutex guards nodes and both adjacency indexes.
//   - Mutations under the write lock, queries under the read lock.
// AI-HINT (file):
//   - Edges are always stored agent→item; there is no item→agent orientation.
//   - AddEdge on an existing pair returns ErrEdgeExists (no parallel edges).

package consumption

import (
	"sync"
	"sync/atomic"
)

// NodeKind tells the two partitions apart.
type NodeKind uint8

const (
	// AgentNode marks a node from the agent partition.
	AgentNode NodeKind = iota
	// ItemNode marks a node from the item partition.
	ItemNode
)

// String returns "agent" or "item".
func (k NodeKind) String() string {
	if k == AgentNode {
		return "agent"
	}

	return "item"
}

// Node identifies a vertex of the consumption graph. Agent and item IDs live in
// separate namespaces, so an agent and an item may share an ID.
type Node struct {
	Kind NodeKind
	ID   string
}

// String renders the node as "agent:<id>" or "item:<id>".
func (n Node) String() string { return n.Kind.String() + ":" + n.ID }

// Edge links an agent to an item.
//
// Weight is meaningful on the result graph only: WeightAssigned marks the item as
// given wholly to the agent, WeightReleased marks the pair as decided against.
type Edge struct {
	Agent  string
	Item   string
	Weight float64
}

// Result-graph edge weights.
const (
	WeightReleased = 0.0
	WeightAssigned = 1.0
)

// graphSeq hands out graph identities used to order locks in MoveEdge.
var graphSeq uint64

// Graph is an undirected, simple bipartite graph over agents and items.
type Graph struct {
	mu sync.RWMutex // guards everything below
	id uint64       // lock-ordering identity, immutable

	agents   []string
	items    []string
	agentIdx map[string]int
	itemIdx  map[string]int

	// byAgent[agent][item] and byItem[item][agent] index the same *Edge.
	byAgent map[string]map[string]*Edge
	byItem  map[string]map[string]*Edge
	edges   int
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		id:       atomic.AddUint64(&graphSeq, 1),
		agentIdx: make(map[string]int),
		itemIdx:  make(map[string]int),
		byAgent:  make(map[string]map[string]*Edge),
		byItem:   make(map[string]map[string]*Edge),
	}
}

// AddAgent inserts an agent node. Re-adding an existing agent is a no-op.
func (g *Graph) AddAgent(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.agentIdx[id]; ok {
		return nil
	}
	g.agentIdx[id] = len(g.agents)
	g.agents = append(g.agents, id)
	g.byAgent[id] = make(map[string]*Edge)

	return nil
}

// AddItem inserts an item node. Re-adding an existing item is a no-op.
func (g *Graph) AddItem(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.itemIdx[id]; ok {
		return nil
	}
	g.itemIdx[id] = len(g.items)
	g.items = append(g.items, id)
	g.byItem[id] = make(map[string]*Edge)

	return nil
}

// HasAgent reports whether the agent node exists.
func (g *Graph) HasAgent(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.agentIdx[id]

	return ok
}

// HasItem reports whether the item node exists.
func (g *Graph) HasItem(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.itemIdx[id]

	return ok
}

// AddEdge links agent to item with the given weight. Both nodes must exist.
// Complexity: O(1).
func (g *Graph) AddEdge(agent, item string, weight float64) error {
	if agent == "" || item == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addEdgeLocked(agent, item, weight)
}

// addEdgeLocked requires g.mu held for writing.
func (g *Graph) addEdgeLocked(agent, item string, weight float64) error {
	row, ok := g.byAgent[agent]
	if !ok {
		return ErrNodeNotFound
	}
	col, ok := g.byItem[item]
	if !ok {
		return ErrNodeNotFound
	}
	if _, dup := row[item]; dup {
		return ErrEdgeExists
	}
	e := &Edge{Agent: agent, Item: item, Weight: weight}
	row[item] = e
	col[agent] = e
	g.edges++

	return nil
}

// RemoveEdge deletes the agent–item edge and returns a copy of it.
// Removing an absent edge returns ErrEdgeNotFound (no silent ignore).
// Complexity: O(1).
func (g *Graph) RemoveEdge(agent, item string) (Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.removeEdgeLocked(agent, item)
}

// removeEdgeLocked requires g.mu held for writing.
func (g *Graph) removeEdgeLocked(agent, item string) (Edge, error) {
	e, ok := g.byAgent[agent][item]
	if !ok {
		return Edge{}, ErrEdgeNotFound
	}
	delete(g.byAgent[agent], item)
	delete(g.byItem[item], agent)
	g.edges--

	return *e, nil
}

// HasEdge reports whether agent–item is an edge.
// Complexity: O(1).
func (g *Graph) HasEdge(agent, item string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.byAgent[agent][item]

	return ok
}

// GetEdge returns a copy of the agent–item edge or ErrEdgeNotFound.
func (g *Graph) GetEdge(agent, item string) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.byAgent[agent][item]
	if !ok {
		return Edge{}, ErrEdgeNotFound
	}

	return *e, nil
}

// EdgeCount returns the number of edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// Agents returns the agent IDs in insertion order.
func (g *Graph) Agents() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.agents...)
}

// Items returns the item IDs in insertion order.
func (g *Graph) Items() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.items...)
}

// Edges returns copies of all edges, agent-major in insertion order.
// Complexity: O(V + E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, 0, g.edges)
	for _, a := range g.agents {
		row := g.byAgent[a]
		if len(row) == 0 {
			continue
		}
		for _, it := range g.items {
			if e, ok := row[it]; ok {
				out = append(out, *e)
			}
		}
	}

	return out
}

// AgentEdges returns the edges incident to agent in item insertion order.
func (g *Graph) AgentEdges(agent string) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	row, ok := g.byAgent[agent]
	if !ok {
		return nil, ErrNodeNotFound
	}
	out := make([]Edge, 0, len(row))
	for _, it := range g.items {
		if e, ok := row[it]; ok {
			out = append(out, *e)
		}
	}

	return out, nil
}

// ItemEdges returns the edges incident to item in agent insertion order.
func (g *Graph) ItemEdges(item string) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	col, ok := g.byItem[item]
	if !ok {
		return nil, ErrNodeNotFound
	}
	out := make([]Edge, 0, len(col))
	for _, a := range g.agents {
		if e, ok := col[a]; ok {
			out = append(out, *e)
		}
	}

	return out, nil
}

// CloneEmpty returns a new Graph with the same nodes, in the same order, and no edges.
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	clone := NewGraph()
	for _, a := range g.agents {
		clone.agentIdx[a] = len(clone.agents)
		clone.agents = append(clone.agents, a)
		clone.byAgent[a] = make(map[string]*Edge)
	}
	for _, it := range g.items {
		clone.itemIdx[it] = len(clone.items)
		clone.items = append(clone.items, it)
		clone.byItem[it] = make(map[string]*Edge)
	}

	return clone
}

// Clone returns a deep copy of nodes and edges.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	clone := g.CloneEmpty()
	g.mu.RLock()
	defer g.mu.RUnlock()
	for a, row := range g.byAgent {
		for it, e := range row {
			// nodes were copied by CloneEmpty, so this cannot fail
			_ = clone.addEdgeLocked(a, it, e.Weight)
		}
	}

	return clone
}
