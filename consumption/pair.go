// SPDX-License-Identifier: MIT
// File: pair.go
// Role: Candidate/result graph pair driven by the improvement loop.
// Invariants:
//   - An agent–item pair is an edge of at most one of Candidate and Result.
//   - Candidate ∪ Result always equals the complete bipartite graph built by Complete.
//   - Commit strictly shrinks Candidate.
//   - Every item has at most one weight-1 edge in Result; once it has one it has
//     no Candidate edges left.
// Determinism:
//   - Item order is the order given to Complete (callers pass items sorted).

package consumption

import "fmt"

// Pair holds the undecided (Candidate) and decided (Result) edges of one run.
type Pair struct {
	Candidate *Graph
	Result    *Graph
}

// Complete builds the complete bipartite candidate graph K(agents, items) and an
// empty result graph over the same nodes.
//
// Errors: ErrEmptyPartition, ErrEmptyNodeID, ErrDuplicateNode.
// Complexity: O(|agents|·|items|).
func Complete(agents, items []string) (*Pair, error) {
	if len(agents) == 0 || len(items) == 0 {
		return nil, fmt.Errorf("Complete: agents=%d, items=%d: %w", len(agents), len(items), ErrEmptyPartition)
	}

	cand := NewGraph()
	for _, a := range agents {
		if a == "" {
			return nil, fmt.Errorf("Complete: agent: %w", ErrEmptyNodeID)
		}
		if cand.HasAgent(a) {
			return nil, fmt.Errorf("Complete: agent %q: %w", a, ErrDuplicateNode)
		}
		_ = cand.AddAgent(a)
	}
	for _, it := range items {
		if it == "" {
			return nil, fmt.Errorf("Complete: item: %w", ErrEmptyNodeID)
		}
		if cand.HasItem(it) {
			return nil, fmt.Errorf("Complete: item %q: %w", it, ErrDuplicateNode)
		}
		_ = cand.AddItem(it)
	}
	for _, a := range agents {
		for _, it := range items {
			if err := cand.AddEdge(a, it, 0); err != nil {
				return nil, fmt.Errorf("Complete: %w", err)
			}
		}
	}

	return &Pair{Candidate: cand, Result: cand.CloneEmpty()}, nil
}

// Commit decides item in favour of agent: the edge (agent, item) moves to Result
// with WeightAssigned, and every other Candidate edge of item moves to Result
// with WeightReleased. It returns the moved edges, the assigned one first.
//
// Returns ErrEdgeNotFound when (agent, item) is not a Candidate edge.
func (p *Pair) Commit(agent, item string) ([]Edge, error) {
	if !p.Candidate.HasEdge(agent, item) {
		return nil, fmt.Errorf("Commit(%s,%s): %w", agent, item, ErrEdgeNotFound)
	}
	siblings, err := p.Candidate.ItemEdges(item)
	if err != nil {
		return nil, fmt.Errorf("Commit(%s,%s): %w", agent, item, err)
	}

	moved := make([]Edge, 0, len(siblings))
	assigned := Edge{Agent: agent, Item: item, Weight: WeightAssigned}
	if err = MoveEdge(assigned, p.Candidate, p.Result); err != nil {
		return nil, fmt.Errorf("Commit: %w", err)
	}
	moved = append(moved, assigned)

	for _, e := range siblings {
		if e.Agent == agent {
			continue
		}
		released := Edge{Agent: e.Agent, Item: item, Weight: WeightReleased}
		if err = MoveEdge(released, p.Candidate, p.Result); err != nil {
			return moved, fmt.Errorf("Commit: %w", err)
		}
		moved = append(moved, released)
	}

	return moved, nil
}

// Allowed reports whether agent may still receive a share of item: either the
// pair is undecided (a Candidate edge) or it was assigned in Result.
func (p *Pair) Allowed(agent, item string) bool {
	if p.Candidate.HasEdge(agent, item) {
		return true
	}
	e, err := p.Result.GetEdge(agent, item)

	return err == nil && e.Weight == WeightAssigned
}

// Assignment returns item → agent for every weight-1 Result edge.
func (p *Pair) Assignment() map[string]string {
	out := make(map[string]string)
	for _, e := range p.Result.Edges() {
		if e.Weight == WeightAssigned {
			out[e.Item] = e.Agent
		}
	}

	return out
}

// Undecided returns the items that still own Candidate edges, in item order.
func (p *Pair) Undecided() []string {
	var out []string
	for _, it := range p.Candidate.Items() {
		if es, _ := p.Candidate.ItemEdges(it); len(es) > 0 {
			out = append(out, it)
		}
	}

	return out
}

// Decided reports whether item already has its weight-1 Result edge.
func (p *Pair) Decided(item string) bool {
	es, err := p.Result.ItemEdges(item)
	if err != nil {
		return false
	}
	for _, e := range es {
		if e.Weight == WeightAssigned {
			return true
		}
	}

	return false
}
