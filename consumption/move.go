// SPDX-License-Identifier: MIT
// File: move.go
// Role: Atomic transfer of one edge between two graphs.
// Concurrency:
//   - Both graphs are write-locked for the duration of the move, in ascending
//     graph-id order, so concurrent opposite moves cannot deadlock.

package consumption

import "fmt"

// MoveEdge removes e from `from` and inserts it into `to` with e.Weight.
// On success the edge is present in exactly one of the two graphs.
//
// Errors:
//   - ErrNilGraph       either graph is nil
//   - ErrSameGraph      from == to
//   - ErrEdgeNotFound   e is not an edge of from
//   - ErrEdgeExists     e is already an edge of to
//   - ErrNodeNotFound   to lacks e.Agent or e.Item
//
// On error neither graph is modified.
func MoveEdge(e Edge, from, to *Graph) error {
	if from == nil || to == nil {
		return fmt.Errorf("MoveEdge(%s,%s): %w", e.Agent, e.Item, ErrNilGraph)
	}
	if from == to {
		return fmt.Errorf("MoveEdge(%s,%s): %w", e.Agent, e.Item, ErrSameGraph)
	}

	first, second := from, to
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if _, ok := from.byAgent[e.Agent][e.Item]; !ok {
		return fmt.Errorf("MoveEdge(%s,%s): %w", e.Agent, e.Item, ErrEdgeNotFound)
	}
	if _, ok := to.byAgent[e.Agent]; !ok {
		return fmt.Errorf("MoveEdge(%s,%s): agent: %w", e.Agent, e.Item, ErrNodeNotFound)
	}
	if _, ok := to.byItem[e.Item]; !ok {
		return fmt.Errorf("MoveEdge(%s,%s): item: %w", e.Agent, e.Item, ErrNodeNotFound)
	}
	if _, ok := to.byAgent[e.Agent][e.Item]; ok {
		return fmt.Errorf("MoveEdge(%s,%s): %w", e.Agent, e.Item, ErrEdgeExists)
	}

	if _, err := from.removeEdgeLocked(e.Agent, e.Item); err != nil {
		return fmt.Errorf("MoveEdge(%s,%s): %w", e.Agent, e.Item, err)
	}

	return to.addEdgeLocked(e.Agent, e.Item, e.Weight)
}
