// SPDX-License-Identifier: MIT
// Package: fairalloc/consumption
//
// errors.go — sentinel errors for consumption graph bookkeeping.
//
// ErrEdgeNotFound and ErrEdgeExists signal internal invariant violations in the
// candidate/result bookkeeping: they indicate a bug in the caller, not a
// recoverable runtime condition. Check with errors.Is.

package consumption

import "errors"

var (
	// ErrEmptyNodeID indicates an agent or item with an empty identifier.
	ErrEmptyNodeID = errors.New("consumption: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced an agent or item the graph lacks.
	ErrNodeNotFound = errors.New("consumption: node not found")

	// ErrDuplicateNode indicates the same agent or item was listed twice for Complete.
	ErrDuplicateNode = errors.New("consumption: duplicate node")

	// ErrEdgeNotFound indicates an operation referenced an edge absent from the graph.
	ErrEdgeNotFound = errors.New("consumption: edge not found")

	// ErrEdgeExists indicates an insert of an edge the graph already holds.
	ErrEdgeExists = errors.New("consumption: edge already exists")

	// ErrSameGraph indicates MoveEdge was asked to move an edge onto its own graph.
	ErrSameGraph = errors.New("consumption: source and destination graph are the same")

	// ErrEmptyPartition indicates Complete was called without agents or without items.
	ErrEmptyPartition = errors.New("consumption: partition is empty")

	// ErrNilGraph indicates a nil *Graph argument.
	ErrNilGraph = errors.New("consumption: graph is nil")
)
