// SPDX-License-Identifier: MIT
// Package: fairalloc/allocation
//
// agent.go — the Agent valuation interface and AdditiveAgent.

package allocation

import "sort"

// Agent is a party receiving part of an allocation.
//
// Value scores a bundle of items. The procedure assumes additivity
// (Value(a, b) == Value(a) + Value(b)) but otherwise treats the model as opaque.
// Implementations must be immutable and safe for concurrent reads.
type Agent interface {
	Name() string
	Value(bundle ...string) float64
}

// AdditiveAgent values a bundle as the sum of its per-item values.
// Items it has no value for are worth 0. Negative values (chores) are allowed.
type AdditiveAgent struct {
	name   string
	values map[string]float64
}

// NewAdditiveAgent returns an AdditiveAgent over a private copy of values.
func NewAdditiveAgent(name string, values map[string]float64) *AdditiveAgent {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}

	return &AdditiveAgent{name: name, values: cp}
}

// Name returns the agent's identity.
func (a *AdditiveAgent) Name() string { return a.name }

// Value returns Σ value(item) over bundle. Repeated items are counted once per occurrence.
func (a *AdditiveAgent) Value(bundle ...string) float64 {
	var sum float64
	for _, it := range bundle {
		sum += a.values[it]
	}

	return sum
}

// Items returns the items this agent has an explicit value for, sorted.
func (a *AdditiveAgent) Items() []string {
	out := make([]string, 0, len(a.values))
	for k := range a.values {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// String returns the agent's name.
func (a *AdditiveAgent) String() string { return a.name }
