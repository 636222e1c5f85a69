// SPDX-License-Identifier: MIT
// Package: fairalloc/allocation
//
// allocation.go — the fractional Allocation value type.
//
// Contract:
//   • Agents keep caller order; items are sorted lexicographically, which is the
//     stable item ordering used by valuation matrices and LP variable layout.
//   • For every item Σ_agents fraction == 1 within tolerance; each fraction ∈ [0,1].
//   • An Allocation is immutable. Every "modifying" operation returns a new value,
//     so probes built from one baseline never observe each other.
//
// Complexity:
//   • Construction O(n·m); lookups O(1); ValuationMatrix O(n·m) Value calls.

package allocation

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/fairalloc/matrix"
)

// Allocation maps each agent to a fraction of each item.
type Allocation struct {
	agents    []Agent
	items     []string
	agentIdx  map[string]int
	itemIdx   map[string]int
	fractions [][]float64 // [agent][item]
	tol       float64
}

// Holding is one non-zero agent–item share of an allocation.
type Holding struct {
	Agent    string
	Item     string
	Fraction float64
}

// FromFractions builds an Allocation from per-agent item→fraction maps.
// fractions[i] belongs to agents[i]; a key missing from one map counts as 0.
// The item set is the union of all keys.
//
// Errors (all match ErrInvalidAllocation):
//   - no agents, nil agent, empty or duplicate agent name;
//   - len(fractions) != len(agents);
//   - empty item set;
//   - NaN/Inf fraction or fraction outside [0,1] beyond tolerance;
//   - ErrItemSum when an item's fractions do not sum to 1.
func FromFractions(agents []Agent, fractions []map[string]float64, opts ...Option) (*Allocation, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(fractions) != len(agents) {
		return nil, fmt.Errorf("FromFractions: %d agents but %d fraction maps: %w",
			len(agents), len(fractions), ErrInvalidAllocation)
	}

	seen := make(map[string]struct{})
	for _, fm := range fractions {
		for it := range fm {
			seen[it] = struct{}{}
		}
	}
	items := make([]string, 0, len(seen))
	for it := range seen {
		items = append(items, it)
	}
	sort.Strings(items)

	table := make([][]float64, len(agents))
	for i, fm := range fractions {
		row := make([]float64, len(items))
		for j, it := range items {
			row[j] = fm[it]
		}
		table[i] = row
	}

	a, err := newAllocation(agents, items, table, cfg.tol)
	if err != nil {
		return nil, fmt.Errorf("FromFractions: %w", err)
	}

	return a, nil
}

// FromAssignment builds an integral Allocation in which owner[item] receives the
// whole item. Every item in items must have an owner naming one of agents.
func FromAssignment(agents []Agent, items []string, owner map[string]string, opts ...Option) (*Allocation, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	sorted := append([]string(nil), items...)
	sort.Strings(sorted)

	byName := make(map[string]int, len(agents))
	for i, ag := range agents {
		if ag != nil {
			byName[ag.Name()] = i
		}
	}

	table := make([][]float64, len(agents))
	for i := range table {
		table[i] = make([]float64, len(sorted))
	}
	for j, it := range sorted {
		name, ok := owner[it]
		if !ok {
			return nil, fmt.Errorf("FromAssignment: item %q has no owner: %w", it, ErrItemSum)
		}
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("FromAssignment: item %q owner %q: %w", it, name, ErrUnknownAgent)
		}
		table[i][j] = 1
	}

	a, err := newAllocation(agents, sorted, table, cfg.tol)
	if err != nil {
		return nil, fmt.Errorf("FromAssignment: %w", err)
	}

	return a, nil
}

// newAllocation validates and takes ownership of table.
func newAllocation(agents []Agent, items []string, table [][]float64, tol float64) (*Allocation, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("no agents: %w", ErrInvalidAllocation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items: %w", ErrInvalidAllocation)
	}

	agentIdx := make(map[string]int, len(agents))
	for i, ag := range agents {
		if ag == nil {
			return nil, fmt.Errorf("agent %d is nil: %w", i, ErrInvalidAllocation)
		}
		name := ag.Name()
		if name == "" {
			return nil, fmt.Errorf("agent %d has an empty name: %w", i, ErrInvalidAllocation)
		}
		if _, dup := agentIdx[name]; dup {
			return nil, fmt.Errorf("duplicate agent %q: %w", name, ErrInvalidAllocation)
		}
		agentIdx[name] = i
	}

	itemIdx := make(map[string]int, len(items))
	for j, it := range items {
		if it == "" {
			return nil, fmt.Errorf("empty item id: %w", ErrInvalidAllocation)
		}
		if _, dup := itemIdx[it]; dup {
			return nil, fmt.Errorf("duplicate item %q: %w", it, ErrInvalidAllocation)
		}
		itemIdx[it] = j
	}

	for j, it := range items {
		var sum float64
		for i := range agents {
			f := table[i][j]
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("agent %q item %q: fraction %v: %w", agents[i].Name(), it, f, ErrInvalidAllocation)
			}
			if f < -tol || f > 1+tol {
				return nil, fmt.Errorf("agent %q item %q: fraction %v outside [0,1]: %w", agents[i].Name(), it, f, ErrInvalidAllocation)
			}
			sum += f
		}
		if math.Abs(sum-1) > tol*float64(len(agents)) {
			return nil, fmt.Errorf("item %q sums to %v: %w", it, sum, ErrItemSum)
		}
	}

	return &Allocation{
		agents:    append([]Agent(nil), agents...),
		items:     items,
		agentIdx:  agentIdx,
		itemIdx:   itemIdx,
		fractions: table,
		tol:       tol,
	}, nil
}

// Agents returns the agents in allocation order.
func (a *Allocation) Agents() []Agent { return append([]Agent(nil), a.agents...) }

// AgentNames returns the agent names in allocation order.
func (a *Allocation) AgentNames() []string {
	out := make([]string, len(a.agents))
	for i, ag := range a.agents {
		out[i] = ag.Name()
	}

	return out
}

// Items returns the sorted item set.
func (a *Allocation) Items() []string { return append([]string(nil), a.items...) }

// NumAgents returns the number of agents.
func (a *Allocation) NumAgents() int { return len(a.agents) }

// NumItems returns the number of items.
func (a *Allocation) NumItems() int { return len(a.items) }

// Tolerance returns the numeric tolerance the allocation was validated with.
func (a *Allocation) Tolerance() float64 { return a.tol }

// AgentIndex returns the position of the named agent.
func (a *Allocation) AgentIndex(name string) (int, bool) {
	i, ok := a.agentIdx[name]
	return i, ok
}

// ItemIndex returns the position of item in Items().
func (a *Allocation) ItemIndex(item string) (int, bool) {
	j, ok := a.itemIdx[item]
	return j, ok
}

// Fraction returns the share of item held by the named agent, 0 if either is unknown.
func (a *Allocation) Fraction(agent, item string) float64 {
	i, ok := a.agentIdx[agent]
	if !ok {
		return 0
	}
	j, ok := a.itemIdx[item]
	if !ok {
		return 0
	}

	return a.fractions[i][j]
}

// Fractions returns a fresh per-agent item→fraction map, zeros included.
func (a *Allocation) Fractions() []map[string]float64 {
	out := make([]map[string]float64, len(a.agents))
	for i := range a.agents {
		m := make(map[string]float64, len(a.items))
		for j, it := range a.items {
			m[it] = a.fractions[i][j]
		}
		out[i] = m
	}

	return out
}

// Table returns a copy of the agent×item fraction table.
func (a *Allocation) Table() [][]float64 {
	out := make([][]float64, len(a.fractions))
	for i, row := range a.fractions {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// Support lists every non-zero share, agent-major then item order.
func (a *Allocation) Support() []Holding {
	var out []Holding
	for i, ag := range a.agents {
		for j, it := range a.items {
			if a.fractions[i][j] > a.tol {
				out = append(out, Holding{Agent: ag.Name(), Item: it, Fraction: a.fractions[i][j]})
			}
		}
	}

	return out
}

// ValuationMatrix evaluates each agent on each singleton item, in Items() order.
func (a *Allocation) ValuationMatrix() (*matrix.Valuation, error) {
	vm, err := matrix.NewValuation(a.AgentNames(), a.items)
	if err != nil {
		return nil, fmt.Errorf("ValuationMatrix: %w", err)
	}
	for i, ag := range a.agents {
		for j, it := range a.items {
			if err = vm.Set(i, j, ag.Value(it)); err != nil {
				return nil, fmt.Errorf("ValuationMatrix: agent %q item %q: %w", ag.Name(), it, err)
			}
		}
	}

	return vm, nil
}

// isWhole reports whether f is 1 within tolerance.
func (a *Allocation) isWhole(f float64) bool { return math.Abs(f-1) <= a.tol }

// isZero reports whether f is 0 within tolerance.
func (a *Allocation) isZero(f float64) bool { return math.Abs(f) <= a.tol }

// IsIntegral reports whether every fraction is 0 or 1.
func (a *Allocation) IsIntegral() bool {
	for i := range a.agents {
		for j := range a.items {
			f := a.fractions[i][j]
			if !a.isWhole(f) && !a.isZero(f) {
				return false
			}
		}
	}

	return true
}

// IsComplete reports whether every item is wholly held by exactly one agent.
func (a *Allocation) IsComplete() bool {
	for j := range a.items {
		holders := 0
		for i := range a.agents {
			f := a.fractions[i][j]
			switch {
			case a.isWhole(f):
				holders++
			case !a.isZero(f):
				return false
			}
		}
		if holders != 1 {
			return false
		}
	}

	return true
}

// WithForcedAssignment returns a new Allocation in which item belongs wholly to
// agent; every other item keeps the receiver's fractions. The receiver is not modified.
func (a *Allocation) WithForcedAssignment(item, agent string) (*Allocation, error) {
	i, ok := a.agentIdx[agent]
	if !ok {
		return nil, fmt.Errorf("WithForcedAssignment(%q,%q): %w", item, agent, ErrUnknownAgent)
	}
	j, ok := a.itemIdx[item]
	if !ok {
		return nil, fmt.Errorf("WithForcedAssignment(%q,%q): %w", item, agent, ErrUnknownItem)
	}

	table := a.Table()
	for k := range table {
		table[k][j] = 0
	}
	table[i][j] = 1

	return &Allocation{
		agents:    a.agents,
		items:     a.items,
		agentIdx:  a.agentIdx,
		itemIdx:   a.itemIdx,
		fractions: table,
		tol:       a.tol,
	}, nil
}

// WithAssignments applies WithForcedAssignment for every item→agent pair in owner
// and returns the result; items absent from owner keep the receiver's fractions.
func (a *Allocation) WithAssignments(owner map[string]string) (*Allocation, error) {
	table := a.Table()
	for it, agent := range owner {
		i, ok := a.agentIdx[agent]
		if !ok {
			return nil, fmt.Errorf("WithAssignments(%q,%q): %w", it, agent, ErrUnknownAgent)
		}
		j, ok := a.itemIdx[it]
		if !ok {
			return nil, fmt.Errorf("WithAssignments(%q,%q): %w", it, agent, ErrUnknownItem)
		}
		for k := range table {
			table[k][j] = 0
		}
		table[i][j] = 1
	}

	return &Allocation{
		agents:    a.agents,
		items:     a.items,
		agentIdx:  a.agentIdx,
		itemIdx:   a.itemIdx,
		fractions: table,
		tol:       a.tol,
	}, nil
}

// Bundle returns the items the named agent holds wholly, sorted.
func (a *Allocation) Bundle(agent string) []string {
	i, ok := a.agentIdx[agent]
	if !ok {
		return nil
	}
	var out []string
	for j, it := range a.items {
		if a.isWhole(a.fractions[i][j]) {
			out = append(out, it)
		}
	}

	return out
}

// Utility returns Σ fraction·value(item) for the agent at index i.
func (a *Allocation) Utility(i int) float64 {
	if i < 0 || i >= len(a.agents) {
		return 0
	}
	var u float64
	for j, it := range a.items {
		if f := a.fractions[i][j]; f != 0 {
			u += f * a.agents[i].Value(it)
		}
	}

	return u
}

// Welfare returns the sum of all agents' utilities.
func (a *Allocation) Welfare() float64 {
	var w float64
	for i := range a.agents {
		w += a.Utility(i)
	}

	return w
}

// Equal reports whether both allocations share agents, items and fractions
// (within the receiver's tolerance).
func (a *Allocation) Equal(b *Allocation) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.agents) != len(b.agents) || len(a.items) != len(b.items) {
		return false
	}
	for i := range a.agents {
		if a.agents[i].Name() != b.agents[i].Name() {
			return false
		}
	}
	for j := range a.items {
		if a.items[j] != b.items[j] {
			return false
		}
	}
	for i := range a.fractions {
		for j := range a.fractions[i] {
			if math.Abs(a.fractions[i][j]-b.fractions[i][j]) > a.tol {
				return false
			}
		}
	}

	return true
}
