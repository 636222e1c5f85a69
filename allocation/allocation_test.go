package allocation_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/allocation"
)

func agents() []allocation.Agent {
	return []allocation.Agent{
		allocation.NewAdditiveAgent("agent1", map[string]float64{"a": 10, "b": 100, "c": 80, "d": -100}),
		allocation.NewAdditiveAgent("agent2", map[string]float64{"a": 20, "b": 100, "c": -40, "d": 10}),
	}
}

func split(t *testing.T) *allocation.Allocation {
	t.Helper()
	a, err := allocation.FromFractions(agents(), []map[string]float64{
		{"b": 0.3, "c": 1},
		{"a": 1, "b": 0.7, "d": 1},
	})
	require.NoError(t, err)

	return a
}

func TestAdditiveAgent(t *testing.T) {
	values := map[string]float64{"x": 2, "y": -3}
	ag := allocation.NewAdditiveAgent("ann", values)
	values["x"] = 100 // private copy

	assert.Equal(t, "ann", ag.Name())
	assert.Equal(t, "ann", ag.String())
	assert.Equal(t, 2.0, ag.Value("x"))
	assert.Equal(t, -1.0, ag.Value("x", "y", "unknown"))
	assert.Zero(t, ag.Value())
	assert.Equal(t, []string{"x", "y"}, ag.Items())
}

func TestFromFractions(t *testing.T) {
	a := split(t)
	assert.Equal(t, []string{"agent1", "agent2"}, a.AgentNames())
	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Items())
	assert.Equal(t, 2, a.NumAgents())
	assert.Equal(t, 4, a.NumItems())
	assert.Equal(t, allocation.DefaultTolerance, a.Tolerance())

	want := [][]float64{{0, 0.3, 1, 0}, {1, 0.7, 0, 1}}
	if diff := cmp.Diff(want, a.Table()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0.7, a.Fraction("agent2", "b"))
	assert.Zero(t, a.Fraction("nobody", "b"))
	assert.Zero(t, a.Fraction("agent1", "zz"))

	j, ok := a.ItemIndex("c")
	require.True(t, ok)
	assert.Equal(t, 2, j)
	_, ok = a.AgentIndex("agent3")
	assert.False(t, ok)
}

func TestFromFractions_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		agents    []allocation.Agent
		fractions []map[string]float64
		want      error
	}{
		{"no agents", nil, nil, allocation.ErrInvalidAllocation},
		{"length mismatch", agents(), []map[string]float64{{"a": 1}}, allocation.ErrInvalidAllocation},
		{"no items", agents(), []map[string]float64{{}, {}}, allocation.ErrInvalidAllocation},
		{"nil agent", []allocation.Agent{nil}, []map[string]float64{{"a": 1}}, allocation.ErrInvalidAllocation},
		{"empty name", []allocation.Agent{allocation.NewAdditiveAgent("", nil)}, []map[string]float64{{"a": 1}}, allocation.ErrInvalidAllocation},
		{
			"duplicate agent",
			[]allocation.Agent{allocation.NewAdditiveAgent("x", nil), allocation.NewAdditiveAgent("x", nil)},
			[]map[string]float64{{"a": 0.5}, {"a": 0.5}},
			allocation.ErrInvalidAllocation,
		},
		{"empty item", agents(), []map[string]float64{{"": 1}, {}}, allocation.ErrInvalidAllocation},
		{"negative", agents(), []map[string]float64{{"a": -0.5}, {"a": 1.5}}, allocation.ErrInvalidAllocation},
		{"nan", agents(), []map[string]float64{{"a": math.NaN()}, {"a": 1}}, allocation.ErrInvalidAllocation},
		{"under one", agents(), []map[string]float64{{"a": 0.2}, {"a": 0.2}}, allocation.ErrItemSum},
		{"over one", agents(), []map[string]float64{{"a": 0.8}, {"a": 0.8}}, allocation.ErrItemSum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := allocation.FromFractions(tt.agents, tt.fractions)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, allocation.ErrInvalidAllocation)
		})
	}
}

func TestWithTolerance(t *testing.T) {
	fr := []map[string]float64{{"a": 0.5}, {"a": 0.499}}
	_, err := allocation.FromFractions(agents(), fr)
	require.ErrorIs(t, err, allocation.ErrItemSum)

	a, err := allocation.FromFractions(agents(), fr, allocation.WithTolerance(1e-3))
	require.NoError(t, err)
	assert.Equal(t, 1e-3, a.Tolerance())

	assert.Panics(t, func() { allocation.WithTolerance(-1) })
	assert.Panics(t, func() { allocation.WithTolerance(math.Inf(1)) })
}

func TestFromAssignment(t *testing.T) {
	owner := map[string]string{"a": "agent2", "b": "agent2", "c": "agent1", "d": "agent2"}
	a, err := allocation.FromAssignment(agents(), []string{"d", "c", "b", "a"}, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Items())
	assert.True(t, a.IsIntegral())
	assert.True(t, a.IsComplete())
	assert.Equal(t, []string{"c"}, a.Bundle("agent1"))
	assert.Equal(t, []string{"a", "b", "d"}, a.Bundle("agent2"))
	assert.Nil(t, a.Bundle("agent3"))

	_, err = allocation.FromAssignment(agents(), []string{"a", "e"}, owner)
	assert.ErrorIs(t, err, allocation.ErrItemSum)
	_, err = allocation.FromAssignment(agents(), []string{"a"}, map[string]string{"a": "agent9"})
	assert.ErrorIs(t, err, allocation.ErrUnknownAgent)
}

func TestIntegralVersusComplete(t *testing.T) {
	a := split(t)
	assert.False(t, a.IsIntegral())
	assert.False(t, a.IsComplete())

	b, err := a.WithForcedAssignment("b", "agent1")
	require.NoError(t, err)
	assert.True(t, b.IsIntegral())
	assert.True(t, b.IsComplete())
}

func TestWithForcedAssignment(t *testing.T) {
	a := split(t)
	b, err := a.WithForcedAssignment("b", "agent2")
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Fraction("agent2", "b"))
	assert.Zero(t, b.Fraction("agent1", "b"))
	// receiver unchanged
	assert.Equal(t, 0.3, a.Fraction("agent1", "b"))

	_, err = a.WithForcedAssignment("b", "agent9")
	assert.ErrorIs(t, err, allocation.ErrUnknownAgent)
	_, err = a.WithForcedAssignment("zz", "agent1")
	assert.ErrorIs(t, err, allocation.ErrUnknownItem)
}

func TestWithAssignments(t *testing.T) {
	a := split(t)
	b, err := a.WithAssignments(map[string]string{"b": "agent1"})
	require.NoError(t, err)
	c, err := a.WithForcedAssignment("b", "agent1")
	require.NoError(t, err)
	assert.True(t, b.Equal(c))

	same, err := a.WithAssignments(nil)
	require.NoError(t, err)
	assert.True(t, same.Equal(a))

	_, err = a.WithAssignments(map[string]string{"zz": "agent1"})
	assert.ErrorIs(t, err, allocation.ErrUnknownItem)
}

func TestUtilityAndWelfare(t *testing.T) {
	a := split(t)
	assert.InDelta(t, 110, a.Utility(0), 1e-9)
	assert.InDelta(t, 100, a.Utility(1), 1e-9)
	assert.Zero(t, a.Utility(5))
	assert.InDelta(t, 210, a.Welfare(), 1e-9)
}

func TestSupport(t *testing.T) {
	want := []allocation.Holding{
		{Agent: "agent1", Item: "b", Fraction: 0.3},
		{Agent: "agent1", Item: "c", Fraction: 1},
		{Agent: "agent2", Item: "a", Fraction: 1},
		{Agent: "agent2", Item: "b", Fraction: 0.7},
		{Agent: "agent2", Item: "d", Fraction: 1},
	}
	if diff := cmp.Diff(want, split(t).Support()); diff != "" {
		t.Errorf("support mismatch (-want +got):\n%s", diff)
	}
}

func TestValuationMatrix(t *testing.T) {
	vm, err := split(t).ValuationMatrix()
	require.NoError(t, err)
	assert.Equal(t, []string{"agent1", "agent2"}, vm.Agents())
	assert.Equal(t, []float64{10, 100, 80, -100, 20, 100, -40, 10}, vm.Flatten())

	bundle, err := vm.AgentValueForBundle(1, []int{0, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 130.0, bundle)
}

func TestFractionsIsCopy(t *testing.T) {
	a := split(t)
	fr := a.Fractions()
	fr[0]["b"] = 0.9
	assert.Equal(t, 0.3, a.Fraction("agent1", "b"))
	assert.Len(t, fr[1], 4)

	tbl := a.Table()
	tbl[1][1] = 0
	assert.Equal(t, 0.7, a.Fraction("agent2", "b"))
}

func TestEqual(t *testing.T) {
	a := split(t)
	assert.True(t, a.Equal(split(t)))
	assert.False(t, a.Equal(nil))
	var nilA *allocation.Allocation
	assert.True(t, nilA.Equal(nil))

	b, err := a.WithForcedAssignment("b", "agent1")
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestRender(t *testing.T) {
	assert.Equal(t,
		"agent1 gets {b:0.3, c} with value 80.\nagent2 gets {a, b:0.7, d} with value 30.\n",
		split(t).Render())

	b, err := split(t).WithForcedAssignment("b", "agent1")
	require.NoError(t, err)
	assert.Equal(t, "agent1 gets {b, c} with value 180.\nagent2 gets {a, d} with value 30.\n", b.String())
}
