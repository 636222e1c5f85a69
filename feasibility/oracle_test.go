package feasibility_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/consumption"
	"github.com/katalvlaran/fairalloc/feasibility"
)

// twoAgents is the four-item, two-agent instance with a split item b.
func twoAgents(t *testing.T) (*allocation.Allocation, *consumption.Pair) {
	t.Helper()
	agents := []allocation.Agent{
		allocation.NewAdditiveAgent("agent1", map[string]float64{"a": 10, "b": 100, "c": 80, "d": -100}),
		allocation.NewAdditiveAgent("agent2", map[string]float64{"a": 20, "b": 100, "c": -40, "d": 10}),
	}
	former, err := allocation.FromFractions(agents, []map[string]float64{
		{"a": 0, "b": 0.3, "c": 1, "d": 0},
		{"a": 1, "b": 0.7, "c": 0, "d": 1},
	})
	require.NoError(t, err)
	pair, err := consumption.Complete(former.AgentNames(), former.Items())
	require.NoError(t, err)

	return former, pair
}

func TestOracle_CommitKeepsOptimum(t *testing.T) {
	former, pair := twoAgents(t)
	o, err := feasibility.NewOracle(former)
	require.NoError(t, err)

	d, err := o.Evaluate(context.Background(), consumption.Edge{Agent: "agent2", Item: "a"}, pair)
	require.NoError(t, err)
	assert.Equal(t, feasibility.Commit, d.Verdict)
	assert.InDelta(t, 210, d.Opt1, 1e-6)
	assert.InDelta(t, 210, d.Opt2, 1e-6)
	assert.Equal(t, "COMMIT", d.Verdict.String())
}

func TestOracle_DeferWhenWelfareWouldDrop(t *testing.T) {
	former, pair := twoAgents(t)
	o, err := feasibility.NewOracle(former)
	require.NoError(t, err)

	d, err := o.Evaluate(context.Background(), consumption.Edge{Agent: "agent1", Item: "a"}, pair)
	require.NoError(t, err)
	assert.Equal(t, feasibility.Defer, d.Verdict)
	assert.InDelta(t, 210, d.Opt1, 1e-6)
	assert.True(t, math.IsNaN(d.Opt2), "former welfare is already 210, so a=agent1 is below the floor")
	assert.NotEmpty(t, d.Reason)
}

func TestOracle_RespectsResultGraph(t *testing.T) {
	former, pair := twoAgents(t)
	o, err := feasibility.NewOracle(former)
	require.NoError(t, err)

	_, err = pair.Commit("agent2", "a")
	require.NoError(t, err)
	sol, err := o.Solve(context.Background(), pair)
	require.NoError(t, err)
	assert.InDelta(t, 210, sol.Value, 1e-6)

	p, err := o.Problem(pair)
	require.NoError(t, err)
	assert.True(t, p.Zero[p.Index(0, 0)], "agent1/a was released")
	assert.False(t, p.Zero[p.Index(1, 0)])
	assert.Equal(t, 0.0, sol.X[p.Index(0, 0)])
}

func TestOracle_EdgeNotInCandidate(t *testing.T) {
	former, pair := twoAgents(t)
	o, err := feasibility.NewOracle(former)
	require.NoError(t, err)
	_, err = pair.Commit("agent2", "a")
	require.NoError(t, err)

	_, err = o.Evaluate(context.Background(), consumption.Edge{Agent: "agent2", Item: "a"}, pair)
	assert.ErrorIs(t, err, consumption.ErrEdgeNotFound)
}

// stubSolver returns a fixed error.
type stubSolver struct{ err error }

func (s stubSolver) Solve(context.Context, *feasibility.Problem) (feasibility.Solution, error) {
	return feasibility.Solution{}, s.err
}

func TestOracle_SolverFailuresAreNotDecisions(t *testing.T) {
	former, pair := twoAgents(t)
	e := consumption.Edge{Agent: "agent2", Item: "b"}

	o, err := feasibility.NewOracle(former, feasibility.WithSolver(stubSolver{err: feasibility.ErrInfeasible}))
	require.NoError(t, err)
	_, err = o.Evaluate(context.Background(), e, pair)
	assert.ErrorIs(t, err, feasibility.ErrInfeasibleAllocation)

	o, err = feasibility.NewOracle(former, feasibility.WithSolver(stubSolver{err: feasibility.ErrSolverNotConverged}))
	require.NoError(t, err)
	_, err = o.Evaluate(context.Background(), e, pair)
	assert.ErrorIs(t, err, feasibility.ErrSolverNotConverged)
	assert.False(t, errors.Is(err, feasibility.ErrInfeasibleAllocation))
}

func TestOracle_Options(t *testing.T) {
	_, err := feasibility.NewOracle(nil)
	assert.ErrorIs(t, err, feasibility.ErrNilAllocation)

	former, _ := twoAgents(t)
	o, err := feasibility.NewOracle(former, feasibility.WithTolerance(1e-3))
	require.NoError(t, err)
	assert.Equal(t, 1e-3, o.Tolerance())

	assert.Panics(t, func() { feasibility.WithTolerance(-1) })
	assert.Panics(t, func() { feasibility.WithTolerance(math.NaN()) })
	assert.Panics(t, func() { feasibility.WithSolver(nil) })
}

// scriptedSolver returns its values in order, one per Solve call.
type scriptedSolver struct {
	values []float64
	calls  int
}

func (s *scriptedSolver) Solve(_ context.Context, p *feasibility.Problem) (feasibility.Solution, error) {
	v := s.values[s.calls]
	s.calls++

	return feasibility.Solution{X: make([]float64, p.NumVars()), Value: v}, nil
}

func TestOracle_CommitWithinTolerance(t *testing.T) {
	tests := []struct {
		name       string
		opt1, opt2 float64
		want       feasibility.Verdict
	}{
		{"equal", 210, 210, feasibility.Commit},
		{"absolute slack", 0.5, 0.5 - 5e-7, feasibility.Commit},
		{"relative slack", 1000, 1000 - 5e-4, feasibility.Commit},
		{"absolute drop", 0.5, 0.5 - 1e-4, feasibility.Defer},
		{"relative drop", 1000, 1000 - 1e-2, feasibility.Defer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			former, pair := twoAgents(t)
			s := &scriptedSolver{values: []float64{tt.opt1, tt.opt2}}
			o, err := feasibility.NewOracle(former, feasibility.WithSolver(s))
			require.NoError(t, err)

			d, err := o.Evaluate(context.Background(), consumption.Edge{Agent: "agent2", Item: "b"}, pair)
			require.NoError(t, err)
			assert.Equal(t, 2, s.calls)
			assert.Equal(t, tt.want, d.Verdict)
			assert.Equal(t, tt.opt1, d.Opt1)
			assert.Equal(t, tt.opt2, d.Opt2)
		})
	}
}
