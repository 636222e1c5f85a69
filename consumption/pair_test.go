package consumption_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/fairalloc/consumption"
)

func TestComplete_Errors(t *testing.T) {
	_, err := consumption.Complete(nil, []string{"x"})
	assert.ErrorIs(t, err, consumption.ErrEmptyPartition)
	_, err = consumption.Complete([]string{"a"}, nil)
	assert.ErrorIs(t, err, consumption.ErrEmptyPartition)
	_, err = consumption.Complete([]string{"a", "a"}, []string{"x"})
	assert.ErrorIs(t, err, consumption.ErrDuplicateNode)
	_, err = consumption.Complete([]string{"a"}, []string{"x", "x"})
	assert.ErrorIs(t, err, consumption.ErrDuplicateNode)
	_, err = consumption.Complete([]string{""}, []string{"x"})
	assert.ErrorIs(t, err, consumption.ErrEmptyNodeID)
}

func TestMoveEdge(t *testing.T) {
	pair, err := consumption.Complete([]string{"a1", "a2"}, []string{"x"})
	require.NoError(t, err)
	e := consumption.Edge{Agent: "a1", Item: "x", Weight: consumption.WeightAssigned}

	require.NoError(t, consumption.MoveEdge(e, pair.Candidate, pair.Result))
	assert.False(t, pair.Candidate.HasEdge("a1", "x"))
	got, err := pair.Result.GetEdge("a1", "x")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	assert.ErrorIs(t, consumption.MoveEdge(e, pair.Candidate, pair.Result), consumption.ErrEdgeNotFound)
	assert.ErrorIs(t, consumption.MoveEdge(e, pair.Result, pair.Result), consumption.ErrSameGraph)
	assert.ErrorIs(t, consumption.MoveEdge(e, nil, pair.Result), consumption.ErrNilGraph)

	// an edge already in the destination is refused and nothing changes
	require.NoError(t, pair.Candidate.AddEdge("a1", "x", 0))
	assert.ErrorIs(t, consumption.MoveEdge(e, pair.Candidate, pair.Result), consumption.ErrEdgeExists)
	assert.True(t, pair.Candidate.HasEdge("a1", "x"))

	other := consumption.NewGraph()
	err = consumption.MoveEdge(e, pair.Candidate, other)
	assert.ErrorIs(t, err, consumption.ErrNodeNotFound)
	assert.True(t, pair.Candidate.HasEdge("a1", "x"))
}

func TestMoveEdge_OppositeDirectionsConcurrently(t *testing.T) {
	left, err := consumption.Complete([]string{"a"}, []string{"x", "y"})
	require.NoError(t, err)
	right := left.Result
	require.NoError(t, consumption.MoveEdge(consumption.Edge{Agent: "a", Item: "y"}, left.Candidate, right))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = consumption.MoveEdge(consumption.Edge{Agent: "a", Item: "x"}, left.Candidate, right)
		}()
		go func() {
			defer wg.Done()
			_ = consumption.MoveEdge(consumption.Edge{Agent: "a", Item: "y"}, right, left.Candidate)
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, left.Candidate.EdgeCount()+right.EdgeCount())
}

// PairSuite exercises the candidate/result bookkeeping of one run.
type PairSuite struct {
	suite.Suite
	pair *consumption.Pair
}

func (s *PairSuite) SetupTest() {
	p, err := consumption.Complete([]string{"a1", "a2", "a3"}, []string{"x", "y"})
	s.Require().NoError(err)
	s.pair = p
}

func (s *PairSuite) TestInitialState() {
	s.Equal(6, s.pair.Candidate.EdgeCount())
	s.Zero(s.pair.Result.EdgeCount())
	s.Equal([]string{"x", "y"}, s.pair.Undecided())
	s.Empty(s.pair.Assignment())
	s.True(s.pair.Allowed("a2", "x"))
}

func (s *PairSuite) TestCommitDecidesWholeItem() {
	moved, err := s.pair.Commit("a2", "x")
	s.Require().NoError(err)
	s.Equal([]consumption.Edge{
		{Agent: "a2", Item: "x", Weight: consumption.WeightAssigned},
		{Agent: "a1", Item: "x", Weight: consumption.WeightReleased},
		{Agent: "a3", Item: "x", Weight: consumption.WeightReleased},
	}, moved)

	s.Equal(3, s.pair.Candidate.EdgeCount())
	s.Equal(3, s.pair.Result.EdgeCount())
	s.Equal(map[string]string{"x": "a2"}, s.pair.Assignment())
	s.Equal([]string{"y"}, s.pair.Undecided())
	s.True(s.pair.Decided("x"))
	s.False(s.pair.Decided("y"))

	s.True(s.pair.Allowed("a2", "x"))
	s.False(s.pair.Allowed("a1", "x"))
	s.True(s.pair.Allowed("a1", "y"))
}

func (s *PairSuite) TestCommitTwiceFails() {
	_, err := s.pair.Commit("a1", "y")
	s.Require().NoError(err)
	_, err = s.pair.Commit("a1", "y")
	s.ErrorIs(err, consumption.ErrEdgeNotFound)
	_, err = s.pair.Commit("a2", "y")
	s.ErrorIs(err, consumption.ErrEdgeNotFound)
}

func (s *PairSuite) TestEdgesNeverInBothGraphs() {
	_, err := s.pair.Commit("a3", "y")
	s.Require().NoError(err)
	for _, e := range s.pair.Result.Edges() {
		s.False(s.pair.Candidate.HasEdge(e.Agent, e.Item), "%v in both graphs", e)
	}
	s.Equal(6, s.pair.Candidate.EdgeCount()+s.pair.Result.EdgeCount())
}

func TestPairSuite(t *testing.T) {
	suite.Run(t, new(PairSuite))
}
