package pareto

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/consumption"
)

func TestCheckShrunk(t *testing.T) {
	assert.NoError(t, checkShrunk("a", "x", 4, 2))

	for _, after := range []int{4, 5} {
		err := checkShrunk("a", "x", 4, after)
		require.ErrorIs(t, err, ErrCandidateNotShrunk)
		assert.False(t, errors.Is(err, consumption.ErrEdgeNotFound))
		assert.Contains(t, err.Error(), "(a,x)")
	}
}

func TestRunCommit(t *testing.T) {
	pair, err := consumption.Complete([]string{"a", "b"}, []string{"x", "y"})
	require.NoError(t, err)
	r := &run{Engine: New(), log: logr.Discard(), pair: pair}

	require.NoError(t, r.commit("a", "x"))
	assert.Equal(t, 2, pair.Candidate.EdgeCount())

	// the item is decided, so the edge is gone rather than stuck
	err = r.commit("b", "x")
	require.ErrorIs(t, err, consumption.ErrEdgeNotFound)
	assert.False(t, errors.Is(err, ErrCandidateNotShrunk))
}
