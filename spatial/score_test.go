package spatial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/matrix"
)

func TestScoresSingletonOwnCenter(t *testing.T) {
	x, err := matrix.FromColumns([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	centers, err := matrix.FromColumns([][]float64{{1, 2, 3}, {0, 0, 0}})
	require.NoError(t, err)
	lists := NewLists([][]int32{{0}, {1}})
	weights := []Weights{
		{Alpha: []float64{1}, Beta: []float64{1}},
		{Alpha: []float64{1}, Beta: []float64{1}},
	}

	scores, err := Scores(context.Background(), x, centers, weights, lists, []float64{1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, 2, scores.Rows())
	assert.Equal(t, 2, scores.Cols())
	assert.Equal(t, 0.0, scores.At(0, 0))
	assert.InDelta(t, 14.0, scores.At(0, 1), 1e-12)
	assert.InDelta(t, 27.0, scores.At(1, 0), 1e-12)
	assert.InDelta(t, 77.0, scores.At(1, 1), 1e-12)
	assert.Equal(t, []int{0, 0}, Assign(scores))
}

func TestScoresWeightedStandardized(t *testing.T) {
	x, err := matrix.FromColumns([][]int32{{0}, {2}})
	require.NoError(t, err)
	centers, err := matrix.FromColumns([][]float64{{0}})
	require.NoError(t, err)
	lists := NewLists([][]int32{{0, 1}, {0, 1}})
	weights := []Weights{
		{Alpha: []float64{3, 1}, Beta: []float64{1, 1}},
		{Alpha: []float64{1, 1}, Beta: []float64{1, 1}},
	}

	scores, err := Scores(context.Background(), x, centers, weights, lists, []float64{2})
	require.NoError(t, err)
	// (2/2)^2 = 1 for neighbor 1; normalized weights 0.25 and 0.5.
	assert.InDelta(t, 0.25, scores.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, scores.At(1, 0), 1e-12)
}

func TestAssign(t *testing.T) {
	s, err := matrix.FromRows([][]float64{{3, 1, 2}, {0, 0, 5}, {9, 8, 7}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, Assign(s))
}

func TestScoresErrors(t *testing.T) {
	x, err := matrix.FromColumns([][]float64{{1, 2}})
	require.NoError(t, err)
	ctx := context.Background()
	lists := NewLists([][]int32{{0}})
	w := []Weights{{Alpha: []float64{1}, Beta: []float64{1}}}

	bad, err := matrix.FromColumns([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	_, err = Scores(ctx, x, bad, w, lists, []float64{1, 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	centers, err := matrix.FromColumns([][]float64{{1, 2}})
	require.NoError(t, err)
	_, err = Scores(ctx, x, centers, w, lists, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Scores(ctx, x, centers, nil, lists, []float64{1, 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Scores(ctx, x, centers, []Weights{{}}, NewLists([][]int32{{}}), []float64{1, 1})
	assert.ErrorIs(t, err, ErrDegenerateNeighborhood)
}
