package kmeans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/matrix"
)

func twoBlobs(t *testing.T) *matrix.Dense[float64] {
	t.Helper()
	x, err := matrix.FromColumns([][]float64{
		{0, 0}, {0, 1}, {1, 0}, // near 0,0
		{10, 10}, {10, 11}, {11, 10}, // near 10,10
	})
	require.NoError(t, err)
	return x
}

func TestTrain(t *testing.T) {
	x := twoBlobs(t)

	res, err := Train(context.Background(), x, 2, 100, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Centers.Rows())
	assert.Equal(t, 2, res.Centers.Cols())
	require.Len(t, res.Assignments, 6)

	assert.Equal(t, res.Assignments[0], res.Assignments[1])
	assert.Equal(t, res.Assignments[0], res.Assignments[2])
	assert.Equal(t, res.Assignments[3], res.Assignments[4])
	assert.NotEqual(t, res.Assignments[0], res.Assignments[3])

	p1, _ := Nearest([]float64{0.5, 0.5}, res.Centers)
	p2, _ := Nearest([]int32{10, 10}, res.Centers)
	assert.NotEqual(t, p1, p2)
}

func TestTrainDeterministic(t *testing.T) {
	x := twoBlobs(t)
	a, err := Train(context.Background(), x, 2, 100, 7)
	require.NoError(t, err)
	b, err := Train(context.Background(), x, 2, 100, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Centers.Data(), b.Centers.Data())
}

func TestTrainInvalidK(t *testing.T) {
	x := twoBlobs(t)
	_, err := Train(context.Background(), x, 0, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidK)
	_, err = Train(context.Background(), x, 7, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestTrainCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, twoBlobs(t), 2, 10, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClosest(t *testing.T) {
	centers, err := matrix.FromColumns([][]float64{{0, 0}, {10, 10}, {20, 20}})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, Closest([]float64{1, 1}, centers, 2))
	assert.Equal(t, []int{2}, Closest([]float64{19, 19}, centers, 1))
	assert.Len(t, Closest([]float64{0, 0}, centers, 10), 3)
}

func TestStdDev(t *testing.T) {
	x, err := matrix.FromColumns([][]int32{{0, 5}, {2, 5}, {4, 5}, {6, 5}})
	require.NoError(t, err)

	sd := StdDev(x)
	assert.InDelta(t, 2.2360679775, sd[0], 1e-9)
	assert.Equal(t, 1.0, sd[1])
}
