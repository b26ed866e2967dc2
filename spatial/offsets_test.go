package spatial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/matrix"
)

func TestOffsets(t *testing.T) {
	coords, err := matrix.FromRows([][]int32{{0, 0}, {1, 0}, {1, 2}})
	require.NoError(t, err)

	off, err := Offsets(coords, []int32{0, 1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, off.Rows())
	assert.Equal(t, 2, off.Cols())
	assert.Equal(t, []int32{-1, 0}, off.Row(0))
	assert.Equal(t, []int32{0, 0}, off.Row(1))
	assert.Equal(t, []int32{0, 2}, off.Row(2))
}

func TestOffsetsAntisymmetric(t *testing.T) {
	coords := randomCoords(t, 11, 40, 2)
	groups := make([]int32, 40)
	lists, err := FindNeighbors(context.Background(), coords, 3, groups, distance.MetricRadial)
	require.NoError(t, err)

	for k := 0; k < lists.Len(); k++ {
		offK, err := Offsets(coords, lists.At(k), k)
		require.NoError(t, err)
		for r, i := range lists.At(k) {
			offI, err := Offsets(coords, []int32{int32(k)}, int(i))
			require.NoError(t, err)
			for j := 0; j < coords.Cols(); j++ {
				assert.Equal(t, offK.At(r, j), -offI.At(0, j))
			}
		}
	}
}

func TestReferenceOffsets(t *testing.T) {
	coords, err := matrix.FromRows([][]float64{{0.5}, {2}, {-1}})
	require.NoError(t, err)

	off, err := ReferenceOffsets(coords, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, -1.5}, off.Col(0))
}

func TestOffsetsErrors(t *testing.T) {
	coords, err := matrix.FromRows([][]float64{{0, 0}, {1, 0}})
	require.NoError(t, err)

	_, err = Offsets(coords, []int32{0}, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Offsets(coords, []int32{0, 5}, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Offsets(coords, []int32{-1}, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
