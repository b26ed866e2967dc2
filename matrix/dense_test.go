package matrix

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(2, 3, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, int32(3), m.At(0, 1))
	assert.Equal(t, int32(6), m.At(1, 2))

	_, err = New(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrBadShape)

	_, err = New(-1, 2, []float64{})
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{0, 0}, {1, 0}, {5, 0}})
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{0, 1, 5}, m.Col(0))
	assert.Equal(t, []float64{5, 0}, m.Row(2))

	_, err = FromRows([][]float64{{0, 0}, {1}})
	assert.ErrorIs(t, err, ErrRagged)
}

func TestFromColumns(t *testing.T) {
	m, err := FromColumns([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, []float64{3, 4}, m.Col(1))
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, m.Columns())

	_, err = FromColumns([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrRagged)

	empty, err := FromColumns[float64](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Cols())
}

func TestSelectCols(t *testing.T) {
	m, err := FromColumns([][]int32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	sub, err := m.SelectCols([]int32{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 6}, sub.Col(0))
	assert.Equal(t, []int32{1, 2}, sub.Col(1))

	_, err = m.SelectCols([]int32{3})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestCloneAndConvert(t *testing.T) {
	m, err := FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	c := m.Clone()
	c.Set(0, 0, 9)
	assert.Equal(t, int32(1), m.At(0, 0))

	f := Float64(m)
	assert.Equal(t, 4.0, f.At(1, 1))
}

func TestPoints(t *testing.T) {
	pts := []orb.Point{{0, 0}, {2, 1}, {-1, 3}}
	m := FromPoints(pts)
	assert.Equal(t, 3, m.Rows())

	back, err := Points(m)
	require.NoError(t, err)
	assert.Equal(t, pts, back)

	b, err := Bound(m)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-1, 0}, b.Min)
	assert.Equal(t, orb.Point{2, 3}, b.Max)

	_, err = Points(Zeros[float64](2, 3))
	assert.ErrorIs(t, err, ErrBadShape)
}
