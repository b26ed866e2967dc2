package spatial

import (
	"fmt"

	"github.com/hupe1980/spatialgo/matrix"
)

// Offsets returns a len(list) x d matrix whose row r is
// coords[list[r]] - coords[center], per dimension.
func Offsets[C matrix.Real](coords *matrix.Dense[C], list []int32, center int) (*matrix.Dense[C], error) {
	n, d := coords.Dims()
	if center < 0 || center >= n {
		return nil, fmt.Errorf("%w: center %d of %d", ErrIndexOutOfRange, center, n)
	}

	out := matrix.Zeros[C](len(list), d)
	for _, ii := range list {
		if ii < 0 || int(ii) >= n {
			return nil, fmt.Errorf("%w: neighbor %d of %d", ErrIndexOutOfRange, ii, n)
		}
	}
	for j := 0; j < d; j++ {
		col := coords.Col(j)
		dst := out.Col(j)
		c := col[center]
		for r, ii := range list {
			dst[r] = col[ii] - c
		}
	}
	return out, nil
}

// ReferenceOffsets returns the n x d offsets of every point from center.
func ReferenceOffsets[C matrix.Real](coords *matrix.Dense[C], center int) (*matrix.Dense[C], error) {
	all := make([]int32, coords.Rows())
	for i := range all {
		all[i] = int32(i)
	}
	return Offsets(coords, all, center)
}
