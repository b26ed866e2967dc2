package spatialgo

import (
	"fmt"

	"github.com/hupe1980/spatialgo/matrix"
	"github.com/hupe1980/spatialgo/spatial"
)

// Dataset is a point cloud: coordinates, optional group labels and features.
type Dataset[C, F matrix.Real] struct {
	// Coords is n x d; row i holds point i's coordinates.
	Coords *matrix.Dense[C]

	// Groups labels each point. Neighborhoods never cross groups.
	// nil puts every point in one group.
	Groups []int32

	// Features is features x n; column i holds point i's feature vector.
	Features *matrix.Dense[F]
}

// Len returns the number of points.
func (d Dataset[C, F]) Len() int {
	if d.Coords == nil {
		return 0
	}
	return d.Coords.Rows()
}

// Validate checks that coordinates, groups and features agree on the number
// of points.
func (d Dataset[C, F]) Validate() error {
	n := d.Len()
	if n == 0 {
		return ErrEmptyDataset
	}
	if d.Features == nil {
		return fmt.Errorf("%w: no features", ErrEmptyDataset)
	}
	if d.Features.Cols() != n {
		return &ErrDimensionMismatch{What: "feature columns", Expected: n, Actual: d.Features.Cols(), cause: spatial.ErrShapeMismatch}
	}
	if d.Groups != nil && len(d.Groups) != n {
		return &ErrDimensionMismatch{What: "group labels", Expected: n, Actual: len(d.Groups), cause: spatial.ErrShapeMismatch}
	}
	return nil
}

func (d Dataset[C, F]) groups() []int32 {
	if d.Groups != nil {
		return d.Groups
	}
	return make([]int32, d.Len())
}
