package spatial

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/parallel"
	"github.com/hupe1980/spatialgo/matrix"
)

// Distance compares every query neighborhood with one reference neighborhood.
//
// For query point i, each pair (neighbor ix of i, reference row iy) whose
// offsets satisfy |offsets[i][ix] - refOffsets[iy]|^2 < tol is treated as
// spatially aligned and contributes
//
//	sqrt(alpha_x[ix] * alpha_ref[iy] * beta_x[ix] * beta_ref[iy]) * |x[:, list_i[ix]] - ref[:, iy]|^2
//
// The result for i is the square root of the accumulated sum. x is features x
// n; ref is features x m where m is the number of reference rows.
func Distance[F, C matrix.Real](
	ctx context.Context,
	x, ref *matrix.Dense[F],
	offsets []*matrix.Dense[C], refOffsets *matrix.Dense[C],
	weights []Weights, refWeights Weights,
	lists *Lists, tol float64,
	optFns ...Option,
) ([]float64, error) {
	o := applyOptions(optFns)

	if x.Rows() != ref.Rows() {
		return nil, fmt.Errorf("%w: query has %d features, reference has %d", ErrShapeMismatch, x.Rows(), ref.Rows())
	}
	ny, ndims := refOffsets.Dims()
	if ref.Cols() != ny {
		return nil, fmt.Errorf("%w: %d reference columns for %d reference offsets", ErrShapeMismatch, ref.Cols(), ny)
	}
	if len(refWeights.Alpha) != ny || len(refWeights.Beta) != ny {
		return nil, fmt.Errorf("%w: %d reference offsets but %d/%d reference weights",
			ErrShapeMismatch, ny, len(refWeights.Alpha), len(refWeights.Beta))
	}

	n := lists.Len()
	if len(offsets) != n || len(weights) != n {
		return nil, fmt.Errorf("%w: %d offsets and %d weight pairs for %d neighbor lists",
			ErrShapeMismatch, len(offsets), len(weights), n)
	}
	if err := lists.checkRange(x.Cols()); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		cnt := lists.Count(i)
		if offsets[i] == nil || offsets[i].Rows() != cnt || offsets[i].Cols() != ndims {
			return nil, fmt.Errorf("%w: offsets of point %d do not match %d neighbors x %d dims", ErrShapeMismatch, i, cnt, ndims)
		}
		if len(weights[i].Alpha) != cnt || len(weights[i].Beta) != cnt {
			return nil, fmt.Errorf("%w: point %d has %d neighbors but %d/%d weights",
				ErrShapeMismatch, i, cnt, len(weights[i].Alpha), len(weights[i].Beta))
		}
	}

	dist := make([]float64, n)
	err := parallel.For(ctx, n, o.parallel(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			off := offsets[i]
			w := weights[i]
			nb := lists.At(i)
			var sum float64
			for ix, ii := range nb {
				xv := x.Col(int(ii))
				for iy := 0; iy < ny; iy++ {
					var d2 float64
					for k := 0; k < ndims; k++ {
						d1 := float64(off.At(ix, k)) - float64(refOffsets.At(iy, k))
						d2 += d1 * d1
					}
					if d2 < tol {
						a := math.Sqrt(w.Alpha[ix] * refWeights.Alpha[iy] * w.Beta[ix] * refWeights.Beta[iy])
						sum += a * distance.SquaredL2(xv, ref.Col(iy))
					}
				}
			}
			dist[i] = math.Sqrt(sum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}
