package spatial

import (
	"context"
	"fmt"

	"github.com/hupe1980/spatialgo/internal/parallel"
	"github.com/hupe1980/spatialgo/matrix"
)

// Filter smooths x (features x n) over each point's neighborhood. Column i of
// the result is the average of the neighbors' feature vectors weighted by
// alpha*beta, normalized to sum to one.
func Filter[F matrix.Real](ctx context.Context, x *matrix.Dense[F], weights []Weights, lists *Lists, optFns ...Option) (*matrix.Dense[float64], error) {
	o := applyOptions(optFns)

	nr, nc := x.Dims()
	if lists.Len() != nc {
		return nil, fmt.Errorf("%w: %d neighbor lists for %d points", ErrShapeMismatch, lists.Len(), nc)
	}
	sums, err := checkNeighborhoods(lists, weights, nc)
	if err != nil {
		return nil, err
	}

	y := matrix.Zeros[float64](nr, nc)
	err = parallel.For(ctx, nc, o.parallel(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			dst := y.Col(i)
			w := weights[i]
			for k, ii := range lists.At(i) {
				a := w.Combined(k) / sums[i]
				src := x.Col(int(ii))
				for j := range dst {
					dst[j] += a * float64(src[j])
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return y, nil
}
