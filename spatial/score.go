package spatial

import (
	"context"
	"fmt"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/parallel"
	"github.com/hupe1980/spatialgo/matrix"
)

// Scores returns an n x k matrix whose (i, k) entry is the weighted mean, over
// point i's neighborhood, of the standardized squared distance
// sum_j ((x[j,l] - centers[j,k]) / sd[j])^2. Weights are alpha*beta normalized
// to sum to one per point. Low scores mean the neighborhood matches center k.
//
// sd must be strictly positive; that is not checked.
func Scores[F, G matrix.Real](ctx context.Context, x *matrix.Dense[F], centers *matrix.Dense[G], weights []Weights, lists *Lists, sd []float64, optFns ...Option) (*matrix.Dense[float64], error) {
	o := applyOptions(optFns)

	nfeatures, npoints := x.Dims()
	if centers.Rows() != nfeatures {
		return nil, fmt.Errorf("%w: centers have %d features, data has %d", ErrShapeMismatch, centers.Rows(), nfeatures)
	}
	if len(sd) != nfeatures {
		return nil, fmt.Errorf("%w: %d standard deviations for %d features", ErrShapeMismatch, len(sd), nfeatures)
	}
	n := lists.Len()
	sums, err := checkNeighborhoods(lists, weights, npoints)
	if err != nil {
		return nil, err
	}

	ncenters := centers.Cols()
	scores := matrix.Zeros[float64](n, ncenters)
	err = parallel.For(ctx, n, o.parallel(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			w := weights[i]
			nb := lists.At(i)
			for k := 0; k < ncenters; k++ {
				c := centers.Col(k)
				var s float64
				for l, ii := range nb {
					a := w.Combined(l) / sums[i]
					s += a * distance.StandardizedL2(x.Col(int(ii)), c, sd)
				}
				scores.Set(i, k, s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// Assign returns, for each row of an n x k score matrix, the column with the
// lowest score (first on ties).
func Assign(scores *matrix.Dense[float64]) []int {
	n, k := scores.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		for c := 1; c < k; c++ {
			if scores.At(i, c) < scores.At(i, best) {
				best = c
			}
		}
		out[i] = best
	}
	return out
}
