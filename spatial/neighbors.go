package spatial

import (
	"context"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/parallel"
	"github.com/hupe1980/spatialgo/matrix"
)

// FindNeighbors returns, for every point, the same-group points whose metric
// distance is within radius. Each list is ascending and contains the point
// itself.
//
// coords is n x d; groups has length n. The scan is O(n_g^2 * d) per group of
// size n_g.
func FindNeighbors[C matrix.Real](ctx context.Context, coords *matrix.Dense[C], radius float64, groups []int32, metric distance.Metric, optFns ...Option) (*Lists, error) {
	o := applyOptions(optFns)

	n, d := coords.Dims()
	if len(groups) != n {
		return nil, fmt.Errorf("%w: %d groups for %d points", ErrShapeMismatch, len(groups), n)
	}
	if math.IsNaN(radius) || radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	kernel, err := distance.NewKernel(metric, d, o.minkowski)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetric, err)
	}

	// Point-major copy so each point's coordinates are contiguous.
	pts := make([]float64, n*d)
	for j := 0; j < d; j++ {
		col := coords.Col(j)
		for i, v := range col {
			pts[i*d+j] = float64(v)
		}
	}

	idx := newGroupIndex(groups)
	per := make([][]int32, n)

	err = parallel.For(ctx, n, o.parallel(), func(lo, hi int) error {
		mask := bitset.New(uint(n))
		for i := lo; i < hi; i++ {
			mask.ClearAll()
			pi := pts[i*d : (i+1)*d]

			it := idx.members(groups[i]).Iterator()
			for it.HasNext() {
				ii := int(it.Next())
				pii := pts[ii*d : (ii+1)*d]
				acc := 0.0
				for j := range pi {
					acc = kernel.Accumulate(acc, pi[j]-pii[j])
				}
				if kernel.Within(acc, radius) {
					mask.Set(uint(ii))
				}
			}

			list := make([]int32, 0, mask.Count())
			for k, ok := mask.NextSet(0); ok; k, ok = mask.NextSet(k + 1) {
				list = append(list, int32(k))
			}
			per[i] = list
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewLists(per), nil
}

// GroupSizes returns the number of points per group label.
func GroupSizes(groups []int32) map[int32]uint64 {
	return newGroupIndex(groups).sizes()
}
