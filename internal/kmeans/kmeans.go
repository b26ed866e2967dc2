package kmeans

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/matrix"
)

// ErrInvalidK is returned when k is not positive or exceeds the number of points.
var ErrInvalidK = errors.New("kmeans: invalid k")

// Result holds trained centers (features x k) and the final assignment.
type Result struct {
	Centers     *matrix.Dense[float64]
	Assignments []int
	Iterations  int
}

// Train runs Lloyd's algorithm on the columns of x (features x n).
// Initial centers are distinct columns drawn with the given seed.
func Train(ctx context.Context, x *matrix.Dense[float64], k, maxIter int, seed int64) (*Result, error) {
	dim, n := x.Dims()
	if k <= 0 || k > n {
		return nil, ErrInvalidK
	}

	rng := rand.New(rand.NewSource(seed))
	centers := matrix.Zeros[float64](dim, k)

	perm := rng.Perm(n)
	for j := 0; j < k; j++ {
		copy(centers.Col(j), x.Col(perm[j]))
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)
	sums := matrix.Zeros[float64](dim, k)

	iter := 0
	for ; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed := false

		// Assignment step
		for i := 0; i < n; i++ {
			best, _ := Nearest(x.Col(i), centers)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Update step
		clear(sums.Data())
		clear(counts)
		for i := 0; i < n; i++ {
			c := assignments[i]
			dst := sums.Col(c)
			for d, v := range x.Col(i) {
				dst[d] += v
			}
			counts[c]++
		}

		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float64(counts[j])
				dst := centers.Col(j)
				for d, v := range sums.Col(j) {
					dst[d] = v * scale
				}
			} else {
				// Re-seed an empty cluster with a random point.
				copy(centers.Col(j), x.Col(rng.Intn(n)))
			}
		}
	}

	return &Result{Centers: centers, Assignments: assignments, Iterations: iter}, nil
}

// Nearest returns the index of the center (column of centers) closest to vec
// in squared L2 distance, and that distance.
func Nearest[T matrix.Real](vec []T, centers *matrix.Dense[float64]) (int, float64) {
	best := -1
	minDist := math.Inf(1)
	for j := 0; j < centers.Cols(); j++ {
		d := distance.SquaredL2(vec, centers.Col(j))
		if d < minDist {
			minDist = d
			best = j
		}
	}
	return best, minDist
}

type centerDist struct {
	id   int
	dist float64
}

// Closest returns the indices of the m centers closest to vec, nearest first.
func Closest[T matrix.Real](vec []T, centers *matrix.Dense[float64], m int) []int {
	k := centers.Cols()
	m = min(m, k)

	dists := make([]centerDist, k)
	for j := 0; j < k; j++ {
		dists[j] = centerDist{id: j, dist: distance.SquaredL2(vec, centers.Col(j))}
	}
	sort.SliceStable(dists, func(a, b int) bool {
		return dists[a].dist < dists[b].dist
	})

	out := make([]int, m)
	for i := range out {
		out[i] = dists[i].id
	}
	return out
}

// StdDev returns the per-feature population standard deviation of x's
// columns. Features with zero spread get 1 so they can be used as a
// standardization scale.
func StdDev[T matrix.Real](x *matrix.Dense[T]) []float64 {
	dim, n := x.Dims()
	mean := make([]float64, dim)
	sd := make([]float64, dim)
	if n == 0 {
		for j := range sd {
			sd[j] = 1
		}
		return sd
	}
	for i := 0; i < n; i++ {
		for j, v := range x.Col(i) {
			mean[j] += float64(v)
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	for i := 0; i < n; i++ {
		for j, v := range x.Col(i) {
			d := float64(v) - mean[j]
			sd[j] += d * d
		}
	}
	for j := range sd {
		sd[j] = math.Sqrt(sd[j] / float64(n))
		if sd[j] == 0 {
			sd[j] = 1
		}
	}
	return sd
}
