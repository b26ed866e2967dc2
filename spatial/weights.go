package spatial

import (
	"fmt"
	"math"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/matrix"
)

// Weights is the kernel weight pair for one neighborhood, aligned row for row
// with its offsets and neighbor list.
type Weights struct {
	// Alpha is the Gaussian spatial weight exp(-|offset|^2 / (2 sigma^2)).
	Alpha []float64
	// Beta is the bilateral feature-similarity weight, or all ones when
	// bilateral weighting is disabled.
	Beta []float64
	// Center is the row whose offset is the zero vector.
	Center int
}

// Len returns the number of neighbors.
func (w Weights) Len() int { return len(w.Alpha) }

// Combined returns alpha[l] * beta[l].
func (w Weights) Combined(l int) float64 { return w.Alpha[l] * w.Beta[l] }

// Sum returns the sum of combined weights.
func (w Weights) Sum() float64 {
	var s float64
	for l := range w.Alpha {
		s += w.Alpha[l] * w.Beta[l]
	}
	return s
}

// ComputeWeights derives the weight pair for one neighborhood from its offsets
// (neighbors x d) and bandwidth sigma.
//
// The center is the first row whose offset is zero in every dimension; when no
// such row exists row 0 is used.
//
// With bilateral set, x must be features x neighbors with column r holding
// neighbor r's features. beta[r] = exp(-d2[r] / (2 lambda)) where d2 is the
// squared feature distance to the center and
// lambda = ((sqrt(max d2) - sqrt(min d2)) / 2)^2. x is ignored otherwise and
// may be nil.
func ComputeWeights[F, C matrix.Real](x *matrix.Dense[F], offsets *matrix.Dense[C], sigma float64, bilateral bool) (Weights, error) {
	npts, ndims := offsets.Dims()
	if npts == 0 {
		return Weights{}, fmt.Errorf("%w: no neighbors", ErrDegenerateNeighborhood)
	}
	if math.IsNaN(sigma) || sigma <= 0 {
		return Weights{}, fmt.Errorf("%w: sigma %v", ErrInvalidBandwidth, sigma)
	}
	if bilateral {
		if x == nil {
			return Weights{}, fmt.Errorf("%w: bilateral weights need features", ErrShapeMismatch)
		}
		if x.Cols() != npts {
			return Weights{}, fmt.Errorf("%w: %d feature columns for %d offsets", ErrShapeMismatch, x.Cols(), npts)
		}
	}

	w := Weights{
		Alpha:  make([]float64, npts),
		Beta:   make([]float64, npts),
		Center: -1,
	}

	sigma2 := sigma * sigma
	for i := 0; i < npts; i++ {
		var d2 float64
		zero := true
		for j := 0; j < ndims; j++ {
			v := offsets.At(i, j)
			d1 := float64(v)
			d2 += d1 * d1
			if v != 0 {
				zero = false
			}
		}
		w.Alpha[i] = math.Exp(-d2 / (2 * sigma2))
		if zero && w.Center < 0 {
			w.Center = i
		}
	}
	if w.Center < 0 {
		w.Center = 0
	}

	if !bilateral {
		for i := range w.Beta {
			w.Beta[i] = 1
		}
		return w, nil
	}

	center := x.Col(w.Center)
	maxD2, minD2 := math.Inf(-1), math.Inf(1)
	for i := 0; i < npts; i++ {
		d2 := distance.SquaredL2(x.Col(i), center)
		maxD2 = math.Max(maxD2, d2)
		minD2 = math.Min(minD2, d2)
		w.Beta[i] = d2
	}

	lambda := (math.Sqrt(maxD2) - math.Sqrt(minD2)) / 2
	lambda *= lambda
	if lambda == 0 {
		return Weights{}, ErrDegenerateBandwidth
	}
	for i := range w.Beta {
		w.Beta[i] = math.Exp(-w.Beta[i] / (2 * lambda))
	}
	return w, nil
}

