package spatial

import "fmt"

// checkNeighborhoods verifies that every point has one weight pair whose
// length matches its neighbor list, that neighbor indices address one of
// npoints feature columns, and that each combined weight sum is positive.
// It returns the per-point weight sums.
func checkNeighborhoods(lists *Lists, weights []Weights, npoints int) ([]float64, error) {
	n := lists.Len()
	if len(weights) != n {
		return nil, fmt.Errorf("%w: %d weight pairs for %d neighbor lists", ErrShapeMismatch, len(weights), n)
	}
	if err := lists.checkRange(npoints); err != nil {
		return nil, err
	}

	sums := make([]float64, n)
	for i := 0; i < n; i++ {
		w := weights[i]
		if len(w.Alpha) != lists.Count(i) || len(w.Beta) != lists.Count(i) {
			return nil, fmt.Errorf("%w: point %d has %d neighbors but %d/%d weights",
				ErrShapeMismatch, i, lists.Count(i), len(w.Alpha), len(w.Beta))
		}
		if lists.Count(i) == 0 {
			return nil, fmt.Errorf("%w: point %d has no neighbors", ErrDegenerateNeighborhood, i)
		}
		sums[i] = w.Sum()
		if !(sums[i] > 0) {
			return nil, fmt.Errorf("%w: point %d has weight sum %v", ErrDegenerateNeighborhood, i, sums[i])
		}
	}
	return sums, nil
}
