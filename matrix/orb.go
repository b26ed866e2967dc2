package matrix

import "github.com/paulmach/orb"

// FromPoints builds an n x 2 coordinate matrix from planar points.
func FromPoints(pts []orb.Point) *Dense[float64] {
	m := Zeros[float64](len(pts), 2)
	for i, p := range pts {
		m.Set(i, 0, p[0])
		m.Set(i, 1, p[1])
	}
	return m
}

// Points converts an n x 2 coordinate matrix back into planar points.
// It returns ErrBadShape if the matrix does not have exactly two columns.
func Points[T Real](m *Dense[T]) ([]orb.Point, error) {
	if m.Cols() != 2 {
		return nil, ErrBadShape
	}
	out := make([]orb.Point, m.Rows())
	for i := range out {
		out[i] = orb.Point{float64(m.At(i, 0)), float64(m.At(i, 1))}
	}
	return out, nil
}

// Bound returns the planar bounding box of an n x 2 coordinate matrix.
func Bound[T Real](m *Dense[T]) (orb.Bound, error) {
	pts, err := Points(m)
	if err != nil {
		return orb.Bound{}, err
	}
	return orb.MultiPoint(pts).Bound(), nil
}
