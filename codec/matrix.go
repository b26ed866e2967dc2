package codec

import (
	"fmt"

	"github.com/hupe1980/spatialgo/matrix"
)

// Matrix is the wire form of a dense matrix: a shape plus column-major data.
type Matrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// FromDense converts m to its wire form.
func FromDense[T matrix.Real](m *matrix.Dense[T]) Matrix {
	f := matrix.Float64(m)
	return Matrix{Rows: f.Rows(), Cols: f.Cols(), Data: f.Data()}
}

// Dense converts the wire form back to a matrix of element type T.
// Values are converted with a plain Go conversion, so integer targets truncate.
func Dense[T matrix.Real](w Matrix) (*matrix.Dense[T], error) {
	if w.Rows < 0 || w.Cols < 0 || len(w.Data) != w.Rows*w.Cols {
		return nil, fmt.Errorf("%w: %dx%d with %d values", matrix.ErrBadShape, w.Rows, w.Cols, len(w.Data))
	}
	data := make([]T, len(w.Data))
	for i, v := range w.Data {
		data[i] = T(v)
	}
	return matrix.New(w.Rows, w.Cols, data)
}
