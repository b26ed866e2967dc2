package matrix

import (
	"fmt"
	"slices"
)

// Real is the set of element types the kernels accept for coordinates,
// features and centers. Every value is converted to float64 before arithmetic.
type Real interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Dense is a column-major matrix.
// Element (i, j) lives at data[j*rows+i].
type Dense[T Real] struct {
	rows, cols int
	data       []T
}

// New wraps data (column-major, len rows*cols) without copying.
func New[T Real](rows, cols int, data []T) (*Dense[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d needs %d elements, got %d", ErrBadShape, rows, cols, rows*cols, len(data))
	}
	return &Dense[T]{rows: rows, cols: cols, data: data}, nil
}

// Zeros allocates a rows x cols matrix of zero values.
// It panics on negative dimensions.
func Zeros[T Real](rows, cols int) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	return &Dense[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromRows builds a matrix from row slices. Used for coordinates, where each
// row is one point.
func FromRows[T Real](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 {
		return Zeros[T](0, 0), nil
	}
	c := len(rows[0])
	m := Zeros[T](len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), c)
		}
		for j, v := range row {
			m.data[j*m.rows+i] = v
		}
	}
	return m, nil
}

// FromColumns builds a matrix from column slices. Used for features, where
// each column is one point.
func FromColumns[T Real](cols [][]T) (*Dense[T], error) {
	if len(cols) == 0 {
		return Zeros[T](0, 0), nil
	}
	r := len(cols[0])
	m := Zeros[T](r, len(cols))
	for j, col := range cols {
		if len(col) != r {
			return nil, fmt.Errorf("%w: column %d has %d values, want %d", ErrRagged, j, len(col), r)
		}
		copy(m.data[j*r:(j+1)*r], col)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *Dense[T]) Dims() (int, int) { return m.rows, m.cols }

// Data returns the column-major backing slice. Callers must not modify it
// while the matrix is shared with a kernel.
func (m *Dense[T]) Data() []T { return m.data }

// At returns element (i, j) without bounds checks beyond the slice's own.
func (m *Dense[T]) At(i, j int) T { return m.data[j*m.rows+i] }

// Set assigns element (i, j).
func (m *Dense[T]) Set(i, j int, v T) { m.data[j*m.rows+i] = v }

// Col returns column j as a view into the backing slice.
func (m *Dense[T]) Col(j int) []T { return m.data[j*m.rows : (j+1)*m.rows] }

// Row returns a copy of row i.
func (m *Dense[T]) Row(i int) []T {
	out := make([]T, m.cols)
	for j := range out {
		out[j] = m.data[j*m.rows+i]
	}
	return out
}

// SelectCols returns a new matrix holding the listed columns in list order.
func (m *Dense[T]) SelectCols(idx []int32) (*Dense[T], error) {
	out := Zeros[T](m.rows, len(idx))
	for k, j := range idx {
		if j < 0 || int(j) >= m.cols {
			return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, j, m.cols)
		}
		copy(out.data[k*m.rows:(k+1)*m.rows], m.Col(int(j)))
	}
	return out, nil
}

// Clone returns a deep copy.
func (m *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{rows: m.rows, cols: m.cols, data: slices.Clone(m.data)}
}

// Float64 converts the matrix to float64 elements.
func Float64[T Real](m *Dense[T]) *Dense[float64] {
	out := Zeros[float64](m.rows, m.cols)
	for k, v := range m.data {
		out.data[k] = float64(v)
	}
	return out
}

// Columns returns the matrix as column slices (copies).
func (m *Dense[T]) Columns() [][]T {
	out := make([][]T, m.cols)
	for j := range out {
		out[j] = slices.Clone(m.Col(j))
	}
	return out
}
