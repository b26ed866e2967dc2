package matrix

import "errors"

var (
	// ErrBadShape is returned when the backing data does not match the requested
	// shape, or a dimension is negative.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrRagged is returned by FromRows/FromColumns when inner slices differ in length.
	ErrRagged = errors.New("matrix: ragged input")
)
