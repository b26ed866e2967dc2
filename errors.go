package spatialgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/spatialgo/internal/resource"
)

var (
	// ErrInvalidK is returned when the number of clusters is not positive or
	// exceeds the number of points.
	ErrInvalidK = errors.New("k must be positive and at most the number of points")

	// ErrInvalidRadius is returned for a negative or NaN neighborhood radius.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrInvalidSigma is returned for a negative or NaN spatial bandwidth.
	ErrInvalidSigma = errors.New("sigma must be positive")

	// ErrEmptyDataset is returned when a dataset has no coordinates.
	ErrEmptyDataset = errors.New("dataset has no points")

	// ErrMemoryLimitExceeded is returned when derived state or an output would
	// exceed the configured memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrDimensionMismatch indicates that two parts of a dataset or an argument
// disagree on a dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	What     string
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrPointOutOfRange indicates a point index outside the dataset.
type ErrPointOutOfRange struct {
	Index int
	Len   int
	cause error
}

func (e *ErrPointOutOfRange) Error() string {
	return fmt.Sprintf("point %d out of range [0, %d)", e.Index, e.Len)
}

func (e *ErrPointOutOfRange) Unwrap() error { return e.cause }
