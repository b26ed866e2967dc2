package spatial

import "errors"

// Every message is prefixed with "spatial: ". Kernels wrap these with the
// offending point index; match with errors.Is.
var (
	// ErrIndexOutOfRange indicates a center or neighbor index outside the point set.
	ErrIndexOutOfRange = errors.New("spatial: index out of range")

	// ErrDegenerateNeighborhood indicates an empty neighborhood or a zero weight sum.
	ErrDegenerateNeighborhood = errors.New("spatial: degenerate neighborhood")

	// ErrDegenerateBandwidth indicates a bilateral bandwidth of zero, i.e. every
	// neighbor's feature vector equals the center's.
	ErrDegenerateBandwidth = errors.New("spatial: degenerate bilateral bandwidth")

	// ErrShapeMismatch indicates inconsistent array shapes between arguments.
	ErrShapeMismatch = errors.New("spatial: shape mismatch")

	// ErrInvalidMetric indicates an unsupported neighborhood metric.
	ErrInvalidMetric = errors.New("spatial: invalid metric")

	// ErrInvalidRadius indicates a negative or NaN neighborhood radius.
	ErrInvalidRadius = errors.New("spatial: invalid radius")

	// ErrInvalidBandwidth indicates a non-positive or NaN spatial bandwidth.
	ErrInvalidBandwidth = errors.New("spatial: invalid bandwidth")

	// ErrCorruptLists indicates an encoded neighbor graph that cannot be decoded.
	ErrCorruptLists = errors.New("spatial: corrupt neighbor lists")

	// ErrStaleLists indicates neighbor lists built with a different radius,
	// metric or grouping than the one in use.
	ErrStaleLists = errors.New("spatial: stale neighbor lists")
)
