package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/spatialgo/matrix"
)

var (
	// ErrUnknownMetric is returned for metric codes or names outside the supported set.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrInvalidOrder is returned when a Minkowski kernel is requested for zero dimensions.
	ErrInvalidOrder = errors.New("distance: minkowski order must be positive")
)

// Metric selects how per-dimension coordinate differences are combined.
type Metric int

const (
	MetricRadial Metric = iota + 1
	MetricManhattan
	MetricMinkowski
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricRadial:
		return "radial"
	case MetricManhattan:
		return "manhattan"
	case MetricMinkowski:
		return "minkowski"
	case MetricChebyshev:
		return "chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	return m >= MetricRadial && m <= MetricChebyshev
}

// ParseMetric resolves a metric by name (case-insensitive).
// "euclidean" is accepted as an alias of radial.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "radial", "euclidean":
		return MetricRadial, nil
	case "manhattan":
		return MetricManhattan, nil
	case "minkowski":
		return MetricMinkowski, nil
	case "chebyshev":
		return MetricChebyshev, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// MetricFromCode resolves a host integer selector (1=radial .. 4=chebyshev).
func MetricFromCode(code int) (Metric, error) {
	m := Metric(code)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownMetric, code)
	}
	return m, nil
}

// MinkowskiMode selects between the documented Minkowski formula and the
// legacy accumulation that also applies the Chebyshev max step per dimension.
type MinkowskiMode int

const (
	// MinkowskiExact accumulates sum |d|^p and accepts when the p-th root is within the radius.
	MinkowskiExact MinkowskiMode = iota
	// MinkowskiFallthrough replaces the running sum by max(|d|, sum) after
	// every power step. Kept for bit-compatibility with results produced by
	// the legacy implementation.
	MinkowskiFallthrough
)

func (m MinkowskiMode) String() string {
	switch m {
	case MinkowskiExact:
		return "exact"
	case MinkowskiFallthrough:
		return "fallthrough"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMinkowskiMode resolves a mode by name. The empty string means exact.
func ParseMinkowskiMode(name string) (MinkowskiMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return MinkowskiExact, nil
	case "fallthrough", "legacy":
		return MinkowskiFallthrough, nil
	default:
		return 0, fmt.Errorf("distance: unknown minkowski mode %q", name)
	}
}

// Kernel folds per-dimension differences into a reduced distance and tests it
// against a radius. The zero value is not usable; use NewKernel.
type Kernel struct {
	metric Metric
	order  float64
	mode   MinkowskiMode
}

// NewKernel returns the kernel for metric m over dims spatial dimensions.
// dims is the Minkowski order.
func NewKernel(m Metric, dims int, mode MinkowskiMode) (Kernel, error) {
	if !m.Valid() {
		return Kernel{}, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
	if m == MetricMinkowski && dims < 1 {
		return Kernel{}, ErrInvalidOrder
	}
	return Kernel{metric: m, order: float64(dims), mode: mode}, nil
}

// Metric returns the kernel's metric.
func (k Kernel) Metric() Metric { return k.metric }

// Accumulate adds one per-dimension difference d to the running value acc.
func (k Kernel) Accumulate(acc, d float64) float64 {
	ad := math.Abs(d)
	switch k.metric {
	case MetricRadial:
		return acc + d*d
	case MetricManhattan:
		return acc + ad
	case MetricMinkowski:
		acc += math.Pow(ad, k.order)
		if k.mode == MinkowskiFallthrough {
			acc = math.Max(ad, acc)
		}
		return acc
	default:
		return math.Max(ad, acc)
	}
}

// Finish converts an accumulated value into the metric's distance.
func (k Kernel) Finish(acc float64) float64 {
	switch k.metric {
	case MetricRadial:
		return math.Sqrt(acc)
	case MetricMinkowski:
		return math.Pow(acc, 1/k.order)
	default:
		return acc
	}
}

// Within reports whether the accumulated value lies within radius r.
func (k Kernel) Within(acc, r float64) bool {
	return k.Finish(acc) <= r
}

// Distance returns the metric distance between two coordinate vectors.
// Assumes vectors are the same length (caller's responsibility).
func (k Kernel) Distance(a, b []float64) float64 {
	acc := 0.0
	for j := range a {
		acc = k.Accumulate(acc, a[j]-b[j])
	}
	return k.Finish(acc)
}

// SquaredL2 returns the squared Euclidean distance between a and b, which may
// have different element types. Assumes equal lengths.
func SquaredL2[A, B matrix.Real](a []A, b []B) float64 {
	var sum float64
	for j := range a {
		d := float64(a[j]) - float64(b[j])
		sum += d * d
	}
	return sum
}

// StandardizedL2 returns sum(((a-b)/sd)^2). Assumes equal lengths and sd > 0.
func StandardizedL2[A, B matrix.Real](a []A, b []B, sd []float64) float64 {
	var sum float64
	for j := range a {
		d := float64(a[j]) - float64(b[j])
		sum += (d * d) / (sd[j] * sd[j])
	}
	return sum
}
