package spatialgo

import (
	"time"

	"github.com/hupe1980/spatialgo/distance"
)

// DegeneratePolicy decides what happens when a point's bilateral bandwidth
// is zero, which occurs when every neighbor has the same features as the point.
type DegeneratePolicy int

const (
	// DegenerateFail returns spatial.ErrDegenerateBandwidth.
	DegenerateFail DegeneratePolicy = iota
	// DegenerateUniform uses beta = 1 for every neighbor of that point.
	DegenerateUniform
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateFail:
		return "fail"
	case DegenerateUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

const (
	defaultRadius           = 1
	defaultMaxIterations    = 100
	defaultProgressInterval = time.Second
)

type options struct {
	metric           distance.Metric
	minkowski        distance.MinkowskiMode
	radius           float64
	sigma            float64 // 0 means (2r + 1) / 4
	bilateral        bool
	degenerate       DegeneratePolicy
	workers          int
	maxIterations    int
	memoryLimit      int64
	maxJobs          int
	progressInterval time.Duration
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		metric:           distance.MetricRadial,
		minkowski:        distance.MinkowskiExact,
		radius:           defaultRadius,
		maxIterations:    defaultMaxIterations,
		progressInterval: defaultProgressInterval,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithMetric selects the neighborhood metric. The default is radial (Euclidean).
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithMinkowskiMode selects how the Minkowski metric accumulates
// per-dimension differences. Only meaningful with distance.MetricMinkowski.
func WithMinkowskiMode(m distance.MinkowskiMode) Option {
	return func(o *options) {
		o.minkowski = m
	}
}

// WithRadius sets the neighborhood radius. The default is 1.
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithSigma sets the spatial bandwidth of the Gaussian weights.
// If unset or zero, (2r + 1) / 4 is used.
func WithSigma(sigma float64) Option {
	return func(o *options) {
		o.sigma = sigma
	}
}

// WithBilateral enables feature-similarity (beta) weights.
func WithBilateral(enabled bool) Option {
	return func(o *options) {
		o.bilateral = enabled
	}
}

// WithDegeneratePolicy configures the handling of zero bilateral bandwidths.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(o *options) {
		o.degenerate = p
	}
}

// WithWorkers bounds the goroutines used per operation. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxIterations bounds k-means iterations in Cluster. The default is 100.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithMemoryLimit bounds the bytes held by cached and in-flight state.
// 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxConcurrentJobs bounds how many whole-set operations may run at once
// across all smoothers of an engine. n <= 0 uses GOMAXPROCS.
func WithMaxConcurrentJobs(n int) Option {
	return func(o *options) {
		o.maxJobs = n
	}
}

// WithProgressInterval sets the minimum interval between progress log lines.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &spatialgo.BasicMetricsCollector{}
//	eng, _ := spatialgo.New(spatialgo.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Filters: %d, Avg latency: %dns\n", stats.FilterCount, stats.FilterAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := spatialgo.NewJSONLogger(slog.LevelInfo)
//	eng, _ := spatialgo.New(spatialgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
