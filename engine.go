package spatialgo

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/cpuinfo"
	"github.com/hupe1980/spatialgo/internal/resource"
	"github.com/hupe1980/spatialgo/spatial"
)

// Engine holds the smoothing configuration shared by its smoothers, along
// with the logger, metrics collector and resource controller they report to.
//
// An Engine is safe for concurrent use.
type Engine struct {
	opts    options
	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
	cpu     cpuinfo.Info
}

// New creates an Engine.
func New(optFns ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if !o.metric.Valid() {
		return nil, fmt.Errorf("%w: %d", distance.ErrUnknownMetric, o.metric)
	}
	if math.IsNaN(o.radius) || o.radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, o.radius)
	}
	if math.IsNaN(o.sigma) || o.sigma < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, o.sigma)
	}
	if o.sigma == 0 {
		o.sigma = DefaultSigma(o.radius)
	}

	logger := o.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := o.metricsCollector
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	maxJobs := o.maxJobs
	if maxJobs <= 0 {
		maxJobs = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		opts:    o,
		logger:  logger,
		metrics: metrics,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:  o.memoryLimit,
			MaxConcurrentJobs: int64(maxJobs),
		}),
		cpu: cpuinfo.Detect(),
	}

	logger.Info("engine started",
		"metric", o.metric,
		"radius", o.radius,
		"sigma", o.sigma,
		"bilateral", o.bilateral,
		"cpu", e.cpu,
	)

	return e, nil
}

// DefaultSigma returns the spatial bandwidth used when none is configured.
func DefaultSigma(radius float64) float64 {
	return (2*radius + 1) / 4
}

// Metric returns the neighborhood metric.
func (e *Engine) Metric() distance.Metric { return e.opts.metric }

// Radius returns the neighborhood radius.
func (e *Engine) Radius() float64 { return e.opts.radius }

// Sigma returns the resolved spatial bandwidth.
func (e *Engine) Sigma() float64 { return e.opts.sigma }

// Bilateral reports whether feature-similarity weights are enabled.
func (e *Engine) Bilateral() bool { return e.opts.bilateral }

// CPU returns the host CPU info detected at startup.
func (e *Engine) CPU() cpuinfo.Info { return e.cpu }

// MemoryUsage returns the bytes currently reserved by this engine's smoothers.
func (e *Engine) MemoryUsage() int64 { return e.rc.MemoryUsage() }

// PeakMemoryUsage returns the highest reservation seen.
func (e *Engine) PeakMemoryUsage() int64 { return e.rc.PeakMemoryUsage() }

// Logger returns the engine logger.
func (e *Engine) Logger() *Logger { return e.logger }

func (e *Engine) spatialOptions(ctx context.Context, op string) []spatial.Option {
	return []spatial.Option{
		spatial.WithWorkers(e.opts.workers),
		spatial.WithMinkowskiMode(e.opts.minkowski),
		spatial.WithProgress(e.logger.Progress(ctx, op, e.opts.progressInterval)),
	}
}

// job acquires a whole-set job slot. The returned func releases it.
func (e *Engine) job(ctx context.Context) (func(), error) {
	if err := e.rc.AcquireJob(ctx); err != nil {
		return nil, err
	}
	return e.rc.ReleaseJob, nil
}
