package spatial

import (
	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/parallel"
)

type options struct {
	workers   int
	minkowski distance.MinkowskiMode
	progress  func(done, total int)
}

// Option configures whole-set kernels.
type Option func(*options)

// WithWorkers bounds the number of goroutines used for the per-point loop.
// n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMinkowskiMode selects the Minkowski accumulation used by FindNeighbors.
// The default is distance.MinkowskiExact.
func WithMinkowskiMode(m distance.MinkowskiMode) Option {
	return func(o *options) {
		o.minkowski = m
	}
}

// WithProgress registers a callback invoked as chunks of points complete.
// It may be called concurrently from several workers.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

func (o options) parallel() parallel.Options {
	return parallel.Options{Workers: o.workers, OnProgress: o.progress}
}
