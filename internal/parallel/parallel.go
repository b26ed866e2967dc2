// Package parallel runs per-point loops over a bounded worker pool.
//
// Work is split into contiguous chunks; each chunk is handed to one goroutine
// and must only write to output slots owned by its index range.
package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// minGrain keeps chunks large enough that scheduling stays cheap relative to
// the O(n) inner work of a neighborhood kernel.
const minGrain = 16

// Options configures For.
type Options struct {
	// Workers bounds concurrent goroutines. <= 0 means GOMAXPROCS.
	Workers int

	// Grain is the chunk size. <= 0 picks one based on n and Workers.
	Grain int

	// OnProgress, if set, is called after each chunk with the number of items
	// completed so far. It may be called concurrently.
	OnProgress func(done, total int)
}

// Workers resolves a requested worker count.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// For calls fn(lo, hi) for consecutive ranges covering [0, n).
// The first error returned by fn cancels the remaining chunks and is returned.
// Context cancellation is observed between chunks.
func For(ctx context.Context, n int, opts Options, fn func(lo, hi int) error) error {
	if n <= 0 {
		return ctx.Err()
	}

	workers := Workers(opts.Workers)
	grain := opts.Grain
	if grain <= 0 {
		grain = max(minGrain, (n+workers*4-1)/(workers*4))
	}

	if workers == 1 || n <= grain {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(0, n); err != nil {
			return err
		}
		if opts.OnProgress != nil {
			opts.OnProgress(n, n)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	for lo := 0; lo < n; lo += grain {
		hi := min(lo+grain, n)
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(lo, hi); err != nil {
				return err
			}
			if opts.OnProgress != nil {
				opts.OnProgress(int(done.Add(int64(hi-lo))), n)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
