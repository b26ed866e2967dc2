// Package resource governs the resources a spatial engine may consume.
//
// The Controller manages three limits:
//
//   - Memory: output buffers (neighbor graphs, weight pairs, smoothed and
//     score matrices) are reserved before allocation. Reservation is
//     non-blocking and fails fast with ErrMemoryLimitExceeded.
//   - Jobs: the number of whole-set computations running at once. Each job
//     already fans out across workers, so this bounds total goroutines.
//   - IO: a token bucket for dataset and result transfers to blob storage.
//
// # Memory
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	release, err := rc.Reserve(n * f * 8)
//	if err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer release()
//
// # Jobs
//
//	if err := rc.AcquireJob(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseJob()
//
// # Nil Safety
//
// All methods handle a nil Controller as "no limits".
package resource
