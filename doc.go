// Package spatialgo provides spatially-aware kernel smoothing over point clouds.
//
// A dataset is a set of points with spatial coordinates, an optional group
// label per point and a feature vector per point. spatialgo finds each point's
// radius neighborhood within its group, derives Gaussian spatial weights and
// optional bilateral feature-similarity weights, and uses them to smooth
// features, score points against reference centers, compare neighborhoods and
// cluster points with spatial context.
//
// The numeric kernels live in package spatial and can be used directly.
// This package wraps them with configuration, caching of derived neighborhood
// state, structured logging, metrics and a memory budget.
//
// # Quick Start
//
//	ctx := context.Background()
//	eng, _ := spatialgo.New(
//	    spatialgo.WithMetric(distance.MetricChebyshev),
//	    spatialgo.WithRadius(1),
//	    spatialgo.WithBilateral(true),
//	)
//
//	sm, _ := spatialgo.NewSmoother(eng, spatialgo.Dataset[int32, float32]{
//	    Coords:   coords,   // n x d
//	    Features: features, // features x n
//	})
//
//	smoothed, _ := sm.Filter(ctx)  // features x n
//
// # Clustering
//
// Cluster smooths the data, trains k-means centers on the smoothed features
// and assigns every point to the center with the lowest spatial score:
//
//	res, _ := sm.Cluster(ctx, 4, 42)
//	fmt.Println(res.Labels)
//
// # Indices
//
// Neighbor lists use 0-based point indices. Hosts that expect 1-based
// indices can use spatial.Lists.OneBased.
//
// # Memory
//
// WithMemoryLimit bounds the bytes held by cached neighborhood state and by
// in-flight outputs. Exceeding the budget returns ErrMemoryLimitExceeded.
package spatialgo
