// Package testutil provides testing utilities for spatialgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for coordinate
// grids, random point clouds and piecewise-constant feature images.
//
//	rng := testutil.NewRNG(seed)
//	coords := testutil.Grid(32, 32)                // 1024 x 2
//	x := rng.PatchFeatures(coords, 3, 8, 0.1)     // 3 x 1024
package testutil
