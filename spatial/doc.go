// Package spatial implements neighborhood kernels over point clouds whose
// points carry feature vectors (for example image pixels with multi-channel
// intensity profiles).
//
// The kernels are leaves-first:
//
//   - FindNeighbors: same-group points within a radius under a metric.
//   - Offsets / ReferenceOffsets: per-dimension coordinate differences from a center.
//   - ComputeWeights: Gaussian spatial weights (alpha) and optional bilateral
//     feature-similarity weights (beta).
//   - Distance: alignment-gated weighted feature distance between a query
//     neighborhood and a reference neighborhood.
//   - Scores: locally smoothed, standardized squared distance to k centers.
//   - Filter: weighted average of features over each neighborhood.
//
// Neighbor search is a brute-force scan within each group; no spatial index
// is built. Whole-set operations fan the per-point loop out across workers
// (see WithWorkers). Every output slot is written by exactly one worker.
//
// Coordinates are n x d matrices and features are features x n matrices (see
// package matrix). Coordinate, feature and center element types are independent
// type parameters, so integer pixel coordinates can be combined with
// floating-point intensities without conversion by the caller.
package spatial
