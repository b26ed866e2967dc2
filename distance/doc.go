// Package distance provides the spatial metrics used to decide neighborhood
// membership, plus the feature-space distance helpers shared by the kernels.
//
// # Supported Metrics
//
//   - MetricRadial: Euclidean distance, sqrt(sum d^2)
//   - MetricManhattan: city-block distance, sum |d|
//   - MetricMinkowski: sum(|d|^p)^(1/p) with p = number of spatial dimensions
//   - MetricChebyshev: max |d|
//
// Metric values match the integer codes used by host bindings (1..4).
//
// # Usage
//
//	k, _ := distance.NewKernel(distance.MetricRadial, 2, distance.MinkowskiExact)
//	acc := 0.0
//	for _, d := range diffs {
//	    acc = k.Accumulate(acc, d)
//	}
//	ok := k.Within(acc, radius)
package distance
