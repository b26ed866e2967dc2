package spatialgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordNeighbors is called after each neighbor search.
	// edges is the total number of neighbor entries found.
	RecordNeighbors(points, edges int, duration time.Duration, err error)

	// RecordWeights is called after weights are derived for a dataset.
	// degenerate is the number of points that fell back to uniform beta.
	RecordWeights(points, degenerate int, duration time.Duration, err error)

	// RecordFilter is called after each smoothing pass.
	RecordFilter(points int, duration time.Duration, err error)

	// RecordScores is called after each scoring pass.
	RecordScores(points, centers int, duration time.Duration, err error)

	// RecordDistance is called after each neighborhood distance pass.
	RecordDistance(points int, duration time.Duration, err error)

	// RecordCluster is called after each clustering run.
	RecordCluster(k, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordNeighbors(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordWeights(int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordFilter(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordScores(int, int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordDistance(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordCluster(int, int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	NeighborsCount      atomic.Int64
	NeighborsEdges      atomic.Int64
	NeighborsErrors     atomic.Int64
	WeightsCount        atomic.Int64
	WeightsDegenerate   atomic.Int64
	WeightsErrors       atomic.Int64
	FilterCount         atomic.Int64
	FilterErrors        atomic.Int64
	FilterTotalNanos    atomic.Int64
	ScoresCount         atomic.Int64
	ScoresErrors        atomic.Int64
	DistanceCount       atomic.Int64
	DistanceErrors      atomic.Int64
	ClusterCount        atomic.Int64
	ClusterErrors       atomic.Int64
	ClusterIterations   atomic.Int64
	PointsProcessed     atomic.Int64
	OperationTotalNanos atomic.Int64
}

func (b *BasicMetricsCollector) record(points int, duration time.Duration) {
	b.PointsProcessed.Add(int64(points))
	b.OperationTotalNanos.Add(duration.Nanoseconds())
}

// RecordNeighbors implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighbors(points, edges int, duration time.Duration, err error) {
	b.NeighborsCount.Add(1)
	if err != nil {
		b.NeighborsErrors.Add(1)
		return
	}
	b.NeighborsEdges.Add(int64(edges))
	b.record(points, duration)
}

// RecordWeights implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWeights(points, degenerate int, duration time.Duration, err error) {
	b.WeightsCount.Add(1)
	if err != nil {
		b.WeightsErrors.Add(1)
		return
	}
	b.WeightsDegenerate.Add(int64(degenerate))
	b.record(points, duration)
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(points int, duration time.Duration, err error) {
	b.FilterCount.Add(1)
	if err != nil {
		b.FilterErrors.Add(1)
		return
	}
	b.FilterTotalNanos.Add(duration.Nanoseconds())
	b.record(points, duration)
}

// RecordScores implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScores(points, centers int, duration time.Duration, err error) {
	b.ScoresCount.Add(1)
	if err != nil {
		b.ScoresErrors.Add(1)
		return
	}
	b.record(points, duration)
}

// RecordDistance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDistance(points int, duration time.Duration, err error) {
	b.DistanceCount.Add(1)
	if err != nil {
		b.DistanceErrors.Add(1)
		return
	}
	b.record(points, duration)
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(k, iterations int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	if err != nil {
		b.ClusterErrors.Add(1)
		return
	}
	b.ClusterIterations.Add(int64(iterations))
	b.OperationTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		NeighborsCount:    b.NeighborsCount.Load(),
		NeighborsEdges:    b.NeighborsEdges.Load(),
		NeighborsErrors:   b.NeighborsErrors.Load(),
		WeightsCount:      b.WeightsCount.Load(),
		WeightsDegenerate: b.WeightsDegenerate.Load(),
		WeightsErrors:     b.WeightsErrors.Load(),
		FilterCount:       b.FilterCount.Load(),
		FilterErrors:      b.FilterErrors.Load(),
		FilterAvgNanos:    b.getAvgFilterNanos(),
		ScoresCount:       b.ScoresCount.Load(),
		ScoresErrors:      b.ScoresErrors.Load(),
		DistanceCount:     b.DistanceCount.Load(),
		DistanceErrors:    b.DistanceErrors.Load(),
		ClusterCount:      b.ClusterCount.Load(),
		ClusterErrors:     b.ClusterErrors.Load(),
		ClusterIterations: b.ClusterIterations.Load(),
		PointsProcessed:   b.PointsProcessed.Load(),
		TotalNanos:        b.OperationTotalNanos.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFilterNanos() int64 {
	count := b.FilterCount.Load() - b.FilterErrors.Load()
	if count <= 0 {
		return 0
	}
	return b.FilterTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	NeighborsCount    int64
	NeighborsEdges    int64
	NeighborsErrors   int64
	WeightsCount      int64
	WeightsDegenerate int64
	WeightsErrors     int64
	FilterCount       int64
	FilterErrors      int64
	FilterAvgNanos    int64
	ScoresCount       int64
	ScoresErrors      int64
	DistanceCount     int64
	DistanceErrors    int64
	ClusterCount      int64
	ClusterErrors     int64
	ClusterIterations int64
	PointsProcessed   int64
	TotalNanos        int64
}
