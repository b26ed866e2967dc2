package spatialgo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/spatialgo/internal/kmeans"
	"github.com/hupe1980/spatialgo/internal/parallel"
	"github.com/hupe1980/spatialgo/matrix"
	"github.com/hupe1980/spatialgo/spatial"
)

// Byte estimates used for memory reservations.
const (
	indexBytes  = 4
	offsetBytes = 8
	valueBytes  = 8
)

// Smoother binds a Dataset to an Engine and caches the neighbor lists,
// offsets and weights derived from it. Derived state is computed on first use.
//
// A Smoother is safe for concurrent use.
type Smoother[C, F matrix.Real] struct {
	engine *Engine
	data   Dataset[C, F]
	groups []int32

	mu         sync.Mutex
	lists      *spatial.Lists
	offsets    []*matrix.Dense[C]
	weights    []spatial.Weights
	degenerate int
	releases   []func()
}

// ClusterResult is the outcome of Smoother.Cluster.
type ClusterResult struct {
	// Centers is features x k, trained on the smoothed features.
	Centers *matrix.Dense[float64]
	// Scores is n x k; lower means a better match.
	Scores *matrix.Dense[float64]
	// Labels holds each point's best-scoring center.
	Labels []int
	// Iterations is the number of k-means iterations run.
	Iterations int
}

// NewSmoother validates ds and binds it to e.
func NewSmoother[C, F matrix.Real](e *Engine, ds Dataset[C, F]) (*Smoother[C, F], error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &Smoother[C, F]{
		engine: e,
		data:   ds,
		groups: ds.groups(),
	}, nil
}

// Len returns the number of points.
func (s *Smoother[C, F]) Len() int { return s.data.Len() }

// Dataset returns the bound dataset.
func (s *Smoother[C, F]) Dataset() Dataset[C, F] { return s.data }

// Neighbors returns the neighbor lists, computing them on first use.
func (s *Smoother[C, F]) Neighbors(ctx context.Context) (*spatial.Lists, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.neighborsLocked(ctx)
}

// NeighborKey returns the key identifying the neighbor graph this Smoother
// builds: its engine's radius, metric and Minkowski mode plus the grouping.
func (s *Smoother[C, F]) NeighborKey() spatial.Key {
	o := s.engine.opts
	return spatial.NewKey(o.radius, o.metric, o.minkowski, s.groups)
}

// SetNeighbors installs precomputed neighbor lists, e.g. decoded from a
// cache, and drops any derived weights. Lists linking points of different
// groups are rejected.
func (s *Smoother[C, F]) SetNeighbors(lists *spatial.Lists) error {
	if err := lists.Validate(s.Len()); err != nil {
		return err
	}
	if err := lists.CheckGroups(s.groups); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	release, err := s.engine.rc.Reserve(listsBytes(lists))
	if err != nil {
		return err
	}
	s.releases = append(s.releases, release)
	s.lists = lists
	return nil
}

// Weights returns every point's kernel weights, computing them on first use.
func (s *Smoother[C, F]) Weights(ctx context.Context) ([]spatial.Weights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.weightsLocked(ctx); err != nil {
		return nil, err
	}
	return s.weights, nil
}

// Offsets returns every point's neighbor offsets, computed with the weights.
func (s *Smoother[C, F]) Offsets(ctx context.Context) ([]*matrix.Dense[C], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.weightsLocked(ctx); err != nil {
		return nil, err
	}
	return s.offsets, nil
}

// Degenerate returns the number of points whose bilateral bandwidth fell
// back to uniform feature weights.
func (s *Smoother[C, F]) Degenerate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degenerate
}

// Filter returns the smoothed features (features x n).
func (s *Smoother[C, F]) Filter(ctx context.Context) (*matrix.Dense[float64], error) {
	start := time.Now()

	var out *matrix.Dense[float64]
	err := s.withJob(ctx, func() error {
		var err error
		out, err = s.filter(ctx)
		return err
	})

	elapsed := time.Since(start)
	s.engine.logger.LogFilter(ctx, s.Len(), s.data.Features.Rows(), elapsed, err)
	s.engine.metrics.RecordFilter(s.Len(), elapsed, err)
	return out, err
}

// Scores returns the n x k spatial scores of every point against the columns
// of centers (features x k). sd holds per-feature standard deviations; nil
// uses the spread of the dataset's features.
func (s *Smoother[C, F]) Scores(ctx context.Context, centers *matrix.Dense[float64], sd []float64) (*matrix.Dense[float64], error) {
	if centers == nil {
		return nil, &ErrDimensionMismatch{What: "centers", Expected: s.data.Features.Rows(), cause: spatial.ErrShapeMismatch}
	}

	start := time.Now()

	var out *matrix.Dense[float64]
	err := s.withJob(ctx, func() error {
		if sd == nil {
			sd = kmeans.StdDev(s.data.Features)
		}
		var err error
		out, err = s.scores(ctx, centers, sd)
		return err
	})

	elapsed := time.Since(start)
	s.engine.logger.LogScores(ctx, s.Len(), centers.Cols(), elapsed, err)
	s.engine.metrics.RecordScores(s.Len(), centers.Cols(), elapsed, err)
	return out, err
}

// DistanceTo returns, for every point, the weighted distance between its
// neighborhood and the neighborhood of point ref. Neighbors are paired when
// their squared offset difference is below tol.
func (s *Smoother[C, F]) DistanceTo(ctx context.Context, ref int, tol float64) ([]float64, error) {
	start := time.Now()

	var out []float64
	err := s.withJob(ctx, func() error {
		var err error
		out, err = s.distanceTo(ctx, ref, tol)
		return err
	})

	elapsed := time.Since(start)
	s.engine.logger.LogDistance(ctx, s.Len(), ref, elapsed, err)
	s.engine.metrics.RecordDistance(s.Len(), elapsed, err)
	return out, err
}

// Cluster smooths the features, trains k centers on the smoothed data with
// the given seed and assigns each point to the center it scores best against.
func (s *Smoother[C, F]) Cluster(ctx context.Context, k int, seed int64) (*ClusterResult, error) {
	start := time.Now()

	var res *ClusterResult
	err := s.withJob(ctx, func() error {
		var err error
		res, err = s.cluster(ctx, k, seed)
		return err
	})

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	elapsed := time.Since(start)
	s.engine.logger.LogCluster(ctx, k, iterations, elapsed, err)
	s.engine.metrics.RecordCluster(k, iterations, elapsed, err)
	return res, err
}

// Close drops cached state and returns its memory reservation.
func (s *Smoother[C, F]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

func (s *Smoother[C, F]) withJob(ctx context.Context, fn func() error) error {
	release, err := s.engine.job(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (s *Smoother[C, F]) filter(ctx context.Context) (*matrix.Dense[float64], error) {
	lists, weights, err := s.derived(ctx)
	if err != nil {
		return nil, err
	}

	release, err := s.engine.rc.Reserve(int64(s.data.Features.Rows()) * int64(s.Len()) * valueBytes)
	if err != nil {
		return nil, err
	}
	defer release()

	return spatial.Filter(ctx, s.data.Features, weights, lists, s.engine.spatialOptions(ctx, "filter")...)
}

func (s *Smoother[C, F]) scores(ctx context.Context, centers *matrix.Dense[float64], sd []float64) (*matrix.Dense[float64], error) {
	if centers.Rows() != s.data.Features.Rows() {
		return nil, &ErrDimensionMismatch{What: "center features", Expected: s.data.Features.Rows(), Actual: centers.Rows(), cause: spatial.ErrShapeMismatch}
	}
	if len(sd) != s.data.Features.Rows() {
		return nil, &ErrDimensionMismatch{What: "standard deviations", Expected: s.data.Features.Rows(), Actual: len(sd), cause: spatial.ErrShapeMismatch}
	}

	lists, weights, err := s.derived(ctx)
	if err != nil {
		return nil, err
	}

	release, err := s.engine.rc.Reserve(int64(s.Len()) * int64(centers.Cols()) * valueBytes)
	if err != nil {
		return nil, err
	}
	defer release()

	return spatial.Scores(ctx, s.data.Features, centers, weights, lists, sd, s.engine.spatialOptions(ctx, "scores")...)
}

func (s *Smoother[C, F]) distanceTo(ctx context.Context, ref int, tol float64) ([]float64, error) {
	n := s.Len()
	if ref < 0 || ref >= n {
		return nil, &ErrPointOutOfRange{Index: ref, Len: n, cause: spatial.ErrIndexOutOfRange}
	}

	s.mu.Lock()
	err := s.weightsLocked(ctx)
	lists, offsets, weights := s.lists, s.offsets, s.weights
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	refX, err := s.data.Features.SelectCols(lists.At(ref))
	if err != nil {
		return nil, err
	}

	return spatial.Distance(ctx, s.data.Features, refX, offsets, offsets[ref], weights, weights[ref], lists, tol,
		s.engine.spatialOptions(ctx, "distance")...)
}

func (s *Smoother[C, F]) cluster(ctx context.Context, k int, seed int64) (*ClusterResult, error) {
	if k <= 0 || k > s.Len() {
		return nil, fmt.Errorf("%w: %d for %d points", ErrInvalidK, k, s.Len())
	}

	smoothed, err := s.filter(ctx)
	if err != nil {
		return nil, err
	}

	km, err := kmeans.Train(ctx, smoothed, k, s.engine.opts.maxIterations, seed)
	if err != nil {
		return nil, err
	}

	scores, err := s.scores(ctx, km.Centers, kmeans.StdDev(s.data.Features))
	if err != nil {
		return nil, err
	}

	return &ClusterResult{
		Centers:    km.Centers,
		Scores:     scores,
		Labels:     spatial.Assign(scores),
		Iterations: km.Iterations,
	}, nil
}

func (s *Smoother[C, F]) derived(ctx context.Context) (*spatial.Lists, []spatial.Weights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.weightsLocked(ctx); err != nil {
		return nil, nil, err
	}
	return s.lists, s.weights, nil
}

func (s *Smoother[C, F]) neighborsLocked(ctx context.Context) (*spatial.Lists, error) {
	if s.lists != nil {
		return s.lists, nil
	}

	e := s.engine
	start := time.Now()

	lists, err := spatial.FindNeighbors(ctx, s.data.Coords, e.opts.radius, s.groups, e.opts.metric,
		e.spatialOptions(ctx, "neighbors")...)
	if err == nil {
		var release func()
		release, err = e.rc.Reserve(listsBytes(lists))
		if err == nil {
			s.releases = append(s.releases, release)
			s.lists = lists
		}
	}

	edges := 0
	if lists != nil {
		edges = lists.Total()
	}
	elapsed := time.Since(start)
	e.logger.LogNeighbors(ctx, s.Len(), edges, elapsed, err)
	e.metrics.RecordNeighbors(s.Len(), edges, elapsed, err)

	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *Smoother[C, F]) weightsLocked(ctx context.Context) error {
	if s.weights != nil {
		return nil
	}

	lists, err := s.neighborsLocked(ctx)
	if err != nil {
		return err
	}

	e := s.engine
	start := time.Now()
	n := lists.Len()

	var degenerate atomic.Int64
	offsets := make([]*matrix.Dense[C], n)
	weights := make([]spatial.Weights, n)

	release, err := e.rc.Reserve(int64(lists.Total()) * (int64(s.data.Coords.Cols())*offsetBytes + 2*valueBytes))
	if err == nil {
		popts := parallel.Options{
			Workers:    e.opts.workers,
			OnProgress: e.logger.Progress(ctx, "weights", e.opts.progressInterval),
		}
		err = parallel.For(ctx, n, popts, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				off, w, deg, err := s.pointWeights(lists.At(i), i)
				if err != nil {
					return fmt.Errorf("point %d: %w", i, err)
				}
				if deg {
					degenerate.Add(1)
				}
				offsets[i] = off
				weights[i] = w
			}
			return nil
		})
		if err != nil {
			release()
		}
	}

	elapsed := time.Since(start)
	e.logger.LogWeights(ctx, n, int(degenerate.Load()), elapsed, err)
	e.metrics.RecordWeights(n, int(degenerate.Load()), elapsed, err)

	if err != nil {
		return err
	}

	s.releases = append(s.releases, release)
	s.offsets = offsets
	s.weights = weights
	s.degenerate = int(degenerate.Load())
	return nil
}

// pointWeights derives the offsets and weights of point i's neighborhood.
// deg reports a degenerate bandwidth replaced by uniform beta.
func (s *Smoother[C, F]) pointWeights(nb []int32, i int) (*matrix.Dense[C], spatial.Weights, bool, error) {
	opts := s.engine.opts

	off, err := spatial.Offsets(s.data.Coords, nb, i)
	if err != nil {
		return nil, spatial.Weights{}, false, err
	}

	var x *matrix.Dense[F]
	if opts.bilateral {
		if x, err = s.data.Features.SelectCols(nb); err != nil {
			return nil, spatial.Weights{}, false, err
		}
	}

	w, err := spatial.ComputeWeights(x, off, opts.sigma, opts.bilateral)
	if errors.Is(err, spatial.ErrDegenerateBandwidth) && opts.degenerate == DegenerateUniform {
		w, err = spatial.ComputeWeights[F](nil, off, opts.sigma, false)
		return off, w, true, err
	}
	return off, w, false, err
}

func (s *Smoother[C, F]) resetLocked() {
	for _, release := range s.releases {
		release()
	}
	s.releases = nil
	s.lists = nil
	s.offsets = nil
	s.weights = nil
	s.degenerate = 0
}

func listsBytes(l *spatial.Lists) int64 {
	return int64(l.Total())*indexBytes + int64(l.Len()+1)*8
}
