package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/spatialgo"
	"github.com/hupe1980/spatialgo/blobstore"
	"github.com/hupe1980/spatialgo/codec"
	"github.com/hupe1980/spatialgo/internal/resource"
	"github.com/hupe1980/spatialgo/matrix"
	"github.com/hupe1980/spatialgo/render"
	"github.com/hupe1980/spatialgo/spatial"
)

// Dataset is the wire form of an input dataset.
type Dataset struct {
	// Coords is n x d.
	Coords codec.Matrix `json:"coords"`
	// Groups is optional; one label per point.
	Groups []int32 `json:"groups,omitempty"`
	// Features is features x n.
	Features codec.Matrix `json:"features"`
}

// Result is the wire form of a job result.
type Result struct {
	Operation  string        `json:"operation"`
	Codec      string        `json:"codec"`
	Points     int           `json:"points"`
	Smoothed   *codec.Matrix `json:"smoothed,omitempty"`
	Scores     *codec.Matrix `json:"scores,omitempty"`
	Centers    *codec.Matrix `json:"centers,omitempty"`
	Labels     []int         `json:"labels,omitempty"`
	Distance   []float64     `json:"distance,omitempty"`
	Iterations int           `json:"iterations,omitempty"`
	Degenerate int           `json:"degenerate"`
	CacheHit   bool          `json:"cache_hit"`
	ElapsedMS  int64         `json:"elapsed_ms"`
}

// Runner executes a job against a blob store.
type Runner struct {
	cfg     *Config
	store   blobstore.Store
	codec   codec.Codec
	logger  *spatialgo.Logger
	metrics spatialgo.MetricsCollector
	io      *resource.Controller
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger overrides the logger built from the job's log settings.
func WithLogger(l *spatialgo.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithMetricsCollector attaches a metrics collector to the job's engine.
func WithMetricsCollector(mc spatialgo.MetricsCollector) Option {
	return func(r *Runner) {
		r.metrics = mc
	}
}

// NewRunner validates cfg and prepares a runner over store.
func NewRunner(cfg *Config, store blobstore.Store, optFns ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, _ := codec.ByName(cfg.Codec)

	r := &Runner{
		cfg:   cfg,
		store: store,
		codec: c,
		io: resource.NewController(resource.Config{
			IOLimitBytesPerSec: cfg.Limits.IOBytesPerSecond,
		}),
	}
	for _, fn := range optFns {
		fn(r)
	}
	if r.logger == nil {
		r.logger = cfg.Log.Logger()
	}
	return r, nil
}

// Run loads the dataset, runs the configured operation and stores the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := r.logger.WithOp(r.cfg.Operation)

	ds, err := r.loadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.cfg.Input, err)
	}

	opts, err := r.cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, spatialgo.WithLogger(r.logger), spatialgo.WithMetricsCollector(r.metrics))

	eng, err := spatialgo.New(opts...)
	if err != nil {
		return nil, err
	}
	sm, err := spatialgo.NewSmoother(eng, ds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sm.Close() }()

	res := &Result{Operation: r.cfg.Operation, Codec: r.codec.Name(), Points: sm.Len()}

	if res.CacheHit, err = r.loadNeighbors(ctx, sm); err != nil {
		return nil, err
	}

	channel, labels, err := r.execute(ctx, sm, res)
	if err != nil {
		return nil, err
	}
	res.Degenerate = sm.Degenerate()

	if !res.CacheHit {
		if err := r.saveNeighbors(ctx, sm); err != nil {
			return nil, err
		}
	}

	if r.cfg.Render != nil {
		if err := r.render(ctx, ds.Coords, channel, labels); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", r.cfg.Render.Output, err)
		}
	}

	res.ElapsedMS = time.Since(start).Milliseconds()

	data, err := r.codec.Marshal(res)
	if err != nil {
		return nil, err
	}
	if err := r.put(ctx, r.cfg.Output, data); err != nil {
		return nil, fmt.Errorf("storing %s: %w", r.cfg.Output, err)
	}

	logger.InfoContext(ctx, "job completed",
		"points", res.Points,
		"output", r.cfg.Output,
		"cache_hit", res.CacheHit,
		"elapsed", time.Since(start),
	)
	return res, nil
}

// execute runs the operation, fills res and returns the values to render.
func (r *Runner) execute(ctx context.Context, sm *spatialgo.Smoother[float64, float64], res *Result) ([]float64, bool, error) {
	ch := 0
	if r.cfg.Render != nil {
		ch = r.cfg.Render.Channel
	}

	switch r.cfg.Operation {
	case OpFilter:
		out, err := sm.Filter(ctx)
		if err != nil {
			return nil, false, err
		}
		w := codec.FromDense(out)
		res.Smoothed = &w
		if ch < 0 || ch >= out.Rows() {
			return nil, false, fmt.Errorf("render channel %d out of range [0, %d)", ch, out.Rows())
		}
		return out.Row(ch), false, nil

	case OpScore:
		centers, err := matrix.FromColumns(r.cfg.Score.Centers)
		if err != nil {
			return nil, false, fmt.Errorf("score.centers: %w", err)
		}
		var sd []float64
		if len(r.cfg.Score.SD) > 0 {
			sd = r.cfg.Score.SD
		}
		scores, err := sm.Scores(ctx, centers, sd)
		if err != nil {
			return nil, false, err
		}
		w := codec.FromDense(scores)
		res.Scores = &w
		res.Labels = spatial.Assign(scores)
		if ch < 0 || ch >= scores.Cols() {
			return nil, false, fmt.Errorf("render channel %d out of range [0, %d)", ch, scores.Cols())
		}
		return scores.Col(ch), false, nil

	case OpDistance:
		tol := r.cfg.Distance.Tol
		if tol <= 0 {
			tol = defaultTol
		}
		d, err := sm.DistanceTo(ctx, r.cfg.Distance.Ref, tol)
		if err != nil {
			return nil, false, err
		}
		res.Distance = d
		return d, false, nil

	case OpCluster:
		cr, err := sm.Cluster(ctx, r.cfg.Cluster.K, r.cfg.Cluster.Seed)
		if err != nil {
			return nil, false, err
		}
		centers := codec.FromDense(cr.Centers)
		scores := codec.FromDense(cr.Scores)
		res.Centers = &centers
		res.Scores = &scores
		res.Labels = cr.Labels
		res.Iterations = cr.Iterations

		values := make([]float64, len(cr.Labels))
		for i, l := range cr.Labels {
			values[i] = float64(l)
		}
		return values, true, nil

	default:
		return nil, false, fmt.Errorf("unknown operation %q", r.cfg.Operation)
	}
}

func (r *Runner) loadDataset(ctx context.Context) (spatialgo.Dataset[float64, float64], error) {
	var ds spatialgo.Dataset[float64, float64]

	data, err := r.get(ctx, r.cfg.Input)
	if err != nil {
		return ds, err
	}

	var doc Dataset
	if err := r.codec.Unmarshal(data, &doc); err != nil {
		return ds, err
	}

	if ds.Coords, err = codec.Dense[float64](doc.Coords); err != nil {
		return ds, fmt.Errorf("coords: %w", err)
	}
	if ds.Features, err = codec.Dense[float64](doc.Features); err != nil {
		return ds, fmt.Errorf("features: %w", err)
	}
	ds.Groups = doc.Groups
	return ds, nil
}

// loadNeighbors installs a cached neighbor graph when one exists and was built
// with the same parameters and grouping. It reports whether the cache was used.
func (r *Runner) loadNeighbors(ctx context.Context, sm *spatialgo.Smoother[float64, float64]) (bool, error) {
	name := r.cfg.Cache.Neighbors
	if name == "" {
		return false, nil
	}

	data, err := r.get(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	lists, key, err := spatial.DecodeLists(bytes.NewReader(data))
	if err == nil {
		err = key.Check(sm.NeighborKey())
	}
	if err == nil {
		err = sm.SetNeighbors(lists)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "ignoring neighbor cache",
			"name", name,
			"error", err,
		)
		return false, nil
	}
	return true, nil
}

func (r *Runner) saveNeighbors(ctx context.Context, sm *spatialgo.Smoother[float64, float64]) error {
	name := r.cfg.Cache.Neighbors
	if name == "" {
		return nil
	}

	lists, err := sm.Neighbors(ctx)
	if err != nil {
		return err
	}
	comp, err := spatial.ParseCompression(r.cfg.Cache.Compression)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := lists.Encode(&buf, comp, sm.NeighborKey()); err != nil {
		return err
	}
	return r.put(ctx, name, buf.Bytes())
}

func (r *Runner) render(ctx context.Context, coords *matrix.Dense[float64], values []float64, labels bool) error {
	format, err := render.ParseFormat(r.cfg.Render.Format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.Image(&buf, coords, values, render.Options{Format: format, Labels: labels, Title: r.cfg.Operation}); err != nil {
		return err
	}
	return r.put(ctx, r.cfg.Render.Output, buf.Bytes())
}

func (r *Runner) get(ctx context.Context, name string) ([]byte, error) {
	data, err := blobstore.ReadAll(ctx, r.store, name)
	if err != nil {
		return nil, err
	}
	if err := r.io.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Runner) put(ctx context.Context, name string, data []byte) error {
	if err := r.io.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return r.store.Put(ctx, name, data)
}
