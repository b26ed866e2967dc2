package job

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/spatialgo"
	"github.com/hupe1980/spatialgo/codec"
	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/notify"
	"github.com/hupe1980/spatialgo/render"
	"github.com/hupe1980/spatialgo/spatial"
)

// Operations understood by Run.
const (
	OpFilter   = "filter"
	OpScore    = "score"
	OpDistance = "distance"
	OpCluster  = "cluster"
)

// Config describes one job.
type Config struct {
	Store     StoreConfig    `yaml:"store"`
	Input     string         `yaml:"input"`
	Output    string         `yaml:"output"`
	Codec     string         `yaml:"codec,omitempty"`
	Operation string         `yaml:"operation"`
	Kernel    KernelConfig   `yaml:"kernel"`
	Score     ScoreConfig    `yaml:"score,omitempty"`
	Distance  DistanceConfig `yaml:"distance,omitempty"`
	Cluster   ClusterConfig  `yaml:"cluster,omitempty"`
	Cache     CacheConfig    `yaml:"cache,omitempty"`
	Render    *RenderConfig  `yaml:"render,omitempty"`
	Limits    LimitsConfig   `yaml:"limits,omitempty"`
	Log       LogConfig      `yaml:"log,omitempty"`
	Notify    *notify.Config `yaml:"notify,omitempty"`
}

// StoreConfig selects and configures the blob store.
type StoreConfig struct {
	// Kind is local, memory, s3 or minio.
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Secure    bool   `yaml:"secure,omitempty"`
}

// KernelConfig holds neighborhood and weight settings.
type KernelConfig struct {
	Metric string `yaml:"metric"`
	// Radius defaults to 1 when omitted.
	Radius     *float64 `yaml:"radius,omitempty"`
	Sigma      float64  `yaml:"sigma,omitempty"`
	Bilateral  bool     `yaml:"bilateral,omitempty"`
	Minkowski  string   `yaml:"minkowski,omitempty"`
	Degenerate string   `yaml:"degenerate,omitempty"`
}

// ScoreConfig holds the reference centers for the score operation.
type ScoreConfig struct {
	// Centers lists one feature vector per center.
	Centers [][]float64 `yaml:"centers,omitempty"`
	// SD holds per-feature standard deviations; empty uses the data's spread.
	SD []float64 `yaml:"sd,omitempty"`
}

// DistanceConfig holds the reference point for the distance operation.
type DistanceConfig struct {
	Ref int     `yaml:"ref"`
	Tol float64 `yaml:"tol,omitempty"`
}

// ClusterConfig holds k-means settings for the cluster operation.
type ClusterConfig struct {
	K             int   `yaml:"k"`
	Seed          int64 `yaml:"seed,omitempty"`
	MaxIterations int   `yaml:"max_iterations,omitempty"`
}

// CacheConfig names a blob that caches the neighbor graph across runs.
type CacheConfig struct {
	Neighbors   string `yaml:"neighbors,omitempty"`
	Compression string `yaml:"compression,omitempty"`
}

// RenderConfig renders one channel of the result.
type RenderConfig struct {
	Output string `yaml:"output"`
	Format string `yaml:"format,omitempty"`
	// Channel selects the smoothed feature (filter) or score column (score).
	Channel int `yaml:"channel,omitempty"`
}

// LimitsConfig bounds resource usage.
type LimitsConfig struct {
	Workers          int   `yaml:"workers,omitempty"`
	MemoryBytes      int64 `yaml:"memory_bytes,omitempty"`
	IOBytesPerSecond int64 `yaml:"io_bytes_per_second,omitempty"`
}

// LogConfig configures the job logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

const defaultTol = 0.5

// LoadConfig loads and validates a job file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a job document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case "local":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for local stores")
		}
	case "memory":
	case "s3", "minio":
		if c.Store.Bucket == "" {
			return fmt.Errorf("store.bucket is required for %s stores", c.Store.Kind)
		}
		if c.Store.Kind == "minio" && c.Store.Endpoint == "" {
			return fmt.Errorf("store.endpoint is required for minio stores")
		}
	default:
		return fmt.Errorf("store.kind must be local, memory, s3 or minio, got %q", c.Store.Kind)
	}

	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, ok := codec.ByName(c.Codec); !ok {
		return fmt.Errorf("unknown codec %q", c.Codec)
	}

	if _, err := c.Kernel.metric(); err != nil {
		return fmt.Errorf("kernel.metric: %w", err)
	}
	if _, err := distance.ParseMinkowskiMode(c.Kernel.Minkowski); err != nil {
		return fmt.Errorf("kernel.minkowski: %w", err)
	}
	if _, err := c.Kernel.degenerate(); err != nil {
		return err
	}
	if c.Kernel.Radius != nil && *c.Kernel.Radius < 0 {
		return fmt.Errorf("kernel.radius must be non-negative")
	}
	if c.Kernel.Sigma < 0 {
		return fmt.Errorf("kernel.sigma must be positive")
	}

	switch c.Operation {
	case OpFilter:
	case OpScore:
		if len(c.Score.Centers) == 0 {
			return fmt.Errorf("score.centers is required for the score operation")
		}
	case OpDistance:
		if c.Distance.Ref < 0 {
			return fmt.Errorf("distance.ref must be non-negative")
		}
	case OpCluster:
		if c.Cluster.K <= 0 {
			return fmt.Errorf("cluster.k must be positive")
		}
	default:
		return fmt.Errorf("operation must be filter, score, distance or cluster, got %q", c.Operation)
	}

	if _, err := spatial.ParseCompression(c.Cache.Compression); err != nil {
		return fmt.Errorf("cache.compression: %w", err)
	}

	if c.Render != nil {
		if c.Render.Output == "" {
			return fmt.Errorf("render.output is required")
		}
		if _, err := render.ParseFormat(c.Render.Format); err != nil {
			return err
		}
	}

	if _, err := c.Log.level(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Notify != nil && c.Notify.Broker == "" {
		return fmt.Errorf("notify.broker is required")
	}

	return nil
}

func (k KernelConfig) metric() (distance.Metric, error) {
	if k.Metric == "" {
		return distance.MetricRadial, nil
	}
	return distance.ParseMetric(k.Metric)
}

func (k KernelConfig) degenerate() (spatialgo.DegeneratePolicy, error) {
	switch k.Degenerate {
	case "", "fail":
		return spatialgo.DegenerateFail, nil
	case "uniform":
		return spatialgo.DegenerateUniform, nil
	default:
		return 0, fmt.Errorf("kernel.degenerate must be fail or uniform, got %q", k.Degenerate)
	}
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(l.Level))
	return lvl, err
}

// Logger builds the logger described by l.
func (l LogConfig) Logger() *spatialgo.Logger {
	lvl, err := l.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	if l.Format == "json" {
		return spatialgo.NewJSONLogger(lvl)
	}
	return spatialgo.NewTextLogger(lvl)
}

// EngineOptions translates the kernel and limit settings into engine options.
func (c *Config) EngineOptions() ([]spatialgo.Option, error) {
	metric, err := c.Kernel.metric()
	if err != nil {
		return nil, err
	}
	mode, err := distance.ParseMinkowskiMode(c.Kernel.Minkowski)
	if err != nil {
		return nil, err
	}
	policy, err := c.Kernel.degenerate()
	if err != nil {
		return nil, err
	}

	opts := []spatialgo.Option{
		spatialgo.WithMetric(metric),
		spatialgo.WithMinkowskiMode(mode),
		spatialgo.WithSigma(c.Kernel.Sigma),
		spatialgo.WithBilateral(c.Kernel.Bilateral),
		spatialgo.WithDegeneratePolicy(policy),
		spatialgo.WithWorkers(c.Limits.Workers),
		spatialgo.WithMemoryLimit(c.Limits.MemoryBytes),
		spatialgo.WithMaxIterations(c.Cluster.MaxIterations),
	}
	if c.Kernel.Radius != nil {
		opts = append(opts, spatialgo.WithRadius(*c.Kernel.Radius))
	}
	return opts, nil
}
