package job

import "github.com/hupe1980/spatialgo/internal/notify"

// Summarize builds the notification for a finished job. res may be nil when
// err is set.
func Summarize(cfg *Config, res *Result, err error) notify.Summary {
	s := notify.Summary{
		Operation: cfg.Operation,
		Input:     cfg.Input,
		Output:    cfg.Output,
	}
	if res != nil {
		s.Points = res.Points
		s.Degenerate = res.Degenerate
		s.CacheHit = res.CacheHit
		s.ElapsedMS = res.ElapsedMS
	}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}
