package scan

import (
	"fmt"

	"github.com/bernie-sg/riley-cycles-watch/peaks"
)

// Config defines one analysis run. All values are in trading days unless
// noted.
type Config struct {
	Window        int     // samples per analysis window
	MinPeriod     int     // lower edge of the scanned period band
	MaxPeriod     int     // upper edge of the scanned period band
	StepDays      int     // trading days the rolling window steps back per offset
	MaxOffsets    int     // rolling offsets after the most recent window
	PeakThreshold float64 // minimum normalized power for a peak
	Workers       int     // goroutines evaluating candidate periods

	// Progress, if set, is called after each rolling window completes with
	// the offset just analyzed and the number of windows completed so far.
	Progress func(offset, completed int)
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard high-Q scan: a 2000-day window over the
// 30..1000-day band, weekly rolling steps for five years of offsets.
func DefaultConfig() Config {
	return Config{
		Window:        2000,
		MinPeriod:     30,
		MaxPeriod:     1000,
		StepDays:      5,
		MaxOffsets:    260,
		PeakThreshold: peaks.DefaultThreshold,
		Workers:       1,
	}
}

// WithWindow sets the analysis window size in trading days.
func WithWindow(days int) Option {
	return func(cfg *Config) {
		if days > 0 {
			cfg.Window = days
		}
	}
}

// WithBand sets the scanned period band [minPeriod, maxPeriod]. The values
// are applied as given; Validate rejects an empty or inverted band.
func WithBand(minPeriod, maxPeriod int) Option {
	return func(cfg *Config) {
		cfg.MinPeriod = minPeriod
		cfg.MaxPeriod = maxPeriod
	}
}

// WithStep sets how many trading days the rolling window steps back per
// offset.
func WithStep(days int) Option {
	return func(cfg *Config) {
		if days > 0 {
			cfg.StepDays = days
		}
	}
}

// WithMaxOffsets sets how many rolling offsets are analyzed after offset 0.
func WithMaxOffsets(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxOffsets = n
		}
	}
}

// WithPeakThreshold sets the minimum normalized power for a detected peak.
func WithPeakThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold > 0 {
			cfg.PeakThreshold = threshold
		}
	}
}

// WithWorkers sets the number of goroutines used per band scan. Results are
// identical to a serial scan regardless of the worker count.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithProgress registers a callback invoked after each rolling window.
func WithProgress(fn func(offset, completed int)) Option {
	return func(cfg *Config) {
		cfg.Progress = fn
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate checks the configuration invariants.
func (cfg Config) Validate() error {
	if cfg.Window < 2 {
		return fmt.Errorf("scan: window must be >= 2 days: %d", cfg.Window)
	}
	if cfg.MinPeriod < 1 {
		return fmt.Errorf("scan: min period must be >= 1: %d", cfg.MinPeriod)
	}
	if cfg.MaxPeriod < cfg.MinPeriod {
		return fmt.Errorf("scan: max period must be >= min period: %d < %d", cfg.MaxPeriod, cfg.MinPeriod)
	}
	if cfg.StepDays < 1 {
		return fmt.Errorf("scan: step must be >= 1 day: %d", cfg.StepDays)
	}
	if cfg.MaxOffsets < 0 {
		return fmt.Errorf("scan: max offsets must be >= 0: %d", cfg.MaxOffsets)
	}

	return nil
}
