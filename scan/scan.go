package scan

import (
	"errors"
	"fmt"

	"github.com/bernie-sg/riley-cycles-watch/peaks"
	"github.com/bernie-sg/riley-cycles-watch/spectrum"
	"github.com/bernie-sg/riley-cycles-watch/wavelet"
)

// ErrNoPrices is returned when the input series is too short to analyze.
var ErrNoPrices = errors.New("scan: price series must have at least 2 samples")

// WindowResult is the outcome of one window analysis.
type WindowResult struct {
	Offset   int // rolling offset index, 0 = most recent window
	Spectrum *spectrum.Spectrum
	Peaks    []peaks.Peak // ordered by descending power
}

// Single analyzes the most recent window of the price series.
//
// If the series is shorter than the configured window, the whole series is
// used. The result carries offset 0.
func Single(prices []float64, opts ...Option) (*WindowResult, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(prices) < 2 {
		return nil, ErrNoPrices
	}

	w := cfg.Window
	if w > len(prices) {
		w = len(prices)
	}

	return analyzeWindow(prices[len(prices)-w:], 0, cfg)
}

// Rolling analyzes successive historical windows of the price series.
//
// For offset k in 0..MaxOffsets, the window covers the StepDays*k most recent
// days excluded, going back Window days from there. Offsets whose window would
// start before the series begins are omitted, not errors. Results come back in
// increasing-offset order; each offset is analyzed independently.
func Rolling(prices []float64, opts ...Option) ([]WindowResult, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	analyzed := 0
	out := make([]WindowResult, 0, cfg.MaxOffsets+1)

	for k := 0; k <= cfg.MaxOffsets; k++ {
		end := len(prices) - cfg.StepDays*k
		start := end - cfg.Window
		if start < 0 {
			continue
		}

		res, err := analyzeWindow(prices[start:end], k, cfg)
		if err != nil {
			return nil, fmt.Errorf("scan: offset %d: %w", k, err)
		}

		out = append(out, *res)
		analyzed++

		if cfg.Progress != nil {
			cfg.Progress(k, analyzed)
		}
	}

	return out, nil
}

// analyzeWindow runs detrend, band scan, post-processing, and peak detection
// over one window slice.
func analyzeWindow(window []float64, offset int, cfg Config) (*WindowResult, error) {
	detrended, err := LogDetrend(window)
	if err != nil {
		return nil, err
	}

	s, err := spectrum.Band(detrended, cfg.MinPeriod, cfg.MaxPeriod, spectrum.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}

	spectrum.Process(s)

	return &WindowResult{
		Offset:   offset,
		Spectrum: s,
		Peaks:    peaks.Detect(s, cfg.PeakThreshold),
	}, nil
}

// RatePeaks computes Bartels genuineness scores for detected peaks, one score
// per peak in order, by extracting each peak's bandpass wave from the
// detrended window.
func RatePeaks(detrended []float64, pks []peaks.Peak) ([]float64, error) {
	scores := make([]float64, len(pks))

	for i, p := range pks {
		bp, err := wavelet.Extract(detrended, p.Period)
		if err != nil {
			return nil, fmt.Errorf("scan: rating period %d: %w", p.Period, err)
		}

		scores[i] = peaks.BartelsScore(bp.Wave, p.Period)
	}

	return scores, nil
}
