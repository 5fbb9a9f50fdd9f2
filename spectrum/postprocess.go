package spectrum

import (
	"math"
	"sort"
)

// Post-processing constants. The pipeline is fixed; these are the tuning
// values shared by every analysis mode.
const (
	medianHalfWindow   = 3
	smoothWideWindow   = 10
	smoothFinalWindow  = 5
	enhanceFactor      = 2.0
	adaptiveThreshold  = 0.3
	adaptiveHalfWindow = 5
	adaptiveSigma      = 2.0
	adaptivePasses     = 2
)

// aggregateFunc reduces the in-range neighborhood of one position to a value.
// values holds the neighbor samples and offsets their signed distance from the
// center, both restricted to in-range positions.
type aggregateFunc func(values []float64, offsets []int) float64

// mapNeighborhood applies fn over the +/-halfWindow neighborhood of every
// position of src, writing results to dst. Neighbors outside the array are
// omitted rather than reflected or clamped, so the effective window shrinks
// near the edges.
func mapNeighborhood(dst, src []float64, halfWindow int, fn aggregateFunc) {
	n := len(src)
	values := make([]float64, 0, 2*halfWindow+1)
	offsets := make([]int, 0, 2*halfWindow+1)

	for i := 0; i < n; i++ {
		values = values[:0]
		offsets = offsets[:0]

		for j := -halfWindow; j <= halfWindow; j++ {
			idx := i + j
			if idx < 0 || idx >= n {
				continue
			}

			values = append(values, src[idx])
			offsets = append(offsets, j)
		}

		dst[i] = fn(values, offsets)
	}
}

// gaussianAggregate returns a boundary-aware Gaussian-weighted average with
// sigma = halfWindow/3, renormalized by the sum of weights actually used.
func gaussianAggregate(halfWindow int) aggregateFunc {
	sigma := float64(halfWindow) / 3

	return func(values []float64, offsets []int) float64 {
		var sum, weight float64
		for k, v := range values {
			j := float64(offsets[k])
			w := math.Exp(-0.5 * j * j / (sigma * sigma))
			sum += v * w
			weight += w
		}

		return sum / weight
	}
}

// medianAggregate returns the median of the available neighbors.
func medianAggregate() aggregateFunc {
	var scratch []float64

	return func(values []float64, _ []int) float64 {
		scratch = append(scratch[:0], values...)
		sort.Float64s(scratch)

		return scratch[len(scratch)/2]
	}
}

// medianFilter replaces each entry with the median of itself and its
// +/-halfWindow neighbors, removing single-point spikes.
func medianFilter(s []float64, halfWindow int) {
	src := append([]float64(nil), s...)
	mapNeighborhood(s, src, halfWindow, medianAggregate())
}

// gaussianSmooth applies a boundary-aware Gaussian-weighted local average.
func gaussianSmooth(s []float64, halfWindow int) {
	src := append([]float64(nil), s...)
	mapNeighborhood(s, src, halfWindow, gaussianAggregate(halfWindow))
}

// enhancePeaks applies a one-sided nonlinear contrast stretch: entries above
// the spectrum mean move further above it by the given factor, entries at or
// below the mean are unchanged. Prominences grow without inflating the noise
// floor.
func enhancePeaks(s []float64, factor float64) {
	if len(s) == 0 {
		return
	}

	var mean float64
	for _, v := range s {
		mean += v
	}
	mean /= float64(len(s))

	for i, v := range s {
		if v > mean {
			s[i] = mean + (v-mean)*factor
		}
	}
}

// adaptiveSmooth applies extra Gaussian smoothing to low-power regions only.
//
// Positions whose current value is below threshold (on the current, not yet
// normalized scale) are replaced by a Gaussian-weighted average over
// +/-adaptiveHalfWindow neighbors with sigma = adaptiveSigma. The outer
// adaptiveHalfWindow positions on each side are never touched, so the window
// is always fully in range. Each pass reads the output of the previous one.
func adaptiveSmooth(s []float64, threshold float64, passes int) {
	n := len(s)
	if n <= 2*adaptiveHalfWindow {
		return
	}

	for pass := 0; pass < passes; pass++ {
		src := append([]float64(nil), s...)

		for i := adaptiveHalfWindow; i < n-adaptiveHalfWindow; i++ {
			if src[i] >= threshold {
				continue
			}

			var sum, weight float64
			for j := -adaptiveHalfWindow; j <= adaptiveHalfWindow; j++ {
				w := math.Exp(-0.5 * float64(j*j) / (adaptiveSigma * adaptiveSigma))
				sum += src[i+j] * w
				weight += w
			}

			s[i] = sum / weight
		}
	}
}

// Process runs the fixed denoising and enhancement pipeline on a raw spectrum
// in place and returns it.
//
// Stages, in order: median filter (spike removal), wide Gaussian smoothing,
// peak enhancement, final Gaussian smoothing, two adaptive smoothing passes on
// low-power regions, then normalization of the maximum to 1. The adaptive
// threshold is evaluated on the pre-normalization scale; moving it would
// change numerical output.
func Process(s *Spectrum) *Spectrum {
	if s == nil || len(s.Power) == 0 {
		return s
	}

	medianFilter(s.Power, medianHalfWindow)
	gaussianSmooth(s.Power, smoothWideWindow)
	enhancePeaks(s.Power, enhanceFactor)
	gaussianSmooth(s.Power, smoothFinalWindow)
	adaptiveSmooth(s.Power, adaptiveThreshold, adaptivePasses)
	s.Normalize()

	return s
}
