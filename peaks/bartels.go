package peaks

import "math"

// SpuriousThreshold is the Bartels score below which a detected cycle should
// be treated as random rather than genuine.
const SpuriousThreshold = 49.0

// BartelsScore rates the genuineness of one cycle on a 0-100 scale from its
// bandpass wave, after the periodicity test of Julius Bartels (1932).
//
// Three ingredients are combined: autocorrelation of the wave at a lag of one
// period (40%), the mean absolute correlation between consecutive one-period
// segments, measuring phase stability (40%), and the consistency of
// per-segment peak amplitudes (20%). The score is 0 when the wave spans fewer
// than two full periods or carries no variance.
func BartelsScore(wave []float64, period int) float64 {
	n := len(wave)
	if period <= 0 || n < 2*period {
		return 0
	}

	mean := meanOf(wave)

	var totalVar float64
	for _, v := range wave {
		d := v - mean
		totalVar += d * d
	}
	if totalVar == 0 {
		return 0
	}

	// Autocorrelation at the target lag. High values indicate genuine
	// periodicity at exactly this period.
	var num float64
	for i := 0; i < n-period; i++ {
		num += (wave[i] - mean) * (wave[i+period] - mean)
	}
	autocorr := num / totalVar

	autocorrScore := (autocorr + 1) / 2
	if autocorrScore < 0 {
		autocorrScore = 0
	}
	if autocorrScore > 1 {
		autocorrScore = 1
	}

	segments := n / period
	if segments < 2 {
		return 0
	}

	// Phase stability: correlation between consecutive one-period segments.
	var corrSum float64
	corrCount := 0

	for i := 0; i < segments-1; i++ {
		a := wave[i*period : (i+1)*period]
		b := wave[(i+1)*period : (i+2)*period]

		r, ok := pearson(a, b)
		if ok {
			corrSum += math.Abs(r)
			corrCount++
		}
	}

	if corrCount == 0 {
		return 0
	}
	phaseStability := corrSum / float64(corrCount)

	// Amplitude consistency: coefficient of variation of per-segment peak
	// amplitudes, mapped through exp(-cv).
	ampMean, ampStd := peakAmplitudeStats(wave, period, segments)
	consistency := math.Exp(-ampStd / (ampMean + 1e-10))

	score := (0.4*autocorrScore + 0.4*phaseStability + 0.2*consistency) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}

	return score
}

// Genuine reports whether a Bartels score clears the significance threshold.
func Genuine(score float64) bool { return score > SpuriousThreshold }

func meanOf(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}

	return sum / float64(len(x))
}

func stdOf(x []float64, mean float64) float64 {
	var sum float64
	for _, v := range x {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(x)))
}

// pearson returns the correlation coefficient of two equal-length segments.
// ok is false when either segment has zero variance.
func pearson(a, b []float64) (r float64, ok bool) {
	ma := meanOf(a)
	mb := meanOf(b)

	var num, va, vb float64
	for i := range a {
		da := a[i] - ma
		db := b[i] - mb
		num += da * db
		va += da * da
		vb += db * db
	}

	if va == 0 || vb == 0 {
		return 0, false
	}

	return num / math.Sqrt(va*vb), true
}

func peakAmplitudeStats(wave []float64, period, segments int) (mean, std float64) {
	amps := make([]float64, 0, segments)

	for i := 0; i < segments; i++ {
		seg := wave[i*period : (i+1)*period]

		var peak float64
		for _, v := range seg {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}

		amps = append(amps, peak)
	}

	mean = meanOf(amps)
	std = stdOf(amps, mean)

	return mean, std
}
