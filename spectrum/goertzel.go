package spectrum

import (
	"fmt"
	"math"
)

// GoertzelPower evaluates the single-bin DFT magnitude of one candidate
// period over a whole detrended window.
//
// The period is mapped to the nearest DFT bin k = round(N/period) and the
// classic two-state Goertzel recurrence accumulates the whole window. Compared
// to the kernel scan this trades frequency locality for robustness on very
// noisy, choppy series.
func GoertzelPower(data []float64, period int) float64 {
	n := len(data)
	if period <= 0 || n == 0 {
		return 0
	}

	k := int(0.5 + float64(n)/float64(period))
	omega := 2 * math.Pi * float64(k) / float64(n)
	coeff := 2 * math.Cos(omega)

	var s0, s1 float64
	for _, x := range data {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	power := s0*s0 + s1*s1 - coeff*s0*s1
	if power <= 0 {
		return 0
	}

	return math.Sqrt(power)
}

// GoertzelBand scans candidate periods from minPeriod to maxPeriod with the
// given stride, normalizes the result into [0,1], and applies a light moving
// average (interior positions only) to knock down bin-quantization jitter.
//
// The returned spectrum carries the stride in Step, so entry i maps to period
// minPeriod + i*stride.
func GoertzelBand(data []float64, minPeriod, maxPeriod, stride int) (*Spectrum, error) {
	if minPeriod < 1 {
		return nil, fmt.Errorf("spectrum: min period must be >= 1: %d", minPeriod)
	}
	if maxPeriod < minPeriod {
		return nil, fmt.Errorf("spectrum: max period must be >= min period: %d < %d", maxPeriod, minPeriod)
	}
	if stride < 1 {
		return nil, fmt.Errorf("spectrum: stride must be >= 1: %d", stride)
	}

	count := (maxPeriod-minPeriod)/stride + 1
	s := &Spectrum{
		MinPeriod: minPeriod,
		Step:      stride,
		Power:     make([]float64, count),
	}

	for i := range s.Power {
		s.Power[i] = GoertzelPower(data, minPeriod+i*stride)
	}

	s.Normalize()
	meanSmooth(s.Power, 3)

	return s, nil
}

// meanSmooth replaces interior entries with the mean over +/-halfWindow
// neighbors; entries too close to either edge are left as they are.
func meanSmooth(s []float64, halfWindow int) {
	n := len(s)
	if n <= 2*halfWindow {
		return
	}

	src := append([]float64(nil), s...)

	for i := halfWindow; i < n-halfWindow; i++ {
		var sum float64
		for j := -halfWindow; j <= halfWindow; j++ {
			sum += src[i+j]
		}

		s[i] = sum / float64(2*halfWindow+1)
	}
}
