package wavelet

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Kernel is a unit-energy complex Morlet kernel tuned to one candidate period.
//
// Real and imaginary parts are kept as separate slices so that correlation
// against real-valued data reduces to two real dot products, which use
// SIMD-optimized implementations when available.
type Kernel struct {
	Period int // target period in trading days

	re []float64
	im []float64
}

// Morlet builds a complex Morlet kernel of the given length for an integer
// target period in samples.
//
// The frequency is f = 1/period and the quality factor Q = 15 + 50*f, so
// shorter periods get a proportionally sharper frequency response. Each sample
// is a Gaussian envelope times a unit-amplitude complex oscillation at f,
// centered at length/2. The kernel is normalized to unit total energy
// (sum of squared magnitudes equals 1).
func Morlet(period, length int) (*Kernel, error) {
	if period <= 0 {
		return nil, fmt.Errorf("wavelet: period must be > 0: %d", period)
	}
	if length <= 0 {
		return nil, fmt.Errorf("wavelet: length must be > 0: %d", length)
	}

	re, im := morletSamples(1/float64(period), length)

	k := &Kernel{Period: period, re: re, im: im}
	k.normalize()

	return k, nil
}

// normalize scales the kernel to unit total energy.
func (k *Kernel) normalize() {
	power := make([]float64, len(k.re))
	vecmath.Power(power, k.re, k.im)

	norm := math.Sqrt(vecmath.Sum(power))
	if norm == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(k.re, 1/norm)
	vecmath.ScaleBlockInPlace(k.im, 1/norm)
}

// Len returns the kernel length in samples.
func (k *Kernel) Len() int { return len(k.re) }

// At returns the complex kernel value at sample index i.
func (k *Kernel) At(i int) complex128 { return complex(k.re[i], k.im[i]) }

// Energy returns the total energy (sum of squared magnitudes).
func (k *Kernel) Energy() float64 {
	power := make([]float64, len(k.re))
	vecmath.Power(power, k.re, k.im)

	return vecmath.Sum(power)
}

// Correlate returns the complex inner product of data against the conjugated
// kernel: sum(data[i] * conj(w[i])).
//
// If data is shorter than the kernel, trailing kernel samples are ignored;
// they contribute nothing, exactly as if the data were zero-padded.
func (k *Kernel) Correlate(data []float64) complex128 {
	m := len(data)
	if m > len(k.re) {
		m = len(k.re)
	}
	if m == 0 {
		return 0
	}

	d := data[:m]

	return complex(vecmath.DotProduct(d, k.re[:m]), -vecmath.DotProduct(d, k.im[:m]))
}
