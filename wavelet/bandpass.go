package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// bandFrequencies is the number of sub-periods sampled across the band.
const bandFrequencies = 5

// Bandpass holds the extracted cyclical component for one target period.
type Bandpass struct {
	Period     int       // target period in trading days
	Wave       []float64 // real part of the weighted coefficients, one per input sample
	Projection []float64 // forward sinusoidal continuation, empty unless requested
	Phase      float64   // phase in radians averaged over the most recent two periods
	Amplitude  float64   // amplitude averaged over the most recent two periods
	Weights    []float64 // amplitude weight assigned to each sampled sub-period
}

// Normalized returns the wave plus projection scaled by the extracted
// amplitude, giving a roughly unit-amplitude cycle. If the amplitude is zero
// the unscaled samples are returned.
func (b *Bandpass) Normalized() []float64 {
	out := make([]float64, 0, len(b.Wave)+len(b.Projection))
	out = append(out, b.Wave...)
	out = append(out, b.Projection...)

	if b.Amplitude > 0 {
		inv := 1 / b.Amplitude
		for i := range out {
			out[i] *= inv
		}
	}

	return out
}

// ExtractOption configures bandpass extraction.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	bandwidth float64
	future    int
}

func defaultExtractConfig() extractConfig {
	return extractConfig{bandwidth: 0.10}
}

// WithBandwidth sets the band width as a fraction of the target period.
func WithBandwidth(frac float64) ExtractOption {
	return func(cfg *extractConfig) {
		if frac > 0 {
			cfg.bandwidth = frac
		}
	}
}

// WithProjection requests a forward continuation of n samples built from the
// extracted phase and amplitude.
func WithProjection(n int) ExtractOption {
	return func(cfg *extractConfig) {
		if n > 0 {
			cfg.future = n
		}
	}
}

// Extract computes the bandpass component of a detrended series around one
// target period.
//
// Five sub-periods are sampled across the band. For each, dense complex
// Morlet coefficients are computed at every sample position (out-of-range
// samples count as zero), the coefficient tracks are weighted by their mean
// amplitude, and the weighted average forms the result. Phase and amplitude
// are estimated from the most recent two periods of coefficients.
func Extract(detrended []float64, period int, opts ...ExtractOption) (*Bandpass, error) {
	if period <= 0 {
		return nil, fmt.Errorf("wavelet: period must be > 0: %d", period)
	}

	n := len(detrended)
	if n == 0 {
		return nil, fmt.Errorf("wavelet: empty input")
	}

	cfg := defaultExtractConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// Sub-periods evenly spaced across [period-b/2, period+b/2].
	band := float64(period) * cfg.bandwidth
	lo := float64(period) - band/2
	hi := float64(period) + band/2

	tracks := make([][]complex128, bandFrequencies)
	amplitudes := make([]float64, bandFrequencies)

	for i := range tracks {
		sub := lo + (hi-lo)*float64(i)/float64(bandFrequencies-1)
		if sub < 1 {
			sub = 1
		}

		cycles := n / int(sub)
		if cycles < 4 {
			cycles = 4
		}
		if cycles > 8 {
			cycles = 8
		}

		wlen := int(sub * float64(cycles))
		if wlen > n {
			wlen = n
		}
		if wlen < 1 {
			wlen = 1
		}

		re, im := morletSamples(1/sub, wlen)
		normalizeEnergy(re, im)

		coeffs, err := denseCoefficients(detrended, re, im)
		if err != nil {
			return nil, err
		}

		tracks[i] = coeffs
		amplitudes[i] = meanMagnitude(coeffs)
	}

	// Sub-periods with larger mean amplitude get more weight; a silent band
	// falls back to uniform weights.
	weights := make([]float64, bandFrequencies)
	var total float64
	for _, a := range amplitudes {
		total += a
	}
	for i := range weights {
		if total > 0 {
			weights[i] = amplitudes[i] / total
		} else {
			weights[i] = 1 / float64(bandFrequencies)
		}
	}

	combined := make([]complex128, n)
	for i, track := range tracks {
		w := complex(weights[i], 0)
		for j, c := range track {
			combined[j] += w * c
		}
	}

	wave := make([]float64, n)
	for i, c := range combined {
		wave[i] = real(c)
	}

	recent := combined
	if limit := 2 * period; limit < n {
		recent = combined[n-limit:]
	}

	var sum complex128
	var magSum float64
	for _, c := range recent {
		sum += c
		magSum += cmplx.Abs(c)
	}

	phase := cmplx.Phase(sum / complex(float64(len(recent)), 0))
	amplitude := magSum / float64(len(recent))

	var projection []float64
	if cfg.future > 0 {
		projection = make([]float64, cfg.future)
		omega := 2 * math.Pi / float64(period)
		for i := range projection {
			t := float64(n + i)
			projection[i] = amplitude * math.Sin(omega*t+phase)
		}
	}

	return &Bandpass{
		Period:     period,
		Wave:       wave,
		Projection: projection,
		Phase:      phase,
		Amplitude:  amplitude,
		Weights:    weights,
	}, nil
}

// morletSamples builds raw (unnormalized) Morlet samples for a possibly
// fractional frequency. Morlet wraps this for integer periods.
func morletSamples(freq float64, length int) (re, im []float64) {
	q := 15 + 50*freq
	sigma := q / (2 * math.Pi * freq)

	re = make([]float64, length)
	im = make([]float64, length)

	for i := range re {
		t := float64(i) - float64(length)/2
		envelope := math.Exp(-t * t / (2 * sigma * sigma))
		sin, cos := math.Sincos(2 * math.Pi * freq * t)
		re[i] = envelope * cos
		im[i] = envelope * sin
	}

	return re, im
}

// normalizeEnergy scales the samples to unit total energy in place.
func normalizeEnergy(re, im []float64) {
	var energy float64
	for i := range re {
		energy += re[i]*re[i] + im[i]*im[i]
	}

	if energy == 0 {
		return
	}

	inv := 1 / math.Sqrt(energy)
	for i := range re {
		re[i] *= inv
		im[i] *= inv
	}
}

// denseCoefficients computes the complex inner product of the conjugated
// kernel against the data at every center position, via FFT convolution.
//
// coeffs[center] = sum_i data[center-L/2+i] * conj(w[i]), with out-of-range
// data samples treated as zero.
func denseCoefficients(data []float64, re, im []float64) ([]complex128, error) {
	n := len(data)
	l := len(re)

	fftSize := nextPowerOf2(n + l - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("wavelet: failed to create FFT plan: %w", err)
	}

	dataPadded := make([]complex128, fftSize)
	for i, v := range data {
		dataPadded[i] = complex(v, 0)
	}

	// Convolving with the reversed conjugate kernel turns convolution into
	// the sliding conjugated inner product.
	kernelPadded := make([]complex128, fftSize)
	for j := 0; j < l; j++ {
		kernelPadded[j] = complex(re[l-1-j], -im[l-1-j])
	}

	dataFreq := make([]complex128, fftSize)
	kernelFreq := make([]complex128, fftSize)

	if err := plan.Forward(dataFreq, dataPadded); err != nil {
		return nil, err
	}
	if err := plan.Forward(kernelFreq, kernelPadded); err != nil {
		return nil, err
	}

	productFreq := make([]complex128, fftSize)
	for i := range productFreq {
		productFreq[i] = dataFreq[i] * kernelFreq[i]
	}

	conv := make([]complex128, fftSize)
	if err := plan.Inverse(conv, productFreq); err != nil {
		return nil, err
	}

	offset := l - 1 - l/2
	coeffs := make([]complex128, n)
	for center := range coeffs {
		coeffs[center] = conv[center+offset]
	}

	return coeffs, nil
}

func meanMagnitude(coeffs []complex128) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	var sum float64
	for _, c := range coeffs {
		sum += cmplx.Abs(c)
	}

	return sum / float64(len(coeffs))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
