package wavelet

import (
	"math"
	"math/cmplx"
	"testing"
)

// directCoefficients is the O(n*l) reference for denseCoefficients.
func directCoefficients(data []float64, re, im []float64) []complex128 {
	n := len(data)
	l := len(re)

	coeffs := make([]complex128, n)
	for center := range coeffs {
		start := center - l/2
		var sum complex128
		for i := 0; i < l; i++ {
			idx := start + i
			if idx < 0 || idx >= n {
				continue
			}
			sum += complex(data[idx], 0) * complex(re[i], -im[i])
		}
		coeffs[center] = sum
	}

	return coeffs
}

func TestDenseCoefficients_MatchesDirect(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = math.Sin(2*math.Pi*float64(i)/12) + 0.3*math.Cos(2*math.Pi*float64(i)/5)
	}

	for _, l := range []int{7, 8, 24, 64, 90} {
		re, im := morletSamples(1.0/12, l)
		normalizeEnergy(re, im)

		got, err := denseCoefficients(data, re, im)
		if err != nil {
			t.Fatalf("denseCoefficients(l=%d): %v", l, err)
		}

		want := directCoefficients(data, re, im)
		for i := range want {
			if cmplx.Abs(got[i]-want[i]) > 1e-9 {
				t.Fatalf("l=%d coeff[%d]: got %v, want %v", l, i, got[i], want[i])
			}
		}
	}
}

func TestExtract_PureSine(t *testing.T) {
	const (
		period = 50
		n      = 500
		amp    = 2.0
	)

	data := make([]float64, n)
	for i := range data {
		data[i] = amp * math.Sin(2*math.Pi*float64(i)/period)
	}

	b, err := Extract(data, period)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(b.Wave) != n {
		t.Fatalf("Wave length: got %d, want %d", len(b.Wave), n)
	}
	if b.Amplitude <= 0 {
		t.Fatalf("Amplitude: got %v, want > 0", b.Amplitude)
	}

	// The extracted wave must oscillate at the input period: count the
	// zero crossings over the interior (away from edge taper).
	crossings := 0
	for i := n/4 + 1; i < 3*n/4; i++ {
		if (b.Wave[i-1] < 0) != (b.Wave[i] < 0) {
			crossings++
		}
	}

	wantCrossings := float64(n/2) / period * 2
	if math.Abs(float64(crossings)-wantCrossings) > 2 {
		t.Errorf("zero crossings: got %d, want about %.0f", crossings, wantCrossings)
	}

	var totalWeight float64
	for _, w := range b.Weights {
		totalWeight += w
	}
	if math.Abs(totalWeight-1) > 1e-9 {
		t.Errorf("weights sum: got %v, want 1", totalWeight)
	}
}

func TestExtract_Projection(t *testing.T) {
	const period = 40

	data := make([]float64, 400)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}

	b, err := Extract(data, period, WithProjection(80))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(b.Projection) != 80 {
		t.Fatalf("Projection length: got %d, want 80", len(b.Projection))
	}

	// A pure sinusoid projection repeats after one period.
	for i := 0; i+period < len(b.Projection); i++ {
		if math.Abs(b.Projection[i]-b.Projection[i+period]) > 1e-9 {
			t.Fatalf("projection not periodic at %d: %v vs %v",
				i, b.Projection[i], b.Projection[i+period])
		}
	}

	norm := b.Normalized()
	if len(norm) != len(b.Wave)+len(b.Projection) {
		t.Fatalf("Normalized length: got %d, want %d", len(norm), len(b.Wave)+len(b.Projection))
	}
}

func TestExtract_InvalidArgs(t *testing.T) {
	if _, err := Extract([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for period 0")
	}
	if _, err := Extract(nil, 30); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestExtract_SilentInputUniformWeights(t *testing.T) {
	data := make([]float64, 200)

	b, err := Extract(data, 30)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for i, w := range b.Weights {
		if math.Abs(w-1.0/bandFrequencies) > 1e-12 {
			t.Errorf("weight[%d]: got %v, want uniform %v", i, w, 1.0/bandFrequencies)
		}
	}

	for i, v := range b.Wave {
		if v != 0 {
			t.Fatalf("Wave[%d] nonzero for silent input: %v", i, v)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 17: 32, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		if got := nextPowerOf2(in); got != want {
			t.Errorf("nextPowerOf2(%d): got %d, want %d", in, got, want)
		}
	}
}
