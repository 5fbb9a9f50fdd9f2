package wavelet

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMorlet_UnitEnergy(t *testing.T) {
	for _, period := range []int{10, 30, 100, 365, 1000} {
		k, err := Morlet(period, 6*period)
		if err != nil {
			t.Fatalf("Morlet(%d): %v", period, err)
		}

		if got := k.Energy(); math.Abs(got-1) > 1e-9 {
			t.Errorf("Energy for period %d: got %v, want 1", period, got)
		}
	}
}

func TestMorlet_InvalidArgs(t *testing.T) {
	if _, err := Morlet(0, 100); err == nil {
		t.Error("expected error for period 0")
	}
	if _, err := Morlet(-5, 100); err == nil {
		t.Error("expected error for negative period")
	}
	if _, err := Morlet(30, 0); err == nil {
		t.Error("expected error for length 0")
	}
}

func TestMorlet_EnvelopePeaksAtCenter(t *testing.T) {
	k, err := Morlet(50, 400)
	if err != nil {
		t.Fatalf("Morlet: %v", err)
	}

	center := k.Len() / 2
	peak := cmplx.Abs(k.At(center))

	for i := 0; i < k.Len(); i++ {
		if mag := cmplx.Abs(k.At(i)); mag > peak+1e-12 {
			t.Fatalf("magnitude at %d (%v) exceeds center magnitude (%v)", i, mag, peak)
		}
	}
}

func TestMorlet_CorrelateMatchesDirectSum(t *testing.T) {
	k, err := Morlet(20, 160)
	if err != nil {
		t.Fatalf("Morlet: %v", err)
	}

	data := make([]float64, k.Len())
	for i := range data {
		data[i] = math.Sin(2*math.Pi*float64(i)/20) + 0.1*float64(i%7)
	}

	var want complex128
	for i, v := range data {
		want += complex(v, 0) * cmplx.Conj(k.At(i))
	}

	got := k.Correlate(data)
	if cmplx.Abs(got-want) > 1e-9 {
		t.Errorf("Correlate: got %v, want %v", got, want)
	}
}

func TestMorlet_CorrelateShortData(t *testing.T) {
	k, err := Morlet(20, 160)
	if err != nil {
		t.Fatalf("Morlet: %v", err)
	}

	data := make([]float64, 100)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * float64(i) / 20)
	}

	// Trailing kernel samples must behave as if the data were zero-padded.
	padded := make([]float64, k.Len())
	copy(padded, data)

	got := k.Correlate(data)
	want := k.Correlate(padded)

	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("short-data Correlate: got %v, want %v", got, want)
	}

	if k.Correlate(nil) != 0 {
		t.Error("Correlate(nil) should be 0")
	}
}

func TestMorlet_ResponseStrongestAtTunedPeriod(t *testing.T) {
	const period = 40

	k, err := Morlet(period, 8*period)
	if err != nil {
		t.Fatalf("Morlet: %v", err)
	}

	response := func(p float64) float64 {
		data := make([]float64, k.Len())
		for i := range data {
			data[i] = math.Sin(2 * math.Pi * float64(i) / p)
		}

		return cmplx.Abs(k.Correlate(data))
	}

	tuned := response(period)
	for _, p := range []float64{period / 2, period * 2, period * 4} {
		if off := response(p); off >= tuned {
			t.Errorf("response at period %v (%v) not below tuned response (%v)", p, off, tuned)
		}
	}
}
