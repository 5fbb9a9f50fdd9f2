package peaks

import (
	"math"
	"math/rand"
	"testing"
)

func TestBartelsScore_PureSine(t *testing.T) {
	const period = 50

	wave := make([]float64, 10*period)
	for i := range wave {
		wave[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}

	score := BartelsScore(wave, period)

	// Segment correlation and amplitude consistency are perfect; the lag-period
	// autocorrelation sums one period fewer products than the variance, so the
	// score tops out just below 100.
	if score < 95 {
		t.Errorf("pure sine score: got %v, want >= 95", score)
	}
	if !Genuine(score) {
		t.Error("pure sine should be genuine")
	}
}

func TestBartelsScore_Noise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	const period = 50

	wave := make([]float64, 10*period)
	for i := range wave {
		wave[i] = rng.NormFloat64()
	}

	sine := make([]float64, len(wave))
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}

	noiseScore := BartelsScore(wave, period)
	sineScore := BartelsScore(sine, period)

	if noiseScore >= sineScore {
		t.Errorf("noise score %v not below sine score %v", noiseScore, sineScore)
	}
}

func TestBartelsScore_Degenerate(t *testing.T) {
	if got := BartelsScore(make([]float64, 80), 50); got != 0 {
		t.Errorf("short wave: got %v, want 0", got)
	}
	if got := BartelsScore(make([]float64, 500), 50); got != 0 {
		t.Errorf("zero-variance wave: got %v, want 0", got)
	}
	if got := BartelsScore([]float64{1, 2, 3}, 0); got != 0 {
		t.Errorf("period 0: got %v, want 0", got)
	}
	if got := BartelsScore(nil, 10); got != 0 {
		t.Errorf("nil wave: got %v, want 0", got)
	}
}

func TestBartelsScore_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const period = 30

	for trial := 0; trial < 20; trial++ {
		wave := make([]float64, 8*period)
		for i := range wave {
			wave[i] = math.Sin(2*math.Pi*float64(i)/period) + rng.NormFloat64()*float64(trial)/5
		}

		score := BartelsScore(wave, period)
		if score < 0 || score > 100 {
			t.Fatalf("trial %d: score %v out of [0,100]", trial, score)
		}
	}
}

func TestPearson(t *testing.T) {
	a := []float64{1, 2, 3, 4}

	if r, ok := pearson(a, []float64{2, 4, 6, 8}); !ok || math.Abs(r-1) > 1e-12 {
		t.Errorf("scaled copy: got (%v, %v), want (1, true)", r, ok)
	}

	if r, ok := pearson(a, []float64{8, 6, 4, 2}); !ok || math.Abs(r+1) > 1e-12 {
		t.Errorf("reversed: got (%v, %v), want (-1, true)", r, ok)
	}

	if _, ok := pearson(a, []float64{5, 5, 5, 5}); ok {
		t.Error("zero-variance segment should report ok=false")
	}
}

func TestGenuine(t *testing.T) {
	if Genuine(49.0) {
		t.Error("score at the threshold should not be genuine")
	}
	if !Genuine(49.1) {
		t.Error("score above the threshold should be genuine")
	}
}
