package scan

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by detrending.
var (
	ErrShortWindow = errors.New("scan: detrend window must have at least 2 samples")
)

// LogDetrend returns the log-transformed window minus its least-squares
// linear trend over the sample index.
//
// The residuals have, by construction, zero correlation with the index, so
// downstream spectral analysis reflects cyclical deviation rather than
// secular drift. Prices must be positive; the window must contain at least
// two samples (the regression denominator is then always nonzero for an
// index-based regressor).
func LogDetrend(prices []float64) ([]float64, error) {
	n := len(prices)
	if n < 2 {
		return nil, ErrShortWindow
	}

	logs := make([]float64, n)
	for i, p := range prices {
		if p <= 0 {
			return nil, fmt.Errorf("scan: prices must be positive: %v at index %d", p, i)
		}

		logs[i] = math.Log(p)
	}

	var sumX, sumY, sumXX, sumXY float64
	for i, y := range logs {
		x := float64(i)
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	nf := float64(n)
	slope := (nf*sumXY - sumX*sumY) / (nf*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / nf

	out := logs
	for i := range out {
		out[i] -= intercept + slope*float64(i)
	}

	return out, nil
}
