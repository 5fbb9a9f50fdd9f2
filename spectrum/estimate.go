package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/bernie-sg/riley-cycles-watch/wavelet"
)

// silenceFloor is the residual magnitude below which a detrended window is
// numerically silent. Least-squares detrending of a constant log series
// leaves cancellation residue around 1e-13; genuine price fluctuation sits
// many orders of magnitude above this, so windows under the floor yield the
// all-zero spectrum instead of a normalized noise floor.
const silenceFloor = 1e-10

// Option configures a band scan.
type Option func(*config)

type config struct {
	workers int
}

func defaultConfig() config {
	return config{workers: 1}
}

// WithWorkers sets the number of goroutines evaluating candidate periods.
// Each period is independent, so the result is identical to a serial scan.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// PowerAt estimates the RMS power of one candidate period in a detrended
// window.
//
// A Morlet kernel spanning between four and eight full cycles (bounded by the
// window) is slid across the data with a step of period/8 samples, at least 1.
// Each position contributes the squared magnitude of the conjugated inner
// product; the result is the square root of their mean. Periods longer than
// half the window cannot be observed twice and score 0.
func PowerAt(data []float64, period int) float64 {
	n := len(data)
	if period <= 0 || period > n/2 {
		return 0
	}

	cycles := n / period
	if cycles < 4 {
		cycles = 4
	}
	if cycles > 8 {
		cycles = 8
	}

	wlen := period * cycles
	if wlen > n {
		wlen = n
	}

	kernel, err := wavelet.Morlet(period, wlen)
	if err != nil {
		return 0
	}

	step := period / 8
	if step < 1 {
		step = 1
	}

	half := wlen / 2

	var total float64
	count := 0

	for center := half; center <= n-half; center += step {
		start := center - half
		end := start + wlen
		if end > n {
			// Odd kernel length at the final position: the sample past the
			// window contributes nothing.
			end = n
		}

		c := kernel.Correlate(data[start:end])
		total += real(c)*real(c) + imag(c)*imag(c)
		count++
	}

	if count == 0 {
		return 0
	}

	return math.Sqrt(total / float64(count))
}

// Band scans all candidate periods in [minPeriod, maxPeriod] and returns the
// raw spectrum, period-ascending. A window whose residuals never exceed the
// numeric silence floor scores zero everywhere without being scanned.
//
// With WithWorkers the periods are evaluated concurrently; every worker writes
// only its own period indices, so ordering and values match the serial scan
// exactly.
func Band(data []float64, minPeriod, maxPeriod int, opts ...Option) (*Spectrum, error) {
	if minPeriod < 1 {
		return nil, fmt.Errorf("spectrum: min period must be >= 1: %d", minPeriod)
	}
	if maxPeriod < minPeriod {
		return nil, fmt.Errorf("spectrum: max period must be >= min period: %d < %d", maxPeriod, minPeriod)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Spectrum{
		MinPeriod: minPeriod,
		Step:      1,
		Power:     make([]float64, maxPeriod-minPeriod+1),
	}

	if len(data) == 0 || vecmath.MaxAbs(data) < silenceFloor {
		return s, nil
	}

	if cfg.workers <= 1 || len(s.Power) == 1 {
		for i := range s.Power {
			s.Power[i] = PowerAt(data, minPeriod+i)
		}

		return s, nil
	}

	workers := cfg.workers
	if workers > len(s.Power) {
		workers = len(s.Power)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(start int) {
			defer wg.Done()

			for i := start; i < len(s.Power); i += workers {
				s.Power[i] = PowerAt(data, minPeriod+i)
			}
		}(w)
	}

	wg.Wait()

	return s, nil
}
