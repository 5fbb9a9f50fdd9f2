package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// Spectrum is power indexed by candidate period over a contiguous band.
//
// Entry i corresponds to period MinPeriod + i*Step trading days. Power values
// are non-negative; after Process they are normalized so the maximum entry
// equals 1 unless the whole spectrum is zero.
type Spectrum struct {
	MinPeriod int
	Step      int // period stride between entries, 1 for kernel scans
	Power     []float64
}

// Len returns the number of scanned periods.
func (s *Spectrum) Len() int { return len(s.Power) }

// Period returns the candidate period for entry i.
func (s *Spectrum) Period(i int) int {
	step := s.Step
	if step == 0 {
		step = 1
	}

	return s.MinPeriod + i*step
}

// Max returns the largest power value, or 0 for an empty spectrum.
func (s *Spectrum) Max() float64 {
	if len(s.Power) == 0 {
		return 0
	}

	// Power values are non-negative, so the largest magnitude is the maximum.
	return vecmath.MaxAbs(s.Power)
}

// Normalize scales the spectrum so its maximum entry equals 1.
//
// If the maximum is not positive the spectrum is left untouched; an all-zero
// raw spectrum therefore stays all-zero instead of dividing by zero.
func (s *Spectrum) Normalize() {
	maxVal := s.Max()
	if maxVal <= 0 {
		return
	}

	vecmath.ScaleBlockInPlace(s.Power, 1/maxVal)
}

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{MinPeriod: s.MinPeriod, Step: s.Step}
	out.Power = append([]float64(nil), s.Power...)

	return out
}
