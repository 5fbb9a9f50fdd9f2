// Package peaks extracts and rates dominant cycles from processed spectra.
package peaks

import (
	"sort"

	"github.com/bernie-sg/riley-cycles-watch/spectrum"
)

// Tier is the coarse significance class of a detected peak.
type Tier int

const (
	TierNone Tier = iota
	TierTertiary
	TierSecondary
	TierPrimary
)

// Tier power thresholds on the normalized [0,1] spectrum scale.
const (
	primaryThreshold   = 0.25
	secondaryThreshold = 0.15
	tertiaryThreshold  = 0.08
)

// DefaultThreshold is the minimum normalized power for a candidate peak.
// Deliberately low so secondary and tertiary cycles surface, not just the
// dominant one.
const DefaultThreshold = 0.05

// neighborhood is the local-maximum radius in spectrum positions.
const neighborhood = 10

// Peak is one detected cycle.
type Peak struct {
	Period int     // trading days
	Power  float64 // normalized power in [0,1]
	Tier   Tier
}

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "none"
	}
}

// Classify maps a normalized power value to its significance tier.
func Classify(power float64) Tier {
	switch {
	case power > primaryThreshold:
		return TierPrimary
	case power > secondaryThreshold:
		return TierSecondary
	case power > tertiaryThreshold:
		return TierTertiary
	default:
		return TierNone
	}
}

// Detect finds local maxima in a processed spectrum and returns them ordered
// by descending power.
//
// A position qualifies only if it has at least `neighborhood` entries on each
// side and no neighbor within that radius has strictly greater power.
// Candidates at or below threshold are dropped. Ties keep scan order
// (ascending period).
func Detect(s *spectrum.Spectrum, threshold float64) []Peak {
	if s == nil {
		return nil
	}

	n := s.Len()
	var out []Peak

	for i := neighborhood; i < n-neighborhood; i++ {
		if s.Power[i] <= threshold {
			continue
		}

		isPeak := true
		for j := -neighborhood; j <= neighborhood; j++ {
			if j != 0 && s.Power[i+j] > s.Power[i] {
				isPeak = false
				break
			}
		}

		if !isPeak {
			continue
		}

		out = append(out, Peak{
			Period: s.Period(i),
			Power:  s.Power[i],
			Tier:   Classify(s.Power[i]),
		})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Power > out[b].Power })

	return out
}
