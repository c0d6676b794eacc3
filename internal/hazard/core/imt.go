package core

import (
	"fmt"
	"math"
)

// IMTKind distinguishes the family of intensity-measure type.
type IMTKind string

const (
	KindPGA IMTKind = "PGA"
	KindPGV IMTKind = "PGV"
	KindSA  IMTKind = "SA"
)

// IMT is a scalar ground-motion intensity-measure type: PGA, PGV, or a
// spectral acceleration at a given structural period. IMT is comparable
// (struct of string + float64) so it can key a map.
type IMT struct {
	Kind   IMTKind
	Period float64 // meaningful only when Kind == KindSA
}

// PGA is the peak-ground-acceleration intensity measure.
var PGA = IMT{Kind: KindPGA}

// PGV is the peak-ground-velocity intensity measure.
var PGV = IMT{Kind: KindPGV}

// SA constructs a spectral-acceleration IMT at the given period in seconds.
func SA(periodSeconds float64) IMT {
	return IMT{Kind: KindSA, Period: periodSeconds}
}

// String renders the IMT the way model-curve and report keys expect:
// "PGA", "PGV", "SA(0.2)".
func (i IMT) String() string {
	switch i.Kind {
	case KindPGA:
		return "PGA"
	case KindPGV:
		return "PGV"
	case KindSA:
		return fmt.Sprintf("SA(%s)", formatPeriod(i.Period))
	default:
		return fmt.Sprintf("IMT(%s)", i.Kind)
	}
}

func formatPeriod(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return fmt.Sprintf("%g", p)
}

// ceusClamp returns the NSHM_CEUS_MAX_INTENSITY IMT-indexed upper clamp, in
// linear ground-motion units, per spec.md §4.4. SA periods at or above
// 0.075s are unclamped (+Inf).
func ceusClamp(i IMT) float64 {
	switch i.Kind {
	case KindPGA:
		return 3.0
	case KindPGV:
		return 400.0
	case KindSA:
		if i.Period < 0.075 {
			return 6.0
		}
		return math.Inf(1)
	default:
		return math.Inf(1)
	}
}

// CeusClamp exposes ceusClamp for the sigma package.
func CeusClamp(i IMT) float64 { return ceusClamp(i) }
