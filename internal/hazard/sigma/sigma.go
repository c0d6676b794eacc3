// Package sigma implements the exceedance/truncation models of
// spec.md §4.4: a closed set of tagged variants, each a pure function
// (μ, σ, n, imt) → pointwise exceedance probability over a log-ground-motion
// grid. Every model that needs a normal CDF leans on
// gonum.org/v1/gonum/stat/distuv rather than a hand-rolled erf — the
// teacher reaches for distuv.ChiSquared/StudentsT/F the same way wherever
// it needs a numerically stable distribution tail.
package sigma

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hazardcurve/internal/hazard/core"
)

// Apply dispatches to the exceedance routine named by model, filling out
// with P(exceed x) for each x in lnX (already the natural log of the
// curve's linear x-grid, per spec.md §4.4 step 2a). out must be the same
// length as lnX; Apply overwrites it in place.
func Apply(model core.SigmaModel, mu, sigmaVal, n float64, imt core.IMT, lnX []float64, out []float64) {
	switch model {
	case core.SigmaNone:
		none(mu, lnX, out)
	case core.SigmaTruncationOff:
		truncationOff(mu, sigmaVal, lnX, out)
	case core.SigmaTruncationUpperOnly:
		truncationUpperOnly(mu, sigmaVal, n, lnX, out)
	case core.SigmaTruncationLowerUpper:
		truncationLowerUpper(mu, sigmaVal, n, lnX, out)
	case core.SigmaPeerMixtureModel:
		peerMixtureModel(mu, sigmaVal, lnX, out)
	case core.SigmaNshmCeusMaxIntensity:
		nshmCeusMaxIntensity(mu, sigmaVal, n, imt, lnX, out)
	default:
		// Validated away by CalcConfig.Validate before any task runs;
		// a reachable default here would mask a ConfigError.
		panic("sigma: unrecognized model " + string(model))
	}
}

// survival is the untruncated complementary normal CDF Φ̄((x-μ)/σ), via
// gonum's numerically stable Normal.Survival — finite and well-behaved
// far from μ instead of producing NaN.
func survival(mu, sigmaVal, x float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigmaVal}.Survival(x)
}

// clip01 clamps into [0, 1]; double-precision rounding in the bounded
// renormalization below can push results slightly outside that range.
func clip01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// renormalize applies spec.md §4.4's bounded renormalization:
// p' = clip01((p - pHi) / (pLo - pHi)).
func renormalize(p, pHi, pLo float64) float64 {
	return clip01((p - pHi) / (pLo - pHi))
}

func none(mu float64, lnX, out []float64) {
	for i, x := range lnX {
		if x < mu {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

func truncationOff(mu, sigmaVal float64, lnX, out []float64) {
	for i, x := range lnX {
		out[i] = survival(mu, sigmaVal, x)
	}
}

func truncationUpperOnly(mu, sigmaVal, n float64, lnX, out []float64) {
	pHi := survival(mu, sigmaVal, mu+n*sigmaVal)
	for i, x := range lnX {
		p := survival(mu, sigmaVal, x)
		out[i] = renormalize(p, pHi, 1)
	}
}

func truncationLowerUpper(mu, sigmaVal, n float64, lnX, out []float64) {
	pHi := survival(mu, sigmaVal, mu+n*sigmaVal)
	pLo := survival(mu, sigmaVal, mu-n*sigmaVal)
	for i, x := range lnX {
		p := survival(mu, sigmaVal, x)
		out[i] = renormalize(p, pHi, pLo)
	}
}

func peerMixtureModel(mu, sigmaVal float64, lnX, out []float64) {
	for i, x := range lnX {
		out[i] = 0.5*survival(mu, sigmaVal*0.8, x) + 0.5*survival(mu, sigmaVal*1.2, x)
	}
}

func nshmCeusMaxIntensity(mu, sigmaVal, n float64, imt core.IMT, lnX, out []float64) {
	clamp := math.Log(core.CeusClamp(imt))
	upper := math.Min(mu+n*sigmaVal, clamp)
	pHi := survival(mu, sigmaVal, upper)
	for i, x := range lnX {
		p := survival(mu, sigmaVal, x)
		out[i] = renormalize(p, pHi, 1)
	}
}
