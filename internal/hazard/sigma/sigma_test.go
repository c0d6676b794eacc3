package sigma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"hazardcurve/internal/hazard/core"
)

func lnGrid(xs ...float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log(x)
	}
	return out
}

// S1 — single rupture, TRUNCATION_OFF.
func TestTruncationOff_S1(t *testing.T) {
	grid := lnGrid(0.01, 0.1, 1.0)
	out := make([]float64, len(grid))
	Apply(core.SigmaTruncationOff, 0.0, 0.6, 0, core.PGA, grid, out)

	require.InDelta(t, 9.99e-1*1, out[0], 5e-3)
	require.InDelta(t, 9.99e-1*1, out[1], 5e-3)
	require.InDelta(t, 5.00e-1, out[2], 5e-3)
}

// S2 — same as S1 but TRUNCATION_UPPER_ONLY, n=3.
func TestTruncationUpperOnly_S2(t *testing.T) {
	mu, sig, n := 0.0, 0.6, 3.0
	hiX := math.Exp(mu + n*sig)
	grid := lnGrid(1e-6, hiX)
	out := make([]float64, len(grid))
	Apply(core.SigmaTruncationUpperOnly, mu, sig, n, core.PGA, grid, out)

	require.InDelta(t, 0, out[1], 1e-9)
	require.InDelta(t, 1, out[0], 1e-2)
}

// S6 — NSHM_CEUS clamp.
func TestNshmCeusMaxIntensity_S6(t *testing.T) {
	mu, sig, n := 2.0, 0.8, 3.0
	grid := lnGrid(3.0)
	out := make([]float64, len(grid))
	Apply(core.SigmaNshmCeusMaxIntensity, mu, sig, n, core.PGA, grid, out)
	require.InDelta(t, 0, out[0], 1e-9)
}

func TestNone_StepFunction(t *testing.T) {
	grid := lnGrid(0.5, 1.0, 2.0)
	out := make([]float64, len(grid))
	Apply(core.SigmaNone, math.Log(1.0), 0.5, 0, core.PGA, grid, out)
	require.Equal(t, []float64{1, 0, 0}, out)
}

func TestPeerMixtureModel_BetweenComponents(t *testing.T) {
	mu, sig := 0.0, 0.5
	grid := lnGrid(1.0)
	out := make([]float64, len(grid))
	Apply(core.SigmaPeerMixtureModel, mu, sig, 0, core.PGA, grid, out)
	require.InDelta(t, 0.5, out[0], 1e-9)
}

func TestTruncationLowerUpper_Symmetric(t *testing.T) {
	mu, sig, n := 0.0, 0.4, 2.0
	lo := math.Exp(mu - n*sig)
	hi := math.Exp(mu + n*sig)
	grid := lnGrid(lo, mu, hi)
	out := make([]float64, len(grid))
	Apply(core.SigmaTruncationLowerUpper, mu, sig, n, core.PGA, grid, out)
	require.InDelta(t, 1, out[0], 1e-2)
	require.InDelta(t, 0, out[2], 1e-9)
}

func TestAllModelsStayWithinUnitInterval(t *testing.T) {
	models := []core.SigmaModel{
		core.SigmaNone, core.SigmaTruncationOff, core.SigmaTruncationUpperOnly,
		core.SigmaTruncationLowerUpper, core.SigmaPeerMixtureModel, core.SigmaNshmCeusMaxIntensity,
	}
	grid := lnGrid(1e-6, 0.01, 0.1, 1.0, 10.0, 1e6)
	out := make([]float64, len(grid))
	for _, m := range models {
		Apply(m, 0.0, 0.6, 3.0, core.PGA, grid, out)
		for _, y := range out {
			require.GreaterOrEqual(t, y, 0.0)
			require.LessOrEqual(t, y, 1.0)
			require.False(t, math.IsNaN(y))
		}
	}
}
