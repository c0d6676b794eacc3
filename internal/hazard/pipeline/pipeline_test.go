package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/source"
	"hazardcurve/internal/testkit"
)

func grid(xs ...float64) core.ModelCurve { return core.ModelCurve(xs) }

func truncationOffConfig(imt core.IMT, xs core.ModelCurve) core.CalcConfig {
	return core.NewCalcConfig([]core.IMT{imt}, core.SigmaTruncationOff, 0, map[core.IMT]core.ModelCurve{imt: xs})
}

// S1 — single rupture, TRUNCATION_OFF. Expected y-values are
// 1e-3 * Phibar(ln(x)/0.6): {9.99e-4, 9.99e-4, 5.00e-4} to 3 s.f.
func TestOrchestrator_S1_SingleRuptureTruncationOff(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)

	surf := testkit.ConstantSurface{RJB: 20, RRup: 20, RX: 20, DipDeg: 90, WidthKm: 10, DepthKm: 0}
	rup := testkit.Rupture{RateVal: 1e-3, MagVal: 6.5, RakeVal: 0, Surf: surf}
	src := testkit.Source{NameVal: "fault-1", RuptureList: []source.Rupture{rup}}
	gmm := testkit.ConstantGMM{IDVal: "GMM1", Mean: 0.0, Sigma: 0.6}

	ss := testkit.SourceSet{
		NameVal:   "ss1",
		TypeVal:   core.SourceTypeOrdinary,
		WeightVal: 1.0,
		Gmms: testkit.FixedGmmSet{
			GmmList: []core.GMM{gmm},
			Weights: map[core.GMMID]float64{"GMM1": 1.0},
		},
		Sources:    []source.Source{src},
		MaxDistVal: 300,
	}

	cfg := truncationOffConfig(core.PGA, grid(0.01, 0.1, 1.0))

	orch := NewOrchestrator(1)
	runID, result, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
	require.NoError(t, err)
	require.NotEmpty(t, runID.String())

	sets := result.CurveSets(core.SourceTypeOrdinary)
	require.Len(t, sets, 1)
	curve, ok := sets[0].TotalCurve(core.PGA)
	require.True(t, ok)
	require.InDelta(t, 9.99e-4, curve[0], 5e-6)
	require.InDelta(t, 9.99e-4, curve[1], 5e-6)
	require.InDelta(t, 5.00e-4, curve[2], 5e-6)
}

// Each Run call mints its own RunID.
func TestOrchestrator_RunIDsAreUniquePerRun(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)
	gmm := testkit.ConstantGMM{IDVal: "GMM1", Mean: 0.0, Sigma: 0.6}
	surf := testkit.ConstantSurface{RJB: 20, RRup: 20, RX: 20, DipDeg: 90, WidthKm: 10, DepthKm: 0}
	rup := testkit.Rupture{RateVal: 1e-3, MagVal: 6.5, Surf: surf}
	src := testkit.Source{NameVal: "fault-1", RuptureList: []source.Rupture{rup}}
	ss := testkit.SourceSet{
		NameVal:   "ss1",
		TypeVal:   core.SourceTypeOrdinary,
		WeightVal: 1.0,
		Gmms: testkit.FixedGmmSet{
			GmmList: []core.GMM{gmm},
			Weights: map[core.GMMID]float64{"GMM1": 1.0},
		},
		Sources:    []source.Source{src},
		MaxDistVal: 300,
	}
	cfg := truncationOffConfig(core.PGA, grid(0.1))
	orch := NewOrchestrator(1)

	runA, _, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
	require.NoError(t, err)
	runB, _, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
	require.NoError(t, err)

	require.NotEqual(t, runA, runB)
}

// S3 — two-fault cluster: cluster rate 2e-4/yr, two faults each with
// independent per-fault exceedance p_f(0.1)=0.5. Expected
// y(0.1) = 2e-4 * (1 - 0.25) = 1.5e-4.
func TestOrchestrator_S3_TwoFaultCluster(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)

	// Survival(ln(0.1)) == 0.5 when mu == ln(0.1), for any sigma.
	mu := math.Log(0.1)
	surf := testkit.ConstantSurface{RJB: 30, RRup: 30, RX: 30, DipDeg: 90, WidthKm: 10, DepthKm: 0}
	gmm := testkit.ConstantGMM{IDVal: "GMM1", Mean: mu, Sigma: 0.5}

	makeFault := func(name string) source.FaultSource {
		rup := testkit.Rupture{RateVal: 1.0, MagVal: 6.0, RakeVal: 0, Surf: surf}
		variantSrc := testkit.Source{NameVal: name + "-variant", RuptureList: []source.Rupture{rup}}
		return testkit.FaultSource{
			NameVal:     name,
			VariantList: []source.FaultVariant{{Source: variantSrc, Weight: 1.0}},
		}
	}

	cluster := testkit.ClusterSource{
		NameVal:   "cluster-1",
		FaultList: source.FaultSourceSet{makeFault("fault-a"), makeFault("fault-b")},
		RateVal:   2e-4,
		WeightVal: 1.0,
	}

	css := testkit.ClusterSourceSet{
		NameVal:   "cluster-set",
		WeightVal: 1.0,
		Gmms: testkit.FixedGmmSet{
			GmmList: []core.GMM{gmm},
			Weights: map[core.GMMID]float64{"GMM1": 1.0},
		},
		Clusters:   []source.ClusterSource{cluster},
		MaxDistVal: 300,
	}

	cfg := truncationOffConfig(core.PGA, grid(0.1))

	orch := NewOrchestrator(1)
	_, result, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{css}}, cfg, site)
	require.NoError(t, err)

	sets := result.CurveSets(core.SourceTypeCluster)
	require.Len(t, sets, 1)
	curve, ok := sets[0].TotalCurve(core.PGA)
	require.True(t, ok)
	require.InDelta(t, 1.5e-4, curve[0], 1e-9)
}

// S4 — GMM weighting across distance.
func TestOrchestrator_S4_DistanceDependentGmmWeighting(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)

	mu := math.Log(0.1)
	gmmA := testkit.ConstantGMM{IDVal: "A", Mean: mu, Sigma: 0.5}
	gmmB := testkit.ConstantGMM{IDVal: "B", Mean: mu, Sigma: 0.5}

	near := testkit.ConstantSurface{RJB: 30, RRup: 30, RX: 30, DipDeg: 90, WidthKm: 10, DepthKm: 0}
	far := testkit.ConstantSurface{RJB: 200, RRup: 200, RX: 200, DipDeg: 90, WidthKm: 10, DepthKm: 0}

	nearSrc := testkit.Source{NameVal: "near", RuptureList: []source.Rupture{
		testkit.Rupture{RateVal: 1.0, MagVal: 6.0, Surf: near},
	}}
	farSrc := testkit.Source{NameVal: "far", RuptureList: []source.Rupture{
		testkit.Rupture{RateVal: 1.0, MagVal: 6.0, Surf: far},
	}}

	ss := testkit.SourceSet{
		NameVal:   "ss-distance",
		TypeVal:   core.SourceTypeOrdinary,
		WeightVal: 1.0,
		Gmms: testkit.DistanceGmmSet{
			GmmList: []core.GMM{gmmA, gmmB},
			Bands: []testkit.DistanceBand{
				{MaxDistance: 100, Weights: map[core.GMMID]float64{"A": 0.6, "B": 0.4}},
				{MaxDistance: 1e9, Weights: map[core.GMMID]float64{"A": 1.0}},
			},
		},
		Sources:    []source.Source{nearSrc, farSrc},
		MaxDistVal: 1e9,
	}

	cfg := truncationOffConfig(core.PGA, grid(0.1))

	orch := NewOrchestrator(1)
	_, result, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
	require.NoError(t, err)

	sets := result.CurveSets(core.SourceTypeOrdinary)
	require.Len(t, sets, 1)
	curve, ok := sets[0].TotalCurve(core.PGA)
	require.True(t, ok)
	// Each source's own curve at x=0.1 is 0.5 (rate 1 * survival 0.5).
	// near contributes 0.6*0.5 + 0.4*0.5 = 0.5; far contributes 1.0*0.5 = 0.5.
	require.InDelta(t, 1.0, curve[0], 1e-9)
}

// Property 9 — empty-input neutrality: a source with no ruptures
// contributes the zero curve.
func TestEmptySourceContributesZeroCurve(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)
	gmm := testkit.ConstantGMM{IDVal: "GMM1", Mean: 0, Sigma: 0.6}
	emptySrc := testkit.Source{NameVal: "empty", RuptureList: nil}

	ss := testkit.SourceSet{
		NameVal:   "ss-empty",
		TypeVal:   core.SourceTypeOrdinary,
		WeightVal: 1.0,
		Gmms: testkit.FixedGmmSet{
			GmmList: []core.GMM{gmm},
			Weights: map[core.GMMID]float64{"GMM1": 1.0},
		},
		Sources:    []source.Source{emptySrc},
		MaxDistVal: 300,
	}

	cfg := truncationOffConfig(core.PGA, grid(0.1, 1.0))

	orch := NewOrchestrator(1)
	_, result, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
	require.NoError(t, err)

	sets := result.CurveSets(core.SourceTypeOrdinary)
	require.Len(t, sets, 1)
	// No source contributed an entry, so totalCurves has no IMT.
	_, ok := sets[0].TotalCurve(core.PGA)
	require.False(t, ok)
}

// Property 5 — rate scaling: multiplying every rupture rate in a source
// by k multiplies every output exceedance curve by k.
func TestRateScalingLinearity(t *testing.T) {
	site := core.NewSite(core.Location{}, 760, false)
	surf := testkit.ConstantSurface{RJB: 20, RRup: 20, RX: 20, DipDeg: 90, WidthKm: 10, DepthKm: 0}
	gmm := testkit.ConstantGMM{IDVal: "GMM1", Mean: 0.0, Sigma: 0.6}
	cfg := truncationOffConfig(core.PGA, grid(0.1))

	run := func(rate float64) float64 {
		rup := testkit.Rupture{RateVal: rate, MagVal: 6.5, Surf: surf}
		src := testkit.Source{NameVal: "fault-1", RuptureList: []source.Rupture{rup}}
		ss := testkit.SourceSet{
			NameVal:   "ss1",
			TypeVal:   core.SourceTypeOrdinary,
			WeightVal: 1.0,
			Gmms: testkit.FixedGmmSet{
				GmmList: []core.GMM{gmm},
				Weights: map[core.GMMID]float64{"GMM1": 1.0},
			},
			Sources:    []source.Source{src},
			MaxDistVal: 300,
		}
		orch := NewOrchestrator(1)
		_, result, err := orch.Run(context.Background(), testkit.Model{Sets: []source.SourceSet{ss}}, cfg, site)
		require.NoError(t, err)
		curve, ok := result.CurveSets(core.SourceTypeOrdinary)[0].TotalCurve(core.PGA)
		require.True(t, ok)
		return curve[0]
	}

	base := run(1e-3)
	scaled := run(1e-3 * 4)
	require.InDelta(t, base*4, scaled, 1e-12)
}
