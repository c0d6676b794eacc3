// Package pipeline implements the staged reduction spec.md §2 describes:
// Source -> HazardInputs -> HazardGroundMotions -> HazardCurves ->
// HazardCurveSet -> HazardResult, plus the parallel cluster path. Every
// function here is a pure transform over the model package's types; the
// concurrency scaffolding that schedules them lives in orchestrator.go.
package pipeline

import (
	"math"

	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
	"hazardcurve/internal/hazard/sigma"
	"hazardcurve/internal/hazard/source"
)

// SourceToInputs iterates src's ruptures, resolving each against site via
// its RuptureSurface, and returns the accumulated HazardInputs (spec.md
// §4.2). A rupture whose surface yields a non-finite distance is a
// DataError — this module never recovers from bad geometry locally.
func SourceToInputs(src source.Source, site core.Site) (model.HazardInputs, error) {
	b := model.NewHazardInputsBuilder(src.Name())
	for _, r := range src.Ruptures() {
		surf := r.Surface()
		d := surf.DistanceTo(site.Location)
		if !finite3(d.RJB, d.RRup, d.RX) {
			return model.HazardInputs{}, core.NewDataError(src.Name(), "rupture surface returned a non-finite distance")
		}
		zTop := surf.Depth()
		dip := surf.Dip()
		width := surf.Width()
		in := core.TemporalGmmInput{
			GmmInput: core.GmmInput{
				Mw:         r.Mag(),
				RJB:        d.RJB,
				RRup:       d.RRup,
				RX:         d.RX,
				Dip:        dip,
				Width:      width,
				ZTop:       zTop,
				ZHyp:       core.DeriveZHyp(zTop, dip, width),
				Rake:       r.Rake(),
				Vs30:       site.Vs30,
				VsInferred: site.VsInferred,
				Z2p5:       site.Z2p5,
				Z1p0:       site.Z1p0,
			},
			Rate: r.Rate(),
		}
		b.Append(in)
	}
	return b.Build()
}

func finite3(a, b, c float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) &&
		!math.IsNaN(b) && !math.IsInf(b, 0) &&
		!math.IsNaN(c) && !math.IsInf(c, 0)
}

// InputsToGroundMotions evaluates every applicable (gmm, imt) cell across
// every rupture in inputs (spec.md §4.3). GMMs not supporting a requested
// imt are skipped entirely, per the tensor's documented invariant. A
// non-finite (mean, sigma) from a GMM is a DataError.
func InputsToGroundMotions(inputs model.HazardInputs, gmms []core.GMM, imts []core.IMT) (model.HazardGroundMotions, error) {
	b := model.NewHazardGroundMotionsBuilder(inputs.SourceName, len(inputs.Entries))
	for _, imt := range imts {
		for _, gmm := range gmms {
			if !gmm.Supports(imt) {
				continue
			}
			values := make([]core.ScalarGroundMotion, len(inputs.Entries))
			for i, in := range inputs.Entries {
				sg := gmm.Calc(imt, in.GmmInput)
				if !sg.Finite() {
					return model.HazardGroundMotions{}, core.NewDataError(inputs.SourceName, "gmm "+string(gmm.ID())+" returned non-finite mean/sigma for "+imt.String())
				}
				values[i] = sg
			}
			if err := b.SetCell(imt, gmm.ID(), values); err != nil {
				return model.HazardGroundMotions{}, err
			}
		}
	}
	return b.Build()
}

// GroundMotionsToCurves applies the configured σ-model to every (imt,
// gmm) cell of gm, rupture by rupture, accumulating a rate-weighted
// exceedance curve (spec.md §4.4).
func GroundMotionsToCurves(gm model.HazardGroundMotions, inputs model.HazardInputs, cfg core.CalcConfig) (model.HazardCurves, error) {
	cells := make(map[core.IMT]map[core.GMMID]model.Curve)
	for _, imt := range gm.IMTs() {
		grid, ok := cfg.ModelCurves[imt]
		if !ok {
			return model.HazardCurves{}, core.NewConfigError("model_curves", "no grid for imt "+imt.String())
		}
		lnX := logGrid(grid)
		byGmm := make(map[core.GMMID]model.Curve)
		for _, gmmID := range gm.GMMs(imt) {
			sgs, _ := gm.Cell(imt, gmmID)
			gmmCurve := model.NewCurve(len(grid))
			util := make([]float64, len(grid))
			for i, sg := range sgs {
				rate := inputs.Entries[i].Rate
				sigma.Apply(cfg.SigmaModel, sg.Mean, sg.Sigma, cfg.TruncationLevel, imt, lnX, util)
				for j, p := range util {
					gmmCurve[j] += p * rate
				}
			}
			byGmm[gmmID] = gmmCurve
		}
		cells[imt] = byGmm
	}
	return model.NewHazardCurves(inputs.SourceName, cells), nil
}

func logGrid(grid core.ModelCurve) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = math.Log(x)
	}
	return out
}
