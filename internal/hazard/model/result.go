package model

import "hazardcurve/internal/hazard/core"

// HazardResult is the pipeline's final, immutable product: a multimap
// SourceType -> set of HazardCurveSet, plus the union of model curves
// used to build it (so a downstream consumer can align x-grids without
// needing the original CalcConfig). Built once by CurveSetConsolidator
// and never mutated afterward.
type HazardResult struct {
	curveSets   map[core.SourceType][]HazardCurveSet
	modelCurves map[core.IMT]core.ModelCurve
}

// NewHazardResult assembles the final result from every SourceSet's
// HazardCurveSet, keyed by the SourceType each one was built for.
func NewHazardResult(sets []HazardCurveSet, modelCurves map[core.IMT]core.ModelCurve) HazardResult {
	byType := make(map[core.SourceType][]HazardCurveSet)
	for _, s := range sets {
		byType[s.SourceType] = append(byType[s.SourceType], s)
	}
	return HazardResult{curveSets: byType, modelCurves: modelCurves}
}

// CurveSets returns the HazardCurveSets for the given SourceType.
func (r HazardResult) CurveSets(t core.SourceType) []HazardCurveSet {
	return r.curveSets[t]
}

// SourceTypes returns the SourceTypes present in this result.
func (r HazardResult) SourceTypes() []core.SourceType {
	out := make([]core.SourceType, 0, len(r.curveSets))
	for t := range r.curveSets {
		out = append(out, t)
	}
	return out
}

// ModelCurve returns the x-grid used for imt.
func (r HazardResult) ModelCurve(imt core.IMT) (core.ModelCurve, bool) {
	c, ok := r.modelCurves[imt]
	return c, ok
}

// AllCurveSets returns every HazardCurveSet across every SourceType, in
// no particular order — a convenience for reporting and diagnostics.
func (r HazardResult) AllCurveSets() []HazardCurveSet {
	var out []HazardCurveSet
	for _, sets := range r.curveSets {
		out = append(out, sets...)
	}
	return out
}
