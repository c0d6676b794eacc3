package pipeline

import (
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
	"hazardcurve/internal/hazard/source"
)

// CurveConsolidator folds every ordinary source's per-(imt,gmm) curve
// into a HazardCurveSet, weighting by the SourceSet's distance-dependent
// GmmSet at each source's minDistance (spec.md §4.6). A source with an
// empty HazardInputs contributes nothing — the zero curve, per the
// empty-input neutrality invariant — rather than being treated as an
// error.
func CurveConsolidator(ss source.SourceSet, perSource []perSourceCurves) (model.HazardCurveSet, error) {
	b := model.NewHazardCurveSetBuilder(ss.Name(), ss.Type(), ss.Weight())
	gmmSet := ss.GroundMotionModels()
	for _, ps := range perSource {
		if ps.inputs.Empty() {
			continue
		}
		weights := gmmSet.GmmWeightMap(ps.inputs.MinDistance())
		for _, imt := range ps.curves.IMTs() {
			for _, gmmID := range ps.curves.GMMs(imt) {
				w, ok := weights[gmmID]
				if !ok {
					continue
				}
				curve, _ := ps.curves.Cell(imt, gmmID)
				b.Accumulate(imt, gmmID, curve, w)
			}
		}
	}
	return b.Build()
}

// perSourceCurves pairs a source's HazardInputs (for its minDistance)
// with its computed HazardCurves, the unit CurveConsolidator folds in
// source-enumeration order.
type perSourceCurves struct {
	inputs model.HazardInputs
	curves model.HazardCurves
}

// perClusterCurves is the cluster-path analog.
type perClusterCurves struct {
	inputs model.ClusterInputs
	curves model.ClusterCurves
}

// ClusterCurveConsolidator is CurveConsolidator's cluster-path
// counterpart: the per-item distance comes from ClusterInputs.MinDistance
// and the per-item weight is gmmWeight * ClusterSource.Weight() (distinct
// from the annual rate already folded in at ClusterGroundMotionsToCurves
// step 4).
func ClusterCurveConsolidator(ss source.SourceSet, perCluster []perClusterCurves, clusterWeight func(clusterName string) float64) (model.HazardCurveSet, error) {
	b := model.NewHazardCurveSetBuilder(ss.Name(), ss.Type(), ss.Weight())
	gmmSet := ss.GroundMotionModels()
	for _, pc := range perCluster {
		weights := gmmSet.GmmWeightMap(pc.inputs.MinDistance())
		cw := clusterWeight(pc.inputs.ClusterName)
		for _, imt := range pc.curves.IMTs() {
			for _, gmmID := range pc.curves.GMMs(imt) {
				w, ok := weights[gmmID]
				if !ok {
					continue
				}
				curve, _ := pc.curves.Cell(imt, gmmID)
				b.Accumulate(imt, gmmID, curve, w*cw)
			}
		}
	}
	return b.Build()
}

// CurveSetConsolidator collects every SourceSet's HazardCurveSet into the
// final, immutable HazardResult (spec.md §4.6).
func CurveSetConsolidator(sets []model.HazardCurveSet, modelCurves map[core.IMT]core.ModelCurve) model.HazardResult {
	return model.NewHazardResult(sets, modelCurves)
}
