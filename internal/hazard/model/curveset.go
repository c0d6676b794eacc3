package model

import (
	"sort"

	"hazardcurve/internal/hazard/core"
)

// HazardCurveSet is the rollup for one SourceSet: per-(imt,gmm) curves
// already GMM-weighted and distance-aware, plus the per-imt totalCurves
// tensor summed over GMMs and scaled by the SourceSet's logic-tree
// weight. totalCurves is finalized exactly once, at build time (spec.md
// §3's invariant).
type HazardCurveSet struct {
	SourceSetName string
	SourceType    core.SourceType
	gmmCurves     map[core.IMT]map[core.GMMID]Curve
	totalCurves   map[core.IMT]Curve
}

// GmmCurve returns the GMM-weighted, not-yet-SourceSet-weighted curve
// for (imt, gmm).
func (s HazardCurveSet) GmmCurve(imt core.IMT, gmm core.GMMID) (Curve, bool) {
	byGmm, ok := s.gmmCurves[imt]
	if !ok {
		return nil, false
	}
	c, ok := byGmm[gmm]
	return c, ok
}

// TotalCurve returns the SourceSet-weighted, GMM-summed curve for imt.
func (s HazardCurveSet) TotalCurve(imt core.IMT) (Curve, bool) {
	c, ok := s.totalCurves[imt]
	return c, ok
}

// IMTs returns the IMTs present in totalCurves.
func (s HazardCurveSet) IMTs() []core.IMT {
	out := make([]core.IMT, 0, len(s.totalCurves))
	for imt := range s.totalCurves {
		out = append(out, imt)
	}
	return out
}

// HazardCurveSetBuilder accumulates per-(imt,gmm) weighted curves across
// every source (or cluster) in a SourceSet, then folds them into
// totalCurves exactly once at Build. Single-threaded — owned by the one
// consolidator task for this SourceSet.
type HazardCurveSetBuilder struct {
	sourceSetName string
	sourceType    core.SourceType
	weight        float64
	gmmCurves     map[core.IMT]map[core.GMMID]Curve
	built         bool
}

// NewHazardCurveSetBuilder starts construction for the named SourceSet.
func NewHazardCurveSetBuilder(sourceSetName string, sourceType core.SourceType, weight float64) *HazardCurveSetBuilder {
	return &HazardCurveSetBuilder{
		sourceSetName: sourceSetName,
		sourceType:    sourceType,
		weight:        weight,
		gmmCurves:     make(map[core.IMT]map[core.GMMID]Curve),
	}
}

// Accumulate adds curve*weight into the running (imt, gmm) accumulator,
// allocating a zero curve of the same length on first touch.
func (b *HazardCurveSetBuilder) Accumulate(imt core.IMT, gmm core.GMMID, curve Curve, weight float64) {
	byGmm, ok := b.gmmCurves[imt]
	if !ok {
		byGmm = make(map[core.GMMID]Curve)
		b.gmmCurves[imt] = byGmm
	}
	acc, ok := byGmm[gmm]
	if !ok {
		acc = NewCurve(len(curve))
		byGmm[gmm] = acc
	}
	acc.AddScaled(curve, weight)
}

// Build folds the per-(imt,gmm) accumulators into totalCurves, scaled by
// the SourceSet's logic-tree weight, and freezes the result.
// Double-finalize is an InternalError.
func (b *HazardCurveSetBuilder) Build() (HazardCurveSet, error) {
	if b.built {
		return HazardCurveSet{}, core.NewInternalError("HazardCurveSetBuilder: double finalize")
	}
	b.built = true

	total := make(map[core.IMT]Curve, len(b.gmmCurves))
	for imt, byGmm := range b.gmmCurves {
		var n int
		for _, c := range byGmm {
			n = len(c)
			break
		}
		// Sum in sorted GMM-ID order so totalCurves is bit-identical
		// across runs, independent of map iteration order.
		ids := make([]core.GMMID, 0, len(byGmm))
		for id := range byGmm {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		sum := NewCurve(n)
		for _, id := range ids {
			sum.AddScaled(byGmm[id], 1)
		}
		scaled := NewCurve(n)
		scaled.AddScaled(sum, b.weight)
		total[imt] = scaled
	}

	return HazardCurveSet{
		SourceSetName: b.sourceSetName,
		SourceType:    b.sourceType,
		gmmCurves:     b.gmmCurves,
		totalCurves:   total,
	}, nil
}
