package model

import (
	"math"

	"hazardcurve/internal/hazard/core"
)

// ClusterInputs is the cluster-path counterpart of HazardInputs: one
// HazardInputs per constituent fault, in the cluster's fault order. Each
// fault's entries carry every magnitude variant's ruptures, with
// TemporalGmmInput.Rate reinterpreted as that variant's weight rather
// than an annual rate (spec.md §4.5 — the documented rate/weight
// overload).
type ClusterInputs struct {
	ClusterName string
	Faults      []HazardInputs
}

// MinDistance is the minimum rJB across every fault's ruptures, used by
// ClusterCurveConsolidator for GMM-weight lookup.
func (c ClusterInputs) MinDistance() float64 {
	md := math.Inf(1)
	seen := false
	for _, f := range c.Faults {
		if f.Empty() {
			continue
		}
		seen = true
		if f.MinDistance() < md {
			md = f.MinDistance()
		}
	}
	if !seen {
		return 0
	}
	return md
}

// ClusterGroundMotions mirrors ClusterInputs' shape: one
// HazardGroundMotions per constituent fault.
type ClusterGroundMotions struct {
	ClusterName string
	Faults      []HazardGroundMotions
}

// ClusterCurves holds, per (imt, gmm), the joint-exceedance curve for a
// cluster, already scaled by the cluster's annual rate (spec.md §4.5
// step 4).
type ClusterCurves struct {
	ClusterName string
	cells       map[core.IMT]map[core.GMMID]Curve
}

// NewClusterCurves wraps a fully-populated cell map.
func NewClusterCurves(clusterName string, cells map[core.IMT]map[core.GMMID]Curve) ClusterCurves {
	return ClusterCurves{ClusterName: clusterName, cells: cells}
}

// Cell returns the curve for (imt, gmm).
func (c ClusterCurves) Cell(imt core.IMT, gmm core.GMMID) (Curve, bool) {
	byGmm, ok := c.cells[imt]
	if !ok {
		return nil, false
	}
	curve, ok := byGmm[gmm]
	return curve, ok
}

// IMTs returns the populated IMTs.
func (c ClusterCurves) IMTs() []core.IMT {
	out := make([]core.IMT, 0, len(c.cells))
	for imt := range c.cells {
		out = append(out, imt)
	}
	return out
}

// GMMs returns the GMMs populated for imt.
func (c ClusterCurves) GMMs(imt core.IMT) []core.GMMID {
	byGmm := c.cells[imt]
	out := make([]core.GMMID, 0, len(byGmm))
	for id := range byGmm {
		out = append(out, id)
	}
	return out
}
