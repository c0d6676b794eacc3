package model

import "hazardcurve/internal/hazard/core"

// Curve is a dense sequence of y-values aligned, by position, to the
// x-grid of the configured core.ModelCurve for its IMT — the "dense
// array-backed" representation the spec favors over per-point structs,
// since every consolidation step is a pointwise vector add.
type Curve []float64

// NewCurve returns a zero-valued curve with n points.
func NewCurve(n int) Curve { return make(Curve, n) }

// AddScaled adds other*scale into c pointwise. Panics if the lengths
// differ — a length mismatch means two curves were built against
// different model-curve grids, which is a caller bug, not runtime data.
func (c Curve) AddScaled(other Curve, scale float64) {
	if len(c) != len(other) {
		panic("model: curve length mismatch")
	}
	for i, v := range other {
		c[i] += v * scale
	}
}

// Clone returns an independent copy.
func (c Curve) Clone() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// HazardCurves holds, for a single source, the IMT -> GMM -> exceedance
// curve map produced by GroundMotionsToCurves.
type HazardCurves struct {
	SourceName string
	cells      map[core.IMT]map[core.GMMID]Curve
}

// NewHazardCurves wraps a fully-populated cell map. GroundMotionsToCurves
// builds the map directly rather than through a builder type — unlike
// HazardGroundMotions, there is no partial-fill hazard to guard against
// here, since every (imt, gmm) pair is produced by one synchronous loop.
func NewHazardCurves(sourceName string, cells map[core.IMT]map[core.GMMID]Curve) HazardCurves {
	return HazardCurves{SourceName: sourceName, cells: cells}
}

// Cell returns the curve for (imt, gmm).
func (h HazardCurves) Cell(imt core.IMT, gmm core.GMMID) (Curve, bool) {
	byGmm, ok := h.cells[imt]
	if !ok {
		return nil, false
	}
	c, ok := byGmm[gmm]
	return c, ok
}

// IMTs returns the populated IMTs.
func (h HazardCurves) IMTs() []core.IMT {
	out := make([]core.IMT, 0, len(h.cells))
	for imt := range h.cells {
		out = append(out, imt)
	}
	return out
}

// GMMs returns the GMMs populated for imt.
func (h HazardCurves) GMMs(imt core.IMT) []core.GMMID {
	byGmm := h.cells[imt]
	out := make([]core.GMMID, 0, len(byGmm))
	for id := range byGmm {
		out = append(out, id)
	}
	return out
}
