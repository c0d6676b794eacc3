package model

import "hazardcurve/internal/hazard/core"

// HazardGroundMotions holds, for a single source, two parallel tensors
// indexed by IMT -> GMM -> rupture-index -> (mean, sigma). The rupture
// axis matches the source's HazardInputs entry-wise.
type HazardGroundMotions struct {
	SourceName string
	cells      map[core.IMT]map[core.GMMID][]core.ScalarGroundMotion
	nRuptures  int
}

// Cell returns the per-rupture (mean, sigma) slice for (imt, gmm), and
// whether that cell was populated (false if the GMM does not support
// imt, per spec.md §3's "filtered out before the step is invoked" rule).
func (g HazardGroundMotions) Cell(imt core.IMT, gmm core.GMMID) ([]core.ScalarGroundMotion, bool) {
	byGmm, ok := g.cells[imt]
	if !ok {
		return nil, false
	}
	sg, ok := byGmm[gmm]
	return sg, ok
}

// IMTs returns the IMTs populated in this tensor.
func (g HazardGroundMotions) IMTs() []core.IMT {
	out := make([]core.IMT, 0, len(g.cells))
	for imt := range g.cells {
		out = append(out, imt)
	}
	return out
}

// GMMs returns the GMMs populated for the given IMT.
func (g HazardGroundMotions) GMMs(imt core.IMT) []core.GMMID {
	byGmm := g.cells[imt]
	out := make([]core.GMMID, 0, len(byGmm))
	for id := range byGmm {
		out = append(out, id)
	}
	return out
}

// NRuptures returns the length of the rupture axis (matches the parent
// HazardInputs.Entries length).
func (g HazardGroundMotions) NRuptures() int { return g.nRuptures }

// HazardGroundMotionsBuilder fills one (imt, gmm) cell at a time.
// Single-threaded, owned by one InputsToGroundMotions task.
type HazardGroundMotionsBuilder struct {
	sourceName string
	nRuptures  int
	cells      map[core.IMT]map[core.GMMID][]core.ScalarGroundMotion
	built      bool
}

// NewHazardGroundMotionsBuilder starts construction for a source whose
// HazardInputs has nRuptures entries.
func NewHazardGroundMotionsBuilder(sourceName string, nRuptures int) *HazardGroundMotionsBuilder {
	return &HazardGroundMotionsBuilder{
		sourceName: sourceName,
		nRuptures:  nRuptures,
		cells:      make(map[core.IMT]map[core.GMMID][]core.ScalarGroundMotion),
	}
}

// SetCell records the full per-rupture (mean, sigma) slice for one
// (imt, gmm). Every ScalarGroundMotion in values must be Finite — a
// non-finite entry is a DataError the caller raises before calling this.
func (b *HazardGroundMotionsBuilder) SetCell(imt core.IMT, gmm core.GMMID, values []core.ScalarGroundMotion) error {
	if len(values) != b.nRuptures {
		return core.NewInternalError("HazardGroundMotionsBuilder: cell length mismatch")
	}
	byGmm, ok := b.cells[imt]
	if !ok {
		byGmm = make(map[core.GMMID][]core.ScalarGroundMotion)
		b.cells[imt] = byGmm
	}
	byGmm[gmm] = values
	return nil
}

// Build freezes the tensor. Double-finalize is an InternalError.
func (b *HazardGroundMotionsBuilder) Build() (HazardGroundMotions, error) {
	if b.built {
		return HazardGroundMotions{}, core.NewInternalError("HazardGroundMotionsBuilder: double finalize")
	}
	b.built = true
	return HazardGroundMotions{
		SourceName: b.sourceName,
		cells:      b.cells,
		nRuptures:  b.nRuptures,
	}, nil
}
