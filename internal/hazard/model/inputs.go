// Package model holds the pipeline's data-model types (spec.md §3):
// HazardInputs, HazardGroundMotions, HazardCurves, their cluster-path
// counterparts, HazardCurveSet and HazardResult. Every type here is
// immutable once built. HazardInputs, HazardGroundMotions and
// HazardCurveSet are constructed through a single-threaded builder that
// rejects double-finalization, mirroring the teacher's
// MatrixBundle.Builder freeze pattern; HazardCurves, ClusterCurves and
// HazardResult wrap already-complete maps directly.
package model

import (
	"math"

	"hazardcurve/internal/hazard/core"
)

// HazardInputs is an ordered, append-only list of TemporalGmmInput for a
// single source, plus a cached minDistance and the source's name for
// diagnostics. Invariant: len(Entries) equals the number of ruptures
// enumerated from the source; an empty HazardInputs is a valid no-op,
// not an error (spec.md §3).
type HazardInputs struct {
	SourceName  string
	Entries     []core.TemporalGmmInput
	minDistance float64
}

// NewHazardInputsBuilder starts construction for the named source.
func NewHazardInputsBuilder(sourceName string) *HazardInputsBuilder {
	return &HazardInputsBuilder{
		sourceName:  sourceName,
		minDistance: math.Inf(1),
	}
}

// HazardInputsBuilder accumulates entries for one source. Single-threaded
// — owned by the one SourceToInputs task building it.
type HazardInputsBuilder struct {
	sourceName  string
	entries     []core.TemporalGmmInput
	minDistance float64
	built       bool
}

// Append records one rupture's TemporalGmmInput and folds its rJB into
// the running minDistance.
func (b *HazardInputsBuilder) Append(in core.TemporalGmmInput) {
	b.entries = append(b.entries, in)
	if in.RJB < b.minDistance {
		b.minDistance = in.RJB
	}
}

// Build freezes the accumulated entries. Calling Build twice is an
// InternalError — the builder contract in spec.md §3 is enforced here,
// not left to the caller's discipline.
func (b *HazardInputsBuilder) Build() (HazardInputs, error) {
	if b.built {
		return HazardInputs{}, core.NewInternalError("HazardInputsBuilder: double finalize")
	}
	b.built = true
	md := b.minDistance
	if len(b.entries) == 0 {
		md = 0
	}
	return HazardInputs{
		SourceName:  b.sourceName,
		Entries:     b.entries,
		minDistance: md,
	}, nil
}

// MinDistance returns the smallest rJB across all entries. Zero for an
// empty HazardInputs (the no-op case — there is no meaningful distance
// to report, and zero never causes a GMM to be spuriously selected since
// CurveConsolidator skips sources with no entries before it ever reads
// this value).
func (h HazardInputs) MinDistance() float64 { return h.minDistance }

// Empty reports whether the source contributed no ruptures.
func (h HazardInputs) Empty() bool { return len(h.Entries) == 0 }
