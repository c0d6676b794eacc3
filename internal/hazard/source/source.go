// Package source declares the collaborator interfaces the pipeline
// consumes (spec.md §6): the hazard model itself, its rupture geometry,
// and its GMM catalog are out of scope for this module. Everything here
// is a contract a real catalog loader implements; internal/hazard never
// imports a concrete hazard-model format.
package source

import "hazardcurve/internal/hazard/core"

// Distances is the trio a RuptureSurface resolves against a site.
type Distances struct {
	RJB  float64
	RRup float64
	RX   float64
}

// RuptureSurface is the geometry collaborator behind a Rupture.
type RuptureSurface interface {
	DistanceTo(loc core.Location) Distances
	Dip() float64   // degrees
	Width() float64 // km, down-dip width
	Depth() float64 // km, zTop
}

// Rupture is a single earthquake scenario within a Source.
type Rupture interface {
	Rate() float64 // events/year
	Mag() float64
	Rake() float64 // degrees
	Surface() RuptureSurface
}

// Source yields an iterator of Rupture and a name for diagnostics.
type Source interface {
	Name() string
	Ruptures() []Rupture
}

// SourceSet groups Sources sharing a GMM catalog and a weight in the
// logic tree.
type SourceSet interface {
	Name() string
	Type() core.SourceType
	Weight() float64
	GroundMotionModels() GmmSet
	// LocationIterable returns the Sources within MaxDistance of site,
	// pre-filtered (spec.md §2's locationIterable collaborator).
	LocationIterable(site core.Site) []Source
	MaxDistance() float64
}

// GmmSet describes the GMMs applicable to a SourceSet and a
// distance-dependent weighting scheme over them.
type GmmSet interface {
	Gmms() []core.GMM
	// GmmWeightMap returns a normalized GMM->weight map for the given
	// distance, dropping GMMs whose applicability interval excludes it.
	// Invariant: the returned weights sum to 1.
	GmmWeightMap(distance float64) map[core.GMMID]float64
}

// FaultSource is one constituent fault of a ClusterSource. It may carry
// multiple magnitude variants, each a Source in its own right — the
// variant weight is carried per-rupture via TemporalGmmInput.Rate
// (spec.md §4.5's documented overload).
type FaultSource interface {
	Name() string
	// Variants returns one Source per magnitude variant, plus the
	// variant's weight (summing to 1 across the returned slice).
	Variants() []FaultVariant
}

// FaultVariant pairs a magnitude-variant Source with its weight.
type FaultVariant struct {
	Source Source
	Weight float64
}

// FaultSourceSet is the ordered list of faults composing a cluster.
type FaultSourceSet []FaultSource

// ClusterSource is a set of fault sources believed to rupture jointly.
type ClusterSource interface {
	Name() string
	Faults() FaultSourceSet
	Rate() float64   // annual rate of the cluster as a whole
	Weight() float64 // logic-tree weight, distinct from Rate
}

// ClusterSourceSet is a SourceSet whose Type() is core.SourceTypeCluster
// and whose sources are ClusterSources rather than plain Sources.
type ClusterSourceSet interface {
	SourceSet
	LocationIterableClusters(site core.Site) []ClusterSource
}

// HazardModel is the top-level catalog the orchestrator consumes: an
// ordered list of SourceSets. Parsing a model off disk is explicitly out
// of scope (spec.md §1) — this interface is the only contract a loader
// needs to satisfy.
type HazardModel interface {
	SourceSets() []SourceSet
}
