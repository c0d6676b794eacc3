// Package testkit provides small, deterministic fixtures for exercising
// the hazard pipeline in tests without a real hazard-model catalog or
// GMM library — synthetic sources, a constant-output GMM, and minimal
// SourceSet/GmmSet wrappers, in the style of the teacher's own in-memory
// test fixtures.
package testkit

import (
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/source"
)

// ConstantSurface is a RuptureSurface whose distances and geometry never
// vary — enough to drive deterministic end-to-end scenarios.
type ConstantSurface struct {
	RJB, RRup, RX   float64
	DipDeg          float64
	WidthKm         float64
	DepthKm         float64
}

func (s ConstantSurface) DistanceTo(core.Location) source.Distances {
	return source.Distances{RJB: s.RJB, RRup: s.RRup, RX: s.RX}
}
func (s ConstantSurface) Dip() float64   { return s.DipDeg }
func (s ConstantSurface) Width() float64 { return s.WidthKm }
func (s ConstantSurface) Depth() float64 { return s.DepthKm }

// Rupture is a plain-data Rupture fixture.
type Rupture struct {
	RateVal float64
	MagVal  float64
	RakeVal float64
	Surf    source.RuptureSurface
}

func (r Rupture) Rate() float64                  { return r.RateVal }
func (r Rupture) Mag() float64                   { return r.MagVal }
func (r Rupture) Rake() float64                  { return r.RakeVal }
func (r Rupture) Surface() source.RuptureSurface { return r.Surf }

// Source is a plain-data Source fixture: a name plus a fixed rupture
// list.
type Source struct {
	NameVal     string
	RuptureList []source.Rupture
}

func (s Source) Name() string               { return s.NameVal }
func (s Source) Ruptures() []source.Rupture { return s.RuptureList }

// ConstantGMM returns a fixed (mean, sigma) for every IMT it claims to
// support, regardless of input — enough to drive the end-to-end
// scenarios in spec.md §8 without a real ground-motion formula.
type ConstantGMM struct {
	IDVal        core.GMMID
	Mean, Sigma  float64
	SupportedIMT map[core.IMT]bool
}

func (g ConstantGMM) ID() core.GMMID { return g.IDVal }
func (g ConstantGMM) Supports(imt core.IMT) bool {
	if g.SupportedIMT == nil {
		return true
	}
	return g.SupportedIMT[imt]
}
func (g ConstantGMM) Calc(core.IMT, core.GmmInput) core.ScalarGroundMotion {
	return core.ScalarGroundMotion{Mean: g.Mean, Sigma: g.Sigma}
}

// FixedGmmSet returns the same GMMs and the same weight map regardless
// of distance — sufficient for tests that don't exercise distance-
// dependent weighting.
type FixedGmmSet struct {
	GmmList []core.GMM
	Weights map[core.GMMID]float64
}

func (s FixedGmmSet) Gmms() []core.GMM { return s.GmmList }
func (s FixedGmmSet) GmmWeightMap(float64) map[core.GMMID]float64 {
	return s.Weights
}

// DistanceGmmSet returns the weight map of the first band, in Bands
// order, whose MaxDistance covers the queried distance — for tests
// exercising distance-dependent GMM weighting (spec.md §8 scenario S4).
type DistanceGmmSet struct {
	GmmList []core.GMM
	Bands   []DistanceBand
}

// DistanceBand is one entry of a DistanceGmmSet's applicability table.
type DistanceBand struct {
	MaxDistance float64
	Weights     map[core.GMMID]float64
}

func (s DistanceGmmSet) Gmms() []core.GMM { return s.GmmList }
func (s DistanceGmmSet) GmmWeightMap(distance float64) map[core.GMMID]float64 {
	for _, b := range s.Bands {
		if distance <= b.MaxDistance {
			return b.Weights
		}
	}
	return nil
}

// SourceSet is a plain-data SourceSet fixture holding a fixed, already
// distance-filtered source list.
type SourceSet struct {
	NameVal    string
	TypeVal    core.SourceType
	WeightVal  float64
	Gmms       source.GmmSet
	Sources    []source.Source
	MaxDistVal float64
}

func (s SourceSet) Name() string                  { return s.NameVal }
func (s SourceSet) Type() core.SourceType          { return s.TypeVal }
func (s SourceSet) Weight() float64                { return s.WeightVal }
func (s SourceSet) GroundMotionModels() source.GmmSet { return s.Gmms }
func (s SourceSet) MaxDistance() float64           { return s.MaxDistVal }
func (s SourceSet) LocationIterable(core.Site) []source.Source {
	return s.Sources
}

// FaultSource is a plain-data FaultSource fixture.
type FaultSource struct {
	NameVal     string
	VariantList []source.FaultVariant
}

func (f FaultSource) Name() string                     { return f.NameVal }
func (f FaultSource) Variants() []source.FaultVariant { return f.VariantList }

// ClusterSource is a plain-data ClusterSource fixture.
type ClusterSource struct {
	NameVal   string
	FaultList source.FaultSourceSet
	RateVal   float64
	WeightVal float64
}

func (c ClusterSource) Name() string                    { return c.NameVal }
func (c ClusterSource) Faults() source.FaultSourceSet { return c.FaultList }
func (c ClusterSource) Rate() float64                   { return c.RateVal }
func (c ClusterSource) Weight() float64                 { return c.WeightVal }

// ClusterSourceSet is a plain-data ClusterSourceSet fixture.
type ClusterSourceSet struct {
	NameVal    string
	WeightVal  float64
	Gmms       source.GmmSet
	Clusters   []source.ClusterSource
	MaxDistVal float64
}

func (s ClusterSourceSet) Name() string                  { return s.NameVal }
func (s ClusterSourceSet) Type() core.SourceType          { return core.SourceTypeCluster }
func (s ClusterSourceSet) Weight() float64                { return s.WeightVal }
func (s ClusterSourceSet) GroundMotionModels() source.GmmSet { return s.Gmms }
func (s ClusterSourceSet) MaxDistance() float64           { return s.MaxDistVal }
func (s ClusterSourceSet) LocationIterable(core.Site) []source.Source {
	return nil
}
func (s ClusterSourceSet) LocationIterableClusters(core.Site) []source.ClusterSource {
	return s.Clusters
}

// Model is a plain-data HazardModel fixture: a fixed SourceSet list.
type Model struct {
	Sets []source.SourceSet
}

func (m Model) SourceSets() []source.SourceSet { return m.Sets }
