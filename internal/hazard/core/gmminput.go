package core

import "math"

// Missing is the sentinel value for a GmmInput depth field (z1p0, z2p5)
// that was not resolved from the site model. GMMs are expected to
// recognize it and fall back to their own default basin-depth model.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// GmmInput is the rupture- and site-specific predictor vector every GMM
// consumes. It is built once per rupture by SourceToInputs and never
// mutated afterward.
type GmmInput struct {
	Mw         float64
	RJB        float64
	RRup       float64
	RX         float64
	Dip        float64 // degrees
	Width      float64 // km, down-dip rupture width
	ZTop       float64 // km, depth to top of rupture
	ZHyp       float64 // km, derived: ZTop + sin(Dip)*Width/2
	Rake       float64 // degrees
	Vs30       float64
	VsInferred bool
	Z2p5       float64 // km; may be Missing
	Z1p0       float64 // km; may be Missing
}

// DeriveZHyp computes the hypocentral depth per spec.md §4.2: the rupture
// surface exposes ZTop, Dip and Width; ZHyp is always derived, never
// provided directly.
func DeriveZHyp(zTop, dipDegrees, width float64) float64 {
	return zTop + math.Sin(dipDegrees*math.Pi/180)*width/2
}

// TemporalGmmInput augments a GmmInput with the occurrence rate of the
// underlying rupture (events/year). On the cluster path, Rate is
// reinterpreted as a magnitude-variant weight rather than an annual rate —
// see spec.md §4.5 and the ClusterGroundMotionsToCurves transform. This
// overload is a deliberate, preserved wart: it is not renamed because
// downstream numerics depend on both branches reading the same field.
type TemporalGmmInput struct {
	GmmInput
	Rate float64
}

// ScalarGroundMotion is the (mean, sigma) pair a GMM returns for one
// GmmInput, in natural-log space for the IMT it was evaluated at.
type ScalarGroundMotion struct {
	Mean  float64
	Sigma float64
}

// Finite reports whether both components are finite, per the invariant in
// spec.md §3 (HazardGroundMotions): "for every (IMT, GMM, i), both μ and σ
// are finite after the InputsToGroundMotions step".
func (s ScalarGroundMotion) Finite() bool {
	return !math.IsNaN(s.Mean) && !math.IsInf(s.Mean, 0) &&
		!math.IsNaN(s.Sigma) && !math.IsInf(s.Sigma, 0)
}

// GMMID identifies a ground-motion model within a GmmSet. It is the map
// key used for weighting and tensor indexing — comparable, and stable
// across a run.
type GMMID string

// GMM is the external collaborator interface for a ground-motion model:
// a pure, thread-safe function from rupture/site predictors to a
// log-normal (mean, sigma) distribution of one IMT. Concrete GMM formulas
// are out of scope for this module (spec.md §1); GMM instances are
// resolved once per SourceSet and shared read-only across every task that
// touches that SourceSet.
type GMM interface {
	ID() GMMID
	// Supports reports whether the model publishes coefficients for imt.
	// InputsToGroundMotions filters on this before ever calling Calc.
	Supports(imt IMT) bool
	// Calc evaluates the model for the given IMT at the given input. The
	// caller enforces the "GMMs that do not support an IMT are filtered
	// out before the step is invoked" rule (spec.md §3); Calc may assume
	// imt is supported.
	Calc(imt IMT, in GmmInput) ScalarGroundMotion
}
