package core

import "sort"

// SigmaModel selects the exceedance/truncation model applied in
// GroundMotionsToCurves (spec.md §4.4). It is a closed, tagged-variant set
// dispatching to one exceedance routine per value — see the sigma package.
type SigmaModel string

const (
	SigmaNone                 SigmaModel = "NONE"
	SigmaTruncationOff        SigmaModel = "TRUNCATION_OFF"
	SigmaTruncationUpperOnly  SigmaModel = "TRUNCATION_UPPER_ONLY"
	SigmaTruncationLowerUpper SigmaModel = "TRUNCATION_LOWER_UPPER"
	SigmaPeerMixtureModel     SigmaModel = "PEER_MIXTURE_MODEL"
	SigmaNshmCeusMaxIntensity SigmaModel = "NSHM_CEUS_MAX_INTENSITY"
)

var validSigmaModels = map[SigmaModel]bool{
	SigmaNone:                 true,
	SigmaTruncationOff:        true,
	SigmaTruncationUpperOnly:  true,
	SigmaTruncationLowerUpper: true,
	SigmaPeerMixtureModel:     true,
	SigmaNshmCeusMaxIntensity: true,
}

// ModelCurve is a strictly-monotonic sequence of x-values in linear
// ground-motion space, shared read-only across every task that produces a
// curve for its IMT.
type ModelCurve []float64

// Validate checks strict monotonicity.
func (c ModelCurve) Validate() error {
	if len(c) == 0 {
		return NewConfigError("model_curve", "must not be empty")
	}
	for i := 1; i < len(c); i++ {
		if c[i] <= c[i-1] {
			return NewConfigError("model_curve", "x-values must be strictly increasing")
		}
	}
	return nil
}

// CalcConfig carries the options recognized by the core, per spec.md §3/§6.
type CalcConfig struct {
	IMTs            map[IMT]bool
	SigmaModel      SigmaModel
	TruncationLevel float64
	ModelCurves     map[IMT]ModelCurve
}

// NewCalcConfig builds a CalcConfig from a slice of IMTs rather than a map,
// for caller convenience.
func NewCalcConfig(imts []IMT, sigmaModel SigmaModel, truncationLevel float64, modelCurves map[IMT]ModelCurve) CalcConfig {
	set := make(map[IMT]bool, len(imts))
	for _, imt := range imts {
		set[imt] = true
	}
	return CalcConfig{
		IMTs:            set,
		SigmaModel:      sigmaModel,
		TruncationLevel: truncationLevel,
		ModelCurves:     modelCurves,
	}
}

// Validate enforces §7's ConfigError conditions: empty IMT set, unsupported
// IMT, missing model curves for a requested IMT, out-of-range truncation
// level, unrecognized sigma model. Raised synchronously before any task is
// scheduled.
func (c CalcConfig) Validate() error {
	if len(c.IMTs) == 0 {
		return NewConfigError("imts", "must request at least one IMT")
	}
	if !validSigmaModels[c.SigmaModel] {
		return NewConfigError("sigma_model", "unrecognized sigma model: "+string(c.SigmaModel))
	}
	if c.TruncationLevel < 0 {
		return NewConfigError("truncation_level", "must be nonnegative")
	}
	for imt := range c.IMTs {
		switch imt.Kind {
		case KindPGA, KindPGV, KindSA:
		default:
			return NewConfigError("imts", "unsupported IMT "+imt.String())
		}
		curve, ok := c.ModelCurves[imt]
		if !ok {
			return NewConfigError("model_curves", "no model curve supplied for requested IMT "+imt.String())
		}
		if err := curve.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SortedIMTs returns the requested IMTs in a stable order, for
// deterministic iteration when building tensors and reports.
func (c CalcConfig) SortedIMTs() []IMT {
	out := make([]IMT, 0, len(c.IMTs))
	for imt := range c.IMTs {
		out = append(out, imt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
