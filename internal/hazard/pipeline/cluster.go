package pipeline

import (
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
	"hazardcurve/internal/hazard/source"
)

// ClusterSourceToInputs builds a ClusterInputs: one HazardInputs per
// constituent fault, concatenating every magnitude variant's ruptures
// with TemporalGmmInput.Rate overwritten to the variant's weight
// (spec.md §4.5's documented rate/weight overload — every rupture
// belonging to the same variant carries that variant's weight, so a
// plain GroundMotionsToCurves pass over the fault's combined entries
// already computes the weighted sum-over-variants the spec calls
// magVarCurve).
func ClusterSourceToInputs(cs source.ClusterSource, site core.Site) (model.ClusterInputs, error) {
	faults := cs.Faults()
	out := model.ClusterInputs{ClusterName: cs.Name(), Faults: make([]model.HazardInputs, len(faults))}
	for fi, fault := range faults {
		b := model.NewHazardInputsBuilder(fault.Name())
		for _, variant := range fault.Variants() {
			vi, err := SourceToInputs(variant.Source, site)
			if err != nil {
				return model.ClusterInputs{}, err
			}
			for _, entry := range vi.Entries {
				entry.Rate = variant.Weight
				b.Append(entry)
			}
		}
		hi, err := b.Build()
		if err != nil {
			return model.ClusterInputs{}, err
		}
		out.Faults[fi] = hi
	}
	return out, nil
}

// ClusterInputsToGroundMotions runs InputsToGroundMotions per fault.
func ClusterInputsToGroundMotions(ci model.ClusterInputs, gmms []core.GMM, imts []core.IMT) (model.ClusterGroundMotions, error) {
	out := model.ClusterGroundMotions{ClusterName: ci.ClusterName, Faults: make([]model.HazardGroundMotions, len(ci.Faults))}
	for i, fi := range ci.Faults {
		gm, err := InputsToGroundMotions(fi, gmms, imts)
		if err != nil {
			return model.ClusterGroundMotions{}, err
		}
		out.Faults[i] = gm
	}
	return out, nil
}

// calcClusterExceedProb performs the pointwise inclusion-exclusion of
// spec.md §4.5 step 3: P_cluster(x) = 1 - prod_f (1 - p_f(x)).
func calcClusterExceedProb(perFault []model.Curve) model.Curve {
	if len(perFault) == 0 {
		return nil
	}
	n := len(perFault[0])
	out := model.NewCurve(n)
	for j := 0; j < n; j++ {
		prod := 1.0
		for _, c := range perFault {
			prod *= 1 - c[j]
		}
		out[j] = 1 - prod
	}
	return out
}

// ClusterGroundMotionsToCurves computes the joint-exceedance curve for
// every (imt, gmm) present across the cluster's faults, scaled by the
// cluster's annual rate (spec.md §4.5).
func ClusterGroundMotionsToCurves(cgm model.ClusterGroundMotions, ci model.ClusterInputs, cs source.ClusterSource, cfg core.CalcConfig) (model.ClusterCurves, error) {
	faultCurves := make([]model.HazardCurves, len(cgm.Faults))
	for i, gm := range cgm.Faults {
		hc, err := GroundMotionsToCurves(gm, ci.Faults[i], cfg)
		if err != nil {
			return model.ClusterCurves{}, err
		}
		faultCurves[i] = hc
	}

	imtSet := map[core.IMT]bool{}
	for _, hc := range faultCurves {
		for _, imt := range hc.IMTs() {
			imtSet[imt] = true
		}
	}

	cells := make(map[core.IMT]map[core.GMMID]model.Curve)
	rate := cs.Rate()
	for imt := range imtSet {
		gmmSet := map[core.GMMID]bool{}
		for _, hc := range faultCurves {
			for _, gmm := range hc.GMMs(imt) {
				gmmSet[gmm] = true
			}
		}
		byGmm := make(map[core.GMMID]model.Curve)
		for gmmID := range gmmSet {
			var perFault []model.Curve
			for _, hc := range faultCurves {
				if c, ok := hc.Cell(imt, gmmID); ok {
					perFault = append(perFault, c)
				}
			}
			joint := calcClusterExceedProb(perFault)
			scaled := model.NewCurve(len(joint))
			scaled.AddScaled(joint, rate)
			byGmm[gmmID] = scaled
		}
		cells[imt] = byGmm
	}

	return model.NewClusterCurves(cs.Name(), cells), nil
}
