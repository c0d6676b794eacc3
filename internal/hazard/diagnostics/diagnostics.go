// Package diagnostics computes summary statistics and sanity checks over
// a computed HazardResult without altering it — observability, not
// computation. It leans on github.com/montanaflynn/stats for the
// summary numbers, the way the teacher's profiling code does for its own
// distributions.
package diagnostics

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
)

// CurveSummary holds descriptive statistics over one curve's ordinates.
type CurveSummary struct {
	IMT    core.IMT
	Mean   float64
	StdDev float64
	Max    float64
	Min    float64
}

// Summarize computes a CurveSummary for every IMT in a HazardCurveSet's
// totalCurves.
func Summarize(cs model.HazardCurveSet) ([]CurveSummary, error) {
	var out []CurveSummary
	for _, imt := range cs.IMTs() {
		curve, ok := cs.TotalCurve(imt)
		if !ok {
			continue
		}
		data := stats.Float64Data(curve)
		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("diagnostics: mean for %s: %w", imt, err)
		}
		sd, err := data.StandardDeviation()
		if err != nil {
			return nil, fmt.Errorf("diagnostics: stddev for %s: %w", imt, err)
		}
		max, err := data.Max()
		if err != nil {
			return nil, fmt.Errorf("diagnostics: max for %s: %w", imt, err)
		}
		min, err := data.Min()
		if err != nil {
			return nil, fmt.Errorf("diagnostics: min for %s: %w", imt, err)
		}
		out = append(out, CurveSummary{IMT: imt, Mean: mean, StdDev: sd, Max: max, Min: min})
	}
	return out, nil
}

// CheckInvariants runs the fast, cheap half of spec.md §8's property
// checks against a computed result: non-negativity (property 1) and
// non-increasing monotonicity in x (property 2) for every IMT's total
// curve; the per-(imt, gmm) curves are not checked. It
// never mutates the result; a violation is reported, not corrected —
// correctness bugs upstream should fail loudly, not be silently patched
// here.
func CheckInvariants(cs model.HazardCurveSet) []string {
	var violations []string
	for _, imt := range cs.IMTs() {
		curve, ok := cs.TotalCurve(imt)
		if !ok {
			continue
		}
		for i, y := range curve {
			if y < 0 {
				violations = append(violations, fmt.Sprintf("%s: negative ordinate at index %d: %g", imt, i, y))
			}
			if i > 0 && y > curve[i-1] {
				violations = append(violations, fmt.Sprintf("%s: non-monotonic at index %d: %g > %g", imt, i, y, curve[i-1]))
			}
		}
	}
	return violations
}
