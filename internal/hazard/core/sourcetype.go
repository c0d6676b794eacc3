package core

// SourceType distinguishes the two structurally different source families
// spec.md §1 names: ordinary sources (area/fault/grid, summed rupture
// rates) and cluster sources (joint-rupturing fault sets combined by
// inclusion-exclusion, spec.md §4.5). HazardResult (spec.md §3) is keyed
// by SourceType.
type SourceType string

const (
	SourceTypeOrdinary SourceType = "ORDINARY"
	SourceTypeCluster  SourceType = "CLUSTER"
)
