// Package report renders a computed HazardResult as a Markdown summary,
// using github.com/gomarkdown/markdown to confirm the document parses
// before handing it to a caller — result serialization is explicitly an
// external collaborator's job (spec.md §1), never the core's.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"

	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/diagnostics"
	"hazardcurve/internal/hazard/model"
)

// RenderMarkdown writes a per-SourceSet, per-IMT summary table for
// result. Returns the Markdown source; callers that need HTML can feed
// it straight to markdown.ToHTML.
func RenderMarkdown(result model.HazardResult) (string, error) {
	var b strings.Builder
	b.WriteString("# Hazard Curve Result\n\n")

	types := result.SourceTypes()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		fmt.Fprintf(&b, "## %s sources\n\n", t)
		for _, cs := range result.CurveSets(t) {
			fmt.Fprintf(&b, "### %s\n\n", cs.SourceSetName)
			summaries, err := diagnostics.Summarize(cs)
			if err != nil {
				return "", err
			}
			b.WriteString("| IMT | mean | stddev | min | max |\n")
			b.WriteString("|---|---|---|---|---|\n")
			for _, s := range summaries {
				fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %.4g |\n", s.IMT, s.Mean, s.StdDev, s.Min, s.Max)
			}
			b.WriteString("\n")
			if violations := diagnostics.CheckInvariants(cs); len(violations) > 0 {
				b.WriteString("**Invariant violations:**\n\n")
				for _, v := range violations {
					fmt.Fprintf(&b, "- %s\n", v)
				}
				b.WriteString("\n")
			}
			for _, imt := range cs.IMTs() {
				curve, ok := cs.TotalCurve(imt)
				if !ok {
					continue
				}
				grid, ok := result.ModelCurve(imt)
				if !ok {
					continue
				}
				fmt.Fprintf(&b, "#### %s\n\n", imt)
				b.WriteString(curveTableRows(grid, curve))
				b.WriteString("\n")
			}
		}
	}

	doc := b.String()
	// Render the document once through gomarkdown; only an empty
	// rendering is rejected. A malformed table still renders (as plain
	// text) and is not detected here.
	if markdown.ToHTML([]byte(doc), nil, nil) == nil {
		return "", fmt.Errorf("report: markdown rendering produced no output")
	}
	return doc, nil
}

// curveTableRows renders one curve's (x, y) pairs against its model
// curve grid, for a more detailed per-curve report section.
func curveTableRows(grid core.ModelCurve, curve model.Curve) string {
	var b strings.Builder
	b.WriteString("| x | y |\n|---|---|\n")
	for i := range grid {
		if i < len(curve) {
			fmt.Fprintf(&b, "| %.4g | %.6g |\n", grid[i], curve[i])
		}
	}
	return b.String()
}
