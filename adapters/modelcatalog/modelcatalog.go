// Package modelcatalog loads a hazard model catalog from a spreadsheet
// workbook, using github.com/xuri/excelize/v2 the way the teacher's own
// workbook reader walks sheet rows into typed records. Parsing the
// on-disk hazard model format is explicitly out of scope for the core
// (spec.md §1) — this package is the external collaborator that
// satisfies source.HazardModel from a concrete file.
package modelcatalog

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"hazardcurve/internal/errors"
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/source"
)

// sourceRow mirrors one data row of the "Sources" sheet.
type sourceRow struct {
	sourceSetName string
	sourceName    string
	rJB, rRup, rX float64
	dip           float64
	width         float64
	depth         float64
	mag           float64
	rake          float64
	rate          float64
	maxDistance   float64
	weight        float64
}

// LoadWorkbook reads a hazard model catalog from path. Sheet layout:
// "Sources" with columns
// SourceSet, Source, RJB, RRup, RX, Dip, Width, Depth, Mag, Rake, Rate, MaxDistance, Weight.
// One row per rupture; rows sharing SourceSet/Source are grouped.
//
// The workbook carries geometry and occurrence rates only; GMM
// coefficients are a separate external collaborator (spec.md §1), so
// gmms is applied uniformly to every SourceSet the workbook describes.
func LoadWorkbook(path string, gmms source.GmmSet) (source.HazardModel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "modelcatalog: open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows("Sources")
	if err != nil {
		return nil, errors.Wrap(err, "modelcatalog: read Sources sheet")
	}
	if len(rows) < 2 {
		return nil, errors.ValidationError("modelcatalog: Sources sheet has no data rows")
	}

	var parsed []sourceRow
	for i, row := range rows[1:] {
		r, err := parseSourceRow(row)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("modelcatalog: row %d", i+2))
		}
		parsed = append(parsed, r)
	}

	return buildModel(parsed, gmms), nil
}

func parseSourceRow(row []string) (sourceRow, error) {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	f := func(i int) (float64, error) { return strconv.ParseFloat(get(i), 64) }

	rJB, err := f(2)
	if err != nil {
		return sourceRow{}, err
	}
	rRup, err := f(3)
	if err != nil {
		return sourceRow{}, err
	}
	rX, err := f(4)
	if err != nil {
		return sourceRow{}, err
	}
	dip, err := f(5)
	if err != nil {
		return sourceRow{}, err
	}
	width, err := f(6)
	if err != nil {
		return sourceRow{}, err
	}
	depth, err := f(7)
	if err != nil {
		return sourceRow{}, err
	}
	mag, err := f(8)
	if err != nil {
		return sourceRow{}, err
	}
	rake, err := f(9)
	if err != nil {
		return sourceRow{}, err
	}
	rate, err := f(10)
	if err != nil {
		return sourceRow{}, err
	}
	maxDist, err := f(11)
	if err != nil {
		return sourceRow{}, err
	}
	weight, err := f(12)
	if err != nil {
		return sourceRow{}, err
	}

	return sourceRow{
		sourceSetName: get(0),
		sourceName:    get(1),
		rJB:           rJB,
		rRup:          rRup,
		rX:            rX,
		dip:           dip,
		width:         width,
		depth:         depth,
		mag:           mag,
		rake:          rake,
		rate:          rate,
		maxDistance:   maxDist,
		weight:        weight,
	}, nil
}

func buildModel(rows []sourceRow, gmms source.GmmSet) source.HazardModel {
	type sourceKey struct{ setName, srcName string }
	ruptureAcc := make(map[sourceKey][]source.Rupture)
	var sourceOrder []sourceKey
	setWeight := make(map[string]float64)
	setMaxDist := make(map[string]float64)
	var setOrder []string
	setSeen := make(map[string]bool)

	for _, r := range rows {
		key := sourceKey{r.sourceSetName, r.sourceName}
		if _, ok := ruptureAcc[key]; !ok {
			sourceOrder = append(sourceOrder, key)
		}
		ruptureAcc[key] = append(ruptureAcc[key], wireRupture{
			rate: r.rate, mag: r.mag, rake: r.rake,
			surface: wireSurface{rJB: r.rJB, rRup: r.rRup, rX: r.rX, dip: r.dip, width: r.width, depth: r.depth},
		})
		setWeight[r.sourceSetName] = r.weight
		setMaxDist[r.sourceSetName] = r.maxDistance
		if !setSeen[r.sourceSetName] {
			setSeen[r.sourceSetName] = true
			setOrder = append(setOrder, r.sourceSetName)
		}
	}

	bySet := make(map[string][]source.Source)
	for _, key := range sourceOrder {
		bySet[key.setName] = append(bySet[key.setName], wireSource{name: key.srcName, ruptures: ruptureAcc[key]})
	}

	var sets []source.SourceSet
	for _, name := range setOrder {
		sets = append(sets, wireSourceSet{
			name:        name,
			weight:      setWeight[name],
			maxDistance: setMaxDist[name],
			sources:     bySet[name],
			gmms:        gmms,
		})
	}
	return wireModel{sets: sets}
}

type wireModel struct{ sets []source.SourceSet }

func (m wireModel) SourceSets() []source.SourceSet { return m.sets }

type wireSurface struct {
	rJB, rRup, rX, dip, width, depth float64
}

func (s wireSurface) DistanceTo(core.Location) source.Distances {
	return source.Distances{RJB: s.rJB, RRup: s.rRup, RX: s.rX}
}
func (s wireSurface) Dip() float64   { return s.dip }
func (s wireSurface) Width() float64 { return s.width }
func (s wireSurface) Depth() float64 { return s.depth }

type wireRupture struct {
	rate, mag, rake float64
	surface         wireSurface
}

func (r wireRupture) Rate() float64                  { return r.rate }
func (r wireRupture) Mag() float64                   { return r.mag }
func (r wireRupture) Rake() float64                  { return r.rake }
func (r wireRupture) Surface() source.RuptureSurface { return r.surface }

type wireSource struct {
	name     string
	ruptures []source.Rupture
}

func (s wireSource) Name() string               { return s.name }
func (s wireSource) Ruptures() []source.Rupture { return s.ruptures }

// wireSourceSet is a plain SourceSet. Its GMM catalog is supplied by the
// LoadWorkbook caller rather than read from the sheet — the workbook
// carries geometry and rates, not GMM coefficients (those remain a
// separate external collaborator per spec.md §1).
type wireSourceSet struct {
	name        string
	weight      float64
	maxDistance float64
	sources     []source.Source
	gmms        source.GmmSet
}

func (s wireSourceSet) Name() string         { return s.name }
func (s wireSourceSet) Type() core.SourceType { return core.SourceTypeOrdinary }
func (s wireSourceSet) Weight() float64       { return s.weight }
func (s wireSourceSet) MaxDistance() float64  { return s.maxDistance }
func (s wireSourceSet) GroundMotionModels() source.GmmSet { return s.gmms }
func (s wireSourceSet) LocationIterable(site core.Site) []source.Source {
	var out []source.Source
	for _, src := range s.sources {
		if minDistance(src, site) <= s.maxDistance {
			out = append(out, src)
		}
	}
	return out
}

func minDistance(src source.Source, site core.Site) float64 {
	min := -1.0
	for _, r := range src.Ruptures() {
		d := r.Surface().DistanceTo(site.Location)
		if min < 0 || d.RJB < min {
			min = d.RJB
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
