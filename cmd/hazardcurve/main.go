// Command hazardcurve runs the hazard-curve pipeline against a workbook
// catalog and a site, printing a Markdown report. It is the thin CLI
// collaborator spec.md §1 places outside the core: catalog parsing,
// configuration loading, and report rendering all happen here, never in
// internal/hazard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"hazardcurve/adapters/modelcatalog"
	"hazardcurve/adapters/report"
	"hazardcurve/adapters/resultstore"
	domaincore "hazardcurve/domain/core"
	"hazardcurve/internal/config"
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/pipeline"
	"hazardcurve/internal/logging"
)

// demoGMM is a placeholder ground-motion model: concrete GMM formulas are
// an external collaborator (spec.md §1), so this CLI ships one constant
// stand-in rather than a real published model.
type demoGMM struct{}

func (demoGMM) ID() core.GMMID            { return "DEMO" }
func (demoGMM) Supports(core.IMT) bool    { return true }
func (demoGMM) Calc(core.IMT, core.GmmInput) core.ScalarGroundMotion {
	return core.ScalarGroundMotion{Mean: -1.0, Sigma: 0.6}
}

type demoGmmSet struct{}

func (demoGmmSet) Gmms() []core.GMM { return []core.GMM{demoGMM{}} }
func (demoGmmSet) GmmWeightMap(float64) map[core.GMMID]float64 {
	return map[core.GMMID]float64{"DEMO": 1.0}
}

func main() {
	_ = godotenv.Load()
	log := logging.New("hazardcurve")

	workbook := flag.String("catalog", "", "path to the hazard model workbook (.xlsx)")
	lat := flag.Float64("lat", 0, "site latitude")
	lon := flag.Float64("lon", 0, "site longitude")
	vs30 := flag.Float64("vs30", 760, "site Vs30 (m/s)")
	flag.Parse()

	if *workbook == "" {
		fmt.Fprintln(os.Stderr, "usage: hazardcurve -catalog model.xlsx [-lat 34.0 -lon -118.0 -vs30 760]")
		os.Exit(2)
	}

	appCfg, err := config.Load()
	if err != nil {
		log.Errorf("loading configuration: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var store *resultstore.Store
	if appCfg.ResultStore.Enabled {
		store, err = resultstore.Open(ctx, appCfg.ResultStore.DSN)
		if err != nil {
			log.Errorf("opening result store: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	hm, err := modelcatalog.LoadWorkbook(*workbook, demoGmmSet{})
	if err != nil {
		log.Errorf("loading catalog: %v", err)
		os.Exit(1)
	}

	site := core.NewSite(core.Location{Lat: *lat, Lon: *lon}, *vs30, false)
	cfg := core.NewCalcConfig(
		[]core.IMT{core.PGA},
		core.SigmaTruncationOff,
		3,
		map[core.IMT]core.ModelCurve{
			core.PGA: defaultPgaGrid(),
		},
	)

	cacheKey := resultstore.Key(
		domaincore.HashString("%s", *workbook),
		domaincore.HashString("%v", cfg),
		domaincore.HashString("%v", site),
	)

	if store != nil {
		if _, _, ok, err := store.Get(ctx, cacheKey); err != nil {
			log.Warnf("result store lookup failed: %v", err)
		} else if ok {
			log.Infof("cache hit for %s", cacheKey.String())
		}
	}

	orch := pipeline.NewOrchestrator(appCfg.Pipeline.MaxConcurrency)
	runID, result, err := orch.Run(ctx, hm, cfg, site)
	if err != nil {
		log.Errorf("run %s: computing hazard curves: %v", runID, err)
		os.Exit(1)
	}

	if store != nil {
		if err := store.Put(ctx, cacheKey, runID, result); err != nil {
			log.Warnf("run %s: caching result failed: %v", runID, err)
		}
	}

	doc, err := report.RenderMarkdown(result)
	if err != nil {
		log.Errorf("run %s: rendering report: %v", runID, err)
		os.Exit(1)
	}
	fmt.Println(doc)
}

func defaultPgaGrid() core.ModelCurve {
	return core.ModelCurve{0.0025, 0.005, 0.01, 0.02, 0.04, 0.08, 0.15, 0.3, 0.5, 0.75, 1.0, 1.5}
}
