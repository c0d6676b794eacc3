package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	domaincore "hazardcurve/domain/core"
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
	"hazardcurve/internal/hazard/source"
	"hazardcurve/internal/logging"
)

// Orchestrator runs the full pipeline (spec.md §4.1) over a worker pool
// whose size is fixed at construction (runtime.NumCPU() by default). It holds no
// per-run state, so one Orchestrator is reused across calls to Run.
type Orchestrator struct {
	sem *semaphore.Weighted
	log *logging.Logger
}

// NewOrchestrator builds a pool of poolSize slots, or runtime.NumCPU()
// slots when poolSize is zero or negative. The source
// holds a process-wide executor singleton; this constructor is the
// idiomatic replacement the design notes call for — callers that need a
// deterministic single-threaded run for property tests pass weight 1.
func NewOrchestrator(poolSize int) *Orchestrator {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	return &Orchestrator{sem: semaphore.NewWeighted(int64(poolSize)), log: logging.New("Orchestrator")}
}

// Run computes a HazardResult for (model, config, site), tagged with a
// freshly minted RunID for log correlation and for tagging result-cache rows.
// Configuration and site validation happen synchronously before any task
// is scheduled (spec.md §6); per-task failures are captured by the first
// goroutine that returns an error, cancelling the shared context so
// outstanding tasks stop submitting further work — in-flight tasks still
// run to completion, and their results are discarded (spec.md §5).
func (o *Orchestrator) Run(ctx context.Context, hm source.HazardModel, cfg core.CalcConfig, site core.Site) (domaincore.RunID, model.HazardResult, error) {
	runID := domaincore.NewRunID()
	o.log.Infof("run %s: starting", runID)

	if err := cfg.Validate(); err != nil {
		return runID, model.HazardResult{}, err
	}
	if err := site.Validate(); err != nil {
		return runID, model.HazardResult{}, err
	}

	sourceSets := hm.SourceSets()
	curveSets := make([]model.HazardCurveSet, len(sourceSets))

	g, gctx := errgroup.WithContext(ctx)
	for i, ss := range sourceSets {
		i, ss := i, ss
		g.Go(func() error {
			cs, err := o.runSourceSet(gctx, ss, cfg, site)
			if err != nil {
				return err
			}
			curveSets[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.log.Errorf("run %s: failed: %v", runID, err)
		return runID, model.HazardResult{}, err
	}

	o.log.Infof("run %s: completed, %d source sets", runID, len(curveSets))
	return runID, CurveSetConsolidator(curveSets, cfg.ModelCurves), nil
}

// runSourceSet dispatches to the ordinary or cluster branch and gathers
// its per-source (or per-cluster) results at the SourceSet's barrier
// before handing them to the consolidator.
func (o *Orchestrator) runSourceSet(ctx context.Context, ss source.SourceSet, cfg core.CalcConfig, site core.Site) (model.HazardCurveSet, error) {
	if css, ok := ss.(source.ClusterSourceSet); ok && ss.Type() == core.SourceTypeCluster {
		return o.runClusterSourceSet(ctx, css, cfg, site)
	}
	return o.runOrdinarySourceSet(ctx, ss, cfg, site)
}

func (o *Orchestrator) runOrdinarySourceSet(ctx context.Context, ss source.SourceSet, cfg core.CalcConfig, site core.Site) (model.HazardCurveSet, error) {
	sources := ss.LocationIterable(site)
	gmms := ss.GroundMotionModels().Gmms()
	imts := cfg.SortedIMTs()

	o.log.Infof("source-set %s: %d sources dispatched", ss.Name(), len(sources))
	results := make([]perSourceCurves, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		if err := o.sem.Acquire(gctx, 1); err != nil {
			// gctx is done: surface a failed task's own error, if any.
			if werr := g.Wait(); werr != nil {
				return model.HazardCurveSet{}, werr
			}
			return model.HazardCurveSet{}, core.ErrCancelled
		}
		g.Go(func() error {
			defer o.sem.Release(1)
			inputs, err := SourceToInputs(src, site)
			if err != nil {
				return err
			}
			gm, err := InputsToGroundMotions(inputs, gmms, imts)
			if err != nil {
				return err
			}
			curves, err := GroundMotionsToCurves(gm, inputs, cfg)
			if err != nil {
				return err
			}
			results[i] = perSourceCurves{inputs: inputs, curves: curves}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.HazardCurveSet{}, err
	}
	o.log.Infof("source-set %s: %d sources completed", ss.Name(), len(sources))
	return CurveConsolidator(ss, results)
}

func (o *Orchestrator) runClusterSourceSet(ctx context.Context, css source.ClusterSourceSet, cfg core.CalcConfig, site core.Site) (model.HazardCurveSet, error) {
	clusters := css.LocationIterableClusters(site)
	gmms := css.GroundMotionModels().Gmms()
	imts := cfg.SortedIMTs()

	o.log.Infof("source-set %s: %d clusters dispatched", css.Name(), len(clusters))
	results := make([]perClusterCurves, len(clusters))
	weights := make(map[string]float64, len(clusters))
	g, gctx := errgroup.WithContext(ctx)
	for i, cl := range clusters {
		i, cl := i, cl
		weights[cl.Name()] = cl.Weight()
		if err := o.sem.Acquire(gctx, 1); err != nil {
			// gctx is done: surface a failed task's own error, if any.
			if werr := g.Wait(); werr != nil {
				return model.HazardCurveSet{}, werr
			}
			return model.HazardCurveSet{}, core.ErrCancelled
		}
		g.Go(func() error {
			defer o.sem.Release(1)
			ci, err := ClusterSourceToInputs(cl, site)
			if err != nil {
				return err
			}
			cgm, err := ClusterInputsToGroundMotions(ci, gmms, imts)
			if err != nil {
				return err
			}
			curves, err := ClusterGroundMotionsToCurves(cgm, ci, cl, cfg)
			if err != nil {
				return err
			}
			results[i] = perClusterCurves{inputs: ci, curves: curves}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.HazardCurveSet{}, err
	}
	o.log.Infof("source-set %s: %d clusters completed", css.Name(), len(clusters))
	return ClusterCurveConsolidator(css, results, func(name string) float64 { return weights[name] })
}
