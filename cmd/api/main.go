// Command api exposes the hazard-curve pipeline over HTTP: a gin router
// for the calculation endpoint, mounted alongside a small chi mux for
// operational endpoints (health, debug) — two routers side by side,
// each used for what it is idiomatically good at, rather than forcing
// one framework to own both concerns.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"hazardcurve/adapters/modelcatalog"
	"hazardcurve/adapters/resultstore"
	domaincore "hazardcurve/domain/core"
	"hazardcurve/internal/config"
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/pipeline"
	"hazardcurve/internal/logging"
)

func main() {
	_ = godotenv.Load()
	log := logging.New("api")

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	var store *resultstore.Store
	if cfg.ResultStore.Enabled {
		store, err = resultstore.Open(context.Background(), cfg.ResultStore.DSN)
		if err != nil {
			log.Errorf("opening result store: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	orch := pipeline.NewOrchestrator(cfg.Pipeline.MaxConcurrency)

	router.POST("/v1/hazard-curve", func(c *gin.Context) {
		var req hazardCurveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hm, err := modelcatalog.LoadWorkbook(req.CatalogPath, demoGmmSet{})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		site := core.NewSite(core.Location{Lat: req.Lat, Lon: req.Lon}, req.Vs30, false)
		calcCfg := core.NewCalcConfig(
			[]core.IMT{core.PGA},
			core.SigmaTruncationOff,
			3,
			map[core.IMT]core.ModelCurve{core.PGA: {0.01, 0.1, 1.0}},
		)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		runID, result, err := orch.Run(ctx, hm, calcCfg, site)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "run_id": runID.String()})
			return
		}

		if store != nil {
			key := resultstore.Key(
				domaincore.HashString("%s", req.CatalogPath),
				domaincore.HashString("%v", calcCfg),
				domaincore.HashString("%v", site),
			)
			if err := store.Put(ctx, key, runID, result); err != nil {
				log.Warnf("run %s: caching result failed: %v", runID, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"run_id": runID.String(), "source_types": result.SourceTypes()})
	})

	debugMux := chi.NewRouter()
	debugMux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	debugMux.Get("/debug/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if store == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("result store is disabled in this deployment"))
			return
		}
		sets, ok, err := store.GetByRunID(r.Context(), id)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("run " + id + " not found"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sets)
	})

	mux := http.NewServeMux()
	mux.Handle("/healthz", debugMux)
	mux.Handle("/debug/", debugMux)
	mux.Handle("/", router)

	log.Infof("listening on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, mux); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

type hazardCurveRequest struct {
	CatalogPath string  `json:"catalog_path" binding:"required"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Vs30        float64 `json:"vs30" binding:"required"`
}

// demoGMM is a placeholder ground-motion model: concrete GMM formulas are
// an external collaborator (spec.md §1), so this service ships one
// constant stand-in rather than a real published model.
type demoGMM struct{}

func (demoGMM) ID() core.GMMID         { return "DEMO" }
func (demoGMM) Supports(core.IMT) bool { return true }
func (demoGMM) Calc(core.IMT, core.GmmInput) core.ScalarGroundMotion {
	return core.ScalarGroundMotion{Mean: -1.0, Sigma: 0.6}
}

type demoGmmSet struct{}

func (demoGmmSet) Gmms() []core.GMM { return []core.GMM{demoGMM{}} }
func (demoGmmSet) GmmWeightMap(float64) map[core.GMMID]float64 {
	return map[core.GMMID]float64{"DEMO": 1.0}
}
