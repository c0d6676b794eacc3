// Package resultstore caches computed HazardResults in Postgres, keyed
// by a combined hash of the model, config, and site that produced them —
// re-running the same calculation against an unchanged catalog is pure
// waste. Wired with github.com/jmoiron/sqlx over github.com/lib/pq, the
// way the teacher's own persistence layer wraps database/sql.
package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"hazardcurve/domain/core"
	"hazardcurve/internal/errors"
	"hazardcurve/internal/hazard/model"
)

// Store is a Postgres-backed HazardResult cache.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres using dsn and ensures the cache table
// exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "resultstore: connect")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return nil, errors.Wrap(err, "resultstore: migrate")
	}
	return &Store{db: db}, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS hazard_result_cache (
	cache_key   TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

// Key builds the cache key for a (model, config, site) triple, folding
// their hashes together in a fixed order — callers must hash the same
// way every time or cache hits silently stop matching.
func Key(modelHash, configHash, siteHash core.Hash) core.Hash {
	return core.Combine(modelHash, configHash, siteHash)
}

// cachedResult is the JSON-serializable projection of a HazardResult
// stored in the payload column. model.HazardResult keeps its fields
// unexported (it is immutable-by-construction for the pipeline), so the
// store works off this flattened shape rather than the domain type
// directly.
type cachedResult struct {
	RunID string               `json:"run_id"`
	Sets  []cachedCurveSet     `json:"sets"`
}

type cachedCurveSet struct {
	SourceSetName string                 `json:"source_set_name"`
	SourceType    string                 `json:"source_type"`
	TotalCurves   map[string][]float64   `json:"total_curves"`
}

// Put stores result under key, tagged with runID for log correlation.
func (s *Store) Put(ctx context.Context, key core.Hash, runID core.RunID, result model.HazardResult) error {
	cr := toCached(runID, result)
	payload, err := json.Marshal(cr)
	if err != nil {
		return errors.Wrap(err, "resultstore: marshal")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hazard_result_cache (cache_key, run_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cache_key) DO UPDATE SET run_id = EXCLUDED.run_id, payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`,
		key.String(), runID.String(), payload, time.Now())
	if err != nil {
		return errors.Wrap(err, "resultstore: insert")
	}
	return nil
}

// Get looks up a cached result by key. ok is false on a cache miss.
func (s *Store) Get(ctx context.Context, key core.Hash) (runID string, sets []cachedCurveSet, ok bool, err error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM hazard_result_cache WHERE cache_key = $1`, key.String())
	if scanErr := row.Scan(&payload); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return "", nil, false, nil
		}
		return "", nil, false, errors.Wrap(scanErr, "resultstore: scan")
	}
	var cr cachedResult
	if unmarshalErr := json.Unmarshal(payload, &cr); unmarshalErr != nil {
		return "", nil, false, errors.Wrap(unmarshalErr, "resultstore: unmarshal")
	}
	return cr.RunID, cr.Sets, true, nil
}

// GetByRunID looks up a cached result by the RunID it was tagged with,
// for callers (the debug/ops surface) that only have the run's
// correlation ID, not its cache key. ok is false if no row matches.
func (s *Store) GetByRunID(ctx context.Context, runID string) (sets []cachedCurveSet, ok bool, err error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM hazard_result_cache WHERE run_id = $1`, runID)
	if scanErr := row.Scan(&payload); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(scanErr, "resultstore: scan")
	}
	var cr cachedResult
	if unmarshalErr := json.Unmarshal(payload, &cr); unmarshalErr != nil {
		return nil, false, errors.Wrap(unmarshalErr, "resultstore: unmarshal")
	}
	return cr.Sets, true, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

func toCached(runID core.RunID, result model.HazardResult) cachedResult {
	cr := cachedResult{RunID: runID.String()}
	for _, cs := range result.AllCurveSets() {
		entry := cachedCurveSet{
			SourceSetName: cs.SourceSetName,
			SourceType:    string(cs.SourceType),
			TotalCurves:   make(map[string][]float64),
		}
		for _, imt := range cs.IMTs() {
			if curve, ok := cs.TotalCurve(imt); ok {
				entry.TotalCurves[imt.String()] = []float64(curve)
			}
		}
		cr.Sets = append(cr.Sets, entry)
	}
	return cr
}
