package resultstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	domaincore "hazardcurve/domain/core"
	"hazardcurve/internal/hazard/core"
	"hazardcurve/internal/hazard/model"
)

// Key must be deterministic and order-sensitive — callers rely on
// hashing the same (model, config, site) triple the same way every
// time for a cache hit.
func TestKey_DeterministicAndOrderSensitive(t *testing.T) {
	a := domaincore.HashString("%s", "model-a")
	b := domaincore.HashString("%s", "config-b")
	c := domaincore.HashString("%s", "site-c")

	k1 := Key(a, b, c)
	k2 := Key(a, b, c)
	require.Equal(t, k1, k2)

	k3 := Key(c, b, a)
	require.NotEqual(t, k1, k3)
}

func buildCurveSet(t *testing.T) model.HazardCurveSet {
	t.Helper()
	b := model.NewHazardCurveSetBuilder("ss1", core.SourceTypeOrdinary, 1.0)
	b.Accumulate(core.PGA, "GMM1", model.Curve{0.1, 0.2, 0.3}, 1.0)
	cs, err := b.Build()
	require.NoError(t, err)
	return cs
}

// toCached's projection must round-trip through JSON the way Put/Get
// serialize it against the payload column.
func TestToCached_JSONRoundTrip(t *testing.T) {
	runID := domaincore.NewRunID()
	result := model.NewHazardResult([]model.HazardCurveSet{buildCurveSet(t)}, map[core.IMT]core.ModelCurve{
		core.PGA: {0.1, 0.2, 0.3},
	})

	cr := toCached(runID, result)
	require.Equal(t, runID.String(), cr.RunID)
	require.Len(t, cr.Sets, 1)
	require.Equal(t, "ss1", cr.Sets[0].SourceSetName)
	require.Equal(t, []float64{0.1, 0.2, 0.3}, cr.Sets[0].TotalCurves["PGA"])

	payload, err := json.Marshal(cr)
	require.NoError(t, err)

	var roundTripped cachedResult
	require.NoError(t, json.Unmarshal(payload, &roundTripped))
	require.Equal(t, cr, roundTripped)
}
