package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcConfigValidate_EmptyIMTs(t *testing.T) {
	cfg := NewCalcConfig(nil, SigmaTruncationOff, 3, map[IMT]ModelCurve{})
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, IsConfigError(err))
}

func TestCalcConfigValidate_UnknownSigmaModel(t *testing.T) {
	cfg := NewCalcConfig([]IMT{PGA}, SigmaModel("BOGUS"), 3, map[IMT]ModelCurve{PGA: {0.1, 1.0}})
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, IsConfigError(err))
}

func TestCalcConfigValidate_MissingModelCurve(t *testing.T) {
	cfg := NewCalcConfig([]IMT{PGA, PGV}, SigmaTruncationOff, 3, map[IMT]ModelCurve{PGA: {0.1, 1.0}})
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, IsConfigError(err))
}

func TestCalcConfigValidate_NonMonotonicCurve(t *testing.T) {
	cfg := NewCalcConfig([]IMT{PGA}, SigmaTruncationOff, 3, map[IMT]ModelCurve{PGA: {1.0, 0.5}})
	err := cfg.Validate()
	require.Error(t, err)
}

func TestCalcConfigValidate_OK(t *testing.T) {
	cfg := NewCalcConfig([]IMT{PGA, SA(0.2)}, SigmaTruncationLowerUpper, 3, map[IMT]ModelCurve{
		PGA:     {0.01, 0.1, 1.0},
		SA(0.2): {0.01, 0.1, 1.0},
	})
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.SortedIMTs(), 2)
}

func TestSiteValidate(t *testing.T) {
	bad := NewSite(Location{}, 100, false)
	require.True(t, IsConfigError(bad.Validate()))

	good := NewSite(Location{}, 760, false)
	require.NoError(t, good.Validate())

	good.Z1p0 = 1.0
	good.Z2p5 = 2.0
	require.NoError(t, good.Validate())

	good.Z2p5 = 10
	require.True(t, IsConfigError(good.Validate()))
}

func TestIMTString(t *testing.T) {
	require.Equal(t, "PGA", PGA.String())
	require.Equal(t, "PGV", PGV.String())
	require.Equal(t, "SA(0.2)", SA(0.2).String())
	require.Equal(t, "SA(1)", SA(1.0).String())
}

func TestCeusClamp(t *testing.T) {
	require.Equal(t, 3.0, CeusClamp(PGA))
	require.Equal(t, 400.0, CeusClamp(PGV))
	require.Equal(t, 6.0, CeusClamp(SA(0.05)))
	require.True(t, CeusClamp(SA(1.0)) > 1e300)
}
