package lifecycle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/lifecycle"
)

func TestGate_AdvanceAndRequire(t *testing.T) {
	g := lifecycle.NewGate("Widget")
	require.Equal(t, lifecycle.Constructed, g.Status())
	require.Error(t, g.Require(lifecycle.Prepared))

	g.Advance(lifecycle.Prepared)
	require.NoError(t, g.Require(lifecycle.Prepared))
	require.Error(t, g.Require(lifecycle.Computed))

	g.Advance(lifecycle.Computed)
	require.NoError(t, g.Require(lifecycle.Computed))
}

func TestGate_RequireErrorIsStatusMismatch(t *testing.T) {
	g := lifecycle.NewGate("Widget")
	err := g.Require(lifecycle.Computed)
	require.ErrorIs(t, err, lifecycle.ErrStatusMismatch)
}

func TestThermal_MatsubaraFrequencies(t *testing.T) {
	th := lifecycle.NewThermal(10.0)
	require.InDelta(t, math.Pi/10, th.MatsubaraFermionic(0), 1e-12)
	require.InDelta(t, 3*math.Pi/10, th.MatsubaraFermionic(1), 1e-12)
	require.InDelta(t, 0.0, th.MatsubaraBosonic(0), 1e-12)
	require.InDelta(t, 2*math.Pi/10, th.MatsubaraBosonic(1), 1e-12)
}
