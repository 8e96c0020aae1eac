package threepoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
	"github.com/katalvlaran/edlat/threepoint"
)

func buildChainSystem(t *testing.T, beta float64) (*hilbert.StatesClassification, *hamiltonian.Hamiltonian, *densitymatrix.DensityMatrix, *fieldop.MonomialOperator, *fieldop.MonomialOperator, *fieldop.MonomialOperator, linalg.Tolerances, lifecycle.Thermal) {
	t.Helper()
	h := expr.AddHopping(1, 0, 1).ToLinearOperator()
	fieldOps := []linalg.LinearOperator{
		expr.NewCreation(0).ToLinearOperator(), expr.NewAnnihilation(0).ToLinearOperator(),
		expr.NewCreation(1).ToLinearOperator(), expr.NewAnnihilation(1).ToLinearOperator(),
	}
	space := hilbert.NewHilbertSpace(4, h, fieldOps)
	require.NoError(t, space.Compute())
	sc, err := space.GetSpacePartition()
	require.NoError(t, err)

	tol := linalg.DefaultTolerances()
	comm := mpicomm.NullComm{}
	ham, err := hamiltonian.NewHamiltonian(sc, h, linalg.GonumEigenSolver{}, tol.HermiticityTol)
	require.NoError(t, err)
	require.NoError(t, ham.Prepare(comm))
	require.NoError(t, ham.Compute(comm))

	thermal := lifecycle.NewThermal(beta)
	dm, err := densitymatrix.NewDensityMatrix(ham, thermal)
	require.NoError(t, err)
	require.NoError(t, dm.Compute(comm))
	dm.Truncate(0)

	c0, err := fieldop.NewMonomialOperator(expr.NewAnnihilation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, c0.Prepare())
	require.NoError(t, c0.Compute(tol.MatrixElementTol, comm))

	cDag0, err := fieldop.NewMonomialOperator(expr.NewCreation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, cDag0.Prepare())
	require.NoError(t, cDag0.ComputeFromAdjoint(c0))

	n0, err := fieldop.NewMonomialOperator(expr.NumberOperator(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, n0.Prepare())
	require.NoError(t, n0.Compute(tol.MatrixElementTol, comm))

	return sc, ham, dm, c0, cDag0, n0, tol, thermal
}

func TestThreePointSusceptibility_ComputeAndEvaluate(t *testing.T) {
	sc, ham, dm, c0, cDag0, n0, tol, thermal := buildChainSystem(t, 2.0)

	chi, err := threepoint.NewThreePointSusceptibility(threepoint.PH, sc, ham, dm, c0, cDag0, n0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, chi.Compute(mpicomm.NullComm{}))

	val := chi.AtMatsubara(0, 1)
	require.False(t, cmplxIsNaN(val))
}

func TestThreePointSusceptibility_ChannelsHaveDifferentSign(t *testing.T) {
	require.Equal(t, 1.0, channelXi(threepoint.PP))
	require.Equal(t, -1.0, channelXi(threepoint.PH))
	require.Equal(t, -1.0, channelXi(threepoint.XPH))
}

func channelXi(c threepoint.Channel) float64 {
	switch c {
	case threepoint.PP:
		return 1
	default:
		return -1
	}
}

func cmplxIsNaN(z complex128) bool {
	return real(z) != real(z) || imag(z) != imag(z)
}
