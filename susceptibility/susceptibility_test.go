package susceptibility_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/idx"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
	"github.com/katalvlaran/edlat/susceptibility"
)

type site struct{ label string }

func buildDimer(t *testing.T, beta float64) (*hilbert.StatesClassification, *hamiltonian.Hamiltonian, *densitymatrix.DensityMatrix, *fieldop.MonomialOperator, linalg.Tolerances, lifecycle.Thermal) {
	t.Helper()
	indices := idx.New(site{"0"}, site{"1"})
	_ = indices
	h := expr.AddHopping(1, 0, 1).Add(expr.AddLevel(0.5, 0)).Add(expr.AddLevel(-0.5, 1)).ToLinearOperator()
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

	nUp0, err := fieldop.NewMonomialOperator(expr.NumberOperator(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, nUp0.Prepare())
	require.NoError(t, nUp0.Compute(tol.MatrixElementTol, comm))

	return sc, ham, dm, nUp0, tol, thermal
}

func TestSusceptibility_ComputeAndConnected(t *testing.T) {
	sc, ham, dm, n0, tol, thermal := buildDimer(t, 2.0)

	chi, err := susceptibility.NewSusceptibility(sc, ham, dm, n0, n0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, chi.Compute(mpicomm.NullComm{}))

	avg, err := susceptibility.EnsembleAverage(sc, ham, dm, n0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, avg, 0.0)
	require.LessOrEqual(t, avg, 1.0)

	connected := chi.Connected(avg, avg)
	require.False(t, cmplxIsNaN(connected))
}

func TestSusceptibility_AtMatsubaraZeroUsesZeroPoleWeight(t *testing.T) {
	sc, ham, dm, n0, tol, thermal := buildDimer(t, 3.0)
	chi, err := susceptibility.NewSusceptibility(sc, ham, dm, n0, n0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, chi.Compute(mpicomm.NullComm{}))

	v0 := chi.AtMatsubara(0)
	require.False(t, cmplxIsNaN(v0))
	// n_0 is Hermitian and the Hamiltonian is real, so every residue is real
	// and chi(0) must be real.
	require.InDelta(t, 0.0, imag(v0), 1e-8)
}

func TestSusceptibility_AtTauIsNotNaN(t *testing.T) {
	sc, ham, dm, n0, tol, thermal := buildDimer(t, 3.0)
	chi, err := susceptibility.NewSusceptibility(sc, ham, dm, n0, n0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, chi.Compute(mpicomm.NullComm{}))
	require.False(t, cmplxIsNaN(chi.AtTau(1.5)))
}

func cmplxIsNaN(z complex128) bool {
	return real(z) != real(z) || imag(z) != imag(z)
}
