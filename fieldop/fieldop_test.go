package fieldop_test

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
)

type site struct{ label string }

func buildTwoSiteSystem(t *testing.T) (*hilbert.StatesClassification, *hamiltonian.Hamiltonian, *densitymatrix.DensityMatrix, *idx.Map[site]) {
	t.Helper()
	indices := idx.New(site{"0"}, site{"1"})
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
	ham, err := hamiltonian.NewHamiltonian(sc, h, linalg.GonumEigenSolver{}, tol.HermiticityTol)
	require.NoError(t, err)
	comm := mpicomm.NullComm{}
	require.NoError(t, ham.Prepare(comm))
	require.NoError(t, ham.Compute(comm))

	dm, err := densitymatrix.NewDensityMatrix(ham, lifecycle.NewThermal(2.0))
	require.NoError(t, err)
	require.NoError(t, dm.Compute(comm))
	dm.Truncate(0)
	return sc, ham, dm, indices
}

func TestMonomialOperator_PrepareComputeCreation(t *testing.T) {
	sc, ham, dm, _ := buildTwoSiteSystem(t)
	cDag0, err := fieldop.NewMonomialOperator(expr.NewCreation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, cDag0.Prepare())
	require.NoError(t, cDag0.Compute(1e-12, mpicomm.NullComm{}))
	require.NotEmpty(t, cDag0.Parts())
}

func TestMonomialOperator_NonMonomialExpressionRejected(t *testing.T) {
	sc, ham, dm, _ := buildTwoSiteSystem(t)
	sum := expr.NewCreation(0).Add(expr.NewCreation(1))
	_, err := fieldop.NewMonomialOperator(sum, sc, ham, dm)
	require.Error(t, err)
}

func TestMonomialOperator_ComputeBeforePrepareFails(t *testing.T) {
	sc, ham, dm, _ := buildTwoSiteSystem(t)
	op, err := fieldop.NewMonomialOperator(expr.NewCreation(0), sc, ham, dm)
	require.NoError(t, err)
	require.Error(t, op.Compute(1e-12, mpicomm.NullComm{}))
}

func TestMonomialOperator_ComputeFromAdjointMatchesDirect(t *testing.T) {
	sc, ham, dm, _ := buildTwoSiteSystem(t)
	comm := mpicomm.NullComm{}

	cDag0, err := fieldop.NewMonomialOperator(expr.NewCreation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, cDag0.Prepare())
	require.NoError(t, cDag0.Compute(1e-12, comm))

	c0, err := fieldop.NewMonomialOperator(expr.NewAnnihilation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, c0.Prepare())
	require.NoError(t, c0.ComputeFromAdjoint(cDag0))

	require.Equal(t, len(cDag0.Parts()), len(c0.Parts()))
}

func TestMonomialOperator_PartLookupsAgree(t *testing.T) {
	sc, ham, dm, _ := buildTwoSiteSystem(t)
	op, err := fieldop.NewMonomialOperator(expr.NewCreation(0), sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, op.Prepare())
	require.NoError(t, op.Compute(1e-12, mpicomm.NullComm{}))

	for _, part := range op.Parts() {
		byLeft, ok := op.PartByLeft(part.Left)
		require.True(t, ok)
		require.Same(t, part, byLeft)

		byRight, ok := op.PartByRight(part.Right)
		require.True(t, ok)
		require.Same(t, part, byRight)

		byPair, ok := op.PartByLeftRight(part.Left, part.Right)
		require.True(t, ok)
		require.Same(t, part, byPair)
	}
}

func TestContainer_PrepareAndComputeAll(t *testing.T) {
	sc, ham, dm, indices := buildTwoSiteSystem(t)
	c, err := fieldop.NewContainer(indices, sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, c.PrepareAll())
	require.NoError(t, c.ComputeAll(1e-12, mpicomm.NullComm{}))

	cDag0, ok := c.CreationOperator(0)
	require.True(t, ok)
	require.NotEmpty(t, cDag0.Parts())

	c0, ok := c.AnnihilationOperator(0)
	require.True(t, ok)
	require.NotEmpty(t, c0.Parts())
}
