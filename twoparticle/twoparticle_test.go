package twoparticle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/greensfunction"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/idx"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
	"github.com/katalvlaran/edlat/twoparticle"
)

type site struct{ label string }

func TestSixPermutations_HasEvenOddSplit(t *testing.T) {
	perms := twoparticle.SixPermutations()
	require.Len(t, perms, 6)
	var plus, minus int
	for _, p := range perms {
		switch p.Sign {
		case 1:
			plus++
		case -1:
			minus++
		default:
			t.Fatalf("unexpected sign %v for %s", p.Sign, p.Name)
		}
	}
	require.Equal(t, 3, plus)
	require.Equal(t, 3, minus)
}

func TestSixPermutations_IdentityIsNoOp(t *testing.T) {
	for _, p := range twoparticle.SixPermutations() {
		if p.Name == "ijk" {
			a, b, c := p.FreqPerm(1, 2, 3)
			require.Equal(t, complex128(1), a)
			require.Equal(t, complex128(2), b)
			require.Equal(t, complex128(3), c)
			return
		}
	}
	t.Fatal("identity permutation not found")
}

func buildTwoSiteEverything(t *testing.T, beta float64) (*hilbert.StatesClassification, *hamiltonian.Hamiltonian, *densitymatrix.DensityMatrix, *fieldop.Container, linalg.Tolerances, lifecycle.Thermal) {
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

	ops, err := fieldop.NewContainer(indices, sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, ops.PrepareAll())
	require.NoError(t, ops.ComputeAll(tol.MatrixElementTol, comm))

	return sc, ham, dm, ops, tol, thermal
}

func TestTwoParticleGF_ComputeAndEvaluate(t *testing.T) {
	sc, ham, dm, ops, tol, thermal := buildTwoSiteEverything(t, 2.0)
	c0, _ := ops.AnnihilationOperator(0)
	cDag0, _ := ops.CreationOperator(0)

	gf, err := twoparticle.NewTwoParticleGF(sc, ham, dm, c0, c0, cDag0, cDag0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, gf.Compute(mpicomm.NullComm{}))

	val := gf.AtMatsubara(0, 1, 0)
	require.False(t, cmplxIsNaN(val))
}

func TestMatsubaraCache_HitsAvoidRecompute(t *testing.T) {
	sc, ham, dm, ops, tol, thermal := buildTwoSiteEverything(t, 2.0)
	c0, _ := ops.AnnihilationOperator(0)
	cDag0, _ := ops.CreationOperator(0)
	gf, err := twoparticle.NewTwoParticleGF(sc, ham, dm, c0, c0, cDag0, cDag0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, gf.Compute(mpicomm.NullComm{}))

	cache := twoparticle.NewMatsubaraCache(gf)
	v1 := cache.Get(0, 1, 0)
	require.Equal(t, 1, cache.Len())
	v2 := cache.Get(0, 1, 0)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, cache.Len())
}

func TestVertex4_AtMatsubaraSubtractsDisconnected(t *testing.T) {
	sc, ham, dm, ops, tol, thermal := buildTwoSiteEverything(t, 2.0)
	c0, _ := ops.AnnihilationOperator(0)
	cDag0, _ := ops.CreationOperator(0)

	chi, err := twoparticle.NewTwoParticleGF(sc, ham, dm, c0, c0, cDag0, cDag0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, chi.Compute(mpicomm.NullComm{}))

	gf, err := greensfunction.NewGreensFunction(sc, ham, dm, c0, cDag0, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, gf.Compute(mpicomm.NullComm{}))

	v := twoparticle.NewVertex4(chi, gf, gf, gf, gf, thermal)
	got := v.AtMatsubara(0, 1, 0)
	require.False(t, cmplxIsNaN(got))
	// n1 == n3 and n2 != n3: only the beta*G_ik(n1)*G_jl(n2) term applies.
	want := chi.AtMatsubara(0, 1, 0) + complex(thermal.Beta, 0)*gf.AtMatsubara(0)*gf.AtMatsubara(1)
	require.InDelta(t, real(want), real(got), 1e-12)
	require.InDelta(t, imag(want), imag(got), 1e-12)
}

func TestContainer_GetBuildsAndCaches(t *testing.T) {
	sc, ham, dm, ops, tol, thermal := buildTwoSiteEverything(t, 2.0)
	c := twoparticle.NewContainer(sc, ham, dm, ops, tol, thermal, mpicomm.NullComm{})
	v := c.Get(0, 0, 0, 0)
	require.False(t, cmplxIsNaN(v.Eval(0, 1, 0)))
}

func cmplxIsNaN(z complex128) bool {
	return real(z) != real(z) || imag(z) != imag(z)
}
