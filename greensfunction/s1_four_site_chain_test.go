package greensfunction_test

import (
	"math/cmplx"
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
)

type fourSiteSpin struct {
	label string
	spin  string
}

// TestGreensFunction_S1FourSiteBathChain reproduces the scenario S1 end to
// end: a four-site ring A-B-C-D-A of single-orbital Hubbard sites, each
// spin-1/2, and checks the local down-spin Green's function at site A
// against the ten reference Matsubara values to tol_GF.
func TestGreensFunction_S1FourSiteBathChain(t *testing.T) {
	const beta = 10.0
	epsA, epsB, epsC, epsD := -0.5, -1.1, -0.7, -1.1
	tAB, tBC, tCD, tDA := -1.3, -0.45, -0.127, -0.255
	uA, uB, uC, uD := 1.0, 2.0, 3.0, 4.0

	indices := idx.New(
		fourSiteSpin{"A", "up"}, fourSiteSpin{"A", "down"},
		fourSiteSpin{"B", "up"}, fourSiteSpin{"B", "down"},
		fourSiteSpin{"C", "up"}, fourSiteSpin{"C", "down"},
		fourSiteSpin{"D", "up"}, fourSiteSpin{"D", "down"},
	)
	idxOf := func(label, spin string) int {
		i, err := indices.IndexOf(fourSiteSpin{label, spin})
		require.NoError(t, err)
		return int(i)
	}
	aUp, aDown := idxOf("A", "up"), idxOf("A", "down")
	bUp, bDown := idxOf("B", "up"), idxOf("B", "down")
	cUp, cDown := idxOf("C", "up"), idxOf("C", "down")
	dUp, dDown := idxOf("D", "up"), idxOf("D", "down")

	h := expr.AddLevel(epsA, aUp).Add(expr.AddLevel(epsA, aDown))
	h = h.Add(expr.AddLevel(epsB, bUp)).Add(expr.AddLevel(epsB, bDown))
	h = h.Add(expr.AddLevel(epsC, cUp)).Add(expr.AddLevel(epsC, cDown))
	h = h.Add(expr.AddLevel(epsD, dUp)).Add(expr.AddLevel(epsD, dDown))

	h = h.Add(expr.AddHopping(complex(tAB, 0), aUp, bUp)).Add(expr.AddHopping(complex(tAB, 0), aDown, bDown))
	h = h.Add(expr.AddHopping(complex(tBC, 0), bUp, cUp)).Add(expr.AddHopping(complex(tBC, 0), bDown, cDown))
	h = h.Add(expr.AddHopping(complex(tCD, 0), cUp, dUp)).Add(expr.AddHopping(complex(tCD, 0), cDown, dDown))
	h = h.Add(expr.AddHopping(complex(tDA, 0), dUp, aUp)).Add(expr.AddHopping(complex(tDA, 0), dDown, aDown))

	h = h.Add(expr.AddInteraction(uA, aUp, aDown))
	h = h.Add(expr.AddInteraction(uB, bUp, bDown))
	h = h.Add(expr.AddInteraction(uC, cUp, cDown))
	h = h.Add(expr.AddInteraction(uD, dUp, dDown))

	hOp := h.ToLinearOperator()
	fieldOps := make([]linalg.LinearOperator, 0, 2*indices.Size())
	for _, i := range indices.SortedIndices() {
		fieldOps = append(fieldOps, expr.NewCreation(int(i)).ToLinearOperator())
		fieldOps = append(fieldOps, expr.NewAnnihilation(int(i)).ToLinearOperator())
	}

	dim := 1 << indices.Size()
	space := hilbert.NewHilbertSpace(dim, hOp, fieldOps)
	require.NoError(t, space.Compute())
	sc, err := space.GetSpacePartition()
	require.NoError(t, err)

	tol := linalg.DefaultTolerances()
	comm := mpicomm.NullComm{}
	ham, err := hamiltonian.NewHamiltonian(sc, hOp, linalg.GonumEigenSolver{}, tol.HermiticityTol)
	require.NoError(t, err)
	require.NoError(t, ham.Prepare(comm))
	require.NoError(t, ham.Compute(comm))

	thermal := lifecycle.NewThermal(beta)
	dm, err := densitymatrix.NewDensityMatrix(ham, thermal)
	require.NoError(t, err)
	require.NoError(t, dm.Compute(comm))
	dm.Truncate(1e-15)

	ops, err := fieldop.NewContainer(indices, sc, ham, dm)
	require.NoError(t, err)
	require.NoError(t, ops.PrepareAll())
	require.NoError(t, ops.ComputeAll(tol.MatrixElementTol, comm))

	cADown, _ := ops.AnnihilationOperator(aDown)
	cDagADown, _ := ops.CreationOperator(aDown)
	gf, err := greensfunction.NewGreensFunction(sc, ham, dm, cADown, cDagADown, tol, thermal)
	require.NoError(t, err)
	require.NoError(t, gf.Compute(comm))

	reference := []complex128{
		complex(0.00515, -0.19113),
		complex(-0.01292, -0.35749),
		complex(-0.00632, -0.36457),
		complex(-0.00245, -0.32700),
		complex(-0.00094, -0.28524),
		complex(-0.00036, -0.24897),
		complex(-0.00013, -0.21921),
		complex(-3.2e-5, -0.19498),
		complex(9.5e-6, -0.17515),
		complex(2.7e-5, -0.15873),
	}
	for n, want := range reference {
		got := gf.AtMatsubara(n)
		require.Less(t, cmplx.Abs(got-want), tol.GreensFunctionTol,
			"Matsubara index %d: got %v, want %v", n, got, want)
	}
}
