// Command edlat-tutorial reproduces the two-site Hubbard dimer tutorial
// (original_source/tutorial/example2site.cpp) end to end: build the
// Hamiltonian expression, partition the Hilbert space, diagonalize,
// construct the density matrix, and evaluate the local Green's function and
// the n_up-n_up susceptibility at a handful of Matsubara frequencies.
package main

import (
	"fmt"
	"log"

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
	"github.com/katalvlaran/edlat/susceptibility"
)

// site identifies one (label, spin) single-particle degree of freedom.
type site struct {
	label string
	spin  string
}

func main() {
	const (
		t    = 1.0
		u    = 2.0
		mu   = 1.0
		beta = 10.0
	)

	indices := idx.New(
		site{"A", "up"}, site{"A", "down"},
		site{"B", "up"}, site{"B", "down"},
	)
	aUp, _ := indices.IndexOf(site{"A", "up"})
	aDown, _ := indices.IndexOf(site{"A", "down"})
	bUp, _ := indices.IndexOf(site{"B", "up"})
	bDown, _ := indices.IndexOf(site{"B", "down"})

	h := expr.AddHopping(complex(-t, 0), int(aUp), int(bUp))
	h = h.Add(expr.AddHopping(complex(-t, 0), int(aDown), int(bDown)))
	h = h.Add(expr.AddInteraction(u, int(aUp), int(aDown)))
	h = h.Add(expr.AddInteraction(u, int(bUp), int(bDown)))
	for _, i := range indices.SortedIndices() {
		h = h.Add(expr.AddLevel(-mu, int(i)))
	}

	fmt.Println("HExpr has", len(h.Monomials), "monomials over", indices.Size(), "indices")

	dim := 1 << indices.Size()
	fieldOps := make([]linalg.LinearOperator, 0, 2*indices.Size())
	for _, i := range indices.SortedIndices() {
		fieldOps = append(fieldOps, expr.NewCreation(int(i)).ToLinearOperator())
		fieldOps = append(fieldOps, expr.NewAnnihilation(int(i)).ToLinearOperator())
	}

	space := hilbert.NewHilbertSpace(dim, h.ToLinearOperator(), fieldOps)
	must(space.Compute())
	sc, err := space.GetSpacePartition()
	must(err)
	fmt.Println("Hilbert space dimension", dim, "partitioned into", sc.NumBlocks(), "blocks")

	tol := linalg.DefaultTolerances()
	solver := linalg.GonumEigenSolver{}
	ham, err := hamiltonian.NewHamiltonian(sc, h.ToLinearOperator(), solver, tol.HermiticityTol)
	must(err)
	comm := mpicomm.NullComm{}
	must(ham.Prepare(comm))
	must(ham.Compute(comm))
	fmt.Println("ground energy:", ham.GroundEnergy)

	thermal := lifecycle.NewThermal(beta)
	dm, err := densitymatrix.NewDensityMatrix(ham, thermal)
	must(err)
	must(dm.Compute(comm))
	dm.Truncate(1e-12)

	ops, err := fieldop.NewContainer(indices, sc, ham, dm)
	must(err)
	must(ops.PrepareAll())
	must(ops.ComputeAll(tol.MatrixElementTol, comm))

	cA, _ := ops.AnnihilationOperator(int(aUp))
	cDagA, _ := ops.CreationOperator(int(aUp))
	gf, err := greensfunction.NewGreensFunction(sc, ham, dm, cA, cDagA, tol, thermal)
	must(err)
	must(gf.Compute(comm))

	fmt.Println("G_{A up, A up}(i*omega_n), n = 0..4:")
	for n := 0; n < 5; n++ {
		fmt.Printf("  n=%d: %v\n", n, gf.AtMatsubara(n))
	}

	nUpA, err := fieldop.NewMonomialOperator(expr.NumberOperator(int(aUp)), sc, ham, dm)
	must(err)
	must(nUpA.Prepare())
	must(nUpA.Compute(tol.MatrixElementTol, comm))

	chi, err := susceptibility.NewSusceptibility(sc, ham, dm, nUpA, nUpA, tol, thermal)
	must(err)
	must(chi.Compute(comm))
	avg, err := susceptibility.EnsembleAverage(sc, ham, dm, nUpA)
	must(err)
	fmt.Println("<n_A_up> =", avg)
	fmt.Println("chi_{n_A_up, n_A_up}(0) connected =", chi.Connected(avg, avg))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
