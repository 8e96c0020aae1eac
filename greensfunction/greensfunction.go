package greensfunction

import (
	"math"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
)

// GreensFunction is the correlator <<c; c+>>(z) of the annihilation and
// creation operators it is built from, assembled from every block pair
// where both operators connect (spec
// §4.6: "selects which parts exist by intersecting non-trivial blocks of c
// and c+").
type GreensFunction struct {
	gate    lifecycle.Gate
	thermal lifecycle.Thermal
	parts   []*GreensFunctionPart
}

// NewGreensFunction builds (but does not Compute) one GreensFunctionPart per
// eligible (outer, inner) block pair for the annihilation operator c and
// creation operator cDag. The two need not share a single-particle index:
// Container builds its (i, j) entry from c_j and c_i+.
func NewGreensFunction(sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, c, cDag *fieldop.MonomialOperator, tol linalg.Tolerances, thermal lifecycle.Thermal) (*GreensFunction, error) {
	gf := &GreensFunction{gate: lifecycle.NewGate("GreensFunction"), thermal: thermal}
	for right := 0; right < sc.NumBlocks(); right++ {
		r := hilbert.BlockNumber(right)
		cPart, ok := c.PartByRight(r)
		if !ok {
			continue
		}
		left := cPart.Left
		cDagPart, ok := cDag.PartByLeft(r)
		if !ok || cDagPart.Right != left {
			continue
		}
		if !dm.AnyRetained(left, r) {
			continue
		}
		hpL, err := ham.Part(left)
		if err != nil {
			return nil, err
		}
		hpR, err := ham.Part(r)
		if err != nil {
			return nil, err
		}
		dmL, err := dm.Part(left)
		if err != nil {
			return nil, err
		}
		dmR, err := dm.Part(r)
		if err != nil {
			return nil, err
		}
		gf.parts = append(gf.parts, NewGreensFunctionPart(left, r, hpL, hpR, dmL, dmR, cPart, cDagPart, tol.MatrixElementTol, tol.ResonanceTol))
	}
	gf.gate.Advance(lifecycle.Prepared)
	return gf, nil
}

// Compute assembles every part's poles, distributed over comm.
func (gf *GreensFunction) Compute(comm mpicomm.Comm) error {
	if err := gf.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(gf.parts), func(i int) {
		if err := gf.parts[i].Compute(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	gf.gate.Advance(lifecycle.Computed)
	return nil
}

// AtFrequency evaluates G(z) at an arbitrary complex frequency.
func (gf *GreensFunction) AtFrequency(z complex128) complex128 {
	var sum complex128
	for _, p := range gf.parts {
		sum += p.Eval(z)
	}
	return sum
}

// AtMatsubara evaluates G(i*omega_n) at the n-th fermionic Matsubara frequency.
func (gf *GreensFunction) AtMatsubara(n int) complex128 {
	return gf.AtFrequency(complex(0, gf.thermal.MatsubaraFermionic(n)))
}

// AtTau evaluates G(tau) in imaginary time via the closed form of spec §4.6:
//
//	G(tau) = -R * exp(-tau*P) / (1 + exp(-beta*P))
//
// with the branch chosen by sign(P) to avoid overflow for large beta.
func (gf *GreensFunction) AtTau(tau float64) complex128 {
	var sum complex128
	beta := gf.thermal.Beta
	for _, p := range gf.parts {
		for _, t := range p.Terms.Terms() {
			sum += tauTerm(t, tau, beta)
		}
	}
	return sum
}

func tauTerm(t Term, tau, beta float64) complex128 {
	p := t.Pole
	if p >= 0 {
		num := math.Exp(-tau * p)
		den := 1 + math.Exp(-beta*p)
		return -t.Residue * complex(num/den, 0)
	}
	// rewrite using exp(beta*p) to keep exponents negative for p<0.
	num := math.Exp((beta - tau) * p)
	den := math.Exp(beta*p) + 1
	return -t.Residue * complex(num/den, 0)
}
