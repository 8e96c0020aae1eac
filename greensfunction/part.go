package greensfunction

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/termlist"
)

// Term is one pole of the Lehmann sum: residue R / (z - P).
type Term struct {
	Pole    float64
	Residue complex128
}

func termPolicies(tol float64) termlist.Policies[Term] {
	return termlist.Policies[Term]{
		Hash: func(t Term) uint64 { return hashFloat(t.Pole, tol) },
		KeyEqual: func(a, b Term) bool {
			return math.Abs(a.Pole-b.Pole) <= tol
		},
		Merge: func(existing *Term, add Term, multiplicity int) {
			// weighted pole average (spec §3): new average over `multiplicity`
			// accumulated poles, residues summed.
			w := 1.0 / float64(multiplicity)
			existing.Pole = existing.Pole*(1-w) + add.Pole*w
			existing.Residue += add.Residue
		},
		IsNegligible: func(t Term, sizeAfter int) bool {
			return cmplx.Abs(t.Residue) <= tol/float64(sizeAfter+1)
		},
	}
}

func hashFloat(x, tol float64) uint64 {
	if tol <= 0 {
		tol = 1e-12
	}
	bucket := math.Round(x / tol)
	return uint64(int64(bucket))
}

// GreensFunctionPart assembles the poles connecting one (outer=L, inner=R)
// block pair.
type GreensFunctionPart struct {
	gate      lifecycle.Gate
	Outer     hilbert.BlockNumber // L
	Inner     hilbert.BlockNumber // R
	hpOuter   *hamiltonian.HamiltonianPart
	hpInner   *hamiltonian.HamiltonianPart
	dmOuter   *densitymatrix.DensityMatrixPart
	dmInner   *densitymatrix.DensityMatrixPart
	cPart     *fieldop.MonomialOperatorPart // c: R -> L  (Left=L, Right=R)
	cDagPart  *fieldop.MonomialOperatorPart // c+: L -> R (Left=R, Right=L)
	matrixTol float64
	Terms     *termlist.TermList[Term]
}

// NewGreensFunctionPart constructs a part for (outer, inner) given the
// c (annihilation) and c+ (creation) operator parts that connect them.
func NewGreensFunctionPart(outer, inner hilbert.BlockNumber, hpOuter, hpInner *hamiltonian.HamiltonianPart, dmOuter, dmInner *densitymatrix.DensityMatrixPart, cPart, cDagPart *fieldop.MonomialOperatorPart, matrixElementTol, resonanceTol float64) *GreensFunctionPart {
	p := &GreensFunctionPart{
		gate: lifecycle.NewGate("GreensFunctionPart"), Outer: outer, Inner: inner,
		hpOuter: hpOuter, hpInner: hpInner, dmOuter: dmOuter, dmInner: dmInner,
		cPart: cPart, cDagPart: cDagPart, matrixTol: matrixElementTol,
	}
	p.Terms = termlist.New(termPolicies(resonanceTol))
	return p
}

// Compute assembles every matching (l, r) basis pair into a pole term,
// dropping matrix-element products at or below matrix_element_tol on the fly
// (spec §4.6), and merging similar poles via TermList.
func (p *GreensFunctionPart) Compute() error {
	a := p.hpOuter.Size()
	for l := 0; l < a; l++ {
		for _, e := range p.cPart.Matrix.Row(l) {
			r := e.Col
			cDag := p.cDagPart.Matrix.At(r, l)
			if cDag == 0 {
				continue
			}
			product := e.Value * cDag
			if cabs(product) <= p.matrixTol {
				continue
			}
			el, errL := p.hpOuter.EigenValue(l)
			if errL != nil {
				return errL
			}
			er, errR := p.hpInner.EigenValue(r)
			if errR != nil {
				return errR
			}
			wl, errWL := p.dmOuter.Weight(l)
			if errWL != nil {
				return errWL
			}
			wr, errWR := p.dmInner.Weight(r)
			if errWR != nil {
				return errWR
			}
			p.Terms.AddTerm(Term{Pole: er - el, Residue: product * complex(wl+wr, 0)})
		}
	}
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// Eval evaluates this part's Lehmann sum at complex frequency z.
func (p *GreensFunctionPart) Eval(z complex128) complex128 {
	var sum complex128
	for _, t := range p.Terms.Terms() {
		sum += t.Residue / (z - complex(t.Pole, 0))
	}
	return sum
}

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
