package susceptibility

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

// Term is one non-zero pole of the Lehmann sum.
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
	return uint64(int64(math.Round(x / tol)))
}

// SusceptibilityPart assembles the poles connecting one (outer=L, inner=R)
// block pair via quadratic operators A (R->L) and B (L->R).
type SusceptibilityPart struct {
	gate           lifecycle.Gate
	Outer, Inner   hilbert.BlockNumber
	hpOuter        *hamiltonian.HamiltonianPart
	hpInner        *hamiltonian.HamiltonianPart
	dmOuter        *densitymatrix.DensityMatrixPart
	dmInner        *densitymatrix.DensityMatrixPart
	aPart          *fieldop.MonomialOperatorPart // A: Inner -> Outer
	bPart          *fieldop.MonomialOperatorPart // B: Outer -> Inner
	matrixTol      float64
	resonanceTol   float64
	Terms          *termlist.TermList[Term]
	ZeroPoleWeight float64
}

// NewSusceptibilityPart constructs a part for (outer, inner) given the
// connecting operator parts.
func NewSusceptibilityPart(outer, inner hilbert.BlockNumber, hpOuter, hpInner *hamiltonian.HamiltonianPart, dmOuter, dmInner *densitymatrix.DensityMatrixPart, aPart, bPart *fieldop.MonomialOperatorPart, matrixElementTol, resonanceTol float64) *SusceptibilityPart {
	p := &SusceptibilityPart{
		gate: lifecycle.NewGate("SusceptibilityPart"), Outer: outer, Inner: inner,
		hpOuter: hpOuter, hpInner: hpInner, dmOuter: dmOuter, dmInner: dmInner,
		aPart: aPart, bPart: bPart, matrixTol: matrixElementTol, resonanceTol: resonanceTol,
	}
	p.Terms = termlist.New(termPolicies(resonanceTol))
	return p
}

// Compute assembles every matching basis pair into a pole term, diverting
// poles at or below resonanceTol into ZeroPoleWeight instead of Terms (spec
// §4.7's "special case |P| <= resonance_tol").
func (p *SusceptibilityPart) Compute() error {
	a := p.hpOuter.Size()
	for l := 0; l < a; l++ {
		for _, e := range p.bPart.Matrix.Row(l) {
			r := e.Col
			aVal := p.aPart.Matrix.At(r, l)
			if aVal == 0 {
				continue
			}
			product := e.Value * aVal
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
			pole := el - er
			residue := product * complex(wr-wl, 0)
			if math.Abs(pole) <= p.resonanceTol {
				p.ZeroPoleWeight += real(residue)
				continue
			}
			p.Terms.AddTerm(Term{Pole: pole, Residue: residue})
		}
	}
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// Eval evaluates this part's non-zero-pole Lehmann sum at z, with the
// overall minus sign spec §4.7 requires; z=0 never hits a stored pole
// because zero-ish poles were diverted to ZeroPoleWeight during Compute.
func (p *SusceptibilityPart) Eval(z complex128) complex128 {
	var sum complex128
	for _, t := range p.Terms.Terms() {
		sum += t.Residue / (z - complex(t.Pole, 0))
	}
	return -sum
}

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
