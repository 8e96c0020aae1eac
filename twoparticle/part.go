package twoparticle

import (
	"math"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/termlist"
)

// TwoParticleGFPart assembles both term flavors for one permutation of
// (c_i, c_j, c^dagger_k) over one connected block quadruple
// (S1, S2, S3, S4), chained op0: S1->S2, op1: S2->S3, op2: S3->S4,
// closed by cDagL: S4->S1.
type TwoParticleGFPart struct {
	gate                   lifecycle.Gate
	S1, S2, S3, S4         hilbert.BlockNumber
	hp1, hp2, hp3, hp4     *hamiltonian.HamiltonianPart
	dm1, dm2, dm3, dm4     *densitymatrix.DensityMatrixPart
	op0, op1, op2, opL     *fieldop.MonomialOperatorPart
	perm                   Permutation
	matrixTol              float64
	multitermCoeffTol      float64
	resonanceTol           float64
	NonResonant            *termlist.TermList[NonResonantTerm]
	Resonant               *termlist.TermList[ResonantTerm]
}

// NewTwoParticleGFPart constructs a part for the given permutation and
// connected block quadruple.
func NewTwoParticleGFPart(perm Permutation, s1, s2, s3, s4 hilbert.BlockNumber, hp1, hp2, hp3, hp4 *hamiltonian.HamiltonianPart, dm1, dm2, dm3, dm4 *densitymatrix.DensityMatrixPart, op0, op1, op2, opL *fieldop.MonomialOperatorPart, matrixElementTol, multitermCoeffTol, resonanceTol float64) *TwoParticleGFPart {
	p := &TwoParticleGFPart{
		gate: lifecycle.NewGate("TwoParticleGFPart"), S1: s1, S2: s2, S3: s3, S4: s4,
		hp1: hp1, hp2: hp2, hp3: hp3, hp4: hp4, dm1: dm1, dm2: dm2, dm3: dm3, dm4: dm4,
		op0: op0, op1: op1, op2: op2, opL: opL, perm: perm,
		matrixTol: matrixElementTol, multitermCoeffTol: multitermCoeffTol, resonanceTol: resonanceTol,
	}
	p.NonResonant = termlist.New(nonResonantPolicies(resonanceTol))
	p.Resonant = termlist.New(resonantPolicies(resonanceTol))
	return p
}

// Compute walks the four-block chain and emits both term flavors, dropping
// products at or below multiterm_coeff_tol before aggregation (spec §4.9).
func (p *TwoParticleGFPart) Compute() error {
	n1 := p.hp1.Size()
	for m := 0; m < n1; m++ {
		em, err := p.hp1.EigenValue(m)
		if err != nil {
			return err
		}
		wm, err := p.dm1.Weight(m)
		if err != nil {
			return err
		}
		for _, e0 := range p.op0.Matrix.Row(m) {
			n := e0.Col
			en, err := p.hp2.EigenValue(n)
			if err != nil {
				return err
			}
			wn, err := p.dm2.Weight(n)
			if err != nil {
				return err
			}
			for _, e1 := range p.op1.Matrix.Row(n) {
				q := e1.Col
				eq, err := p.hp3.EigenValue(q)
				if err != nil {
					return err
				}
				wq, err := p.dm3.Weight(q)
				if err != nil {
					return err
				}
				for _, e2 := range p.op2.Matrix.Row(q) {
					r := e2.Col
					lVal := p.opL.Matrix.At(m, r)
					if lVal == 0 {
						continue
					}
					product := e0.Value * e1.Value * e2.Value * lVal
					if cabs(product) <= p.multitermCoeffTol || cabs(product) <= p.matrixTol {
						continue
					}
					er, err := p.hp4.EigenValue(r)
					if err != nil {
						return err
					}
					wr, err := p.dm4.Weight(r)
					if err != nil {
						return err
					}

					p1 := en - em
					p2 := eq - en
					p3 := er - eq
					coeff := product * complex(p.perm.Sign*(wm-wn+wq-wr), 0)

					isz4 := math.Abs(p1+p2+p3) > p.resonanceTol && math.Abs(p3) > math.Abs(p1)
					p.NonResonant.AddTerm(NonResonantTerm{P1: p1, P2: p2, P3: p3, Isz4: isz4, C: coeff})

					if math.Abs(p1+p2) <= p.resonanceTol {
						p.Resonant.AddTerm(ResonantTerm{P1: p1, P3: p3, SumPole: p2 + p3, Isz1z2: true, R: coeff, N: coeff})
					} else if math.Abs(p2+p3) <= p.resonanceTol {
						p.Resonant.AddTerm(ResonantTerm{P1: p1, P3: p3, SumPole: p1 + p2, Isz1z2: false, R: coeff, N: coeff})
					}
				}
			}
		}
	}
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// Eval evaluates this part at the canonical (non-permuted) frequency triple
// already remapped by the caller via perm.FreqPerm.
func (p *TwoParticleGFPart) Eval(z1, z2, z3 complex128) complex128 {
	var sum complex128
	z4 := z1 + z2 - z3
	for _, t := range p.NonResonant.Terms() {
		if t.Isz4 {
			sum += t.C / ((z1 - complex(t.P1, 0)) * (z4 - complex(t.P1+t.P2+t.P3, 0)) * (z3 - complex(t.P3, 0)))
		} else {
			sum += t.C / ((z1 - complex(t.P1, 0)) * (z2 - complex(t.P2, 0)) * (z3 - complex(t.P3, 0)))
		}
	}
	for _, t := range p.Resonant.Terms() {
		// SumPole holds P2+P3 for a z1+z2 resonance and P1+P2 for a z2+z3
		// one; the offset uses the resonant pair's own sum.
		var offset complex128
		if t.Isz1z2 {
			offset = z1 + z2 - complex(t.P1+t.SumPole-t.P3, 0)
		} else {
			offset = z2 + z3 - complex(t.SumPole-t.P1+t.P3, 0)
		}
		if cabs(offset) <= resonantEvalTol {
			sum += t.R / ((z1 - complex(t.P1, 0)) * (z3 - complex(t.P3, 0)))
		} else {
			sum += t.N / (offset)
		}
	}
	return sum
}

const resonantEvalTol = 1e-8

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
