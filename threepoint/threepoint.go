package threepoint

import (
	"math"

	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
	"github.com/katalvlaran/edlat/termlist"
)

// ThreePointSusceptibilityPart assembles the three term flavors for one
// block triple (s1, s2, s3) chained by F1: s1->s2, F2: s2->s3, B: s3->s1.
type ThreePointSusceptibilityPart struct {
	gate             lifecycle.Gate
	S1, S2, S3       hilbert.BlockNumber
	hp1, hp2, hp3    *hamiltonian.HamiltonianPart
	dm1, dm2, dm3    *densitymatrix.DensityMatrixPart
	f1Part, f2Part   *fieldop.MonomialOperatorPart
	bPart            *fieldop.MonomialOperatorPart
	channel          Channel
	matrixTol        float64
	resonanceTol     float64
	FF               *termlist.TermList[FFTerm]
	FB               *termlist.TermList[FBTerm]
	Resonant         *termlist.TermList[ResonantTerm]
}

// NewThreePointSusceptibilityPart constructs a part for the given block
// triple, channel and connecting operator parts.
func NewThreePointSusceptibilityPart(channel Channel, s1, s2, s3 hilbert.BlockNumber, hp1, hp2, hp3 *hamiltonian.HamiltonianPart, dm1, dm2, dm3 *densitymatrix.DensityMatrixPart, f1Part, f2Part, bPart *fieldop.MonomialOperatorPart, matrixElementTol, resonanceTol float64) *ThreePointSusceptibilityPart {
	p := &ThreePointSusceptibilityPart{
		gate: lifecycle.NewGate("ThreePointSusceptibilityPart"), S1: s1, S2: s2, S3: s3,
		hp1: hp1, hp2: hp2, hp3: hp3, dm1: dm1, dm2: dm2, dm3: dm3,
		f1Part: f1Part, f2Part: f2Part, bPart: bPart, channel: channel,
		matrixTol: matrixElementTol, resonanceTol: resonanceTol,
	}
	p.FF = termlist.New(ffPolicies(resonanceTol))
	p.FB = termlist.New(fbPolicies(resonanceTol))
	p.Resonant = termlist.New(resonantPolicies(resonanceTol))
	return p
}

// Compute walks the chase-indices chain over (i in S1, j in S2, k in S3)
// connected by F1, F2, B and emits contributions to all three flavors (spec
// §4.8): the resonant flavor fires when |E_i - E_k| <= resonance_tol.
func (p *ThreePointSusceptibilityPart) Compute() error {
	xi := p.channel.xi()
	n1 := p.hp1.Size()
	for i := 0; i < n1; i++ {
		ei, err := p.hp1.EigenValue(i)
		if err != nil {
			return err
		}
		wi, err := p.dm1.Weight(i)
		if err != nil {
			return err
		}
		for _, e1 := range p.f1Part.Matrix.Row(i) {
			j := e1.Col
			ej, err := p.hp2.EigenValue(j)
			if err != nil {
				return err
			}
			wj, err := p.dm2.Weight(j)
			if err != nil {
				return err
			}
			for _, e2 := range p.f2Part.Matrix.Row(j) {
				k := e2.Col
				bVal := p.bPart.Matrix.At(k, i)
				if bVal == 0 {
					continue
				}
				product := e1.Value * e2.Value * bVal
				if cabs(product) <= p.matrixTol {
					continue
				}
				ek, err := p.hp3.EigenValue(k)
				if err != nil {
					return err
				}
				wk, err := p.dm3.Weight(k)
				if err != nil {
					return err
				}
				p1 := ej - ei
				p2 := ek - ej
				p12 := ek - ei

				p.FF.AddTerm(FFTerm{P1: p1, P2: p2, C: product * complex(wi-wj, 0)})
				p.FB.AddTerm(FBTerm{P1: p1, P12: p12, Xi: xi, C: product * complex(wj-wk, 0)})
				if math.Abs(ei-ek) <= p.resonanceTol {
					p.Resonant.AddTerm(ResonantTerm{P: p1, Xi: xi, C: product * complex(wi-wk, 0)})
				}
			}
		}
	}
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// Eval evaluates this part's contribution at the fermionic frequency pair
// (z1, z2).
func (p *ThreePointSusceptibilityPart) Eval(z1, z2 complex128) complex128 {
	var sum complex128
	for _, t := range p.FF.Terms() {
		sum += t.C / ((z1 - complex(t.P1, 0)) * (z2 - complex(t.P2, 0)))
	}
	for _, t := range p.FB.Terms() {
		sum += t.C / ((z1 - complex(t.P1, 0)) * (z1 - complex(t.Xi, 0)*z2 - complex(t.P12, 0)))
	}
	for _, t := range p.Resonant.Terms() {
		offset := z1 - complex(t.Xi, 0)*z2 - complex(t.P, 0)
		if cabs(offset) <= complex128Tol {
			sum += t.C / (z1 - complex(t.P, 0))
		}
	}
	return sum
}

const complex128Tol = 1e-8

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }

// ThreePointSusceptibility assembles every eligible block triple's part for
// a fixed channel, the two fermionic monomials f1, f2 and quadratic b.
type ThreePointSusceptibility struct {
	gate    lifecycle.Gate
	thermal lifecycle.Thermal
	channel Channel
	parts   []*ThreePointSusceptibilityPart
}

// NewThreePointSusceptibility builds (but does not Compute) one part per
// eligible block triple found by chasing f1 then f2 then checking b closes
// the loop back to S1.
func NewThreePointSusceptibility(channel Channel, sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, f1, f2, b *fieldop.MonomialOperator, tol linalg.Tolerances, thermal lifecycle.Thermal) (*ThreePointSusceptibility, error) {
	t := &ThreePointSusceptibility{gate: lifecycle.NewGate("ThreePointSusceptibility"), thermal: thermal, channel: channel}
	for s1Idx := 0; s1Idx < sc.NumBlocks(); s1Idx++ {
		s1 := hilbert.BlockNumber(s1Idx)
		f1Part, ok := f1.PartByLeft(s1)
		if !ok {
			continue
		}
		s2 := f1Part.Right
		f2Part, ok := f2.PartByLeft(s2)
		if !ok {
			continue
		}
		s3 := f2Part.Right
		bPart, ok := b.PartByLeft(s3)
		if !ok || bPart.Right != s1 {
			continue
		}
		if !dm.AnyRetained(s1, s2) && !dm.AnyRetained(s2, s3) {
			continue
		}
		hp1, err := ham.Part(s1)
		if err != nil {
			return nil, err
		}
		hp2, err := ham.Part(s2)
		if err != nil {
			return nil, err
		}
		hp3, err := ham.Part(s3)
		if err != nil {
			return nil, err
		}
		dm1, err := dm.Part(s1)
		if err != nil {
			return nil, err
		}
		dm2, err := dm.Part(s2)
		if err != nil {
			return nil, err
		}
		dm3, err := dm.Part(s3)
		if err != nil {
			return nil, err
		}
		t.parts = append(t.parts, NewThreePointSusceptibilityPart(channel, s1, s2, s3, hp1, hp2, hp3, dm1, dm2, dm3, f1Part, f2Part, bPart, tol.MatrixElementTol, tol.ResonanceTol))
	}
	t.gate.Advance(lifecycle.Prepared)
	return t, nil
}

// Compute runs every part, distributed over comm.
func (t *ThreePointSusceptibility) Compute(comm mpicomm.Comm) error {
	if err := t.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(t.parts), func(i int) {
		if err := t.parts[i].Compute(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	t.gate.Advance(lifecycle.Computed)
	return nil
}

// AtMatsubara evaluates chi^(3)(i*omega_n1, i*omega_n2) using fermionic
// frequencies in both arguments (spec §4.8).
func (t *ThreePointSusceptibility) AtMatsubara(n1, n2 int) complex128 {
	z1 := complex(0, t.thermal.MatsubaraFermionic(n1))
	z2 := complex(0, t.thermal.MatsubaraFermionic(n2))
	var sum complex128
	for _, p := range t.parts {
		sum += p.Eval(z1, z2)
	}
	return sum
}
