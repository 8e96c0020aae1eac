package susceptibility

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

// Susceptibility is chi_AB(z), assembled from every block pair where both A
// (Inner->Outer) and B (Outer->Inner) connect (spec §4.7, mirroring
// GreensFunction's block-intersection rule but without requiring A, B to be
// a Hermitian-conjugate pair).
type Susceptibility struct {
	gate    lifecycle.Gate
	thermal lifecycle.Thermal
	parts   []*SusceptibilityPart
}

// NewSusceptibility builds (but does not Compute) one SusceptibilityPart per
// eligible (outer, inner) block pair for operators a (Inner->Outer) and b
// (Outer->Inner).
func NewSusceptibility(sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, a, b *fieldop.MonomialOperator, tol linalg.Tolerances, thermal lifecycle.Thermal) (*Susceptibility, error) {
	s := &Susceptibility{gate: lifecycle.NewGate("Susceptibility"), thermal: thermal}
	for outerIdx := 0; outerIdx < sc.NumBlocks(); outerIdx++ {
		outer := hilbert.BlockNumber(outerIdx)
		bPart, ok := b.PartByLeft(outer)
		if !ok {
			continue
		}
		inner := bPart.Right
		aPart, ok := a.PartByRight(outer)
		if !ok || aPart.Left != inner {
			continue
		}
		if !dm.AnyRetained(outer, inner) {
			continue
		}
		hpOuter, err := ham.Part(outer)
		if err != nil {
			return nil, err
		}
		hpInner, err := ham.Part(inner)
		if err != nil {
			return nil, err
		}
		dmOuter, err := dm.Part(outer)
		if err != nil {
			return nil, err
		}
		dmInner, err := dm.Part(inner)
		if err != nil {
			return nil, err
		}
		s.parts = append(s.parts, NewSusceptibilityPart(outer, inner, hpOuter, hpInner, dmOuter, dmInner, aPart, bPart, tol.MatrixElementTol, tol.ResonanceTol))
	}
	s.gate.Advance(lifecycle.Prepared)
	return s, nil
}

// Compute assembles every part's poles, distributed over comm.
func (s *Susceptibility) Compute(comm mpicomm.Comm) error {
	if err := s.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(s.parts), func(i int) {
		if err := s.parts[i].Compute(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	s.gate.Advance(lifecycle.Computed)
	return nil
}

func (s *Susceptibility) zeroPoleWeight() float64 {
	var w float64
	for _, p := range s.parts {
		w += p.ZeroPoleWeight
	}
	return w
}

// AtFrequency evaluates chi(z) at an arbitrary non-zero complex frequency;
// the zero-pole contribution is handled separately by AtMatsubara(0).
func (s *Susceptibility) AtFrequency(z complex128) complex128 {
	var sum complex128
	for _, p := range s.parts {
		sum += p.Eval(z)
	}
	return sum
}

// AtMatsubara evaluates chi(i*omega_n) at the n-th bosonic Matsubara
// frequency, folding in the zero-pole weight's beta*zero_pole_weight
// contribution at n=0 (spec §4.7).
func (s *Susceptibility) AtMatsubara(n int) complex128 {
	omega := s.thermal.MatsubaraBosonic(n)
	result := s.AtFrequency(complex(0, omega))
	if n == 0 {
		result += complex(s.thermal.Beta*s.zeroPoleWeight(), 0)
	}
	return result
}

// AtTau evaluates chi(tau) in imaginary time, adding the zero pole's constant
// contribution (spec §4.7) to the regular poles' closed form.
func (s *Susceptibility) AtTau(tau float64) complex128 {
	var sum complex128
	beta := s.thermal.Beta
	for _, p := range s.parts {
		for _, t := range p.Terms.Terms() {
			sum -= tauTerm(t, tau, beta)
		}
	}
	return sum + complex(s.zeroPoleWeight(), 0)
}

// tauTerm is the closed form shared with greensfunction.GreensFunction.AtTau:
// -R*exp(-tau*P)/(1+exp(-beta*P)), with the branch chosen by sign(P) to
// avoid overflow for large beta.
func tauTerm(t Term, tau, beta float64) complex128 {
	p := t.Pole
	if p >= 0 {
		num := math.Exp(-tau * p)
		den := 1 + math.Exp(-beta*p)
		return -t.Residue * complex(num/den, 0)
	}
	num := math.Exp((beta - tau) * p)
	den := math.Exp(beta*p) + 1
	return -t.Residue * complex(num/den, 0)
}

// Connected returns chi(0) with the disconnected part beta*avgA*avgB
// subtracted (spec §4.7's optional subtraction at omega=0).
func (s *Susceptibility) Connected(avgA, avgB float64) complex128 {
	return s.AtMatsubara(0) - complex(s.thermal.Beta*avgA*avgB, 0)
}

// EnsembleAverage computes Tr[rho A] = sum_i w_i A_ii for the diagonal (same
// block) parts of op against dm (spec §4.7: "a simple diagonal trace").
func EnsembleAverage(sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, op *fieldop.MonomialOperator) (float64, error) {
	var total float64
	for b := 0; b < sc.NumBlocks(); b++ {
		block := hilbert.BlockNumber(b)
		part, ok := op.PartByLeftRight(block, block)
		if !ok {
			continue
		}
		hp, err := ham.Part(block)
		if err != nil {
			return 0, err
		}
		dmPart, err := dm.Part(block)
		if err != nil {
			return 0, err
		}
		for i := 0; i < hp.Size(); i++ {
			w, err := dmPart.Weight(i)
			if err != nil {
				return 0, err
			}
			if w == 0 {
				continue
			}
			total += w * real(part.Matrix.At(i, i))
		}
	}
	return total, nil
}
