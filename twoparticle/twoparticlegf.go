package twoparticle

import (
	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
)

type permPart struct {
	perm Permutation
	part *TwoParticleGFPart
}

// TwoParticleGF is chi_ijkl(z1, z2, z3) for a fixed quadruple of operators
// (c_i, c_j, c^dagger_k, c^dagger_l), summed over the six permutations of
// (c_i, c_j, c^dagger_k) and every connected block quadruple each
// permutation admits (spec §4.9).
type TwoParticleGF struct {
	gate    lifecycle.Gate
	thermal lifecycle.Thermal
	parts   []permPart
}

// NewTwoParticleGF builds (but does not Compute) one TwoParticleGFPart per
// (permutation, connected block quadruple).
func NewTwoParticleGF(sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, ci, cj, ckDag, clDag *fieldop.MonomialOperator, tol linalg.Tolerances, thermal lifecycle.Thermal) (*TwoParticleGF, error) {
	g := &TwoParticleGF{gate: lifecycle.NewGate("TwoParticleGF"), thermal: thermal}
	ops := [3]*fieldop.MonomialOperator{ci, cj, ckDag}
	for _, perm := range SixPermutations() {
		op0 := ops[perm.Order[0]]
		op1 := ops[perm.Order[1]]
		op2 := ops[perm.Order[2]]
		for s1Idx := 0; s1Idx < sc.NumBlocks(); s1Idx++ {
			s1 := hilbert.BlockNumber(s1Idx)
			op0Part, ok := op0.PartByLeft(s1)
			if !ok {
				continue
			}
			s2 := op0Part.Right
			op1Part, ok := op1.PartByLeft(s2)
			if !ok {
				continue
			}
			s3 := op1Part.Right
			op2Part, ok := op2.PartByLeft(s3)
			if !ok {
				continue
			}
			s4 := op2Part.Right
			lPart, ok := clDag.PartByLeft(s1)
			if !ok || lPart.Right != s4 {
				continue
			}
			if !dm.AnyRetained(s1, s2) && !dm.AnyRetained(s2, s3) && !dm.AnyRetained(s3, s4) {
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
			hp4, err := ham.Part(s4)
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
			dm4, err := dm.Part(s4)
			if err != nil {
				return nil, err
			}
			part := NewTwoParticleGFPart(perm, s1, s2, s3, s4, hp1, hp2, hp3, hp4, dm1, dm2, dm3, dm4, op0Part, op1Part, op2Part, lPart, tol.MatrixElementTol, tol.MultitermCoeffTol, tol.ResonanceTol)
			g.parts = append(g.parts, permPart{perm: perm, part: part})
		}
	}
	g.gate.Advance(lifecycle.Prepared)
	return g, nil
}

// Compute runs every part, distributed over comm.
func (g *TwoParticleGF) Compute(comm mpicomm.Comm) error {
	if err := g.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(g.parts), func(i int) {
		if err := g.parts[i].part.Compute(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	g.gate.Advance(lifecycle.Computed)
	return nil
}

// AtFrequencies evaluates chi(z1, z2, z3) directly, applying each
// permutation's inverse frequency remap to {z1, z2, -z3} before delegating
// to that permutation's parts (spec §4.9).
func (g *TwoParticleGF) AtFrequencies(z1, z2, z3 complex128) complex128 {
	negZ3 := -z3
	var sum complex128
	for _, pp := range g.parts {
		a, b, c := pp.perm.FreqPerm(z1, z2, negZ3)
		sum += pp.part.Eval(a, b, c)
	}
	return sum
}

// AtMatsubara evaluates chi(i*omega_n1, i*omega_n2, i*omega_n3) using
// fermionic Matsubara frequencies in all three arguments.
func (g *TwoParticleGF) AtMatsubara(n1, n2, n3 int) complex128 {
	z1 := complex(0, g.thermal.MatsubaraFermionic(n1))
	z2 := complex(0, g.thermal.MatsubaraFermionic(n2))
	z3 := complex(0, g.thermal.MatsubaraFermionic(n3))
	return g.AtFrequencies(z1, z2, z3)
}
