package twoparticle

import (
	"github.com/katalvlaran/edlat/greensfunction"
	"github.com/katalvlaran/edlat/lifecycle"
)

// Vertex4 is the irreducible four-point vertex, a thin consumer of a
// TwoParticleGF and four single-particle GreensFunction instances (spec
// §4.10):
//
//	Gamma_ijkl(n1,n2,n3) = chi_ijkl(n1,n2,n3)
//	    + beta*G_ik(n1)*G_jl(n2)*delta(n1,n3)
//	    - beta*G_il(n1)*G_jk(n2)*delta(n2,n3)
type Vertex4 struct {
	chi            *TwoParticleGF
	gIK, gJL, gIL, gJK *greensfunction.GreensFunction
	beta           float64
}

// NewVertex4 builds a Vertex4 from an already-computed TwoParticleGF and the
// four single-particle GreensFunctions it subtracts Wick contractions with.
func NewVertex4(chi *TwoParticleGF, gIK, gJL, gIL, gJK *greensfunction.GreensFunction, thermal lifecycle.Thermal) *Vertex4 {
	return &Vertex4{chi: chi, gIK: gIK, gJL: gJL, gIL: gIL, gJK: gJK, beta: thermal.Beta}
}

// AtMatsubara evaluates Gamma(n1, n2, n3).
func (v *Vertex4) AtMatsubara(n1, n2, n3 int) complex128 {
	result := v.chi.AtMatsubara(n1, n2, n3)
	if n1 == n3 {
		result += complex(v.beta, 0) * v.gIK.AtMatsubara(n1) * v.gJL.AtMatsubara(n2)
	}
	if n2 == n3 {
		result -= complex(v.beta, 0) * v.gIL.AtMatsubara(n1) * v.gJK.AtMatsubara(n2)
	}
	return result
}
