package twoparticle

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/edlat/termlist"
)

// Permutation is one of the six orderings of the three chased operators
// (c_i, c_j, c^dagger_k), with the sign of the corresponding term in the
// time-ordered expansion (spec §4.9).
type Permutation struct {
	Name     string
	Order    [3]int // indices into {0:i, 1:j, 2:k} giving chase order
	Sign     float64
	FreqPerm func(z1, z2, z3 complex128) (complex128, complex128, complex128)
}

// SixPermutations returns every ordering of {c_i, c_j, c^dagger_k} with its
// parity sign, in the fixed order the original source enumerates them.
func SixPermutations() []Permutation {
	id := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z1, z2, z3 }
	swap12 := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z2, z1, z3 }
	swap23 := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z1, z3, z2 }
	swap13 := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z3, z2, z1 }
	rot1 := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z2, z3, z1 }
	rot2 := func(z1, z2, z3 complex128) (complex128, complex128, complex128) { return z3, z1, z2 }
	return []Permutation{
		{Name: "ijk", Order: [3]int{0, 1, 2}, Sign: 1, FreqPerm: id},
		{Name: "jik", Order: [3]int{1, 0, 2}, Sign: -1, FreqPerm: swap12},
		{Name: "ikj", Order: [3]int{0, 2, 1}, Sign: -1, FreqPerm: swap23},
		{Name: "kji", Order: [3]int{2, 1, 0}, Sign: -1, FreqPerm: swap13},
		{Name: "jki", Order: [3]int{1, 2, 0}, Sign: 1, FreqPerm: rot1},
		{Name: "kij", Order: [3]int{2, 0, 1}, Sign: 1, FreqPerm: rot2},
	}
}

// NonResonantTerm is C/((z1-P1)(z2-P2)(z3-P3)), or, when Isz4 is set, the
// spec §4.9 alternate form C/((z1-P1)(z4-SumP)(z3-P3)) with
// z4 = z1+z2-z3 and SumP = P1+P2+P3.
type NonResonantTerm struct {
	P1, P2, P3 float64
	Isz4       bool
	C          complex128
}

// ResonantTerm carries a pair (R, N): near the z1+z2 (or z2+z3) resonance the
// term reads R/((z1-P1)(z3-P3)); off resonance N/(z2+z3-P2-P3) (or the
// z1+z2 analogue, selected by Isz1z2) applies instead (spec §4.9).
type ResonantTerm struct {
	P1, P3  float64
	SumPole float64
	Isz1z2  bool
	R, N    complex128
}

func nonResonantPolicies(tol float64) termlist.Policies[NonResonantTerm] {
	return termlist.Policies[NonResonantTerm]{
		Hash: func(t NonResonantTerm) uint64 {
			return hashFloat(t.P1, tol)*961 + hashFloat(t.P2, tol)*31 + hashFloat(t.P3, tol)
		},
		KeyEqual: func(a, b NonResonantTerm) bool {
			return math.Abs(a.P1-b.P1) <= tol && math.Abs(a.P2-b.P2) <= tol && math.Abs(a.P3-b.P3) <= tol && a.Isz4 == b.Isz4
		},
		Merge: func(existing *NonResonantTerm, add NonResonantTerm, multiplicity int) {
			w := 1.0 / float64(multiplicity)
			existing.P1 = existing.P1*(1-w) + add.P1*w
			existing.P2 = existing.P2*(1-w) + add.P2*w
			existing.P3 = existing.P3*(1-w) + add.P3*w
			existing.C += add.C
		},
		IsNegligible: func(t NonResonantTerm, sizeAfter int) bool {
			return cmplx.Abs(t.C) <= tol/float64(sizeAfter+1)
		},
	}
}

func resonantPolicies(tol float64) termlist.Policies[ResonantTerm] {
	return termlist.Policies[ResonantTerm]{
		Hash: func(t ResonantTerm) uint64 {
			return hashFloat(t.P1, tol)*31 + hashFloat(t.P3, tol)
		},
		KeyEqual: func(a, b ResonantTerm) bool {
			return math.Abs(a.P1-b.P1) <= tol && math.Abs(a.P3-b.P3) <= tol && a.Isz1z2 == b.Isz1z2
		},
		Merge: func(existing *ResonantTerm, add ResonantTerm, multiplicity int) {
			w := 1.0 / float64(multiplicity)
			existing.P1 = existing.P1*(1-w) + add.P1*w
			existing.P3 = existing.P3*(1-w) + add.P3*w
			existing.SumPole = existing.SumPole*(1-w) + add.SumPole*w
			existing.R += add.R
			existing.N += add.N
		},
		IsNegligible: func(t ResonantTerm, sizeAfter int) bool {
			return cmplx.Abs(t.R)+cmplx.Abs(t.N) <= tol/float64(sizeAfter+1)
		},
	}
}

func hashFloat(x, tol float64) uint64 {
	if tol <= 0 {
		tol = 1e-12
	}
	return uint64(int64(math.Round(x / tol)))
}
