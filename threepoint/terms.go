package threepoint

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/edlat/termlist"
)

// Channel fixes the frequency-argument sign xi (spec §4.8). It does not pair
// or reorder operators: the caller passes F1, F2 and B already paired, and
// no channel-dependent prefactor is applied.
type Channel int

const (
	// PP is the particle-particle channel; xi = +1.
	PP Channel = iota
	// PH is the particle-hole channel; xi = -1.
	PH
	// XPH is the crossed particle-hole channel; xi = -1, and F1 and F2 are
	// used in the order given, as for PH.
	XPH
)

func (c Channel) xi() float64 {
	if c == PP {
		return 1
	}
	return -1
}

// FFTerm is a non-resonant fermion-fermion term: C / ((z1-P1)(z2-P2)).
type FFTerm struct {
	P1, P2 float64
	C      complex128
}

// FBTerm is a non-resonant fermion-boson term:
// C / ((z1-P1)(z1 - xi*z2 - P12)).
type FBTerm struct {
	P1, P12 float64
	Xi      float64
	C       complex128
}

// ResonantTerm fires a delta at z1 - xi*z2 == P: C / (z1 - P).
type ResonantTerm struct {
	P, Xi float64
	C     complex128
}

func ffPolicies(tol float64) termlist.Policies[FFTerm] {
	return termlist.Policies[FFTerm]{
		Hash: func(t FFTerm) uint64 { return hashFloat(t.P1, tol)*31 + hashFloat(t.P2, tol) },
		KeyEqual: func(a, b FFTerm) bool {
			return math.Abs(a.P1-b.P1) <= tol && math.Abs(a.P2-b.P2) <= tol
		},
		Merge: func(existing *FFTerm, add FFTerm, multiplicity int) {
			w := 1.0 / float64(multiplicity)
			existing.P1 = existing.P1*(1-w) + add.P1*w
			existing.P2 = existing.P2*(1-w) + add.P2*w
			existing.C += add.C
		},
		IsNegligible: func(t FFTerm, sizeAfter int) bool { return cmplx.Abs(t.C) <= tol/float64(sizeAfter+1) },
	}
}

func fbPolicies(tol float64) termlist.Policies[FBTerm] {
	return termlist.Policies[FBTerm]{
		Hash: func(t FBTerm) uint64 { return hashFloat(t.P1, tol)*31 + hashFloat(t.P12, tol) },
		KeyEqual: func(a, b FBTerm) bool {
			return math.Abs(a.P1-b.P1) <= tol && math.Abs(a.P12-b.P12) <= tol
		},
		Merge: func(existing *FBTerm, add FBTerm, multiplicity int) {
			w := 1.0 / float64(multiplicity)
			existing.P1 = existing.P1*(1-w) + add.P1*w
			existing.P12 = existing.P12*(1-w) + add.P12*w
			existing.C += add.C
		},
		IsNegligible: func(t FBTerm, sizeAfter int) bool { return cmplx.Abs(t.C) <= tol/float64(sizeAfter+1) },
	}
}

func resonantPolicies(tol float64) termlist.Policies[ResonantTerm] {
	return termlist.Policies[ResonantTerm]{
		Hash: func(t ResonantTerm) uint64 { return hashFloat(t.P, tol) },
		KeyEqual: func(a, b ResonantTerm) bool {
			return math.Abs(a.P-b.P) <= tol
		},
		Merge: func(existing *ResonantTerm, add ResonantTerm, multiplicity int) {
			w := 1.0 / float64(multiplicity)
			existing.P = existing.P*(1-w) + add.P*w
			existing.C += add.C
		},
		IsNegligible: func(t ResonantTerm, sizeAfter int) bool { return cmplx.Abs(t.C) <= tol/float64(sizeAfter+1) },
	}
}

func hashFloat(x, tol float64) uint64 {
	if tol <= 0 {
		tol = 1e-12
	}
	return uint64(int64(math.Round(x / tol)))
}
