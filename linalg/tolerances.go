package linalg

import "math"

// Tolerances bundles the tolerance presets named in spec §8. Callers are
// expected to construct their own instance from measured or configured
// values; DefaultTolerances exists only to give tests and examples a sane
// starting point, mirroring the "tolerances are caller-provided scalars, no
// config file" stance of spec §6/§7.
type Tolerances struct {
	HermiticityTol    float64 // tol_H = 100*eps
	GreensFunctionTol float64 // tol_GF
	TwoParticleGFTol  float64 // tol_2PGF
	ResonanceTol      float64 // tol_resonance
	MatrixElementTol  float64
	MultitermCoeffTol float64
}

// EPS is machine epsilon for float64, used wherever the spec's "eps" appears.
var EPS = math.Nextafter(1, 2) - 1

// DefaultTolerances returns the values used throughout spec §8's testable
// properties.
func DefaultTolerances() Tolerances {
	return Tolerances{
		HermiticityTol:    100 * EPS,
		GreensFunctionTol: 1e-7,
		TwoParticleGFTol:  1e-6,
		ResonanceTol:      1e-8,
		MatrixElementTol:  1e-10,
		MultitermCoeffTol: 1e-14,
	}
}

// Kronecker is the Kronecker delta on comparable-by-equality integers,
// pomerol's Misc.h KroneckerSymbol.
func Kronecker(a, b int) float64 {
	if a == b {
		return 1
	}
	return 0
}
