package lifecycle

import "math"

// Thermal attaches an inverse temperature to an object whose evaluation
// depends on it (density matrix weights, Matsubara frequency spacing).
type Thermal struct {
	Beta float64
}

// NewThermal constructs a Thermal for the given inverse temperature. Beta
// must be strictly positive; it is stored as given, without validation.
func NewThermal(beta float64) Thermal {
	return Thermal{Beta: beta}
}

// MatsubaraFermionic returns the n-th fermionic Matsubara frequency
// omega_n = pi*(2n+1)/beta, as the imaginary part of i*omega_n.
func (t Thermal) MatsubaraFermionic(n int) float64 {
	return math.Pi * float64(2*n+1) / t.Beta
}

// MatsubaraBosonic returns the n-th bosonic Matsubara frequency
// omega_n = 2*pi*n/beta.
func (t Thermal) MatsubaraBosonic(n int) float64 {
	return 2 * math.Pi * float64(n) / t.Beta
}
