package expr

// Presets mirrors pomerol's LatticePresets: small helpers that assemble the
// standard terms of Anderson/Hubbard-type lattice models directly as
// Expression contributions, meant to be folded together with Expression.Add.

// AddLevel returns the on-site energy term level * n_i = level * c^dagger_i c_i.
func AddLevel(level float64, i int) Expression {
	return NewQuadratic(complex(level, 0), i, i)
}

// AddHopping returns the hybridization term
// t * c^dagger_i c_j + conj(t) * c^dagger_j c_i.
func AddHopping(t complex128, i, j int) Expression {
	return NewQuadratic(t, i, j).Add(NewQuadratic(cconj(t), j, i))
}

// AddInteraction returns the density-density interaction U * n_i * n_j,
// expanded into its normal-ordered quartic form
// U * c^dagger_i c^dagger_j c_j c_i for i != j, or U * n_i for i == j (the
// Pauli-exclusion collapse of n_i^2 = n_i).
func AddInteraction(u float64, i, j int) Expression {
	if i == j {
		return AddLevel(u, i)
	}
	return NewQuartic(complex(u, 0), i, j, j, i)
}

// AddMagnetization returns the Zeeman-like term h * (n_up - n_down).
func AddMagnetization(h float64, up, down int) Expression {
	return AddLevel(h, up).Add(AddLevel(-h, down))
}

// AddSpinFlip re-exports SpinFlip under the LatticePresets naming used by the
// original source for a transverse hopping between two levels of opposite
// spin.
func AddSpinFlip(coeff complex128, up, down int) Expression {
	return SpinFlip(coeff, up, down)
}

func cconj(z complex128) complex128 { return complex(real(z), -imag(z)) }
