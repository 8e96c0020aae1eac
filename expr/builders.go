package expr

// NewCreation returns c^dagger_i as a monomial Expression with unit
// coefficient (spec §6 builder surface).
func NewCreation(i int) Expression {
	return NewExpression(Monomial{Coeff: 1, Operators: []Operator{{Type: Creation, Index: i}}})
}

// NewAnnihilation returns c_i as a monomial Expression with unit coefficient.
func NewAnnihilation(i int) Expression {
	return NewExpression(Monomial{Coeff: 1, Operators: []Operator{{Type: Annihilation, Index: i}}})
}

// NewQuadratic returns coeff * c^dagger_i c_j.
func NewQuadratic(coeff complex128, i, j int) Expression {
	return NewExpression(Monomial{Coeff: coeff, Operators: []Operator{
		{Type: Creation, Index: i}, {Type: Annihilation, Index: j},
	}})
}

// NewQuartic returns coeff * c^dagger_i c^dagger_j c_k c_l, the generic
// interaction term builder (spec §6).
func NewQuartic(coeff complex128, i, j, k, l int) Expression {
	return NewExpression(Monomial{Coeff: coeff, Operators: []Operator{
		{Type: Creation, Index: i}, {Type: Creation, Index: j},
		{Type: Annihilation, Index: k}, {Type: Annihilation, Index: l},
	}})
}

// NumberOperator returns n_i = c^dagger_i c_i (pomerol's OperatorPresets
// number-operator convenience wrapper).
func NumberOperator(i int) Expression {
	return NewQuadratic(1, i, i)
}

// SpinFlip returns c^dagger_up c_down - c^dagger_down c_up scaled by coeff, the
// transverse spin-exchange term used by LatticePresets.addSpinFlip in the
// original source.
func SpinFlip(coeff complex128, up, down int) Expression {
	return NewQuadratic(coeff, up, down).Add(NewQuadratic(-coeff, down, up))
}
