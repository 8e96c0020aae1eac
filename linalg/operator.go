package linalg

// FockState is a many-body basis state encoded as an integer bit pattern
// (fermions) or occupation vector packed into an integer (bosons); it mirrors
// spec §3's QuantumState.
type FockState uint64

// LinearOperator is the "linear-operator representation" collaborator of
// spec §6: given a basis state, it returns the state's image as a sparse
// column (destination state -> coefficient). Both the full Hamiltonian and
// every monomial operator are consumed through this single interface; the
// concrete default implementation lives in package expr.
type LinearOperator interface {
	// Apply returns the non-zero images of state under the operator.
	Apply(state FockState) map[FockState]complex128
	// IsComplex reports whether any coefficient the operator can produce has
	// a non-zero imaginary part, used at the Hamiltonian-part-assembly
	// scalar-dispatch site (spec §9).
	IsComplex() bool
}
