// Package fieldop implements MonomialOperatorPart and MonomialOperator (spec
// §4.4) — the block-to-block sparse image of a monomial operator in the
// Hamiltonian's eigenbasis — plus Container, the FieldOperatorContainer
// supplemented from original_source/include/pomerol/FieldOperatorContainer.h.
//
// Grounded on original_source/include/pomerol/MonomialOperatorPart.hpp,
// MonomialOperator.hpp, FieldOperatorContainer.hpp. Dual row/column-major
// sparse storage is grounded on linalg.DualSparseMatrix (itself grounded on
// graph/matrix's two complementary dense views).
package fieldop
