// Package expr is edlat's concrete stand-in for the "expression algebra"
// collaborator of spec §6: a polynomial expression over fermionic creation
// and annihilation operators with real or complex scalar coefficients, plus
// the linear-operator adapter and Hilbert-space partitioning primitive the
// rest of the engine consumes.
//
// The spec treats this algebra as external and out of scope for the core ED
// engine; this package exists only because the engine needs something
// concrete to build Hamiltonians and correlators from. It deliberately stays
// minimal: Jordan-Wigner fermions over a fixed, pre-enumerated set of
// single-particle indices (see package idx), no bosons, no symbolic
// simplification: monomials keep the operator order they were built with.
package expr
