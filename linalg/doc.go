// Package linalg declares the narrow interfaces edlat uses to consume its
// dense-linear-algebra collaborator (spec §6: "Dense linear algebra ... is
// delegated to an external linear-algebra library"). It ships the default
// EigenSolver, backed by gonum.org/v1/gonum/mat, and the DualSparseMatrix
// storage type; the default LinearOperator lives in package expr.
//
// Nothing in this package depends on the rest of edlat: hamiltonian, fieldop,
// and the correlator packages depend on linalg, never the other way around.
package linalg
