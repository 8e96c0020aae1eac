// Package hilbert implements HilbertSpace and StatesClassification (spec
// §4.1): the two-phase discovery of the invariant subspaces ("blocks") of a
// Hamiltonian's linear-operator representation, and the per-block basis
// bookkeeping every downstream component reads from.
//
// Phase I merges basis states connected by any non-zero matrix element of
// the Hamiltonian (package expr's generic PartitionByOperator collaborator).
// Phase II repeatedly merges blocks that an elementary fermionic operator
// would otherwise split across more than one block, until no merge remains
// (package expr's MergeByOperator), matching original_source's Symmetrizer.
package hilbert
