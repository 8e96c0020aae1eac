// Package lifecycle provides the small state-machine guard shared by every
// computable object in edlat (HilbertSpace, Hamiltonian, DensityMatrix,
// MonomialOperator, and every correlator), plus the Thermal value type that
// attaches an inverse temperature to the objects that need one.
//
// Every computable object in this module moves forward through three states:
//
//	Constructed -> Prepared -> Computed
//
// Objects without a separate prepare step (HilbertSpace, DensityMatrix) go
// from Constructed straight to Computed.
// Prepare() allocates structure (dense blocks, sparse images, term storage);
// Compute() fills in numeric content (eigenvalues, weights, residues).
// Accessors declare the minimum status they require and return
// ErrStatusMismatch via Gate.Require when called too early.
package lifecycle
