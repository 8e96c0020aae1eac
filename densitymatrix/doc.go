// Package densitymatrix implements DensityMatrixPart and DensityMatrix (spec
// §4.3): the block-diagonal Gibbs weights w.r.t. the shifted ground energy,
// the global partition function, and block truncation by retained weight.
//
// Grounded on original_source/include/pomerol/DensityMatrixPart.hpp,
// DensityMatrix.hpp. The ground-energy shift and two-phase normalize mirror
// the original exactly (spec §4.3): unnormalized weights are bounded by 1,
// then every part is rescaled once the global Z is known.
package densitymatrix
