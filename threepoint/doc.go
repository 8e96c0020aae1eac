// Package threepoint implements ThreePointSusceptibilityPart and
// ThreePointSusceptibility (spec §4.8): the fermion-fermion-boson correlator
// assembled over block triples (S1, S2, S3) connected by two fermionic
// monomial operators F1, F2 and a quadratic operator B = B1*B2, in one of
// three channels (PP, PH, xPH). The channel fixes only the sign xi; the
// operators are used as the caller pairs them and no channel-dependent
// overall prefactor is applied.
//
// Grounded on original_source/include/pomerol/ThreePointSusceptibility.h,
// ThreePointSusceptibilityPart.h; channel dispatch mirrors the teacher's
// algorithm-selector pattern (graph/algorithms picking a traversal strategy
// by an enum argument).
package threepoint
