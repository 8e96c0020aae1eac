// Package twoparticle implements TwoParticleGFPart and TwoParticleGF (spec
// §4.9): the four-operator correlator chi_ijkl(z1, z2, z3), summed over the
// six time-orderings of (c_i, c_j, c^dagger_k) against a fixed closing
// c^dagger_l, plus Vertex4 (spec §4.10) and MatsubaraCache, the cubic
// frequency-triple cache spec §4.9 describes.
//
// Grounded on original_source/include/pomerol/TwoParticleGFPart.h,
// TwoParticleGF.h, Vertex4.h. The permutation table mirrors the teacher's
// enumerated-strategy pattern (tsp package's fixed set of construction
// heuristics tried in turn).
package twoparticle
