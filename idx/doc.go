// Package idx implements IndexMap (spec §2/§3): a bijection between opaque
// single-particle index tuples carried by an expression (e.g. (site, spin))
// and a contiguous ParticleIndex range [0, N).
//
// Grounded on matrix.AdjacencyMatrix's Index map[string]int (external key ->
// dense integer row/column), generalized to a generic comparable tuple key
// via Go 1.23 generics.
package idx
