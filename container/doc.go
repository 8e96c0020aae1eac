// Package container implements IndexContainer2 and IndexContainer4 (spec
// §4.11): sparse on-demand caches of correlator objects keyed by index
// tuples. IndexContainer4 additionally exploits four index permutations of a
// four-point object (identity, i<->j, k<->l, both; spec §8 invariant 6) so one
// computed entry can answer lookups for up to four equivalent tuples.
//
// Grounded on original_source/include/pomerol/IndexContainer2.hpp,
// IndexContainer4.hpp. The generic lazy-cache shape generalizes the
// teacher's map-based adjacency storage (core.Graph's
// map[string]map[string][]*Edge) to an arbitrary value type via generics.
package container
