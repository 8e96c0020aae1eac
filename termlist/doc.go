// Package termlist implements TermList[T] (spec §3/§4.5): a deduplicating
// aggregator of Lehmann pole terms under a (hash, approximate-equality,
// merge, negligibility) policy set, used by every correlator package to store
// its poles.
//
// Grounded on original_source/include/pomerol/TermList.hpp. The generic
// container shape (a bucketed map keyed by an approximate hash) generalizes
// the teacher's core.Graph adjacency map pattern to Go 1.23 generics, which
// the teacher predates; the policy-set configuration mirrors the
// functional-option/config-resolution idiom of the teacher's builder package.
package termlist
