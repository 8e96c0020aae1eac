// Package greensfunction implements GreensFunctionPart and GreensFunction
// (spec §4.6): the single-particle Lehmann representation
//
//	G(z) = sum_{L,R} <L|c|R><R|c+|L> (w_L + w_R) / (z - (E_R - E_L))
//
// plus Container, the GFContainer cache supplemented from
// original_source/include/pomerol/GFContainer.h.
package greensfunction
