// Package susceptibility implements SusceptibilityPart and Susceptibility
// (spec §4.7): the bosonic two-operator correlator
//
//	chi_AB(z) = sum_{L,R} <L|A|R><R|B|L> (w_R - w_L) / (z - (E_L - E_R))
//
// evaluated with an overall minus sign to match the time-ordered convention
// <T_tau A(tau) B>, plus separate handling of the pole at P=0 and an optional
// subtraction of the disconnected part beta*<A><B> at omega=0.
//
// Grounded on original_source/include/pomerol/Susceptibility.h,
// EnsembleAverage.h; the part/container split and TermList plumbing reuse
// the shape built for greensfunction.GreensFunctionPart.
package susceptibility
