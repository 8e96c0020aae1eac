// Package hamiltonian implements HamiltonianPart and Hamiltonian (spec
// §4.2): per-block dense assembly and diagonalization of Ĥ, plus the
// multi-block orchestration (ground energy, MPI-distributed prepare/compute,
// cutoff reduction) that ties blocks together.
//
// Dense storage is grounded on graph/matrix/adjacency_matrix.go's plain 2-D
// slice representation; diagonalization is delegated to linalg.EigenSolver,
// the dense-linear-algebra collaborator of spec §6.
package hamiltonian
