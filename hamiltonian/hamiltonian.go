package hamiltonian

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
)

// Hamiltonian orchestrates every HamiltonianPart across an MPI communicator
// (spec §4.2) and exposes the global spectrum.
type Hamiltonian struct {
	gate         lifecycle.Gate
	sc           *hilbert.StatesClassification
	parts        []*HamiltonianPart
	GroundEnergy float64
	IsComplex    bool
}

// NewHamiltonian builds one HamiltonianPart per block of sc for the
// Hamiltonian's linear-operator representation op.
func NewHamiltonian(sc *hilbert.StatesClassification, op linalg.LinearOperator, solver linalg.EigenSolver, hermiticityTol float64) (*Hamiltonian, error) {
	parts := make([]*HamiltonianPart, sc.NumBlocks())
	isComplex := false
	for b := 0; b < sc.NumBlocks(); b++ {
		p, err := NewHamiltonianPart(hilbert.BlockNumber(b), sc, op, solver, hermiticityTol)
		if err != nil {
			return nil, err
		}
		parts[b] = p
		isComplex = isComplex || p.IsComplex()
	}
	return &Hamiltonian{gate: lifecycle.NewGate("Hamiltonian"), sc: sc, parts: parts, IsComplex: isComplex}, nil
}

// Part returns the HamiltonianPart for block b.
func (h *Hamiltonian) Part(b hilbert.BlockNumber) (*HamiltonianPart, error) {
	if int(b) < 0 || int(b) >= len(h.parts) {
		return nil, &ederr.OutOfRangeError{Op: "Hamiltonian.Part", Index: int(b), Bound: len(h.parts)}
	}
	return h.parts[b], nil
}

// NumBlocks returns the number of blocks.
func (h *Hamiltonian) NumBlocks() int { return len(h.parts) }

// Prepare assembles every block's dense matrix, distributed across comm.
func (h *Hamiltonian) Prepare(comm mpicomm.Comm) error {
	var firstErr error
	mpicomm.ParallelFor(comm, len(h.parts), func(i int) {
		if err := h.parts[i].Prepare(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	h.gate.Advance(lifecycle.Prepared)
	return nil
}

// Compute diagonalizes every block, distributed across comm, then derives
// GroundEnergy = min over all blocks of the minimum eigenvalue (spec §8
// invariant 2).
func (h *Hamiltonian) Compute(comm mpicomm.Comm) error {
	if err := h.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(h.parts), func(i int) {
		if err := h.parts[i].Compute(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	ground := math.Inf(1)
	for _, p := range h.parts {
		if len(p.Eigenvalues) == 0 {
			continue
		}
		ground = math.Min(ground, floats.Min(p.Eigenvalues))
	}
	h.GroundEnergy = ground
	h.gate.Advance(lifecycle.Computed)
	return nil
}

// Reduce truncates every block to eigenvalues within [GroundEnergy,
// GroundEnergy+cutoff] (spec §4.2 cutoff reduction).
func (h *Hamiltonian) Reduce(cutoff float64) error {
	if err := h.gate.Require(lifecycle.Computed); err != nil {
		return err
	}
	threshold := h.GroundEnergy + cutoff
	for _, p := range h.parts {
		if err := p.Reduce(threshold); err != nil {
			return err
		}
	}
	return nil
}

// EigenValue returns the eigenvalue of block b at inner index i.
func (h *Hamiltonian) EigenValue(b hilbert.BlockNumber, i int) (float64, error) {
	p, err := h.Part(b)
	if err != nil {
		return 0, err
	}
	return p.EigenValue(i)
}
