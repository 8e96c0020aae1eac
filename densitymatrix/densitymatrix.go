package densitymatrix

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/mpicomm"
)

// DensityMatrixPart holds the Gibbs weights of one block.
type DensityMatrixPart struct {
	gate     lifecycle.Gate
	Block    hilbert.BlockNumber
	part     *hamiltonian.HamiltonianPart
	thermal  lifecycle.Thermal
	ground   float64
	weights  []float64 // exp(-beta(E_i - E0)) before normalize, weight after
	zPart    float64
	Retained bool
}

// NewDensityMatrixPart constructs a part referencing its HamiltonianPart and
// the shared, already-shifted ground energy.
func NewDensityMatrixPart(block hilbert.BlockNumber, part *hamiltonian.HamiltonianPart, thermal lifecycle.Thermal, groundEnergy float64) *DensityMatrixPart {
	return &DensityMatrixPart{gate: lifecycle.NewGate("DensityMatrixPart"), Block: block, part: part, thermal: thermal, ground: groundEnergy}
}

// computeUnnormalized fills weights[i] = exp(-beta(E_i - E0)) and returns Z_part.
func (p *DensityMatrixPart) computeUnnormalized() error {
	n := p.part.Size()
	p.weights = make([]float64, n)
	for i := 0; i < n; i++ {
		e, err := p.part.EigenValue(i)
		if err != nil {
			return err
		}
		p.weights[i] = math.Exp(-p.thermal.Beta * (e - p.ground))
	}
	p.zPart = floats.Sum(p.weights)
	p.gate.Advance(lifecycle.Prepared)
	return nil
}

// normalize divides every weight and zPart by the global Z.
func (p *DensityMatrixPart) normalize(z float64) {
	for i := range p.weights {
		p.weights[i] /= z
	}
	p.zPart /= z
	p.gate.Advance(lifecycle.Computed)
}

// Weight returns the normalized Gibbs weight of inner state i.
func (p *DensityMatrixPart) Weight(i int) (float64, error) {
	if err := p.gate.Require(lifecycle.Computed); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(p.weights) {
		return 0, &ederr.OutOfRangeError{Op: "DensityMatrixPart.Weight", Index: i, Bound: len(p.weights)}
	}
	return p.weights[i], nil
}

// ZPart returns this block's contribution to the (normalized) partition function.
func (p *DensityMatrixPart) ZPart() float64 { return p.zPart }

// MaxWeight returns the largest weight in this block, used by Truncate.
func (p *DensityMatrixPart) MaxWeight() float64 {
	if len(p.weights) == 0 {
		return 0
	}
	return floats.Max(p.weights)
}

// DensityMatrix coordinates every block's Gibbs weights and the global Z.
type DensityMatrix struct {
	gate    lifecycle.Gate
	parts   []*DensityMatrixPart
	thermal lifecycle.Thermal
	Z       float64
}

// NewDensityMatrix builds one DensityMatrixPart per block of h, shifted by
// h.GroundEnergy (spec §4.3: "the ground-energy shift is essential").
func NewDensityMatrix(h *hamiltonian.Hamiltonian, thermal lifecycle.Thermal) (*DensityMatrix, error) {
	parts := make([]*DensityMatrixPart, h.NumBlocks())
	for b := 0; b < h.NumBlocks(); b++ {
		hp, err := h.Part(hilbert.BlockNumber(b))
		if err != nil {
			return nil, err
		}
		parts[b] = NewDensityMatrixPart(hilbert.BlockNumber(b), hp, thermal, h.GroundEnergy)
	}
	return &DensityMatrix{gate: lifecycle.NewGate("DensityMatrix"), parts: parts, thermal: thermal}, nil
}

// Part returns the DensityMatrixPart for block b.
func (dm *DensityMatrix) Part(b hilbert.BlockNumber) (*DensityMatrixPart, error) {
	if int(b) < 0 || int(b) >= len(dm.parts) {
		return nil, &ederr.OutOfRangeError{Op: "DensityMatrix.Part", Index: int(b), Bound: len(dm.parts)}
	}
	return dm.parts[b], nil
}

// Compute runs the two-phase computation of spec §4.3: each part computes
// its unnormalized weights and Z_part, the global Z is reduced, then every
// part normalizes by the same Z. After this call,
// sum over all blocks and states of Weight() == 1 within tol_H (spec §8
// invariant 3).
func (dm *DensityMatrix) Compute(comm mpicomm.Comm) error {
	var firstErr error
	mpicomm.ParallelFor(comm, len(dm.parts), func(i int) {
		if err := dm.parts[i].computeUnnormalized(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	z := 0.0
	for _, p := range dm.parts {
		z += p.zPart
	}
	dm.Z = z
	for _, p := range dm.parts {
		p.normalize(z)
	}
	dm.gate.Advance(lifecycle.Computed)
	return nil
}

// Truncate marks every block "retained" iff its largest weight exceeds tol
// (spec §4.3 truncateBlocks). Correlator construction should build parts only
// when at least one of the connected blocks is retained.
func (dm *DensityMatrix) Truncate(tol float64) {
	for _, p := range dm.parts {
		p.Retained = p.MaxWeight() > tol
	}
}

// AnyRetained reports whether either of the two blocks is retained, the
// gating condition correlator construction uses throughout spec §4.6-§4.9.
func (dm *DensityMatrix) AnyRetained(a, b hilbert.BlockNumber) bool {
	pa, errA := dm.Part(a)
	pb, errB := dm.Part(b)
	if errA != nil || errB != nil {
		return false
	}
	return pa.Retained || pb.Retained
}
