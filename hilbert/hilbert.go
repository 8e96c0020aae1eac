package hilbert

import (
	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
)

// BlockNumber indexes an invariant subspace. NoBlock is the sentinel "no
// such block" used as an absent edge in block-to-block maps (spec §3).
type BlockNumber int

const NoBlock BlockNumber = -1

// HilbertSpace owns the full state space dimension and the Hamiltonian's
// linear-operator representation, and discovers the block partition.
type HilbertSpace struct {
	gate      lifecycle.Gate
	dim       int
	h         linalg.LinearOperator
	fieldOps  []linalg.LinearOperator
	blockOf   []BlockNumber
	numBlocks int
}

// NewHilbertSpace constructs a HilbertSpace of the given Fock-space
// dimension (2^n for n spin-orbitals under Jordan-Wigner), with h the
// Hamiltonian's linear-operator representation and fieldOps the full list of
// elementary c_i/c^dagger_i operators used for phase II refinement.
func NewHilbertSpace(dim int, h linalg.LinearOperator, fieldOps []linalg.LinearOperator) *HilbertSpace {
	return &HilbertSpace{gate: lifecycle.NewGate("HilbertSpace"), dim: dim, h: h, fieldOps: fieldOps}
}

// Dim returns the full Fock-space dimension.
func (hs *HilbertSpace) Dim() int { return hs.dim }

// Compute runs the two-phase partition discovery described in spec §4.1.
func (hs *HilbertSpace) Compute() error {
	groups := expr.PartitionByOperator(hs.h, hs.dim)
	blockOf := make([]int, hs.dim)
	for b, g := range groups {
		for _, s := range g {
			blockOf[int(s)] = b
		}
	}
	numBlocks := len(groups)

	for {
		changed := false
		for _, op := range hs.fieldOps {
			merged := expr.MergeByOperator(op, blockOf, numBlocks)
			newNumBlocks := 0
			for _, b := range merged {
				if b+1 > newNumBlocks {
					newNumBlocks = b + 1
				}
			}
			if newNumBlocks != numBlocks {
				changed = true
			}
			blockOf, numBlocks = merged, newNumBlocks
		}
		if !changed {
			break
		}
	}

	hs.blockOf = make([]BlockNumber, hs.dim)
	for s, b := range blockOf {
		hs.blockOf[s] = BlockNumber(b)
	}
	hs.numBlocks = numBlocks
	hs.gate.Advance(lifecycle.Computed)
	return nil
}

// GetSpacePartition returns the StatesClassification built from the
// discovered partition. It fails with a StatusMismatchError if Compute has
// not been called.
func (hs *HilbertSpace) GetSpacePartition() (*StatesClassification, error) {
	if err := hs.gate.Require(lifecycle.Computed); err != nil {
		return nil, err
	}
	return newStatesClassification(hs.dim, hs.numBlocks, hs.blockOf), nil
}

// BlockOf returns the block of a global Fock state without requiring the
// full StatesClassification, useful from within expr-based assembly code.
func (hs *HilbertSpace) BlockOf(s linalg.FockState) (BlockNumber, error) {
	if err := hs.gate.Require(lifecycle.Computed); err != nil {
		return NoBlock, err
	}
	if int(s) < 0 || int(s) >= hs.dim {
		return NoBlock, &ederr.OutOfRangeError{Op: "HilbertSpace.BlockOf", Index: int(s), Bound: hs.dim}
	}
	return hs.blockOf[s], nil
}
