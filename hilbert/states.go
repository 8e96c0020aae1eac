package hilbert

import (
	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/linalg"
)

// InnerQuantumState identifies a state inside its block (spec §3).
type InnerQuantumState int

// StatesClassification stores, for each block, its basis states and an
// inverse state -> block map, with the invariant (spec §3):
//
//	StateBlockIndex[States[B][i]] == B  for all B, i.
type StatesClassification struct {
	states          [][]linalg.FockState
	stateBlockIndex []BlockNumber
	innerIndex      []InnerQuantumState // parallel to stateBlockIndex
}

func newStatesClassification(dim, numBlocks int, blockOf []BlockNumber) *StatesClassification {
	sc := &StatesClassification{
		states:          make([][]linalg.FockState, numBlocks),
		stateBlockIndex: append([]BlockNumber(nil), blockOf...),
		innerIndex:      make([]InnerQuantumState, dim),
	}
	for s := 0; s < dim; s++ {
		b := blockOf[s]
		sc.innerIndex[s] = InnerQuantumState(len(sc.states[b]))
		sc.states[b] = append(sc.states[b], linalg.FockState(s))
	}
	return sc
}

// NumBlocks returns the number of discovered invariant subspaces.
func (sc *StatesClassification) NumBlocks() int { return len(sc.states) }

// BlockSize returns the dimension of block b.
func (sc *StatesClassification) BlockSize(b BlockNumber) (int, error) {
	if int(b) < 0 || int(b) >= len(sc.states) {
		return 0, &ederr.OutOfRangeError{Op: "StatesClassification.BlockSize", Index: int(b), Bound: len(sc.states)}
	}
	return len(sc.states[b]), nil
}

// States returns the Fock states of block b, in ascending InnerQuantumState order.
func (sc *StatesClassification) States(b BlockNumber) ([]linalg.FockState, error) {
	if int(b) < 0 || int(b) >= len(sc.states) {
		return nil, &ederr.OutOfRangeError{Op: "StatesClassification.States", Index: int(b), Bound: len(sc.states)}
	}
	return sc.states[b], nil
}

// BlockOf returns the block containing Fock state s.
func (sc *StatesClassification) BlockOf(s linalg.FockState) (BlockNumber, error) {
	if int(s) < 0 || int(s) >= len(sc.stateBlockIndex) {
		return NoBlock, &ederr.OutOfRangeError{Op: "StatesClassification.BlockOf", Index: int(s), Bound: len(sc.stateBlockIndex)}
	}
	return sc.stateBlockIndex[s], nil
}

// InnerIndex returns the position of Fock state s within its block.
func (sc *StatesClassification) InnerIndex(s linalg.FockState) (InnerQuantumState, error) {
	if int(s) < 0 || int(s) >= len(sc.innerIndex) {
		return 0, &ederr.OutOfRangeError{Op: "StatesClassification.InnerIndex", Index: int(s), Bound: len(sc.innerIndex)}
	}
	return sc.innerIndex[s], nil
}

// Dim returns the total number of Fock states across all blocks.
func (sc *StatesClassification) Dim() int { return len(sc.stateBlockIndex) }
