package fieldop

import (
	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
)

// MonomialOperator owns the parts of a single monomial operator across every
// connected (left, right) block pair, plus the bijective LeftRightBlocks
// relation spec §3 requires: at most one edge per left block and per right
// block (spec §8 invariant 4).
type MonomialOperator struct {
	gate         lifecycle.Gate
	expression   expr.Expression
	op           linalg.LinearOperator
	sc           *hilbert.StatesClassification
	ham          *hamiltonian.Hamiltonian
	dm           retainedChecker
	parts        []*MonomialOperatorPart
	partByLeft   map[hilbert.BlockNumber]int
	partByRight  map[hilbert.BlockNumber]int
}

// retainedChecker decouples fieldop from densitymatrix's concrete type while
// still letting MonomialOperator skip unretained block pairs (spec §4.3:
// "correlator parts are built only when at least one of the ... blocks ...
// is retained").
type retainedChecker interface {
	AnyRetained(a, b hilbert.BlockNumber) bool
}

// NewMonomialOperator constructs a MonomialOperator from expression, which
// must be a monomial (spec §4.4 construction-time constraint); otherwise a
// ConstructionError is returned.
func NewMonomialOperator(expression expr.Expression, sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm retainedChecker) (*MonomialOperator, error) {
	if !expression.IsMonomial() {
		return nil, &ederr.ConstructionError{Op: "NewMonomialOperator", Reason: "expression is not a single monomial"}
	}
	return &MonomialOperator{
		gate: lifecycle.NewGate("MonomialOperator"), expression: expression,
		op: expression.ToLinearOperator(), sc: sc, ham: ham, dm: dm,
		partByLeft: map[hilbert.BlockNumber]int{}, partByRight: map[hilbert.BlockNumber]int{},
	}, nil
}

// Prepare discovers every (left, right) block pair with a non-zero image
// (spec §4.4 step 1-3) and materializes an (uncomputed) part for each,
// skipping pairs where neither block is retained.
func (m *MonomialOperator) Prepare() error {
	for right := 0; right < m.sc.NumBlocks(); right++ {
		states, err := m.sc.States(hilbert.BlockNumber(right))
		if err != nil {
			return err
		}
		leftSeen := map[hilbert.BlockNumber]bool{}
		for _, s := range states {
			for dst := range m.op.Apply(s) {
				left, err := m.sc.BlockOf(dst)
				if err != nil {
					continue
				}
				leftSeen[left] = true
			}
		}
		for left := range leftSeen {
			if m.dm != nil && !m.dm.AnyRetained(left, hilbert.BlockNumber(right)) {
				continue
			}
			hpLeft, err := m.ham.Part(left)
			if err != nil {
				return err
			}
			hpRight, err := m.ham.Part(hilbert.BlockNumber(right))
			if err != nil {
				return err
			}
			part := NewMonomialOperatorPart(left, hilbert.BlockNumber(right), hpLeft, hpRight, m.sc, m.op)
			idx := len(m.parts)
			m.parts = append(m.parts, part)
			m.partByLeft[left] = idx
			m.partByRight[hilbert.BlockNumber(right)] = idx
		}
	}
	m.gate.Advance(lifecycle.Prepared)
	return nil
}

// Compute runs each part's eigenbasis rotation chain, distributed over comm,
// pruning entries with |x| <= tol.
func (m *MonomialOperator) Compute(tol float64, comm mpicomm.Comm) error {
	if err := m.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	var firstErr error
	mpicomm.ParallelFor(comm, len(m.parts), func(i int) {
		if err := m.parts[i].Compute(tol); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}
	m.gate.Advance(lifecycle.Computed)
	return nil
}

// ComputeFromAdjoint fills every part of m as the adjoint of the
// already-computed MonomialOperator other (spec §4.4 adjoint shortcut),
// skipping the rotation chain entirely. The uncomputed parts made by Prepare
// are replaced by the adjoint parts.
func (m *MonomialOperator) ComputeFromAdjoint(other *MonomialOperator) error {
	if err := m.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	m.parts = nil
	m.partByLeft = map[hilbert.BlockNumber]int{}
	m.partByRight = map[hilbert.BlockNumber]int{}
	for _, op := range other.parts {
		part := FromAdjoint(op)
		idx := len(m.parts)
		m.parts = append(m.parts, part)
		m.partByLeft[part.Left] = idx
		m.partByRight[part.Right] = idx
	}
	m.gate.Advance(lifecycle.Computed)
	return nil
}

// PartByLeftRight returns the part connecting (left, right), if any.
func (m *MonomialOperator) PartByLeftRight(left, right hilbert.BlockNumber) (*MonomialOperatorPart, bool) {
	if idx, ok := m.partByLeft[left]; ok && m.parts[idx].Right == right {
		return m.parts[idx], true
	}
	return nil, false
}

// PartByLeft returns the unique part whose left block is left, if any
// (spec §3: "at most one edge exists" per left block).
func (m *MonomialOperator) PartByLeft(left hilbert.BlockNumber) (*MonomialOperatorPart, bool) {
	idx, ok := m.partByLeft[left]
	if !ok {
		return nil, false
	}
	return m.parts[idx], true
}

// PartByRight returns the unique part whose right block is right, if any.
func (m *MonomialOperator) PartByRight(right hilbert.BlockNumber) (*MonomialOperatorPart, bool) {
	idx, ok := m.partByRight[right]
	if !ok {
		return nil, false
	}
	return m.parts[idx], true
}

// Parts returns every computed part.
func (m *MonomialOperator) Parts() []*MonomialOperatorPart { return m.parts }
