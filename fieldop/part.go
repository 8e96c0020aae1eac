package fieldop

import (
	"math"

	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
)

// MonomialOperatorPart is the sparse image <L|M|R> in the eigenbasis of Ĥ,
// stored in both row-major and column-major layouts (spec §3: "the
// correlator assembly traverses these matrices by rows of one factor and
// columns of another simultaneously").
type MonomialOperatorPart struct {
	gate        lifecycle.Gate
	Left, Right hilbert.BlockNumber
	hpLeft      *hamiltonian.HamiltonianPart
	hpRight     *hamiltonian.HamiltonianPart
	sc          *hilbert.StatesClassification
	op          linalg.LinearOperator
	Matrix      *linalg.DualSparseMatrix
}

// NewMonomialOperatorPart constructs a part for the (left, right) block edge.
func NewMonomialOperatorPart(left, right hilbert.BlockNumber, hpLeft, hpRight *hamiltonian.HamiltonianPart, sc *hilbert.StatesClassification, op linalg.LinearOperator) *MonomialOperatorPart {
	return &MonomialOperatorPart{gate: lifecycle.NewGate("MonomialOperatorPart"), Left: left, Right: right, hpLeft: hpLeft, hpRight: hpRight, sc: sc, op: op}
}

// Compute runs the three-step chain of spec §4.4: Fock-basis map of M from
// the right block to the left block, rotated by the right eigenvectors on
// the right and the left adjoint eigenvectors on the left, pruned at tol.
func (p *MonomialOperatorPart) Compute(tol float64) error {
	rightStates, err := p.sc.States(p.Right)
	if err != nil {
		return err
	}
	fockRows := p.hpLeft.OriginalSize()
	fockCols := p.hpRight.OriginalSize()
	fock := make([]complex128, fockRows*fockCols)
	for col, s := range rightStates {
		for dst, coeff := range p.op.Apply(s) {
			row, err := p.sc.InnerIndex(dst)
			if err != nil {
				continue
			}
			fock[int(row)*fockCols+col] = coeff
		}
	}

	a := p.hpLeft.Size()  // surviving left eigenstates
	b := p.hpRight.Size() // surviving right eigenstates
	entries := make([]linalg.SparseEntry, 0, a*b/4+1)
	leftComplex := p.hpLeft.IsComplex()
	rightComplex := p.hpRight.IsComplex()

	// tmp[j, bcol] = sum_i fock[j,i] * U_R[i, bcol]
	tmp := make([]complex128, fockRows*b)
	for j := 0; j < fockRows; j++ {
		for i := 0; i < fockCols; i++ {
			f := fock[j*fockCols+i]
			if f == 0 {
				continue
			}
			for bc := 0; bc < b; bc++ {
				var u complex128
				if rightComplex {
					u = p.hpRight.EigenVectorComplex(i, bc)
				} else {
					u = complex(p.hpRight.EigenVectorReal(i, bc), 0)
				}
				if u != 0 {
					tmp[j*b+bc] += f * u
				}
			}
		}
	}
	// out[a,b] = sum_j conj(U_L[j,a]) * tmp[j,b]
	out := make([]complex128, a*b)
	for ac := 0; ac < a; ac++ {
		for j := 0; j < fockRows; j++ {
			var u complex128
			if leftComplex {
				u = cconj(p.hpLeft.EigenVectorComplex(j, ac))
			} else {
				u = complex(p.hpLeft.EigenVectorReal(j, ac), 0)
			}
			if u == 0 {
				continue
			}
			for bc := 0; bc < b; bc++ {
				t := tmp[j*b+bc]
				if t == 0 {
					continue
				}
				out[ac*b+bc] += u * t
			}
		}
	}
	for ac := 0; ac < a; ac++ {
		for bc := 0; bc < b; bc++ {
			if v := out[ac*b+bc]; cabs(v) > tol {
				entries = append(entries, linalg.SparseEntry{Row: ac, Col: bc, Value: v})
			}
		}
	}
	p.Matrix = linalg.NewDualSparseMatrix(a, b, entries, tol)
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// FromAdjoint builds the (right, left) companion part as the conjugate
// transpose of an already-computed part, without recomputing the rotation
// chain (spec §4.4 adjoint shortcut): swapping row/column storage and
// conjugating values is all ConjTranspose does, at O(nnz) instead of O(n^3).
func FromAdjoint(other *MonomialOperatorPart) *MonomialOperatorPart {
	p := &MonomialOperatorPart{
		gate: lifecycle.NewGate("MonomialOperatorPart"), Left: other.Right, Right: other.Left,
		hpLeft: other.hpRight, hpRight: other.hpLeft, sc: other.sc, op: nil,
	}
	p.Matrix = other.Matrix.ConjTranspose()
	p.gate.Advance(lifecycle.Computed)
	return p
}

func cconj(z complex128) complex128 { return complex(real(z), -imag(z)) }
func cabs(z complex128) float64     { return math.Hypot(real(z), imag(z)) }
