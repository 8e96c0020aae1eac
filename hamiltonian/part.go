package hamiltonian

import (
	"fmt"
	"math"

	"github.com/katalvlaran/edlat/ederr"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
)

// HamiltonianPart is one diagonal block of Ĥ. Before Compute it holds the
// dense Fock-basis matrix; after Compute its storage holds the eigenvector
// matrix (columns = eigenvectors, ascending eigenvalue order) and
// Eigenvalues is filled.
type HamiltonianPart struct {
	gate   lifecycle.Gate
	Block  hilbert.BlockNumber
	sc     *hilbert.StatesClassification
	op     linalg.LinearOperator
	solver linalg.EigenSolver
	tol    float64

	n         int // current number of surviving eigenvectors (may shrink after Reduce)
	originalN int // row count of the eigenvector matrix, fixed for this block's lifetime

	isComplex bool
	real      []float64    // row-major originalN*n
	cplx      []complex128 // row-major originalN*n

	Eigenvalues []float64
}

// NewHamiltonianPart constructs a part for the given block, referencing the
// shared StatesClassification and the Hamiltonian's linear-operator
// representation. solver is the EigenSolver collaborator; hermiticityTol is
// spec's tol_H = 100*eps.
func NewHamiltonianPart(block hilbert.BlockNumber, sc *hilbert.StatesClassification, op linalg.LinearOperator, solver linalg.EigenSolver, hermiticityTol float64) (*HamiltonianPart, error) {
	n, err := sc.BlockSize(block)
	if err != nil {
		return nil, err
	}
	return &HamiltonianPart{
		gate: lifecycle.NewGate("HamiltonianPart"), Block: block, sc: sc, op: op, solver: solver,
		tol: hermiticityTol, n: n, originalN: n, isComplex: op.IsComplex(),
	}, nil
}

// Size returns the block's current dimension (after any Reduce truncation).
func (p *HamiltonianPart) Size() int { return p.n }

// IsComplex reports whether this part stores complex scalars.
func (p *HamiltonianPart) IsComplex() bool { return p.isComplex }

// Prepare allocates and fills the dense Fock-basis matrix, then checks
// Hermiticity within tol_H (spec §4.2, §8 invariant 1).
func (p *HamiltonianPart) Prepare() error {
	states, err := p.sc.States(p.Block)
	if err != nil {
		return err
	}
	n := p.n
	if p.isComplex {
		p.cplx = make([]complex128, n*n)
	} else {
		p.real = make([]float64, n*n)
	}
	for col, s := range states {
		for dst, coeff := range p.op.Apply(s) {
			row, err := p.sc.InnerIndex(dst)
			if err != nil {
				continue // image outside the Fock space: skipped rather than reported
			}
			if p.isComplex {
				p.cplx[int(row)*n+col] = coeff
			} else {
				p.real[int(row)*n+col] = real(coeff)
			}
		}
	}
	if err := p.checkHermitian(); err != nil {
		return err
	}
	p.gate.Advance(lifecycle.Prepared)
	return nil
}

func (p *HamiltonianPart) checkHermitian() error {
	n := p.n
	var maxDiff float64
	if p.isComplex {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				d := p.cplx[i*n+j] - cconj(p.cplx[j*n+i])
				if a := cabs(d); a > maxDiff {
					maxDiff = a
				}
			}
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				d := p.real[i*n+j] - p.real[j*n+i]
				if a := math.Abs(d); a > maxDiff {
					maxDiff = a
				}
			}
		}
	}
	if maxDiff >= p.tol {
		return &ederr.NumericError{Op: "HamiltonianPart.Prepare", Reason: fmt.Sprintf("block %d failed Hermiticity check: |H-H+|=%g >= tol=%g", p.Block, maxDiff, p.tol)}
	}
	return nil
}

// Compute diagonalizes the block via the configured EigenSolver, replacing
// the stored matrix with its eigenvector matrix (columns = eigenvectors) and
// filling Eigenvalues.
func (p *HamiltonianPart) Compute() error {
	if err := p.gate.Require(lifecycle.Prepared); err != nil {
		return err
	}
	n := p.n
	if n == 0 {
		p.gate.Advance(lifecycle.Computed)
		return nil
	}
	if p.isComplex {
		values, vectors, err := p.solver.SolveComplex(p.cplx, n)
		if err != nil {
			return &ederr.NumericError{Op: "HamiltonianPart.Compute", Reason: err.Error()}
		}
		p.Eigenvalues, p.cplx = values, vectors
	} else {
		values, vectors, err := p.solver.SolveReal(p.real, n)
		if err != nil {
			return &ederr.NumericError{Op: "HamiltonianPart.Compute", Reason: err.Error()}
		}
		p.Eigenvalues, p.real = values, vectors
	}
	p.gate.Advance(lifecycle.Computed)
	return nil
}

// EigenValue returns the i-th eigenvalue (ascending) of this block.
func (p *HamiltonianPart) EigenValue(i int) (float64, error) {
	if err := p.gate.Require(lifecycle.Computed); err != nil {
		return 0, err
	}
	if i < 0 || i >= p.n {
		return 0, &ederr.OutOfRangeError{Op: "HamiltonianPart.EigenValue", Index: i, Bound: p.n}
	}
	return p.Eigenvalues[i], nil
}

// EigenVectorReal returns the (row, col) entry of the real eigenvector
// matrix (row ranges over [0, OriginalSize()), col over [0, Size())). Valid
// only when !IsComplex().
func (p *HamiltonianPart) EigenVectorReal(row, col int) float64 {
	return p.real[row*p.n+col]
}

// EigenVectorComplex returns the (row, col) entry of the complex eigenvector
// matrix. Valid only when IsComplex().
func (p *HamiltonianPart) EigenVectorComplex(row, col int) complex128 {
	return p.cplx[row*p.n+col]
}

// Reduce discards eigenvalues strictly above threshold and truncates the
// eigenvector matrix's trailing columns accordingly (spec §4.2
// Hamiltonian.reduce). Because the eigensolver returns ascending
// eigenvalues, survivors are always a leading prefix; the row count
// (OriginalSize) never shrinks, since eigenvectors still live in the block's
// full Fock-basis dimension.
func (p *HamiltonianPart) Reduce(threshold float64) error {
	if err := p.gate.Require(lifecycle.Computed); err != nil {
		return err
	}
	keep := 0
	for keep < len(p.Eigenvalues) && p.Eigenvalues[keep] <= threshold {
		keep++
	}
	if keep == p.n {
		return nil
	}
	oldCols := p.n
	rows := p.originalN
	p.Eigenvalues = p.Eigenvalues[:keep]
	if p.isComplex {
		newData := make([]complex128, rows*keep)
		for row := 0; row < rows; row++ {
			copy(newData[row*keep:(row+1)*keep], p.cplx[row*oldCols:row*oldCols+keep])
		}
		p.cplx = newData
	} else {
		newData := make([]float64, rows*keep)
		for row := 0; row < rows; row++ {
			copy(newData[row*keep:(row+1)*keep], p.real[row*oldCols:row*oldCols+keep])
		}
		p.real = newData
	}
	p.n = keep
	return nil
}

// OriginalSize returns the block's dimension before any Reduce call.
func (p *HamiltonianPart) OriginalSize() int { return p.originalN }

func cconj(z complex128) complex128 { return complex(real(z), -imag(z)) }
func cabs(z complex128) float64     { return math.Hypot(real(z), imag(z)) }
