package linalg

import (
	"math"
	"sort"
)

// SparseEntry is one non-zero element of a sparse matrix.
type SparseEntry struct {
	Row, Col int
	Value    complex128
}

// DualSparseMatrix stores the same sparse matrix in both row-major and
// column-major layouts, exactly the shape MonomialOperatorPart needs (spec
// §3: "the correlator assembly traverses these matrices by rows of one
// factor and columns of another simultaneously"). Rows/cols are in ascending
// column/row order respectively so callers can merge-walk them.
//
// Grounded on graph/matrix/adjacency_matrix.go + graph/matrix/incidence_matrix.go,
// which keep two complementary dense views of one graph; DualSparseMatrix is
// the sparse analogue needed once matrices become block-local and mostly zero.
type DualSparseMatrix struct {
	NRows, NCols int
	byRow        [][]SparseEntry // byRow[i] sorted by Col ascending
	byCol        [][]SparseEntry // byCol[j] sorted by Row ascending
}

// NewDualSparseMatrix builds a DualSparseMatrix from an unordered entry list,
// dropping entries with |value| <= tol.
func NewDualSparseMatrix(nRows, nCols int, entries []SparseEntry, tol float64) *DualSparseMatrix {
	m := &DualSparseMatrix{
		NRows: nRows,
		NCols: nCols,
		byRow: make([][]SparseEntry, nRows),
		byCol: make([][]SparseEntry, nCols),
	}
	for _, e := range entries {
		if cAbs(e.Value) <= tol {
			continue
		}
		m.byRow[e.Row] = append(m.byRow[e.Row], e)
		m.byCol[e.Col] = append(m.byCol[e.Col], e)
	}
	for i := range m.byRow {
		sort.Slice(m.byRow[i], func(a, b int) bool { return m.byRow[i][a].Col < m.byRow[i][b].Col })
	}
	for j := range m.byCol {
		sort.Slice(m.byCol[j], func(a, b int) bool { return m.byCol[j][a].Row < m.byCol[j][b].Row })
	}
	return m
}

// Row returns the non-zero entries of row i, sorted by column.
func (m *DualSparseMatrix) Row(i int) []SparseEntry { return m.byRow[i] }

// Col returns the non-zero entries of column j, sorted by row.
func (m *DualSparseMatrix) Col(j int) []SparseEntry { return m.byCol[j] }

// At performs a random-access lookup, O(log nnz(row)).
func (m *DualSparseMatrix) At(i, j int) complex128 {
	row := m.byRow[i]
	lo, hi := 0, len(row)
	for lo < hi {
		mid := (lo + hi) / 2
		if row[mid].Col < j {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(row) && row[lo].Col == j {
		return row[lo].Value
	}
	return 0
}

// NNZ returns the total number of stored non-zero entries.
func (m *DualSparseMatrix) NNZ() int {
	n := 0
	for _, r := range m.byRow {
		n += len(r)
	}
	return n
}

// ConjTranspose returns the conjugate transpose as a new DualSparseMatrix,
// reusing entries (adjoint shortcut of spec §4.4): swapping row/col storage
// and conjugating values is exactly what this constructor does, at O(nnz).
func (m *DualSparseMatrix) ConjTranspose() *DualSparseMatrix {
	out := &DualSparseMatrix{
		NRows: m.NCols,
		NCols: m.NRows,
		byRow: make([][]SparseEntry, m.NCols),
		byCol: make([][]SparseEntry, m.NRows),
	}
	for j, col := range m.byCol {
		row := make([]SparseEntry, len(col))
		for k, e := range col {
			row[k] = SparseEntry{Row: j, Col: e.Row, Value: cconj(e.Value)}
		}
		out.byRow[j] = row
	}
	for i, row := range m.byRow {
		col := make([]SparseEntry, len(row))
		for k, e := range row {
			col[k] = SparseEntry{Row: e.Col, Col: i, Value: cconj(e.Value)}
		}
		out.byCol[i] = col
	}
	return out
}

func cAbs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }

func cconj(z complex128) complex128 { return complex(real(z), -imag(z)) }
