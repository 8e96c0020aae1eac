package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/linalg"
)

func TestKronecker(t *testing.T) {
	require.Equal(t, 1.0, linalg.Kronecker(3, 3))
	require.Equal(t, 0.0, linalg.Kronecker(3, 4))
}

func TestDualSparseMatrix_RowColConsistency(t *testing.T) {
	entries := []linalg.SparseEntry{
		{Row: 0, Col: 1, Value: complex(2, 0)},
		{Row: 1, Col: 0, Value: complex(0, 3)},
	}
	m := linalg.NewDualSparseMatrix(2, 2, entries, 1e-12)
	require.Equal(t, complex(2, 0), m.At(0, 1))
	require.Equal(t, complex(0, 3), m.At(1, 0))
	require.Equal(t, complex(0, 0), m.At(0, 0))
	require.Equal(t, 2, m.NNZ())

	row0 := m.Row(0)
	require.Len(t, row0, 1)
	require.Equal(t, 1, row0[0].Col)

	col0 := m.Col(0)
	require.Len(t, col0, 1)
	require.Equal(t, 1, col0[0].Row)
}

func TestDualSparseMatrix_ConjTranspose(t *testing.T) {
	entries := []linalg.SparseEntry{{Row: 0, Col: 1, Value: complex(1, 2)}}
	m := linalg.NewDualSparseMatrix(2, 2, entries, 1e-12)
	adj := m.ConjTranspose()
	require.Equal(t, complex(1, -2), adj.At(1, 0))
	require.Equal(t, complex(0, 0), adj.At(0, 1))
}

func TestGonumEigenSolver_SolveReal_Diagonal(t *testing.T) {
	var solver linalg.GonumEigenSolver
	h := []float64{
		2, 0,
		0, 5,
	}
	values, vectors, err := solver.SolveReal(h, 2)
	require.NoError(t, err)
	require.InDelta(t, 2.0, values[0], 1e-9)
	require.InDelta(t, 5.0, values[1], 1e-9)
	require.Len(t, vectors, 4)
}

func TestGonumEigenSolver_SolveComplex_RecoversRealSpectrum(t *testing.T) {
	var solver linalg.GonumEigenSolver
	// A 2x2 Hermitian matrix with zero imaginary part should reduce to the
	// same spectrum as SolveReal on the equivalent real matrix.
	h := []complex128{
		complex(2, 0), complex(0, 0),
		complex(0, 0), complex(5, 0),
	}
	values, vectors, err := solver.SolveComplex(h, 2)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Len(t, vectors, 4)
	require.InDelta(t, 2.0, values[0], 1e-6)
	require.InDelta(t, 5.0, values[1], 1e-6)
}
