package ederr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/ederr"
)

func TestConstructionError_IsSentinel(t *testing.T) {
	err := &ederr.ConstructionError{Op: "NewMonomialOperator", Reason: "expression is not a single monomial"}
	require.ErrorIs(t, err, ederr.ErrConstruction)
	require.False(t, errors.Is(err, ederr.ErrNumeric))
	require.Contains(t, err.Error(), "NewMonomialOperator")
}

func TestNumericError_IsSentinel(t *testing.T) {
	err := &ederr.NumericError{Op: "Hamiltonian.Prepare", Reason: "block is not Hermitian"}
	require.ErrorIs(t, err, ederr.ErrNumeric)
	require.False(t, errors.Is(err, ederr.ErrOutOfRange))
}

func TestOutOfRangeError_IsSentinelAndFormatsBounds(t *testing.T) {
	err := &ederr.OutOfRangeError{Op: "StatesClassification.BlockOf", Index: 7, Bound: 4}
	require.ErrorIs(t, err, ederr.ErrOutOfRange)
	require.Contains(t, err.Error(), "7")
	require.Contains(t, err.Error(), "4")
}

func TestErrors_DoNotCrossMatch(t *testing.T) {
	var construction error = &ederr.ConstructionError{Op: "x", Reason: "y"}
	var numeric error = &ederr.NumericError{Op: "x", Reason: "y"}
	var outOfRange error = &ederr.OutOfRangeError{Op: "x", Index: 1, Bound: 1}

	require.False(t, errors.Is(construction, ederr.ErrNumeric))
	require.False(t, errors.Is(construction, ederr.ErrOutOfRange))
	require.False(t, errors.Is(numeric, ederr.ErrConstruction))
	require.False(t, errors.Is(numeric, ederr.ErrOutOfRange))
	require.False(t, errors.Is(outOfRange, ederr.ErrConstruction))
	require.False(t, errors.Is(outOfRange, ederr.ErrNumeric))
}
