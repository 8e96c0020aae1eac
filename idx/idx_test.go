package idx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/idx"
)

type site struct {
	label string
	spin  string
}

func TestMap_IndexOfAndKeyOf(t *testing.T) {
	m := idx.New(site{"A", "up"}, site{"A", "down"}, site{"B", "up"})
	require.Equal(t, 3, m.Size())

	i, err := m.IndexOf(site{"A", "down"})
	require.NoError(t, err)
	require.Equal(t, idx.ParticleIndex(1), i)

	k, err := m.KeyOf(1)
	require.NoError(t, err)
	require.Equal(t, site{"A", "down"}, k)
}

func TestMap_DuplicateKeysCollapse(t *testing.T) {
	m := idx.New(site{"A", "up"}, site{"A", "up"}, site{"B", "up"})
	require.Equal(t, 2, m.Size())
}

func TestMap_IndexOfMissingKeyErrors(t *testing.T) {
	m := idx.New(site{"A", "up"})
	_, err := m.IndexOf(site{"Z", "up"})
	require.Error(t, err)
}

func TestMap_KeyOfOutOfRangeErrors(t *testing.T) {
	m := idx.New(site{"A", "up"})
	_, err := m.KeyOf(5)
	require.Error(t, err)
}

func TestMap_SortedIndices(t *testing.T) {
	m := idx.New(site{"A", "up"}, site{"A", "down"})
	require.Equal(t, []idx.ParticleIndex{0, 1}, m.SortedIndices())
}

func TestMap_Keys(t *testing.T) {
	m := idx.New(site{"A", "up"}, site{"B", "down"})
	require.Equal(t, []site{{"A", "up"}, {"B", "down"}}, m.Keys())
}
