package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/edlat/expr"
	"github.com/katalvlaran/edlat/linalg"
)

func TestExpression_AddScale(t *testing.T) {
	a := expr.NewCreation(0)
	b := expr.NewAnnihilation(1)
	sum := a.Add(b).Scale(2)
	require.Len(t, sum.Monomials, 2)
	require.Equal(t, complex(2, 0), sum.Monomials[0].Coeff)
	require.Equal(t, complex(2, 0), sum.Monomials[1].Coeff)
}

func TestExpression_IsMonomialAndAsMonomial(t *testing.T) {
	m := expr.NewQuadratic(1, 0, 1)
	require.True(t, m.IsMonomial())
	mono, err := m.AsMonomial()
	require.NoError(t, err)
	require.Len(t, mono.Operators, 2)

	sum := m.Add(expr.NewQuadratic(1, 1, 0))
	require.False(t, sum.IsMonomial())
	_, err = sum.AsMonomial()
	require.Error(t, err)
}

func TestExpression_IndexSet(t *testing.T) {
	e := expr.NewQuartic(1, 3, 1, 2, 0)
	require.Equal(t, []int{0, 1, 2, 3}, e.IndexSet())
}

func TestAddInteraction_SameIndexCollapsesToLevel(t *testing.T) {
	same := expr.AddInteraction(2.0, 0, 0)
	mono, err := same.AsMonomial()
	require.NoError(t, err)
	require.Len(t, mono.Operators, 2)
	require.Equal(t, complex(2, 0), mono.Coeff)
}

func TestAddHopping_IsHermitianPair(t *testing.T) {
	h := expr.AddHopping(complex(1, 2), 0, 1)
	require.Len(t, h.Monomials, 2)
	require.Equal(t, complex(1, 2), h.Monomials[0].Coeff)
	require.Equal(t, complex(1, -2), h.Monomials[1].Coeff)
}

func TestFockOperator_NumberOperatorOnOccupiedState(t *testing.T) {
	op := expr.NumberOperator(0).ToLinearOperator()
	occupied := linalg.FockState(1) // bit 0 set
	image := op.Apply(occupied)
	require.Equal(t, complex(1, 0), image[occupied])

	empty := linalg.FockState(0)
	require.Empty(t, op.Apply(empty))
}

func TestFockOperator_CreationAnnihilationRoundtrip(t *testing.T) {
	cDag := expr.NewCreation(0).ToLinearOperator()
	c := expr.NewAnnihilation(0).ToLinearOperator()
	image := cDag.Apply(linalg.FockState(0))
	require.Len(t, image, 1)
	for state, coeff := range image {
		require.Equal(t, linalg.FockState(1), state)
		require.Equal(t, complex(1, 0), coeff)
	}
	back := c.Apply(linalg.FockState(1))
	require.Len(t, back, 1)
	require.Equal(t, complex(1, 0), back[linalg.FockState(0)])
}

func TestFockOperator_PauliExclusionBlocksDoubleCreation(t *testing.T) {
	c := expr.NewCreation(0).ToLinearOperator()
	image := c.Apply(linalg.FockState(1)) // bit 0 already occupied
	require.Empty(t, image)
}

func TestFockOperator_JordanWignerSignOnHop(t *testing.T) {
	// c^dagger_1 c_0 acting on |10> (bit0 occupied) should produce |01> with
	// sign +1: c_0 empties bit 0 before c^dagger_1 acts, so no occupied bit
	// lies below index 1 when the Jordan-Wigner string is counted.
	hop := expr.NewQuadratic(1, 1, 0).ToLinearOperator()
	image := hop.Apply(linalg.FockState(1))
	require.Len(t, image, 1)
	dst := linalg.FockState(2)
	require.Contains(t, image, dst)
	require.Equal(t, complex(1, 0), image[dst])
}

func TestPartitionByOperator_ConnectedComponents(t *testing.T) {
	hop := expr.AddHopping(1, 0, 1).ToLinearOperator()
	blocks := expr.PartitionByOperator(hop, 4)
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	require.Equal(t, 4, total)
	require.True(t, len(blocks) < 4) // hopping connects some states
}

func TestMergeByOperator_SingleDestinationsStayApart(t *testing.T) {
	blockOf := []int{0, 1, 2, 3} // each state its own block
	hop := expr.AddHopping(1, 0, 1).ToLinearOperator()
	merged := expr.MergeByOperator(hop, blockOf, 4)
	require.Len(t, merged, 4)
	// the hop maps |10> and |01> into each other, each block into exactly one
	// other block; MergeByOperator never unions a source with its
	// destination, so all four blocks survive.
	seen := map[int]bool{}
	for _, b := range merged {
		seen[b] = true
	}
	require.Len(t, seen, 4)
}
