package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sparta/sparta/scalar"
)

// diamond builds the four-element lattice BOTTOM < LEFT, RIGHT < TOP,
// the minimal non-trivial case every lattice-validity check needs to
// accept (mirrors FiniteAbstractDomainTest's well-formed fixture).
func diamond(t *testing.T) *scalar.FiniteLattice[string] {
	t.Helper()
	lattice, err := scalar.NewFiniteLattice(
		[]string{"BOTTOM", "LEFT", "RIGHT", "TOP"},
		[][2]string{
			{"BOTTOM", "LEFT"},
			{"BOTTOM", "RIGHT"},
			{"LEFT", "TOP"},
			{"RIGHT", "TOP"},
		},
	)
	require.NoError(t, err)
	return lattice
}

func TestFiniteLatticeOperations(t *testing.T) {
	lattice := diamond(t)

	bottom := scalar.FiniteBottom(lattice)
	top := scalar.FiniteTop(lattice)
	left, err := scalar.FiniteOf(lattice, "LEFT")
	require.NoError(t, err)
	right, err := scalar.FiniteOf(lattice, "RIGHT")
	require.NoError(t, err)

	assert.True(t, bottom.Leq(left))
	assert.True(t, bottom.Leq(right))
	assert.True(t, left.Leq(top))
	assert.True(t, right.Leq(top))
	assert.False(t, left.Leq(right))
	assert.False(t, right.Leq(left))
	assert.Equal(t, "BOTTOM", bottom.Element())
	assert.Equal(t, "TOP", top.Element())

	join, err := left.Join(right)
	require.NoError(t, err)
	assert.True(t, join.Equal(top))

	meet, err := left.Meet(right)
	require.NoError(t, err)
	assert.True(t, meet.Equal(bottom))

	widened, err := left.Widen(right)
	require.NoError(t, err)
	assert.True(t, widened.Equal(join))

	narrowed, err := left.Narrow(right)
	require.NoError(t, err)
	assert.True(t, narrowed.Equal(meet))
}

func TestFiniteLatticeRejectsNonUniqueMinimum(t *testing.T) {
	// Two elements with nothing below them both: no unique bottom.
	_, err := scalar.NewFiniteLattice(
		[]string{"A", "B", "TOP"},
		[][2]string{
			{"A", "TOP"},
			{"B", "TOP"},
		},
	)
	assert.Error(t, err)
}

func TestFiniteLatticeRejectsNonUniqueMaximum(t *testing.T) {
	// Two elements with nothing above them both: no unique top.
	_, err := scalar.NewFiniteLattice(
		[]string{"BOTTOM", "A", "B"},
		[][2]string{
			{"BOTTOM", "A"},
			{"BOTTOM", "B"},
		},
	)
	assert.Error(t, err)
}

func TestFiniteLatticeRejectsNonUniqueJoin(t *testing.T) {
	// A well-formed top and bottom, but A and B each sit below two
	// incomparable middle elements (C, D) with no single least upper
	// bound for the pair (A, B).
	_, err := scalar.NewFiniteLattice(
		[]string{"BOTTOM", "A", "B", "C", "D", "TOP"},
		[][2]string{
			{"BOTTOM", "A"},
			{"BOTTOM", "B"},
			{"A", "C"},
			{"B", "C"},
			{"A", "D"},
			{"B", "D"},
			{"C", "TOP"},
			{"D", "TOP"},
		},
	)
	assert.Error(t, err)
}
