package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/domain"
)

// bits is a minimal absval.Value implementation — the powerset lattice
// over a 2-element universe, encoded as a 2-bit mask — used only to
// exercise Scaffold without depending on any of the concrete scalar
// domains built on top of it.
type bits uint8

func (b bits) IsTop() bool       { return b == 3 }
func (b bits) Leq(o bits) bool   { return b&o == b }
func (b bits) Equal(o bits) bool { return b == o }
func (b bits) Kind() absval.Kind {
	switch b {
	case 0:
		return absval.Bottom
	case 3:
		return absval.Top
	default:
		return absval.ValueKind
	}
}
func (b bits) Join(o bits) (bits, error)   { return b | o, nil }
func (b bits) Meet(o bits) (bits, error)   { return b & o, nil }
func (b bits) Widen(o bits) (bits, error)  { return b | o, nil }
func (b bits) Narrow(o bits) (bits, error) { return b & o, nil }

func TestScaffoldConstructors(t *testing.T) {
	bot := domain.Bottom[bits]()
	top := domain.Top[bits]()
	assert.True(t, bot.IsBottom())
	assert.True(t, top.IsTop())
	assert.False(t, bot.IsTop())
	assert.False(t, top.IsBottom())
}

func TestScaffoldNormalizesOnWrap(t *testing.T) {
	s := domain.Wrap[bits](3)
	assert.True(t, s.IsTop())
	_, ok := s.Unwrap()
	assert.False(t, ok)

	z := domain.Wrap[bits](0)
	assert.True(t, z.IsBottom())
}

func TestScaffoldLattceLaws(t *testing.T) {
	values := []domain.Scaffold[bits]{
		domain.Bottom[bits](),
		domain.Top[bits](),
		domain.Wrap[bits](1),
		domain.Wrap[bits](2),
	}
	for _, x := range values {
		assert.True(t, x.Leq(x), "reflexivity")
		assert.True(t, domain.Bottom[bits]().Leq(x), "bottom absorption")
		assert.True(t, x.Leq(domain.Top[bits]()), "top absorption")
	}
	for _, x := range values {
		for _, y := range values {
			if x.Leq(y) && y.Leq(x) {
				assert.True(t, x.Equal(y), "antisymmetry")
			}
			j, err := x.Join(y)
			require.NoError(t, err)
			assert.True(t, x.Leq(j), "join upper bound (x)")
			assert.True(t, y.Leq(j), "join upper bound (y)")

			m, err := x.Meet(y)
			require.NoError(t, err)
			assert.True(t, m.Leq(x), "meet lower bound (x)")
			assert.True(t, m.Leq(y), "meet lower bound (y)")

			w, err := x.Widening(y)
			require.NoError(t, err)
			assert.True(t, j.Leq(w), "widening covers join")
		}
	}
}

func TestScaffoldJoinMeetAbsorption(t *testing.T) {
	v := domain.Wrap[bits](1)

	j, err := domain.Bottom[bits]().Join(v)
	require.NoError(t, err)
	assert.True(t, j.Equal(v))

	j, err = domain.Top[bits]().Join(v)
	require.NoError(t, err)
	assert.True(t, j.IsTop())

	m, err := domain.Top[bits]().Meet(v)
	require.NoError(t, err)
	assert.True(t, m.Equal(v))

	m, err = domain.Bottom[bits]().Meet(v)
	require.NoError(t, err)
	assert.True(t, m.IsBottom())
}

func TestScaffoldNarrowing(t *testing.T) {
	x := domain.Wrap[bits](1)
	y := domain.Wrap[bits](3) // normalizes to top
	n, err := x.Narrowing(y)
	require.NoError(t, err)
	assert.True(t, n.Equal(x), "narrowing with top is identity")
}
