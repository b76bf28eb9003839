package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/scalar"
)

func TestConstantLatticeOperations(t *testing.T) {
	bottom := scalar.ConstantBottom[int]()
	top := scalar.ConstantTop[int]()
	five := scalar.ConstantOf(5)
	six := scalar.ConstantOf(6)
	fiveAgain := scalar.ConstantOf(5)

	assert.True(t, bottom.Leq(five))
	assert.True(t, bottom.Leq(top))
	assert.True(t, five.Leq(top))
	assert.False(t, top.Leq(five))
	assert.False(t, five.Leq(bottom))
	assert.True(t, five.Leq(fiveAgain))
	assert.False(t, five.Leq(six))
	assert.False(t, six.Leq(five))

	assert.True(t, five.Equal(fiveAgain))
	assert.False(t, five.Equal(six))

	joinSame, err := five.Join(fiveAgain)
	require.NoError(t, err)
	assert.True(t, joinSame.Equal(five))

	joinDiff, err := five.Join(six)
	require.NoError(t, err)
	assert.True(t, joinDiff.IsTop())

	joinBottom, err := bottom.Join(five)
	require.NoError(t, err)
	assert.True(t, joinBottom.Equal(five))

	meetSame, err := five.Meet(fiveAgain)
	require.NoError(t, err)
	assert.True(t, meetSame.Equal(five))

	meetDiff, err := five.Meet(six)
	require.NoError(t, err)
	assert.Equal(t, absval.Bottom, meetDiff.Kind())

	meetTop, err := five.Meet(top)
	require.NoError(t, err)
	assert.True(t, meetTop.Equal(five))

	v, ok := five.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = top.Value()
	assert.False(t, ok)
}
