package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sparta/sparta/scalar"
)

func TestIntervalOrdering(t *testing.T) {
	a := scalar.IntervalFinite[int32](-5, 5)
	b := scalar.IntervalFinite[int32](0, 10)
	c := scalar.IntervalBoundedAbove[int32](5)
	d := scalar.IntervalBoundedBelow[int32](-5)
	low := scalar.IntervalLow[int32]()

	assert.True(t, a.Leq(c))
	assert.True(t, a.Leq(d))
	assert.True(t, b.Leq(d))
	assert.False(t, a.Leq(b))
	assert.False(t, b.Leq(a))
	assert.False(t, b.Leq(c))
	assert.True(t, low.Leq(c))

	high := scalar.IntervalHigh[int32]()
	assert.True(t, high.Leq(d))
}

func TestIntervalJoinMeet(t *testing.T) {
	a := scalar.IntervalFinite[int32](-4, 4)
	b := scalar.IntervalBoundedBelow[int32](0)
	c := scalar.IntervalBoundedAbove[int32](-1)
	top := scalar.IntervalTop[int32]()
	bot := scalar.IntervalBottom[int32]()

	join1, err := a.Join(b)
	assert.NoError(t, err)
	assert.True(t, join1.Equal(scalar.IntervalBoundedBelow[int32](-4)))

	join2, err := b.Join(c)
	assert.NoError(t, err)
	assert.True(t, join2.Equal(top))

	join3, err := a.Join(top)
	assert.NoError(t, err)
	assert.True(t, join3.Equal(top))

	join4, err := a.Join(bot)
	assert.NoError(t, err)
	assert.True(t, join4.Equal(a))

	meet1, err := a.Meet(b)
	assert.NoError(t, err)
	assert.True(t, meet1.Equal(scalar.IntervalFinite[int32](0, 4)))

	meet2, err := b.Meet(c)
	assert.NoError(t, err)
	assert.True(t, meet2.Equal(bot))

	meet3, err := a.Meet(top)
	assert.NoError(t, err)
	assert.True(t, meet3.Equal(a))

	meet4, err := a.Meet(bot)
	assert.NoError(t, err)
	assert.True(t, meet4.Equal(bot))
}

func TestIntervalWideningNarrowing(t *testing.T) {
	a := scalar.IntervalFinite[int32](-4, 4)
	d := scalar.IntervalFinite[int32](0, 5)
	e := scalar.IntervalFinite[int32](-5, -1)
	bot := scalar.IntervalBottom[int32]()
	top := scalar.IntervalTop[int32]()

	wBot, err := a.Widen(bot)
	assert.NoError(t, err)
	assert.True(t, wBot.Equal(a))

	wFromBot, err := bot.Widen(a)
	assert.NoError(t, err)
	assert.True(t, wFromBot.Equal(a))

	w1, err := a.Widen(d)
	assert.NoError(t, err)
	assert.True(t, w1.Equal(scalar.IntervalBoundedBelow[int32](-4)))

	w2, err := a.Widen(e)
	assert.NoError(t, err)
	assert.True(t, w2.Equal(scalar.IntervalBoundedAbove[int32](4)))

	w3, err := w1.Widen(e)
	assert.NoError(t, err)
	assert.True(t, w3.Equal(top))

	nBot, err := a.Narrow(bot)
	assert.NoError(t, err)
	assert.True(t, nBot.Equal(bot))

	nFromBot, err := bot.Narrow(a)
	assert.NoError(t, err)
	assert.True(t, nFromBot.Equal(bot))

	b := scalar.IntervalBoundedBelow[int32](0)
	n1, err := top.Narrow(b)
	assert.NoError(t, err)
	assert.True(t, n1.Equal(b))

	c := scalar.IntervalBoundedAbove[int32](-1)
	n2, err := n1.Narrow(c)
	assert.NoError(t, err)
	assert.True(t, n2.Equal(bot))

	n3, err := n1.Narrow(a)
	assert.NoError(t, err)
	assert.True(t, n3.Equal(scalar.IntervalFinite[int32](0, 4)))
}

func TestIntervalSaturatedAddition(t *testing.T) {
	top := scalar.IntervalTop[int32]()
	high := scalar.IntervalHigh[int32]()
	low := scalar.IntervalLow[int32]()
	pp := scalar.IntervalFinite[int32](1, 1)
	np := scalar.IntervalFinite[int32](-1, 1)
	nn := scalar.IntervalFinite[int32](-1, -1)

	min, max := scalar.IntervalBounds[int32]()

	assert.True(t, top.Add(pp).Equal(top))
	assert.True(t, top.Add(np).Equal(top))
	assert.True(t, top.Add(nn).Equal(top))

	assert.True(t, high.Add(pp).Equal(high))
	assert.True(t, high.Add(np).Equal(scalar.IntervalBoundedBelow[int32](max-1)))
	assert.True(t, high.Add(nn).Equal(scalar.IntervalBoundedBelow[int32](max-1)))

	assert.True(t, low.Add(pp).Equal(scalar.IntervalBoundedAbove[int32](min+1)))
	assert.True(t, low.Add(np).Equal(scalar.IntervalBoundedAbove[int32](min+1)))
	assert.True(t, low.Add(nn).Equal(low))
}

func TestIntervalPlainAddition(t *testing.T) {
	a := scalar.IntervalFinite[int32](-7, 5)
	b := scalar.IntervalFinite[int32](-3, 5)
	bot := scalar.IntervalBottom[int32]()

	sum := a.Add(b)
	assert.True(t, sum.Equal(scalar.IntervalFinite[int32](-10, 10)))
	assert.True(t, a.Add(bot).Equal(bot))
	assert.True(t, bot.Add(b).Equal(bot))

	pos := scalar.IntervalBoundedBelow[int32](1)
	pos = pos.Add(scalar.IntervalFinite[int32](1, 1))
	assert.True(t, pos.Equal(scalar.IntervalBoundedBelow[int32](2)))
	pos = pos.Add(scalar.IntervalFinite[int32](-1, -1))
	assert.True(t, pos.Equal(scalar.IntervalBoundedBelow[int32](1)))

	neg := scalar.IntervalBoundedAbove[int32](-1)
	neg = neg.Add(scalar.IntervalFinite[int32](-1, -1))
	assert.True(t, neg.Equal(scalar.IntervalBoundedAbove[int32](-2)))
	neg = neg.Add(scalar.IntervalFinite[int32](1, 1))
	assert.True(t, neg.Equal(scalar.IntervalBoundedAbove[int32](-1)))
}
