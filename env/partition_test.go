package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/env"
	"github.com/go-sparta/sparta/sets"
)

func newTestPartition(bindings map[string]strDomain) env.Partition[string, strDomain] {
	return env.NewPartition(strTop(), strBottom(), bindings)
}

func TestPartitionLatticeOperations(t *testing.T) {
	p1 := newTestPartition(map[string]strDomain{
		"v1": strSet("a", "b"),
		"v2": strSet("c"),
		"v3": strSet("d", "e", "f"),
		"v4": strSet("a", "f"),
	})
	p2 := newTestPartition(map[string]strDomain{
		"v0": strSet("c", "f"),
		"v2": strSet("c", "d"),
		"v3": strSet("d", "e", "g", "h"),
	})

	assert.Equal(t, 4, p1.Size())
	assert.Equal(t, 3, p2.Size())

	bottom := env.BottomPartition[string](strTop(), strBottom())
	top := env.TopPartition[string](strTop(), strBottom())

	assert.True(t, top.Leq(top))
	assert.False(t, top.Leq(bottom))
	assert.True(t, bottom.Leq(top))
	assert.True(t, bottom.Leq(bottom))

	assert.True(t, bottom.Leq(p1))
	assert.False(t, p1.Leq(bottom))
	assert.False(t, top.Leq(p1))
	assert.True(t, p1.Leq(top))
	assert.False(t, p1.Leq(p2))
	assert.False(t, p2.Leq(p1))

	assert.True(t, p1.Equal(p1))
	assert.False(t, p1.Equal(p2))
	assert.True(t, bottom.Equal(bottom))
	assert.True(t, top.Equal(top))
	assert.False(t, bottom.Equal(top))

	join, err := p1.Join(p2)
	require.NoError(t, err)
	assert.True(t, p1.Leq(join))
	assert.True(t, p2.Leq(join))
	assert.Equal(t, 5, join.Size())
	assert.Equal(t, map[string]bool{"c": true, "d": true}, elementsOf(t, join.Get("v2")))
	assert.Equal(t, map[string]bool{"d": true, "e": true, "f": true, "g": true, "h": true}, elementsOf(t, join.Get("v3")))

	widened, err := p1.Widen(p2)
	require.NoError(t, err)
	assert.True(t, join.Equal(widened))

	joinTop, err := p1.Join(top)
	require.NoError(t, err)
	assert.True(t, joinTop.IsTop())

	joinBottom, err := p1.Join(bottom)
	require.NoError(t, err)
	assert.True(t, joinBottom.Equal(p1))

	meet, err := p1.Meet(p2)
	require.NoError(t, err)
	assert.True(t, meet.Leq(p1))
	assert.True(t, meet.Leq(p2))
	assert.Equal(t, 2, meet.Size())
	assert.Equal(t, map[string]bool{"c": true}, elementsOf(t, meet.Get("v2")))
	assert.Equal(t, map[string]bool{"d": true, "e": true}, elementsOf(t, meet.Get("v3")))

	narrowed, err := p1.Narrow(p2)
	require.NoError(t, err)
	assert.True(t, meet.Equal(narrowed))

	meetBottom, err := p1.Meet(bottom)
	require.NoError(t, err)
	assert.True(t, meetBottom.IsBottom())

	meetTop, err := p1.Meet(top)
	require.NoError(t, err)
	assert.True(t, meetTop.Equal(p1))
}

func TestPartitionSetUpdateAndTopAbsorption(t *testing.T) {
	p := newTestPartition(map[string]strDomain{"v1": strSet("a", "b")})

	p = p.Set("v2", strSet("c", "f")).Set("v4", strSet("e", "f", "g"))
	assert.Equal(t, 3, p.Size())

	p, err := p.Update("v1", func(d strDomain) (strDomain, error) {
		h, _ := d.Unwrap()
		return sets.WrapPowerset[sets.HashSet[string]](h.Insert("e")), nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "e": true}, elementsOf(t, p.Get("v1")))

	// Updating an absent label applies f to bottom; if f leaves it
	// bottom, set() erases it again and the label stays absent
	// (HashedAbstractPartitionTest's update-on-an-unbound-label case).
	sizeBefore := p.Size()
	p, err = p.Update("v9", func(d strDomain) (strDomain, error) { return d, nil })
	require.NoError(t, err)
	assert.Equal(t, sizeBefore, p.Size())
	assert.Equal(t, absval.Bottom, p.Get("v9").Kind())

	top := p.Set("v1", strTop())
	promoted, err := top.Join(env.TopPartition[string](strTop(), strBottom()))
	require.NoError(t, err)
	assert.True(t, promoted.IsTop())

	ignored := promoted.Set("v1", strSet("z"))
	assert.True(t, ignored.IsTop(), "writes to a top partition are ignored")
}
