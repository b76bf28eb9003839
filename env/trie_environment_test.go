package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sparta/sparta/env"
)

func TestTrieEnvironmentMatchesHashEnvironmentSemantics(t *testing.T) {
	e1 := env.NewTrieEnvironment[uint32](strTop(), strBottom(), map[uint32]strDomain{
		1: strSet("a", "b"),
		2: strSet("c"),
	})
	e2 := env.NewTrieEnvironment[uint32](strTop(), strBottom(), map[uint32]strDomain{
		2: strSet("c", "d"),
		3: strSet("e"),
	})

	assert.Equal(t, 2, e1.Size())

	join, err := e1.Join(e2)
	require.NoError(t, err)
	assert.Equal(t, 1, join.Size(), "only the shared key 2 can survive a join")
	assert.Equal(t, map[string]bool{"c": true, "d": true}, elementsOf(t, join.Get(2)))
	assert.True(t, join.Get(1).IsTop())

	meet, err := e1.Meet(e2)
	require.NoError(t, err)
	assert.Equal(t, 3, meet.Size())
	assert.Equal(t, map[string]bool{"c": true}, elementsOf(t, meet.Get(2)))

	e3 := e1.Set(1, strBottom())
	assert.True(t, e3.IsBottom())

	top := env.TopTrieEnvironment[uint32](strTop(), strBottom())
	assert.True(t, e1.Leq(top))
	assert.False(t, top.Leq(e1))
}
