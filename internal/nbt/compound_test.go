package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompound_DuplicateMovesToEnd(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Set("a", Int(1)))
	require.NoError(t, c.Set("b", Int(2)))
	require.NoError(t, c.Set("c", Int(3)))

	require.NoError(t, c.Set("a", String("replaced")))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"b", "c", "a"}, c.Names())

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("replaced"), got)

	got, ok = c.Get("c")
	require.True(t, ok)
	assert.Equal(t, Int(3), got)
}

func TestCompound_Remove(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Set("a", Int(1)))
	require.NoError(t, c.Set("b", Int(2)))
	require.NoError(t, c.Set("c", Int(3)))

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.False(t, c.Has("a"))
	assert.Equal(t, []string{"b", "c"}, c.Names())

	got, ok := c.Get("c")
	require.True(t, ok, "index is rebuilt after removal")
	assert.Equal(t, Int(3), got)
}

func TestCompound_RejectsNilAndEnd(t *testing.T) {
	c := NewCompound()
	assert.ErrorIs(t, c.Set("x", nil), ErrNilTag)
	assert.ErrorIs(t, c.Set("x", End{}), ErrTypeMismatch)
	assert.Equal(t, 0, c.Len())
}

func TestCompound_ZeroValue(t *testing.T) {
	var c Compound
	_, ok := c.Get("missing")
	assert.False(t, ok)
	require.NoError(t, c.Set("x", Byte(1)))
	assert.True(t, c.Has("x"))
}

func TestCompound_All(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Set("one", Int(1)))
	require.NoError(t, c.Set("two", Int(2)))

	var names []string
	for name, tag := range c.All() {
		names = append(names, name)
		assert.Equal(t, KindInt, tag.Kind())
	}
	assert.Equal(t, []string{"one", "two"}, names)

	entries := c.Entries()
	entries[0].Name = "mutated"
	assert.Equal(t, []string{"one", "two"}, c.Names(), "Entries returns a copy")
}

func TestSet_RejectsCycles(t *testing.T) {
	c := NewCompound()
	assert.ErrorIs(t, c.Set("self", c), ErrCyclicTag)
	assert.Equal(t, 0, c.Len())

	inner := NewCompound()
	require.NoError(t, c.Set("inner", inner))
	assert.ErrorIs(t, inner.Set("outer", c), ErrCyclicTag, "indirect cycle")

	l := NewList(KindCompound)
	require.NoError(t, l.Append(NewCompound()))
	require.NoError(t, inner.Set("list", l))
	assert.ErrorIs(t, l.Append(c), ErrCyclicTag, "cycle through a list")
	assert.ErrorIs(t, l.Set(0, inner), ErrCyclicTag)

	lists := NewList(KindList)
	assert.ErrorIs(t, lists.Append(lists), ErrCyclicTag)

	assert.NotPanics(t, func() { _ = c.String() })
}

func TestSet_RejectsNilContainer(t *testing.T) {
	var nilCompound *Compound
	c := NewCompound()
	assert.ErrorIs(t, c.Set("x", nilCompound), ErrNilTag)
	assert.ErrorIs(t, NewList(KindList).Append((*List)(nil)), ErrNilTag)
}
