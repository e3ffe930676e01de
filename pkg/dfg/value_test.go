package dfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-valueset/pkg/operation"
)

func TestIntegerValue_ZeroValueIsUsable(t *testing.T) {
	var v IntegerValue[int32]
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Values())
	assert.Equal(t, "[]", v.String())

	v.AppendValue(3)
	assert.True(t, v.Contains(3))

	var w IntegerValue[int32]
	require.NoError(t, w.Merge(NewIntegerValue[int32](1)))
	assert.Equal(t, []int32{1}, w.Values())
}

func TestIntegerValue_SetSemantics(t *testing.T) {
	v := NewIntegerValue[int32](3, 1, 2, 1)

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []int32{1, 2, 3}, v.Values())
	assert.Equal(t, "[1, 2, 3]", v.String())
	assert.True(t, v.Contains(2))
	assert.False(t, v.Contains(4))

	v.AppendValues(4, 4, 5)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, v.Values())
}

func TestIntegerValue_Merge_LatticeLaws(t *testing.T) {
	a := func() *IntegerValue[int32] { return NewIntegerValue[int32](1, 2) }
	b := func() *IntegerValue[int32] { return NewIntegerValue[int32](2, 3) }
	c := func() *IntegerValue[int32] { return NewIntegerValue[int32](5) }

	t.Run("union", func(t *testing.T) {
		v := a()
		require.NoError(t, v.Merge(b()))
		assert.Equal(t, []int32{1, 2, 3}, v.Values())
	})

	t.Run("commutative", func(t *testing.T) {
		ab, ba := a(), b()
		require.NoError(t, ab.Merge(b()))
		require.NoError(t, ba.Merge(a()))
		assert.True(t, ab.Equal(ba))
	})

	t.Run("associative", func(t *testing.T) {
		left := a()
		require.NoError(t, left.Merge(b()))
		require.NoError(t, left.Merge(c()))

		bc := b()
		require.NoError(t, bc.Merge(c()))
		right := a()
		require.NoError(t, right.Merge(bc))

		assert.True(t, left.Equal(right))
	})

	t.Run("idempotent", func(t *testing.T) {
		v := a()
		require.NoError(t, v.Merge(a()))
		require.NoError(t, v.Merge(v.Clone()))
		assert.True(t, v.Equal(a()))
	})

	t.Run("empty is identity", func(t *testing.T) {
		v := a()
		require.NoError(t, v.Merge(NewIntegerValue[int32]()))
		assert.True(t, v.Equal(a()))
	})

	t.Run("argument untouched", func(t *testing.T) {
		v, other := a(), b()
		require.NoError(t, v.Merge(other))
		assert.Equal(t, []int32{2, 3}, other.Values())
	})
}

func TestIntegerValue_Merge_KindMismatch(t *testing.T) {
	v := NewIntegerValue[int32](1)

	err := v.Merge(NewIntegerValue[int64](1))
	require.ErrorIs(t, err, ErrKindMismatch)
	assert.Equal(t, []int32{1}, v.Values())
}

func TestIntegerValue_CloneIsIndependent(t *testing.T) {
	v := NewIntegerValue[int32](1)
	c := v.Clone().(*IntegerValue[int32])

	c.AppendValue(2)
	v.AppendValue(3)

	assert.Equal(t, []int32{1, 3}, v.Values())
	assert.Equal(t, []int32{1, 2}, c.Values())
}

func TestVariable_OwnsItsValue(t *testing.T) {
	value := NewIntegerValue[int32](1)
	v := NewVariable(operation.NewSymbol("x"), value)

	value.AppendValue(2)
	assert.Equal(t, "[1]", v.Value().String())

	require.NoError(t, v.MergeValue(NewIntegerValue[int32](7)))
	assert.Equal(t, "[1, 7]", v.Value().String())
	assert.Equal(t, []int32{1, 2}, value.Values())
	assert.Equal(t, "x", v.Symbol().Name())
}

func TestContainer_Merge(t *testing.T) {
	x, y := operation.NewSymbol("x"), operation.NewSymbol("y")

	t.Run("adopts and unions", func(t *testing.T) {
		c := EmptyContainer()
		c.Add(NewVariable(x, NewIntegerValue[int32](1)))

		other := EmptyContainer()
		other.Add(NewVariable(x, NewIntegerValue[int32](2)))
		other.Add(NewVariable(y, NewIntegerValue[int32](3)))

		require.NoError(t, c.Merge(other))

		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"x", "y"}, c.Names())
		assert.Equal(t, "{x: [1, 2], y: [3]}", c.String())
	})

	t.Run("never mutates the source", func(t *testing.T) {
		c := EmptyContainer()
		other := EmptyContainer()
		other.Add(NewVariable(x, NewIntegerValue[int32](1)))

		require.NoError(t, c.Merge(other))

		third := EmptyContainer()
		third.Add(NewVariable(x, NewIntegerValue[int32](9)))
		require.NoError(t, c.Merge(third))

		assert.Equal(t, "[1, 9]", c.Value(x).String())
		assert.Equal(t, "[1]", other.Value(x).String())
	})

	t.Run("kind mismatch", func(t *testing.T) {
		c := EmptyContainer()
		c.Add(NewVariable(x, NewIntegerValue[int32](1)))
		other := EmptyContainer()
		other.Add(NewVariable(x, NewIntegerValue[int64](1)))

		err := c.Merge(other)
		require.ErrorIs(t, err, ErrKindMismatch)
		assert.Contains(t, err.Error(), "merging x")
	})

	t.Run("add replaces", func(t *testing.T) {
		c := EmptyContainer()
		c.Add(NewVariable(x, NewIntegerValue[int32](1)))
		c.Add(NewVariable(x, NewIntegerValue[int32](2)))
		assert.Equal(t, "[2]", c.Value(x).String())
	})

	t.Run("missing value", func(t *testing.T) {
		assert.Nil(t, EmptyContainer().Value(y))
		assert.Equal(t, "{}", EmptyContainer().String())
	})
}
