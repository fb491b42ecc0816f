package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsSetIsSetClear(t *testing.T) {
	s := MakeBits[int](10)

	s.Set(12)
	assert.True(t, s.IsSet(12))
	assert.False(t, s.IsSet(13))

	s.Clear(12)
	assert.False(t, s.IsSet(12))
}

func TestBitsMergeIntersectSubtract(t *testing.T) {
	a := MakeBits[int](0)
	a.SetAll(1, 2, 3)

	b := MakeBits[int](0)
	b.SetAll(2, 3, 4)

	merged := a.Copy()
	merged.Merge(b)
	assert.True(t, merged.IsSet(1))
	assert.True(t, merged.IsSet(4))

	inter := a.Copy()
	inter.Intersect(b)
	assert.False(t, inter.IsSet(1))
	assert.True(t, inter.IsSet(2))
	assert.False(t, inter.IsSet(4))

	sub := a.Copy()
	sub.Substract(b)
	assert.True(t, sub.IsSet(1))
	assert.False(t, sub.IsSet(2))
}

func TestBitsRangeVisitsInOrderWithBase(t *testing.T) {
	s := MakeBits[int](100)
	s.SetAll(105, 101, 140)

	var got []int
	s.Range(func(i int) bool {
		got = append(got, i)
		return true
	})

	assert.Equal(t, []int{101, 105, 140}, got)
}

func TestBitsSizeCountsMembers(t *testing.T) {
	s := MakeBits[int](0)
	s.SetAll(1, 2, 3)

	assert.Equal(t, 3, s.Size())
}
