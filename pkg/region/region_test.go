package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialZeroSentinel(t *testing.T) {
	r := NewSpatial(3)
	assert.True(t, r.IsZero(), "freshly created region should be the unset sentinel")

	r.Size[1] = 4
	assert.False(t, r.IsZero(), "any non-zero size makes the region valid")
}

func TestSpatialEqual(t *testing.T) {
	a := MakeSpatial([]int{1, 2, 3}, []int{4, 5, 6})
	b := MakeSpatial([]int{1, 2, 3}, []int{4, 5, 6})
	c := MakeSpatial([]int{1, 2, 3}, []int{4, 5, 7})
	d := MakeSpatial([]int{1, 2}, []int{4, 5})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "size mismatch on one axis")
	assert.False(t, a.Equal(d), "dimensionality mismatch")
}

func TestSpatialContains(t *testing.T) {
	outer := MakeSpatial([]int{0, 0}, []int{10, 10})
	inner := MakeSpatial([]int{2, 3}, []int{4, 5})
	overflows := MakeSpatial([]int{8, 8}, []int{4, 4})

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer), "a region contains itself")
	assert.False(t, outer.Contains(overflows))
	assert.False(t, inner.Contains(outer))
}

func TestSpatialContainsIndex(t *testing.T) {
	r := MakeSpatial([]int{1, 1}, []int{3, 3})

	assert.True(t, r.ContainsIndex([]int{1, 1}))
	assert.True(t, r.ContainsIndex([]int{3, 3}))
	assert.False(t, r.ContainsIndex([]int{4, 3}), "upper bound is exclusive")
	assert.False(t, r.ContainsIndex([]int{0, 2}))
}

func TestSpatialNumPixels(t *testing.T) {
	assert.Equal(t, 60, MakeSpatial([]int{0, 0, 0}, []int{3, 4, 5}).NumPixels())
	assert.Equal(t, 0, NewSpatial(2).NumPixels())
	assert.Equal(t, 0, NewSpatial(0).NumPixels())
}

func TestSpatialSlab(t *testing.T) {
	r := MakeSpatial([]int{0, 0, 0}, []int{3, 4, 5})
	slab := r.Slab(2, 3)

	assert.Equal(t, []int{0, 0, 3}, slab.Index)
	assert.Equal(t, []int{3, 4, 1}, slab.Size)
	// Slab must not mutate the source region.
	assert.Equal(t, []int{3, 4, 5}, r.Size)
}

func TestSpatialCollapsePreservesAxisOrder(t *testing.T) {
	r := MakeSpatial([]int{1, 2, 3}, []int{3, 4, 5})

	got := r.Collapse(1)
	require.Equal(t, 2, got.Dim())
	assert.Equal(t, []int{1, 3}, got.Index)
	assert.Equal(t, []int{3, 5}, got.Size)
}

func TestSpatialInsertInvertsCollapse(t *testing.T) {
	r := MakeSpatial([]int{1, 2, 3}, []int{3, 4, 1})

	collapsed := r.Collapse(2)
	restored := collapsed.Insert(2, 3)
	assert.True(t, r.Equal(restored))
}

func TestMakeSpatialPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		MakeSpatial([]int{0, 0}, []int{1})
	})
}

func TestTemporalHalfOpenInterval(t *testing.T) {
	tr := Temporal{Start: 1, Duration: 2}

	assert.Equal(t, 3, tr.End())
	assert.False(t, tr.Contains(0))
	assert.True(t, tr.Contains(1))
	assert.True(t, tr.Contains(2))
	assert.False(t, tr.Contains(3), "end of the interval is exclusive")
}

func TestTemporalZeroSentinel(t *testing.T) {
	assert.True(t, Temporal{}.IsZero())
	assert.True(t, Temporal{Start: 7}.IsZero(), "a positioned range of zero duration is still unset")
	assert.False(t, Temporal{Duration: 1}.IsZero())
}

func TestTemporalEqual(t *testing.T) {
	assert.True(t, Temporal{Start: 1, Duration: 2}.Equal(Temporal{Start: 1, Duration: 2}))
	assert.False(t, Temporal{Start: 1, Duration: 2}.Equal(Temporal{Start: 2, Duration: 2}))
}
