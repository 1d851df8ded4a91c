package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	s := Make(3, 4)
	assert.Equal(t, 2, s.Rank())
	assert.Equal(t, 12, s.Size())
	assert.Equal(t, "[3 4]", s.String())

	assert.Equal(t, 0, Scalar().Rank())
	assert.True(t, Scalar().IsScalar())
	assert.Equal(t, 1, Scalar().Size())

	// Zero extents are legal and make the shape empty.
	empty := Make(3, 0, 2)
	assert.Equal(t, 0, empty.Size())

	require.Panics(t, func() { Make(3, -1) })
}

func TestDim(t *testing.T) {
	s := Make(2, 3, 5)
	assert.Equal(t, 2, s.Dim(0))
	assert.Equal(t, 5, s.Dim(2))
	assert.Equal(t, 5, s.Dim(-1))
	assert.Equal(t, 2, s.Dim(-3))
	require.Panics(t, func() { s.Dim(3) })
	require.Panics(t, func() { s.Dim(-4) })
}

func TestStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Make(2, 3, 4).Strides())
	assert.Equal(t, []int{1}, Make(7).Strides())
	assert.Empty(t, Scalar().Strides())
}

func TestFlatIndicesRoundTrip(t *testing.T) {
	s := Make(3, 4, 5)
	indices := make([]int, s.Rank())
	for flat := 0; flat < s.Size(); flat++ {
		s.FlatToIndices(flat, indices)
		require.Equal(t, flat, s.IndicesToFlat(indices))
	}
	// Spot-check row-major layout: the last axis varies fastest.
	s.FlatToIndices(1, indices)
	assert.Equal(t, []int{0, 0, 1}, indices)
	s.FlatToIndices(5, indices)
	assert.Equal(t, []int{0, 1, 0}, indices)
	s.FlatToIndices(20, indices)
	assert.Equal(t, []int{1, 0, 0}, indices)
}

func TestIter(t *testing.T) {
	s := Make(2, 3)
	var got [][]int
	for indices := range s.Iter() {
		// The yielded slice is reused; clone before retaining.
		got = append(got, append([]int{}, indices...))
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	assert.Equal(t, want, got)

	// A scalar yields exactly one empty coordinate.
	count := 0
	for indices := range Scalar().Iter() {
		assert.Empty(t, indices)
		count++
	}
	assert.Equal(t, 1, count)

	// Any zero extent yields nothing.
	for range Make(2, 0, 3).Iter() {
		t.Fatal("zero-extent shape must not yield coordinates")
	}
}

func TestEqualClone(t *testing.T) {
	s := Make(2, 3)
	c := s.Clone()
	assert.True(t, s.Equal(c))
	c.Dimensions[0] = 7
	assert.False(t, s.Equal(c))
	assert.Equal(t, 2, s.Dimensions[0])
	assert.False(t, s.Equal(Make(2, 3, 1)))
}
