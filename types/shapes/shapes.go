// Package shapes defines Shape, the dimension metadata shared by every operator
// node, and the algebra that converts between flat element indices and
// per-dimension coordinates.
//
// A Shape is an ordered list of non-negative extents. Rank 0 denotes a scalar.
// All flat indexing is row-major: the last axis varies fastest.
//
// ## Glossary
//
//   - Rank: number of axes of a node's logical shape.
//   - Axis: the index of a dimension. Its size is the "extent" (or dimension).
//   - Scalar: a shape with no axes, holding a single value.
//
// A dimension of extent zero is legal and yields an empty iteration space:
// Size() is 0 and Iter() yields nothing. Negative extents are rejected at
// construction.
package shapes

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/internal/xslices"
)

// Shape represents the dimensions of an operator node or tensor.
//
// Use Make to create a new Shape. The zero value is a valid scalar shape.
type Shape struct {
	Dimensions []int
}

// Make returns a Shape with the given extents. It panics with an exception if
// any extent is negative. Zero extents are allowed and denote an empty shape.
func Make(dimensions ...int) Shape {
	s := Shape{Dimensions: slices.Clone(dimensions)}
	for axis, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%v): axis %d has negative extent %d", dimensions, axis, dim)
		}
	}
	return s
}

// Scalar returns the rank-0 shape.
func Scalar() Shape { return Shape{} }

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape has rank 0.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// Dim returns the extent of the given axis. Negative axes count from the end,
// so Dim(-1) is the last axis. It panics with an exception for an
// out-of-range axis: that is a programming error, not a recoverable one.
func (s Shape) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		exceptions.Panicf("shapes: Dim(%d) out of range for rank %d shape %s", axis, s.Rank(), s)
	}
	return s.Dimensions[adjusted]
}

// Size returns the total number of elements, the product of all extents.
// A scalar has size 1. Any zero extent makes the size 0.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Strides returns the row-major strides of the shape: strides[axis] is the
// flat-index distance between consecutive coordinates on that axis.
func (s Shape) Strides() []int {
	strides := make([]int, s.Rank())
	stride := 1
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		strides[axis] = stride
		stride *= s.Dimensions[axis]
	}
	return strides
}

// Equal reports whether the two shapes have the same rank and extents.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s.Dimensions, other.Dimensions)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{Dimensions: slices.Clone(s.Dimensions)}
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	if s.IsScalar() {
		return "[scalar]"
	}
	return "[" + strings.Join(xslices.Map(s.Dimensions, strconv.Itoa), " ") + "]"
}

// FlatToIndices converts a flat row-major index to per-axis coordinates,
// storing them in indices, which must have length equal to the rank.
// flat must be in [0, Size()).
func (s Shape) FlatToIndices(flat int, indices []int) {
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		dim := s.Dimensions[axis]
		indices[axis] = flat % dim
		flat /= dim
	}
}

// IndicesToFlat converts per-axis coordinates to the flat row-major index.
// It is the inverse of FlatToIndices and is used for diagnostics only.
func (s Shape) IndicesToFlat(indices []int) int {
	flat := 0
	for axis, dim := range s.Dimensions {
		flat = flat*dim + indices[axis]
	}
	return flat
}
