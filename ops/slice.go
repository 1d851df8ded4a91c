package ops

import (
	"math"

	"github.com/gomlx/exceptions"
)

// Sentinels for Slice end values.
const (
	// End selects everything up to the end of the dimension.
	End = math.MaxInt

	// Drop removes the dimension from the output: the start value becomes a
	// fixed coordinate and the output rank shrinks by one.
	Drop = math.MinInt
)

type sliceOp[T any] struct {
	viewOf[T]

	starts  []int // Resolved start per inner dimension.
	strides []int // Stride per inner dimension; nil means all ones.
	dims    []int // Inner dimension backing each output dimension.
	sizes   []int // Output sizes, one per kept dimension.
}

// Slice selects a rectangular region of op with unit strides.
//
// starts and ends have one entry per dimension of op. Starts are inclusive;
// ends are exclusive, or End ("to the end of this dimension"), or Drop
// ("remove this dimension from the output"). Negative starts/ends count from
// the end of the dimension, Python style. Resolved bounds outside [0, size]
// panic with an exception at construction.
func Slice[T any](op Operator[T], starts, ends []int) Operator[T] {
	return SliceStride(op, starts, ends, nil)
}

// SliceStride is Slice with per-dimension strides (all >= 1). The size of a
// kept dimension is ceil((end-start)/stride). A nil strides means unit
// strides everywhere.
func SliceStride[T any](op Operator[T], starts, ends, strides []int) Operator[T] {
	rank := op.Rank()
	if rank == 0 {
		exceptions.Panicf("ops.Slice: operator rank must be greater than 0")
	}
	if len(starts) != rank || len(ends) != rank {
		exceptions.Panicf("ops.Slice: got %d starts and %d ends for a rank-%d operator", len(starts), len(ends), rank)
	}
	if strides != nil && len(strides) != rank {
		exceptions.Panicf("ops.Slice: got %d strides for a rank-%d operator", len(strides), rank)
	}

	s := &sliceOp[T]{
		viewOf:  viewOf[T]{of: op},
		starts:  make([]int, rank),
		dims:    make([]int, 0, rank),
		sizes:   make([]int, 0, rank),
		strides: strides,
	}
	for i := 0; i < rank; i++ {
		size := op.Size(i)
		start := starts[i]
		if start < 0 {
			start += size
		}
		if start < 0 || start > size {
			exceptions.Panicf("ops.Slice: start %d out of range [0, %d] in dimension %d", starts[i], size, i)
		}
		s.starts[i] = start

		stride := 1
		if strides != nil {
			stride = strides[i]
			if stride < 1 {
				exceptions.Panicf("ops.Slice: stride %d in dimension %d must be >= 1", stride, i)
			}
		}

		end := ends[i]
		if end == Drop {
			continue // Dimension is dropped; start is its fixed coordinate.
		}
		if end == End {
			end = size
		} else if end < 0 {
			end += size
		}
		if end < 0 || end > size {
			exceptions.Panicf("ops.Slice: end %d out of range [0, %d] in dimension %d", ends[i], size, i)
		}
		if end < start {
			exceptions.Panicf("ops.Slice: end %d precedes start %d in dimension %d", end, start, i)
		}
		s.dims = append(s.dims, i)
		s.sizes = append(s.sizes, (end-start+stride-1)/stride)
	}
	return s
}

func (s *sliceOp[T]) Rank() int { return len(s.sizes) }

func (s *sliceOp[T]) Size(dim int) int {
	checkDim(dim, len(s.sizes))
	return s.sizes[dim]
}

func (s *sliceOp[T]) innerIndices(indices []int) []int {
	ind := make([]int, len(s.starts))
	copy(ind, s.starts)
	for j, i := range s.dims {
		if s.strides != nil {
			ind[i] = s.starts[i] + indices[j]*s.strides[i]
		} else {
			ind[i] = s.starts[i] + indices[j]
		}
	}
	return ind
}

func (s *sliceOp[T]) At(indices ...int) T {
	return s.of.At(s.innerIndices(indices)...)
}

func (s *sliceOp[T]) Set(value T, indices ...int) {
	s.setInner(value, s.innerIndices(indices))
}

// Capability degrades the granularity to 1: a slice does non-contiguous
// access in the inner node's flat order.
func (s *sliceOp[T]) Capability(kind Capability) int {
	if kind == CapElementsPerStep {
		return CombineCapabilities(kind, 1, s.of.Capability(kind))
	}
	return s.of.Capability(kind)
}
