package ops

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/types/shapes"
)

type flattenOp[T any] struct {
	viewOf[T]

	innerShape shapes.Shape
}

// Flatten produces a rank-1 view over an operator of rank > 1: the element
// at flat index k is the inner element at the row-major coordinates of k.
// Flattening preserves the inner node's linear order, so granularity is not
// degraded.
func Flatten[T any](op Operator[T]) Operator[T] {
	if op.Rank() <= 1 {
		exceptions.Panicf("ops.Flatten: operator rank must be greater than 1, got %d", op.Rank())
	}
	return &flattenOp[T]{
		viewOf:     viewOf[T]{of: op},
		innerShape: ShapeOf(op),
	}
}

func (f *flattenOp[T]) Rank() int { return 1 }

func (f *flattenOp[T]) Size(dim int) int {
	checkDim(dim, 1)
	return f.innerShape.Size()
}

func (f *flattenOp[T]) innerIndices(flat int) []int {
	ind := make([]int, f.innerShape.Rank())
	f.innerShape.FlatToIndices(flat, ind)
	return ind
}

func (f *flattenOp[T]) At(indices ...int) T {
	return f.of.At(f.innerIndices(indices[0])...)
}

func (f *flattenOp[T]) Set(value T, indices ...int) {
	f.setInner(value, f.innerIndices(indices[0]))
}
