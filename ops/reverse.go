package ops

type reverseOp[T any] struct {
	viewOf[T]

	reversed []bool // Per dimension.
}

// Reverse flips the order of elements along the given axes: coordinate i in
// a reversed axis maps to Size(axis)-i-1 in the inner node. Sizes are
// unchanged. Reverse is an involution: reversing twice along the same axes
// yields the original element order.
func Reverse[T any](op Operator[T], axes ...int) Operator[T] {
	rank := op.Rank()
	r := &reverseOp[T]{
		viewOf:   viewOf[T]{of: op},
		reversed: make([]bool, rank),
	}
	for _, axis := range axes {
		r.reversed[checkAxis(axis, rank)] = true
	}
	return r
}

func (r *reverseOp[T]) innerIndices(indices []int) []int {
	ind := make([]int, len(indices))
	for axis, i := range indices {
		if r.reversed[axis] {
			ind[axis] = r.of.Size(axis) - i - 1
		} else {
			ind[axis] = i
		}
	}
	return ind
}

func (r *reverseOp[T]) At(indices ...int) T {
	return r.of.At(r.innerIndices(indices)...)
}

func (r *reverseOp[T]) Set(value T, indices ...int) {
	r.setInner(value, r.innerIndices(indices))
}

func (r *reverseOp[T]) Capability(kind Capability) int {
	if kind == CapElementsPerStep {
		return CombineCapabilities(kind, 1, r.of.Capability(kind))
	}
	return r.of.Capability(kind)
}
