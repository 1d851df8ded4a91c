package ops

import "github.com/gomlx/exceptions"

type permuteOp[T any] struct {
	viewOf[T]

	perm []int // Output dimension d is backed by inner dimension perm[d].
}

// Permute reorders which inner dimension backs each output dimension: a pure
// relabeling, O(1) per access. perm must be a permutation of [0, rank).
func Permute[T any](op Operator[T], perm []int) Operator[T] {
	rank := op.Rank()
	if len(perm) != rank {
		exceptions.Panicf("ops.Permute: got %d axes for a rank-%d operator", len(perm), rank)
	}
	seen := make([]bool, rank)
	for _, axis := range perm {
		if axis < 0 || axis >= rank || seen[axis] {
			exceptions.Panicf("ops.Permute: %v is not a permutation of [0, %d)", perm, rank)
		}
		seen[axis] = true
	}
	p := &permuteOp[T]{viewOf: viewOf[T]{of: op}}
	p.perm = append(p.perm, perm...)
	return p
}

func (p *permuteOp[T]) Size(dim int) int {
	checkDim(dim, len(p.perm))
	return p.of.Size(p.perm[dim])
}

func (p *permuteOp[T]) innerIndices(indices []int) []int {
	ind := make([]int, len(indices))
	for d, i := range indices {
		ind[p.perm[d]] = i
	}
	return ind
}

func (p *permuteOp[T]) At(indices ...int) T {
	return p.of.At(p.innerIndices(indices)...)
}

func (p *permuteOp[T]) Set(value T, indices ...int) {
	p.setInner(value, p.innerIndices(indices))
}

func (p *permuteOp[T]) Capability(kind Capability) int {
	if kind == CapElementsPerStep {
		return CombineCapabilities(kind, 1, p.of.Capability(kind))
	}
	return p.of.Capability(kind)
}
