package ops

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/gomat-dev/gomat/executors"
)

type remapOp[T any, I constraints.Integer] struct {
	viewOf[T]

	axis int
	idx  Operator[I]
}

// Remap replaces coordinate i of the given axis by idx's element at i. The
// index operator must have rank 0 or 1 (enforced at construction; its
// element type is integral by construction). A rank-0 index collapses the
// axis to size 1; a rank-1 index makes the axis's output size the index
// operator's length.
//
// Remap along multiple axes is built by nesting Remap calls.
func Remap[T any, I constraints.Integer](op Operator[T], axis int, idx Operator[I]) Operator[T] {
	if idx.Rank() > 1 {
		exceptions.Panicf("ops.Remap: index operator rank must be 0 or 1, got %d", idx.Rank())
	}
	return &remapOp[T, I]{
		viewOf: viewOf[T]{of: op},
		axis:   checkAxis(axis, op.Rank()),
		idx:    idx,
	}
}

func (r *remapOp[T, I]) Size(dim int) int {
	checkDim(dim, r.of.Rank())
	if dim == r.axis {
		if r.idx.Rank() == 0 {
			return 1
		}
		return r.idx.Size(0)
	}
	return r.of.Size(dim)
}

func (r *remapOp[T, I]) innerIndices(indices []int) []int {
	ind := make([]int, len(indices))
	copy(ind, indices)
	if r.idx.Rank() == 0 {
		ind[r.axis] = int(r.idx.At())
	} else {
		ind[r.axis] = int(r.idx.At(ind[r.axis]))
	}
	return ind
}

func (r *remapOp[T, I]) At(indices ...int) T {
	return r.of.At(r.innerIndices(indices)...)
}

func (r *remapOp[T, I]) Set(value T, indices ...int) {
	r.setInner(value, r.innerIndices(indices))
}

// Capability combines the wrapped node and the index operator; granularity
// drops to 1 since consecutive output coordinates may map anywhere.
func (r *remapOp[T, I]) Capability(kind Capability) int {
	if kind == CapElementsPerStep {
		return CombineCapabilities(kind, 1, r.of.Capability(kind), r.idx.Capability(kind))
	}
	if kind == CapWritable {
		// Writes go through the wrapped node only; the index operator is
		// read-only input.
		return r.of.Capability(kind)
	}
	return CombineCapabilities(kind, r.of.Capability(kind), r.idx.Capability(kind))
}

func (r *remapOp[T, I]) PreRun(ex executors.Executor) {
	r.of.PreRun(ex)
	r.idx.PreRun(ex)
}

func (r *remapOp[T, I]) PostRun(ex executors.Executor) {
	r.of.PostRun(ex)
	r.idx.PostRun(ex)
}
