package ops

import "github.com/gomlx/exceptions"

type repeatOp[T any] struct {
	viewOf[T]

	reps []int
}

// Repeat tiles the inner node ("repmat"): output coordinate i in dimension d
// maps to i mod Size(d) of the inner node, and the output size in each
// dimension is the inner size times the repeat factor. All factors must be
// >= 1; len(reps) must equal the rank.
func Repeat[T any](op Operator[T], reps ...int) Operator[T] {
	rank := op.Rank()
	if len(reps) != rank {
		exceptions.Panicf("ops.Repeat: got %d repeat factors for a rank-%d operator", len(reps), rank)
	}
	for d, rep := range reps {
		if rep < 1 {
			exceptions.Panicf("ops.Repeat: factor %d in dimension %d must be >= 1", rep, d)
		}
	}
	r := &repeatOp[T]{viewOf: viewOf[T]{of: op}}
	r.reps = append(r.reps, reps...)
	return r
}

func (r *repeatOp[T]) Size(dim int) int {
	checkDim(dim, r.of.Rank())
	return r.of.Size(dim) * r.reps[dim]
}

func (r *repeatOp[T]) At(indices ...int) T {
	ind := make([]int, len(indices))
	for d, i := range indices {
		ind[d] = i % r.of.Size(d)
	}
	return r.of.At(ind...)
}

// Capability: granularity degrades to 1, and Repeat is never writable since
// many output coordinates alias one inner element.
func (r *repeatOp[T]) Capability(kind Capability) int {
	switch kind {
	case CapElementsPerStep:
		return CombineCapabilities(kind, 1, r.of.Capability(kind))
	case CapWritable:
		return 0
	}
	return r.of.Capability(kind)
}
