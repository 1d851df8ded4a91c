package ops

import "github.com/gomlx/exceptions"

type shiftOp[T any] struct {
	viewOf[T]

	inverse bool
}

// FFTShift circularly rotates the last dimension so that the zero-frequency
// element lands in the middle: coordinate i maps to (i + (n+1)/2) mod n of
// the inner node.
func FFTShift[T any](op Operator[T]) Operator[T] {
	return newShift(op, false)
}

// IFFTShift undoes FFTShift: coordinate i maps to (i + n/2) mod n. For even
// n the two are identical.
func IFFTShift[T any](op Operator[T]) Operator[T] {
	return newShift(op, true)
}

func newShift[T any](op Operator[T], inverse bool) Operator[T] {
	if op.Rank() == 0 {
		exceptions.Panicf("ops.FFTShift: operator rank must be greater than 0")
	}
	return &shiftOp[T]{viewOf: viewOf[T]{of: op}, inverse: inverse}
}

func (s *shiftOp[T]) innerIndices(indices []int) []int {
	last := len(indices) - 1
	n := s.of.Size(last)
	ind := make([]int, len(indices))
	copy(ind, indices)
	if s.inverse {
		ind[last] = (ind[last] + n/2) % n
	} else {
		ind[last] = (ind[last] + (n+1)/2) % n
	}
	return ind
}

func (s *shiftOp[T]) At(indices ...int) T {
	return s.of.At(s.innerIndices(indices)...)
}

func (s *shiftOp[T]) Set(value T, indices ...int) {
	s.setInner(value, s.innerIndices(indices))
}

func (s *shiftOp[T]) Capability(kind Capability) int {
	if kind == CapElementsPerStep {
		return CombineCapabilities(kind, 1, s.of.Capability(kind))
	}
	return s.of.Capability(kind)
}
