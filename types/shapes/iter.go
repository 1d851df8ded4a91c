package shapes

import "iter"

// Iter iterates over all coordinates of the shape in row-major order (the
// last axis varies fastest). To avoid allocating per step, the yielded slice
// is owned by Iter: don't retain or modify it inside the loop.
//
// A scalar shape yields a single empty coordinate slice. A shape with any
// zero extent yields nothing.
func (s Shape) Iter() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		rank := s.Rank()
		if rank == 0 {
			_ = yield(make([]int, 0))
			return
		}
		for _, dim := range s.Dimensions {
			if dim == 0 {
				return // Empty iteration space.
			}
		}

		indices := make([]int, rank)
		for {
			if !yield(indices) {
				return
			}

			// Increment indices like an N-dimensional counter, carrying
			// over from the fastest-varying (last) axis.
			axis := rank - 1
			for ; axis >= 0; axis-- {
				indices[axis]++
				if indices[axis] < s.Dimensions[axis] {
					break
				}
				indices[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
