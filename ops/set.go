package ops

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/types/shapes"
)

// FlatReader is optionally implemented by dense row-major leaves to allow
// flat-index reads on the contiguous fast path.
type FlatReader[T any] interface {
	FlatAt(flat int) T
}

// FlatWriter is the write-side counterpart of FlatReader.
type FlatWriter[T any] interface {
	SetFlatAt(value T, flat int)
}

// SetOp is the assignment node tying a destination to a source expression.
// Created by Set; evaluated by Run.
type SetOp[T any] struct {
	dst Assignable[T]
	src Operator[T]

	shape       shapes.Shape
	granularity int
	scalarSrc   bool

	// Contiguous fast path, available when both sides are dense row-major
	// leaves and the negotiated granularity allows batching.
	flatDst FlatWriter[T]
	flatSrc FlatReader[T]
}

var _ executors.Task = (*SetOp[float32])(nil)

// Set builds the assignment of src into dst.
//
// It validates eagerly: dst must report CapWritable across its whole tree,
// and src must either match dst's shape exactly or be rank-0 (a scalar
// broadcast to every destination coordinate). Violations panic with an
// exception; nothing is evaluated yet.
func Set[T any](dst Assignable[T], src Operator[T]) *SetOp[T] {
	if dst.Capability(CapWritable) == 0 {
		exceptions.Panicf("ops.Set: destination does not support random-access writes")
	}
	dstShape := ShapeOf(dst)
	scalarSrc := src.Rank() == 0 && dstShape.Rank() != 0
	if !scalarSrc {
		srcShape := ShapeOf(src)
		if !dstShape.Equal(srcShape) {
			exceptions.Panicf("ops.Set: destination shape %s does not match source shape %s", dstShape, srcShape)
		}
	}

	s := &SetOp[T]{
		dst:         dst,
		src:         src,
		shape:       dstShape,
		scalarSrc:   scalarSrc,
		granularity: CombineCapabilities(CapElementsPerStep, dst.Capability(CapElementsPerStep), src.Capability(CapElementsPerStep)),
	}
	if s.granularity > 1 && !scalarSrc {
		fw, okW := dst.(FlatWriter[T])
		fr, okR := src.(FlatReader[T])
		if okW && okR {
			s.flatDst, s.flatSrc = fw, fr
		}
	}
	return s
}

// Run evaluates the assignment on the given executor: PreRun over both trees
// (transform nodes allocate and eagerly compute their temporaries here), one
// Exec visiting every destination coordinate exactly once, then a PostRun
// step enqueued on the same executor. On an asynchronous executor the
// in-order queue guarantees temporaries are released only after the
// evaluation that reads them; Run itself does not block — call Sync on the
// executor before reading the destination.
func (s *SetOp[T]) Run(ex executors.Executor) {
	s.dst.PreRun(ex)
	s.src.PreRun(ex)
	ex.Exec(s)
	ex.Exec(finalizeTask(func() {
		s.dst.PostRun(ex)
		s.src.PostRun(ex)
	}))
}

// Shape implements executors.Task.
func (s *SetOp[T]) Shape() shapes.Shape { return s.shape }

// Granularity implements executors.Task: the tree-wide combined
// CapElementsPerStep value.
func (s *SetOp[T]) Granularity() int { return s.granularity }

// Step implements executors.Task.
func (s *SetOp[T]) Step(indices []int) {
	if s.scalarSrc {
		s.dst.Set(s.src.At(), indices...)
		return
	}
	s.dst.Set(s.src.At(indices...), indices...)
}

// StepRun implements executors.Task: n contiguous elements along the last
// axis, starting at indices.
func (s *SetOp[T]) StepRun(indices []int, n int) {
	if s.flatDst != nil {
		flat := s.shape.IndicesToFlat(indices)
		for i := 0; i < n; i++ {
			s.flatDst.SetFlatAt(s.flatSrc.FlatAt(flat+i), flat+i)
		}
		return
	}

	idx := make([]int, len(indices))
	copy(idx, indices)
	last := len(idx) - 1
	for i := 0; i < n; i++ {
		s.Step(idx)
		idx[last]++
	}
}

// finalizeTask is a rank-0 task wrapping a function, used to enqueue
// lifecycle steps behind an evaluation on the same executor.
type finalizeTask func()

func (f finalizeTask) Shape() shapes.Shape          { return shapes.Scalar() }
func (f finalizeTask) Granularity() int             { return 1 }
func (f finalizeTask) Step(indices []int)           { f() }
func (f finalizeTask) StepRun(indices []int, n int) { f() }
