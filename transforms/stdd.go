package transforms

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/compute"
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

type stdDevOp[T ops.Number] struct {
	lifecycle

	op       ops.Operator[T]
	outShape shapes.Shape
	batch, n int
	ddof     int

	cache *memory.Buffer[float64]
}

// StdDev computes the standard deviation along the last axis, normalized by
// n-ddof where n is the reduced axis length. The result drops the last
// axis, so a rank-1 input yields a rank-0 result. ddof must be in [0, n).
func StdDev[T ops.Number](op ops.Operator[T], ddof int) ops.Operator[T] {
	outShape, batch, n := reduceShape(op, "StdDev")
	if ddof < 0 || ddof >= n {
		exceptions.Panicf("transforms.StdDev: ddof %d out of range for axis of length %d", ddof, n)
	}
	return &stdDevOp[T]{op: op, outShape: outShape, batch: batch, n: n, ddof: ddof}
}

func (s *stdDevOp[T]) Rank() int { return s.outShape.Rank() }

func (s *stdDevOp[T]) Size(dim int) int { return s.outShape.Dim(dim) }

func (s *stdDevOp[T]) At(indices ...int) T {
	if s.cache == nil {
		notPrepared("StdDev")
	}
	return T(s.cache.Data[s.outShape.IndicesToFlat(indices)])
}

func (s *stdDevOp[T]) Capability(kind ops.Capability) int {
	switch kind {
	case ops.CapElementsPerStep:
		return 1
	case ops.CapWritable:
		return 0
	}
	return ops.CombineCapabilities(kind, ops.DefaultCapability(kind), s.op.Capability(kind))
}

func (s *stdDevOp[T]) PreRun(ex executors.Executor) {
	s.enter(func() {
		s.op.PreRun(ex)
		src := stage(ex, s.op)
		cache := allocBuf[float64](ex, s.batch)
		if err := compute.Default.StdDev(ex, cache.Data, src.Data, s.batch, s.n, s.ddof); err != nil {
			releaseBuf(ex, src)
			releaseBuf(ex, cache)
			exceptions.Panicf("transforms.StdDev: %+v", err)
		}
		releaseBuf(ex, src)
		s.cache = cache
	})
}

func (s *stdDevOp[T]) PostRun(ex executors.Executor) {
	s.exit(func() {
		s.op.PostRun(ex)
		releaseBuf(ex, s.cache)
		s.cache = nil
	})
}
