package transforms

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/compute"
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

// ArgReduce locates the extreme of each last-axis row: both the extreme
// value and its position, exposed as two operator views over one shared
// computation. Ties resolve to the lowest position. The views drop the last
// axis, so a rank-1 input yields rank-0 views.
type ArgReduce[T ops.Number] struct {
	lifecycle

	op       ops.Operator[T]
	max      bool
	outShape shapes.Shape
	batch, n int

	values  *memory.Buffer[float64]
	indices *memory.Buffer[int64]
}

// ArgMin builds the reduction locating each row's minimum.
func ArgMin[T ops.Number](op ops.Operator[T]) *ArgReduce[T] {
	outShape, batch, n := reduceShape(op, "ArgMin")
	return &ArgReduce[T]{op: op, outShape: outShape, batch: batch, n: n}
}

// ArgMax builds the reduction locating each row's maximum.
func ArgMax[T ops.Number](op ops.Operator[T]) *ArgReduce[T] {
	outShape, batch, n := reduceShape(op, "ArgMax")
	return &ArgReduce[T]{op: op, max: true, outShape: outShape, batch: batch, n: n}
}

// Values returns the operator view over the extreme values.
func (a *ArgReduce[T]) Values() ops.Operator[T] { return argValues[T]{a} }

// Indices returns the operator view over the extreme positions.
func (a *ArgReduce[T]) Indices() ops.Operator[int64] { return argIndices[T]{a} }

func (a *ArgReduce[T]) prepare(ex executors.Executor) {
	a.enter(func() {
		a.op.PreRun(ex)
		src := stage(ex, a.op)
		values := allocBuf[float64](ex, a.batch)
		indices := allocBuf[int64](ex, a.batch)
		reduce := compute.Default.ArgMin
		if a.max {
			reduce = compute.Default.ArgMax
		}
		if err := reduce(ex, values.Data, indices.Data, src.Data, a.batch, a.n); err != nil {
			releaseBuf(ex, src)
			releaseBuf(ex, values)
			releaseBuf(ex, indices)
			exceptions.Panicf("transforms.ArgReduce: %+v", err)
		}
		releaseBuf(ex, src)
		a.values, a.indices = values, indices
	})
}

func (a *ArgReduce[T]) release(ex executors.Executor) {
	a.exit(func() {
		a.op.PostRun(ex)
		releaseBuf(ex, a.values)
		releaseBuf(ex, a.indices)
		a.values, a.indices = nil, nil
	})
}

func (a *ArgReduce[T]) capability(kind ops.Capability) int {
	switch kind {
	case ops.CapElementsPerStep:
		return 1
	case ops.CapWritable:
		return 0
	}
	return ops.CombineCapabilities(kind, ops.DefaultCapability(kind), a.op.Capability(kind))
}

type argValues[T ops.Number] struct{ a *ArgReduce[T] }

func (v argValues[T]) Rank() int        { return v.a.outShape.Rank() }
func (v argValues[T]) Size(dim int) int { return v.a.outShape.Dim(dim) }

func (v argValues[T]) At(indices ...int) T {
	if v.a.values == nil {
		notPrepared("ArgReduce")
	}
	return T(v.a.values.Data[v.a.outShape.IndicesToFlat(indices)])
}

func (v argValues[T]) Capability(kind ops.Capability) int { return v.a.capability(kind) }
func (v argValues[T]) PreRun(ex executors.Executor)       { v.a.prepare(ex) }
func (v argValues[T]) PostRun(ex executors.Executor)      { v.a.release(ex) }

type argIndices[T ops.Number] struct{ a *ArgReduce[T] }

func (v argIndices[T]) Rank() int        { return v.a.outShape.Rank() }
func (v argIndices[T]) Size(dim int) int { return v.a.outShape.Dim(dim) }

func (v argIndices[T]) At(indices ...int) int64 {
	if v.a.indices == nil {
		notPrepared("ArgReduce")
	}
	return v.a.indices.Data[v.a.outShape.IndicesToFlat(indices)]
}

func (v argIndices[T]) Capability(kind ops.Capability) int { return v.a.capability(kind) }
func (v argIndices[T]) PreRun(ex executors.Executor)       { v.a.prepare(ex) }
func (v argIndices[T]) PostRun(ex executors.Executor)      { v.a.release(ex) }
