package transforms

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/compute"
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

type histOp[T ops.Number] struct {
	lifecycle

	op           ops.Operator[T]
	outShape     shapes.Shape
	batch, n     int
	bins         int
	lower, upper float64

	cache *memory.Buffer[int64]
}

// Hist counts the elements of each last-axis row into numLevels-1
// equal-width bins spanning [lower, upper]. The last axis of the result has
// length numLevels-1; elements outside the span are not counted. numLevels
// must be >= 2 and lower < upper.
func Hist[T ops.Number](op ops.Operator[T], lower, upper T, numLevels int) ops.Operator[int64] {
	if numLevels < 2 {
		exceptions.Panicf("transforms.Hist: numLevels must be >= 2, got %d", numLevels)
	}
	if !(float64(lower) < float64(upper)) {
		exceptions.Panicf("transforms.Hist: span [%v, %v] is empty", lower, upper)
	}
	batchShape, batch, n := reduceShape(op, "Hist")
	bins := numLevels - 1
	dims := append(batchShape.Clone().Dimensions, bins)
	return &histOp[T]{
		op:       op,
		outShape: shapes.Shape{Dimensions: dims},
		batch:    batch,
		n:        n,
		bins:     bins,
		lower:    float64(lower),
		upper:    float64(upper),
	}
}

func (h *histOp[T]) Rank() int { return h.outShape.Rank() }

func (h *histOp[T]) Size(dim int) int { return h.outShape.Dim(dim) }

func (h *histOp[T]) At(indices ...int) int64 {
	if h.cache == nil {
		notPrepared("Hist")
	}
	return h.cache.Data[h.outShape.IndicesToFlat(indices)]
}

func (h *histOp[T]) Capability(kind ops.Capability) int {
	switch kind {
	case ops.CapElementsPerStep:
		return 1
	case ops.CapWritable:
		return 0
	}
	return ops.CombineCapabilities(kind, ops.DefaultCapability(kind), h.op.Capability(kind))
}

func (h *histOp[T]) PreRun(ex executors.Executor) {
	h.enter(func() {
		h.op.PreRun(ex)
		src := stage(ex, h.op)
		cache := allocBuf[int64](ex, h.batch*h.bins)
		if err := compute.Default.Histogram(ex, cache.Data, src.Data, h.batch, h.n, h.lower, h.upper); err != nil {
			releaseBuf(ex, src)
			releaseBuf(ex, cache)
			exceptions.Panicf("transforms.Hist: %+v", err)
		}
		releaseBuf(ex, src)
		h.cache = cache
	})
}

func (h *histOp[T]) PostRun(ex executors.Executor) {
	h.exit(func() {
		h.op.PostRun(ex)
		releaseBuf(ex, h.cache)
		h.cache = nil
	})
}
