package transforms

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/compute"
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
)

type covOp[T ops.Number] struct {
	lifecycle

	op        ops.Operator[T]
	obs, vars int

	cache *memory.Buffer[float64]
}

// Cov computes the sample covariance matrix of a rank-2 operator whose rows
// are observations and columns are variables. The result has shape
// [vars, vars] and is normalized by obs-1.
func Cov[T ops.Number](op ops.Operator[T]) ops.Operator[T] {
	if op.Rank() != 2 {
		exceptions.Panicf("transforms.Cov: requires a rank-2 operator, got rank %d", op.Rank())
	}
	obs, vars := op.Size(0), op.Size(1)
	if obs < 2 {
		exceptions.Panicf("transforms.Cov: needs at least 2 observations, got %d", obs)
	}
	return &covOp[T]{op: op, obs: obs, vars: vars}
}

func (c *covOp[T]) Rank() int { return 2 }

func (c *covOp[T]) Size(dim int) int {
	if dim < 0 || dim >= 2 {
		exceptions.Panicf("transforms.Cov: dimension %d out of range for rank-2 operator", dim)
	}
	return c.vars
}

func (c *covOp[T]) At(indices ...int) T {
	if c.cache == nil {
		notPrepared("Cov")
	}
	return T(c.cache.Data[indices[0]*c.vars+indices[1]])
}

func (c *covOp[T]) Capability(kind ops.Capability) int {
	switch kind {
	case ops.CapElementsPerStep:
		return 1
	case ops.CapWritable:
		return 0
	}
	return ops.CombineCapabilities(kind, ops.DefaultCapability(kind), c.op.Capability(kind))
}

func (c *covOp[T]) PreRun(ex executors.Executor) {
	c.enter(func() {
		c.op.PreRun(ex)
		src := stage(ex, c.op)
		cache := allocBuf[float64](ex, c.vars*c.vars)
		if err := compute.Default.Covariance(ex, cache.Data, src.Data, c.obs, c.vars); err != nil {
			releaseBuf(ex, src)
			releaseBuf(ex, cache)
			exceptions.Panicf("transforms.Cov: %+v", err)
		}
		releaseBuf(ex, src)
		c.cache = cache
	})
}

func (c *covOp[T]) PostRun(ex executors.Executor) {
	c.exit(func() {
		c.op.PostRun(ex)
		releaseBuf(ex, c.cache)
		c.cache = nil
	})
}
