// Package transforms implements the operator nodes that cannot be computed
// per-element: covariance, standard deviation, histogram, arg reductions and
// 1D interpolation. A transform node allocates temporaries and eagerly
// computes its result during PreRun, serves reads from that cache, and
// releases the cache in PostRun.
//
// Lifecycle is reference counted: an expression tree may reference the same
// transform node more than once, so only the first PreRun prepares and only
// the matching last PostRun releases. Buffer frees are scheduled as tasks on
// the same executor the evaluation runs on, which keeps them ordered behind
// any in-flight work on an asynchronous executor.
package transforms

import (
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

// lifecycle is the embeddable reference count shared by all transform nodes.
type lifecycle struct {
	mu   sync.Mutex
	refs int
}

// enter runs prepare on the transition from zero to one reference.
func (l *lifecycle) enter(prepare func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs++
	if l.refs == 1 {
		prepare()
	}
}

// exit runs release on the transition back to zero references.
func (l *lifecycle) exit(release func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.refs == 0 {
		exceptions.Panicf("transforms: PostRun without a matching PreRun")
	}
	l.refs--
	if l.refs == 0 {
		release()
	}
}

// notPrepared reports the standard error for element access outside the
// PreRun/PostRun window.
func notPrepared(what string) {
	exceptions.Panicf("transforms: %s indexed outside its PreRun/PostRun window", what)
}

// allocBuf allocates a typed temporary or panics with an exception, which is
// the error protocol inside PreRun.
func allocBuf[T any](ex executors.Executor, n int) *memory.Buffer[T] {
	buf, err := memory.Alloc[T](memory.Default, n, memory.SpaceHost, ex)
	if err != nil {
		exceptions.Panicf("transforms: %+v", err)
	}
	return buf
}

// releaseBuf schedules the buffer's free on ex, behind whatever work is
// already queued there.
func releaseBuf[T any](ex executors.Executor, buf *memory.Buffer[T]) {
	ex.Exec(funcTask(func() { must.M(buf.Free()) }))
}

// stage schedules the evaluation of src into a fresh float64 buffer on ex.
// src must already be prepared; the buffer contents are valid once the
// scheduled work completes.
func stage[T ops.Number](ex executors.Executor, src ops.Operator[T]) *memory.Buffer[float64] {
	shape := ops.ShapeOf(src)
	buf := allocBuf[float64](ex, shape.Size())
	klog.V(2).Infof("transforms: staging %s operand (%d elements)", shape, shape.Size())
	ex.Exec(&evalTask[T]{src: src, shape: shape, out: buf.Data})
	return buf
}

// evalTask copies an operator's elements into a flat row-major buffer.
type evalTask[T ops.Number] struct {
	src   ops.Operator[T]
	shape shapes.Shape
	out   []float64
}

func (t *evalTask[T]) Shape() shapes.Shape { return t.shape }

func (t *evalTask[T]) Granularity() int { return t.src.Capability(ops.CapElementsPerStep) }

func (t *evalTask[T]) Step(indices []int) {
	t.out[t.shape.IndicesToFlat(indices)] = float64(t.src.At(indices...))
}

func (t *evalTask[T]) StepRun(indices []int, n int) {
	flat := t.shape.IndicesToFlat(indices)
	idx := make([]int, len(indices))
	copy(idx, indices)
	last := len(idx) - 1
	for i := 0; i < n; i++ {
		t.out[flat+i] = float64(t.src.At(idx...))
		idx[last]++
	}
}

// funcTask schedules fn exactly once.
type funcTask func()

func (f funcTask) Shape() shapes.Shape          { return shapes.Scalar() }
func (f funcTask) Granularity() int             { return 1 }
func (f funcTask) Step(indices []int)           { f() }
func (f funcTask) StepRun(indices []int, n int) { f() }

// reduceShape splits a shape into the leading batch part and the trailing
// reduced axis length.
func reduceShape[T any](op ops.Operator[T], what string) (out shapes.Shape, batch, n int) {
	rank := op.Rank()
	if rank < 1 {
		exceptions.Panicf("transforms: %s requires an operator of rank >= 1", what)
	}
	dims := make([]int, rank-1)
	for d := range dims {
		dims[d] = op.Size(d)
	}
	out = shapes.Shape{Dimensions: dims}
	return out, out.Size(), op.Size(rank - 1)
}
