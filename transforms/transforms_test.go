package transforms_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/tensors"
	"github.com/gomat-dev/gomat/transforms"
)

// liveCount reports the default allocator's outstanding handles, for leak
// checks around transform lifecycles.
func liveCount(t *testing.T) int {
	t.Helper()
	host, ok := memory.Default.(*memory.HostAllocator)
	require.True(t, ok)
	return host.LiveCount()
}

func TestStdDev(t *testing.T) {
	before := liveCount(t)
	src := tensors.FromValues(2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0)
	dst := tensors.New[float64]()
	ops.Set[float64](dst, transforms.StdDev[float64](src, 1)).Run(executors.NewHost())
	assert.InDelta(t, math.Sqrt(32.0/7.0), dst.At(), 1e-12)
	assert.Equal(t, before, liveCount(t))
}

func TestStdDevBatched(t *testing.T) {
	src := tensors.FromFlat([]float64{1, 1, 1, 1, 0, 2, 0, 2}, 2, 4)
	dst := tensors.New[float64](2)
	ops.Set[float64](dst, transforms.StdDev[float64](src, 0)).Run(executors.NewHost())
	assert.InDelta(t, 0.0, dst.At(0), 1e-12)
	assert.InDelta(t, 1.0, dst.At(1), 1e-12)
}

func TestStdDevValidation(t *testing.T) {
	src := tensors.FromValues(1.0, 2.0)
	require.Panics(t, func() { transforms.StdDev[float64](src, 2) })
	require.Panics(t, func() { transforms.StdDev[float64](src, -1) })
	require.Panics(t, func() { transforms.StdDev[float64](tensors.New[float64](), 0) })
}

func TestCov(t *testing.T) {
	before := liveCount(t)
	src := tensors.FromFlat([]float64{
		1, 2,
		3, 6,
		5, 10,
	}, 3, 2)
	dst := tensors.New[float64](2, 2)
	ops.Set[float64](dst, transforms.Cov[float64](src)).Run(executors.NewHost())
	assert.InDelta(t, 4, dst.At(0, 0), 1e-12)
	assert.InDelta(t, 8, dst.At(0, 1), 1e-12)
	assert.InDelta(t, 8, dst.At(1, 0), 1e-12)
	assert.InDelta(t, 16, dst.At(1, 1), 1e-12)
	assert.Equal(t, before, liveCount(t))

	require.Panics(t, func() { transforms.Cov[float64](tensors.New[float64](3)) })
	require.Panics(t, func() { transforms.Cov[float64](tensors.New[float64](1, 2)) })
}

func TestHist(t *testing.T) {
	src := tensors.FromValues(0.0, 0.5, 1.0, 1.5, 2.0, 5.0)
	h := transforms.Hist[float64](src, 0, 2, 5)
	require.Equal(t, 1, h.Rank())
	require.Equal(t, 4, h.Size(0))

	dst := tensors.New[int64](4)
	ops.Set[int64](dst, h).Run(executors.NewHost())
	assert.Equal(t, []int64{1, 1, 1, 2}, dst.Data())

	require.Panics(t, func() { transforms.Hist[float64](src, 0, 2, 1) })
	require.Panics(t, func() { transforms.Hist[float64](src, 2, 0, 5) })
}

func TestArgMinMax(t *testing.T) {
	before := liveCount(t)
	src := tensors.FromValues(3.0, 1.0, 1.0, 2.0)
	am := transforms.ArgMin[float64](src)

	val := tensors.New[float64]()
	ops.Set[float64](val, am.Values()).Run(executors.NewHost())
	assert.Equal(t, 1.0, val.At())

	idx := tensors.New[int64]()
	ops.Set[int64](idx, am.Indices()).Run(executors.NewHost())
	assert.Equal(t, int64(1), idx.At())

	ax := transforms.ArgMax[float64](tensors.FromValues(1.0, 3.0, 3.0, 2.0))
	ops.Set[int64](idx, ax.Indices()).Run(executors.NewHost())
	assert.Equal(t, int64(1), idx.At())

	assert.Equal(t, before, liveCount(t))
}

func TestArgReduceBatched(t *testing.T) {
	src := tensors.FromFlat([]float64{5, 2, 9, 1, 8, 8}, 2, 3)
	am := transforms.ArgMin[float64](src)
	idx := tensors.New[int64](2)
	ops.Set[int64](idx, am.Indices()).Run(executors.NewHost())
	assert.Equal(t, []int64{1, 0}, idx.Data())
}

func TestLifecycleRefCount(t *testing.T) {
	ex := executors.NewHost()
	src := tensors.FromValues(1.0, 2.0, 3.0)
	op := transforms.StdDev[float64](src, 0)

	// Indexing outside the PreRun/PostRun window is a programming error.
	require.Panics(t, func() { op.At() })

	op.PreRun(ex)
	op.PreRun(ex) // Second reference; prepares only once.
	first := op.At()
	op.PostRun(ex)
	assert.Equal(t, first, op.At()) // Still one reference held.
	op.PostRun(ex)
	require.Panics(t, func() { op.At() })
	require.Panics(t, func() { op.PostRun(ex) })
}

func TestLifecycleRepeatedRuns(t *testing.T) {
	before := liveCount(t)
	src := tensors.FromValues(4.0, 0.0, 2.0)
	op := transforms.StdDev[float64](src, 0)
	ex := executors.NewHost()
	for i := 0; i < 5; i++ {
		dst := tensors.New[float64]()
		ops.Set[float64](dst, op).Run(ex)
		assert.InDelta(t, math.Sqrt(8.0/3.0), dst.At(), 1e-12)
	}
	assert.Equal(t, before, liveCount(t))
}

// A transform evaluated on the asynchronous queue: staging, kernel,
// evaluation and frees all flow through the in-order stream.
func TestTransformOnQueue(t *testing.T) {
	q := executors.NewQueue()
	defer q.Finalize()

	before := liveCount(t)
	src := tensors.FromValues(2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0)
	dst := tensors.New[float64]()
	ops.Set[float64](dst, transforms.StdDev[float64](src, 1)).Run(q)
	q.Sync()
	assert.InDelta(t, math.Sqrt(32.0/7.0), dst.At(), 1e-12)
	assert.Equal(t, before, liveCount(t))
}

// Transforms compose with views like any other node.
func TestTransformOverView(t *testing.T) {
	m := tensors.FromFlat([]float64{
		9, 2, 4, 4, 4,
		0, 5, 5, 7, 2,
	}, 2, 5)
	// Reduce only columns 1..4 of each row.
	view := ops.Slice[float64](m, []int{0, 1}, []int{ops.End, ops.End})
	dst := tensors.New[float64](2)
	ops.Set[float64](dst, transforms.StdDev[float64](view, 0)).Run(executors.NewHost())
	// Row 0: 2,4,4,4 has mean 3.5; row 1: 5,5,7,2 has mean 4.75.
	assert.InDelta(t, math.Sqrt(3.0/4.0), dst.At(0), 1e-12)
	assert.InDelta(t, math.Sqrt(12.75/4.0), dst.At(1), 1e-12)
}
