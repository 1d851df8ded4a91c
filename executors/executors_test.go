package executors_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/tensors"
	"github.com/gomat-dev/gomat/types/shapes"
)

// countTask marks each visited flat coordinate, to verify exactly-once
// coverage under partitioning.
type countTask struct {
	shape       shapes.Shape
	granularity int
	visits      []int32
}

func (c *countTask) Shape() shapes.Shape { return c.shape }
func (c *countTask) Granularity() int    { return c.granularity }

func (c *countTask) Step(indices []int) {
	atomic.AddInt32(&c.visits[c.shape.IndicesToFlat(indices)], 1)
}

func (c *countTask) StepRun(indices []int, n int) {
	flat := c.shape.IndicesToFlat(indices)
	for i := 0; i < n; i++ {
		atomic.AddInt32(&c.visits[flat+i], 1)
	}
}

func TestHostCoverage(t *testing.T) {
	for _, numThreads := range []int{1, 2, 7} {
		for _, granularity := range []int{1, 3, ops.NoStepLimit} {
			task := &countTask{
				shape:       shapes.Make(41, 13, 5),
				granularity: granularity,
				visits:      make([]int32, 41*13*5),
			}
			executors.NewHostWithThreads(numThreads).Exec(task)
			for flat, n := range task.visits {
				require.Equal(t, int32(1), n,
					"flat index %d visited %d times (threads=%d granularity=%d)",
					flat, n, numThreads, granularity)
			}
		}
	}
}

func TestHostScalarAndEmpty(t *testing.T) {
	h := executors.NewHost()

	scalar := &countTask{shape: shapes.Scalar(), granularity: 1, visits: make([]int32, 1)}
	h.Exec(scalar)
	assert.Equal(t, int32(1), scalar.visits[0])

	empty := &countTask{shape: shapes.Make(0, 5), granularity: 1}
	h.Exec(empty) // Must return without stepping.
}

func TestHostConstructors(t *testing.T) {
	assert.Equal(t, executors.ThreadsSingle, executors.NewHost().Mode())
	assert.Equal(t, 1, executors.NewHost().NumThreads())
	assert.Equal(t, executors.ThreadsSelect, executors.NewHostWithThreads(4).Mode())
	assert.Equal(t, executors.ThreadsAll, executors.NewHostAll().Mode())
	assert.GreaterOrEqual(t, executors.NewHostAll().NumThreads(), 1)
	require.Panics(t, func() { executors.NewHostWithThreads(0) })
}

// The same expression evaluated single-threaded and multi-threaded must be
// bit-identical: partitioning only splits the coordinate space, it never
// changes per-element arithmetic.
func TestHostDeterminism(t *testing.T) {
	const n = 10000
	build := func() ops.Operator[float64] {
		iota := ops.Iota[float64](n)
		return ops.Add[float64](
			ops.Mul[float64](iota, iota),
			ops.Reverse[float64](ops.Sqrt[float64](iota), 0))
	}

	single := tensors.New[float64](n)
	ops.Set[float64](single, build()).Run(executors.NewHost())

	multi := tensors.New[float64](n)
	ops.Set[float64](multi, build()).Run(executors.NewHostWithThreads(8))

	require.Equal(t, single.Data(), multi.Data())
}

// orderTask records its sequence number; the queue worker is the only
// writer, so no synchronization is needed beyond Sync.
type orderTask struct {
	seq int
	log *[]int
}

func (o orderTask) Shape() shapes.Shape          { return shapes.Scalar() }
func (o orderTask) Granularity() int             { return 1 }
func (o orderTask) Step(indices []int)           { *o.log = append(*o.log, o.seq) }
func (o orderTask) StepRun(indices []int, n int) { o.Step(indices) }

func TestQueueOrdering(t *testing.T) {
	q := executors.NewQueue()
	defer q.Finalize()

	var log []int
	for i := 0; i < 100; i++ {
		q.Exec(orderTask{seq: i, log: &log})
	}
	q.Sync()

	require.Len(t, log, 100)
	for i, seq := range log {
		require.Equal(t, i, seq)
	}
}

func TestQueueEvaluation(t *testing.T) {
	q := executors.NewQueue()
	defer q.Finalize()

	const n = 2000
	dst := tensors.New[float64](n)
	iota := ops.Iota[float64](n)
	// Run returns without waiting; Sync is the only blocking point.
	ops.Set[float64](dst, ops.Mul[float64](iota, iota)).Run(q)
	q.Sync()

	for i := 0; i < n; i++ {
		require.Equal(t, float64(i*i), dst.At(i))
	}
}

func TestQueueSyncIdempotent(t *testing.T) {
	q := executors.NewQueue()
	q.Sync()
	q.Sync()
	q.Finalize()
	require.Panics(t, func() { q.Exec(orderTask{}) })
}

func TestThreadsModeEnum(t *testing.T) {
	assert.Equal(t, "Single", executors.ThreadsSingle.String())
	assert.Equal(t, "All", executors.ThreadsAll.String())
	v, err := executors.ThreadsModeString("Select")
	require.NoError(t, err)
	assert.Equal(t, executors.ThreadsSelect, v)
}
