// Package executors drives the evaluation loop of operator expression trees.
//
// An Executor iterates every output coordinate of a Task exactly once and is
// the only component that introduces concurrency: operator nodes never thread
// internally. Two families are provided with the same contract:
//
//   - Host: synchronous; single-threaded, a fixed thread count, or all cores.
//     Sync is a no-op because Exec only returns after the work completed.
//   - Queue: asynchronous; Exec enqueues and returns immediately, tasks run
//     in enqueue order on a dedicated worker, and Sync blocks until the
//     queue drains.
//
// Both produce identical results for the same task, since the only behavioral
// contract is "visit every coordinate exactly once".
package executors

import "github.com/gomat-dev/gomat/types/shapes"

// Task is one unit of element-wise work over a coordinate space.
//
// Executors partition the flattened row-major coordinate space arbitrarily,
// but every coordinate is visited exactly once per Exec, by exactly one
// worker. Rank-0 tasks are invoked once with an empty coordinate slice.
type Task interface {
	// Shape of the task's iteration space.
	Shape() shapes.Shape

	// Granularity is the negotiated maximum number of contiguous elements the
	// task may be asked to process in one StepRun call. A value of 1 forces
	// element-by-element stepping.
	Granularity() int

	// Step processes the element at the given coordinates. The slice is owned
	// by the caller and must not be retained.
	Step(indices []int)

	// StepRun processes n contiguous elements starting at the given
	// coordinates, advancing along the last axis. The caller guarantees the
	// run stays within one last-axis row and n <= Granularity(). The indices
	// slice is owned by the caller and must not be retained or modified.
	StepRun(indices []int, n int)
}

// Executor runs tasks. Executors hold no tensor data and may be shared
// read-only across many evaluations.
type Executor interface {
	// Exec visits every coordinate of the task exactly once. Whether it has
	// completed by the time Exec returns depends on the executor family; call
	// Sync before depending on the results.
	Exec(task Task)

	// Sync blocks until all work submitted through Exec has completed.
	Sync()
}

// execRange walks the flat coordinate range [lo, hi) of the task in row-major
// order, using StepRun for contiguous runs within last-axis rows whenever the
// task's granularity allows it.
func execRange(task Task, shape shapes.Shape, lo, hi int) {
	rank := shape.Rank()
	indices := make([]int, rank)
	shape.FlatToIndices(lo, indices)
	granularity := task.Granularity()
	last := rank - 1
	lastDim := shape.Dimensions[last]

	for flat := lo; flat < hi; {
		n := lastDim - indices[last]
		if remaining := hi - flat; n > remaining {
			n = remaining
		}
		if n > granularity {
			n = granularity
		}
		if n <= 1 {
			n = 1
			task.Step(indices)
		} else {
			task.StepRun(indices, n)
		}
		flat += n

		// Advance the coordinate odometer by n.
		indices[last] += n
		for axis := last; axis >= 0 && indices[axis] >= shape.Dimensions[axis]; axis-- {
			indices[axis] = 0
			if axis > 0 {
				indices[axis-1]++
			}
		}
	}
}
