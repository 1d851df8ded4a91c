// Package compute defines the numeric kernels backing the transform nodes
// and a gonum-based default implementation. Kernels are scheduled on an
// executor, so on an asynchronous executor they are ordered against the
// evaluation that consumes their output.
package compute

import (
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/types/shapes"
)

// Provider supplies the numeric kernels transform nodes compute with.
//
// All methods validate argument shapes eagerly and return an error before
// scheduling anything. The computation itself runs as a task on ex, so
// output buffers are only guaranteed filled after work scheduled on ex up
// to this point has completed (immediately on a synchronous executor, after
// Sync on an asynchronous one).
type Provider interface {
	// Covariance fills dst (vars x vars, row-major) with the sample
	// covariance matrix of src (obs x vars, row-major): observations are
	// rows, variables are columns, normalized by obs-1.
	Covariance(ex executors.Executor, dst, src []float64, obs, vars int) error

	// StdDev fills dst (length batch) with the standard deviation of each
	// length-n row of src (batch x n, row-major), normalized by n-ddof.
	StdDev(ex executors.Executor, dst, src []float64, batch, n, ddof int) error

	// Histogram fills counts (batch x bins, row-major) with per-row counts
	// of src (batch x n) over bins equal-width intervals spanning
	// [lower, upper]. Elements outside the span are not counted.
	Histogram(ex executors.Executor, counts []int64, src []float64, batch, n int, lower, upper float64) error

	// ArgMin fills values and indices (each length batch) with the minimum
	// of each length-n row of src and its position. Ties resolve to the
	// lowest position.
	ArgMin(ex executors.Executor, values []float64, indices []int64, src []float64, batch, n int) error

	// ArgMax is ArgMin for the maximum, with the same tie rule.
	ArgMax(ex executors.Executor, values []float64, indices []int64, src []float64, batch, n int) error

	// SolveTridiagonal fills x (length n) with the solution of the
	// tridiagonal system given by sub-diagonal dl, diagonal d and
	// super-diagonal du (each length n; dl[0] and du[n-1] are unused) and
	// right-hand side b.
	SolveTridiagonal(ex executors.Executor, x, dl, d, du, b []float64, n int) error
}

// Default is the provider transform nodes use unless configured otherwise.
var Default Provider = Gonum{}

// rowTask schedules fn once per row index in [0, batch).
type rowTask struct {
	batch int
	fn    func(row int)
}

func (t rowTask) Shape() shapes.Shape { return shapes.Make(t.batch) }
func (t rowTask) Granularity() int    { return 1 }
func (t rowTask) Step(indices []int)  { t.fn(indices[0]) }
func (t rowTask) StepRun(indices []int, n int) {
	for i := 0; i < n; i++ {
		t.fn(indices[0] + i)
	}
}

// funcTask schedules fn exactly once.
type funcTask func()

func (f funcTask) Shape() shapes.Shape          { return shapes.Scalar() }
func (f funcTask) Granularity() int             { return 1 }
func (f funcTask) Step(indices []int)           { f() }
func (f funcTask) StepRun(indices []int, n int) { f() }
