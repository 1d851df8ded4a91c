package compute

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/internal/xslices"
)

// Gonum is the default Provider, built on gonum's stat, floats and mat
// packages. It is stateless and safe for concurrent use.
type Gonum struct{}

var _ Provider = Gonum{}

func (Gonum) Covariance(ex executors.Executor, dst, src []float64, obs, vars int) error {
	if obs < 2 {
		return errors.Errorf("covariance needs at least 2 observations, got %d", obs)
	}
	if len(src) != obs*vars {
		return errors.Errorf("covariance input has %d elements, want %d x %d", len(src), obs, vars)
	}
	if len(dst) != vars*vars {
		return errors.Errorf("covariance output has %d elements, want %d x %d", len(dst), vars, vars)
	}
	ex.Exec(funcTask(func() {
		var cov mat.SymDense
		stat.CovarianceMatrix(&cov, mat.NewDense(obs, vars, src), nil)
		for i := 0; i < vars; i++ {
			for j := 0; j < vars; j++ {
				dst[i*vars+j] = cov.At(i, j)
			}
		}
	}))
	return nil
}

func (Gonum) StdDev(ex executors.Executor, dst, src []float64, batch, n, ddof int) error {
	if ddof < 0 || ddof >= n {
		return errors.Errorf("ddof %d out of range for rows of length %d", ddof, n)
	}
	if len(src) != batch*n {
		return errors.Errorf("stddev input has %d elements, want %d x %d", len(src), batch, n)
	}
	if len(dst) != batch {
		return errors.Errorf("stddev output has %d elements, want %d", len(dst), batch)
	}
	ex.Exec(rowTask{batch: batch, fn: func(row int) {
		x := src[row*n : (row+1)*n]
		mean := stat.Mean(x, nil)
		var ss float64
		for _, v := range x {
			d := v - mean
			ss += d * d
		}
		dst[row] = math.Sqrt(ss / float64(n-ddof))
	}})
	return nil
}

func (Gonum) Histogram(ex executors.Executor, counts []int64, src []float64, batch, n int, lower, upper float64) error {
	if batch <= 0 || len(counts)%batch != 0 {
		return errors.Errorf("histogram output of %d elements does not divide into %d rows", len(counts), batch)
	}
	bins := len(counts) / batch
	if bins < 1 {
		return errors.Errorf("histogram needs at least 1 bin")
	}
	if !(lower < upper) {
		return errors.Errorf("histogram span [%v, %v] is empty", lower, upper)
	}
	if len(src) != batch*n {
		return errors.Errorf("histogram input has %d elements, want %d x %d", len(src), batch, n)
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lower, upper)
	ex.Exec(rowTask{batch: batch, fn: func(row int) {
		out := counts[row*bins : (row+1)*bins]
		xslices.Fill(out, 0)
		for _, v := range src[row*n : (row+1)*n] {
			if v < lower || v > upper {
				continue
			}
			// The last divider is inclusive so upper itself lands in the
			// final bin.
			bin := bins - 1
			for i := 1; i < bins; i++ {
				if v < dividers[i] {
					bin = i - 1
					break
				}
			}
			out[bin]++
		}
	}})
	return nil
}

func (Gonum) ArgMin(ex executors.Executor, values []float64, indices []int64, src []float64, batch, n int) error {
	return argReduce(ex, values, indices, src, batch, n, floats.MinIdx)
}

func (Gonum) ArgMax(ex executors.Executor, values []float64, indices []int64, src []float64, batch, n int) error {
	return argReduce(ex, values, indices, src, batch, n, floats.MaxIdx)
}

// argReduce runs one of floats.MinIdx/MaxIdx per row. Both resolve ties to
// the first occurrence, which is the engine's tie rule.
func argReduce(ex executors.Executor, values []float64, indices []int64, src []float64, batch, n int,
	pick func([]float64) int) error {
	if n < 1 {
		return errors.Errorf("arg reduction needs non-empty rows, got length %d", n)
	}
	if len(src) != batch*n {
		return errors.Errorf("arg reduction input has %d elements, want %d x %d", len(src), batch, n)
	}
	if len(values) != batch || len(indices) != batch {
		return errors.Errorf("arg reduction outputs have %d and %d elements, want %d",
			len(values), len(indices), batch)
	}
	ex.Exec(rowTask{batch: batch, fn: func(row int) {
		x := src[row*n : (row+1)*n]
		i := pick(x)
		values[row] = x[i]
		indices[row] = int64(i)
	}})
	return nil
}

func (Gonum) SolveTridiagonal(ex executors.Executor, x, dl, d, du, b []float64, n int) error {
	if n < 2 {
		return errors.Errorf("tridiagonal solve needs n >= 2, got %d", n)
	}
	if len(x) != n || len(dl) != n || len(d) != n || len(du) != n || len(b) != n {
		return errors.Errorf("tridiagonal solve bands and vectors must all have length %d", n)
	}
	ex.Exec(funcTask(func() {
		tri := mat.NewTridiag(n, dl[1:], d, du[:n-1])
		var sol mat.VecDense
		if err := tri.SolveVecTo(&sol, false, mat.NewVecDense(n, b)); err != nil {
			exceptions.Panicf("tridiagonal solve failed: %v", err)
		}
		for i := 0; i < n; i++ {
			x[i] = sol.AtVec(i)
		}
	}))
	return nil
}
