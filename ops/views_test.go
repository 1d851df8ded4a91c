package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/tensors"
)

// matrix34 returns a [3 4] tensor holding 0..11 in row-major order.
func matrix34(t *testing.T) *tensors.Tensor[float64] {
	t.Helper()
	m := tensors.New[float64](3, 4)
	for i := 0; i < 12; i++ {
		m.SetFlatAt(float64(i), i)
	}
	return m
}

func TestSlice(t *testing.T) {
	m := matrix34(t)

	// All rows, columns 1 to the end with stride 2: shape [3 2].
	s := ops.SliceStride[float64](m, []int{0, 1}, []int{ops.End, ops.End}, []int{1, 2})
	require.Equal(t, 2, s.Rank())
	require.Equal(t, 3, s.Size(0))
	require.Equal(t, 2, s.Size(1))
	want := [][]float64{{1, 3}, {5, 7}, {9, 11}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, want[i][j], s.At(i, j))
		}
	}

	// Dropping a dimension fixes its coordinate and shrinks the rank.
	row := ops.Slice[float64](m, []int{1, 0}, []int{ops.Drop, ops.End})
	require.Equal(t, 1, row.Rank())
	require.Equal(t, 4, row.Size(0))
	for j := 0; j < 4; j++ {
		assert.Equal(t, float64(4+j), row.At(j))
	}

	// Negative bounds count from the end of the dimension.
	neg := ops.Slice[float64](m, []int{-2, -3}, []int{ops.End, -1})
	require.Equal(t, 2, neg.Size(0))
	require.Equal(t, 2, neg.Size(1))
	assert.Equal(t, 5.0, neg.At(0, 0))
	assert.Equal(t, 11.0, neg.At(1, 1))

	require.Panics(t, func() { ops.Slice[float64](m, []int{0, 5}, []int{ops.End, ops.End}) })
	require.Panics(t, func() { ops.Slice[float64](m, []int{2, 0}, []int{1, ops.End}) })
	require.Panics(t, func() { ops.SliceStride[float64](m, []int{0, 0}, []int{ops.End, ops.End}, []int{0, 1}) })
}

func TestSliceWriteThrough(t *testing.T) {
	m := matrix34(t)
	s := ops.Slice[float64](m, []int{1, 0}, []int{ops.Drop, ops.End}).(ops.Assignable[float64])
	s.Set(-1, 2)
	assert.Equal(t, -1.0, m.At(1, 2))
}

func TestReverse(t *testing.T) {
	m := matrix34(t)
	r := ops.Reverse[float64](m, 1)
	assert.Equal(t, 3.0, r.At(0, 0))
	assert.Equal(t, 0.0, r.At(0, 3))
	assert.Equal(t, 11.0, r.At(2, 0))

	// Involution: reversing twice along the same axis restores the order.
	rr := ops.Reverse[float64](r, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, m.At(i, j), rr.At(i, j))
		}
	}

	both := ops.Reverse[float64](m, 0, 1)
	assert.Equal(t, 11.0, both.At(0, 0))
	assert.Equal(t, 0.0, both.At(2, 3))

	require.Panics(t, func() { ops.Reverse[float64](m, 2) })
}

func TestFlatten(t *testing.T) {
	m := matrix34(t)
	f := ops.Flatten[float64](m)
	require.Equal(t, 1, f.Rank())
	require.Equal(t, 12, f.Size(0))
	for k := 0; k < 12; k++ {
		assert.Equal(t, float64(k), f.At(k))
	}

	fa := f.(ops.Assignable[float64])
	fa.Set(99, 7)
	assert.Equal(t, 99.0, m.At(1, 3))

	require.Panics(t, func() { ops.Flatten[float64](f) })
}

func TestRepeat(t *testing.T) {
	v := tensors.FromValues(7.0, 8.0)
	r := ops.Repeat[float64](v, 3)
	require.Equal(t, 6, r.Size(0))
	want := []float64{7, 8, 7, 8, 7, 8}
	for k, w := range want {
		assert.Equal(t, w, r.At(k))
	}
	// Index 4 wraps back to the first inner element.
	assert.Equal(t, v.At(0), r.At(4))

	// Tiling aliases inner elements, so the result is never writable.
	assert.Equal(t, 0, r.Capability(ops.CapWritable))

	require.Panics(t, func() { ops.Repeat[float64](v, 0) })
	require.Panics(t, func() { ops.Repeat[float64](v, 2, 2) })
}

func TestRemap(t *testing.T) {
	m := matrix34(t)
	idx := tensors.FromValues[int](2, 0, 2)
	r := ops.Remap[float64](m, 0, idx)
	require.Equal(t, 3, r.Size(0))
	require.Equal(t, 4, r.Size(1))
	assert.Equal(t, 8.0, r.At(0, 0))
	assert.Equal(t, 0.0, r.At(1, 0))
	assert.Equal(t, 11.0, r.At(2, 3))

	// A rank-0 index collapses the axis to size 1.
	scalarIdx := tensors.New[int]()
	scalarIdx.Set(1)
	one := ops.Remap[float64](m, 0, scalarIdx)
	require.Equal(t, 1, one.Size(0))
	assert.Equal(t, 6.0, one.At(0, 2))

	require.Panics(t, func() { ops.Remap[float64](m, 2, idx) })
	require.Panics(t, func() {
		ops.Remap[float64](m, 0, tensors.New[int](2, 2))
	})
}

func TestPermute(t *testing.T) {
	m := matrix34(t)
	p := ops.Permute[float64](m, []int{1, 0})
	require.Equal(t, 4, p.Size(0))
	require.Equal(t, 3, p.Size(1))
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, m.At(i, j), p.At(j, i))
		}
	}
	pa := p.(ops.Assignable[float64])
	pa.Set(50, 3, 0)
	assert.Equal(t, 50.0, m.At(0, 3))

	require.Panics(t, func() { ops.Permute[float64](m, []int{0, 0}) })
	require.Panics(t, func() { ops.Permute[float64](m, []int{0}) })
}

func TestFFTShift(t *testing.T) {
	// Odd length: shift by (n+1)/2 = 3.
	v := tensors.FromValues(0.0, 1.0, 2.0, 3.0, 4.0)
	s := ops.FFTShift[float64](v)
	want := []float64{3, 4, 0, 1, 2}
	for k, w := range want {
		assert.Equal(t, w, s.At(k))
	}

	// Inverse undoes the shift for odd lengths too.
	inv := ops.IFFTShift[float64](s)
	for k := 0; k < 5; k++ {
		assert.Equal(t, v.At(k), inv.At(k))
	}

	// Even length: FFTShift and IFFTShift coincide.
	e := tensors.FromValues(0.0, 1.0, 2.0, 3.0)
	se := ops.FFTShift[float64](e)
	ie := ops.IFFTShift[float64](e)
	for k := 0; k < 4; k++ {
		assert.Equal(t, se.At(k), ie.At(k))
	}
	assert.Equal(t, 2.0, se.At(0))
}

func TestGenerators(t *testing.T) {
	r := ops.Range[float64](4, 1, 0.5)
	want := []float64{1, 1.5, 2, 2.5}
	for k, w := range want {
		assert.Equal(t, w, r.At(k))
	}

	l := ops.Linspace(0.0, 1.0, 5)
	for k, w := range []float64{0, 0.25, 0.5, 0.75, 1} {
		assert.InDelta(t, w, l.At(k), 1e-12)
	}

	i := ops.Iota[int](3)
	assert.Equal(t, 2, i.At(2))

	z := ops.Zeros[float64](ops.ShapeOf[int](i))
	assert.Equal(t, 0.0, z.At(1))
	assert.Equal(t, 0, z.Capability(ops.CapWritable))

	require.Panics(t, func() { ops.Linspace(0.0, 1.0, 1) })
}

func TestMath(t *testing.T) {
	a := tensors.FromValues(1.0, 2.0, 3.0)
	b := tensors.FromValues(10.0, 20.0, 30.0)

	sum := ops.Add[float64](a, b)
	assert.Equal(t, 22.0, sum.At(1))

	// A rank-0 operand broadcasts against the other's shape.
	scalar := tensors.New[float64]()
	scalar.Set(2)
	scaled := ops.Mul[float64](sum, scalar)
	assert.Equal(t, 44.0, scaled.At(1))
	require.Equal(t, 1, scaled.Rank())

	assert.Equal(t, -1.0, ops.Neg[float64](a).At(0))
	assert.Equal(t, 3.0, ops.Abs[float64](ops.Neg[float64](a)).At(2))
	assert.InDelta(t, 2.0, ops.Sqrt[float64](ops.Mul[float64](sum, scalar)).At(0), 1e-12)

	conv := ops.Convert[float64, int](a)
	assert.Equal(t, 3, conv.At(2))

	mismatched := tensors.FromValues(1.0, 2.0)
	require.Panics(t, func() { ops.Add[float64](a, mismatched) })
}

// Deep compositions stay pure views: nothing is evaluated until assignment.
func TestComposedViews(t *testing.T) {
	m := matrix34(t)
	composed := ops.Reverse[float64](
		ops.SliceStride[float64](m, []int{0, 0}, []int{ops.End, ops.End}, []int{1, 2}), 0)
	// Columns 0 and 2, rows reversed.
	assert.Equal(t, 8.0, composed.At(0, 0))
	assert.Equal(t, 2.0, composed.At(2, 1))

	dst := tensors.New[float64](3, 2)
	ops.Set[float64](dst, composed).Run(executors.NewHost())
	assert.Equal(t, []float64{8, 10, 4, 6, 0, 2}, dst.Data())
}
