package transforms

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/gomat-dev/gomat/compute"
	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/memory"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

// InterpMethod selects how Interp1 computes values between sample points.
type InterpMethod int

const (
	// InterpLinear interpolates linearly between adjacent samples and
	// extrapolates out-of-range queries along the boundary segment's slope.
	InterpLinear InterpMethod = iota
	// InterpNearest takes the value of the closest sample; a query exactly
	// halfway between two samples takes the lower-index one.
	InterpNearest
	// InterpNext takes the value of the next sample at or above the query,
	// clamping above the range.
	InterpNext
	// InterpPrev takes the value of the previous sample at or below the
	// query, clamping below the range.
	InterpPrev
	// InterpSpline interpolates with a cubic spline under not-a-knot
	// boundary conditions; out-of-range queries evaluate the boundary
	// segment's cubic.
	InterpSpline
)

//go:generate go tool enumer -type=InterpMethod -trimprefix=Interp interp.go

type interpOp[T constraints.Float] struct {
	lifecycle

	x, v, xq ops.Operator[T]
	method   InterpMethod
	n        int
	outShape shapes.Shape

	xs, vs *memory.Buffer[float64]
	m      *memory.Buffer[float64] // Spline slopes at the sample points.
}

// Interp1 interpolates the sampled function (x, v) at the query points xq.
// x and v are rank-1 with equal lengths; x must be sorted ascending (not
// checked). The result has xq's shape; xq may have any rank. InterpSpline
// requires at least 3 samples, the other methods at least 1.
func Interp1[T constraints.Float](x, v, xq ops.Operator[T], method InterpMethod) ops.Operator[T] {
	if x.Rank() != 1 || v.Rank() != 1 {
		exceptions.Panicf("transforms.Interp1: sample points and values must be rank-1, got ranks %d and %d",
			x.Rank(), v.Rank())
	}
	n := x.Size(0)
	if v.Size(0) != n {
		exceptions.Panicf("transforms.Interp1: got %d sample points but %d values", n, v.Size(0))
	}
	if n < 1 {
		exceptions.Panicf("transforms.Interp1: needs at least 1 sample point")
	}
	if method == InterpSpline && n < 3 {
		exceptions.Panicf("transforms.Interp1: spline interpolation needs at least 3 sample points, got %d", n)
	}
	if !method.IsAInterpMethod() {
		exceptions.Panicf("transforms.Interp1: unknown method %d", method)
	}
	return &interpOp[T]{x: x, v: v, xq: xq, method: method, n: n, outShape: ops.ShapeOf(xq)}
}

func (p *interpOp[T]) Rank() int { return p.outShape.Rank() }

func (p *interpOp[T]) Size(dim int) int { return p.outShape.Dim(dim) }

func (p *interpOp[T]) Capability(kind ops.Capability) int {
	switch kind {
	case ops.CapElementsPerStep:
		return 1
	case ops.CapWritable:
		return 0
	}
	return ops.CombineCapabilities(kind, ops.DefaultCapability(kind),
		p.x.Capability(kind), p.v.Capability(kind), p.xq.Capability(kind))
}

func (p *interpOp[T]) PreRun(ex executors.Executor) {
	p.enter(func() {
		p.x.PreRun(ex)
		p.v.PreRun(ex)
		p.xq.PreRun(ex)
		p.xs = stage(ex, p.x)
		p.vs = stage(ex, p.v)
		if p.method == InterpSpline {
			p.solveSlopes(ex)
		}
	})
}

// solveSlopes builds and solves the not-a-knot tridiagonal system for the
// spline slopes. The band fill runs as a task so it observes the staged
// sample buffers; the bands are freed behind the solve on the same
// executor.
func (p *interpOp[T]) solveSlopes(ex executors.Executor) {
	n := p.n
	bands := allocBuf[float64](ex, 4*n)
	dl := bands.Data[0:n]
	d := bands.Data[n : 2*n]
	du := bands.Data[2*n : 3*n]
	b := bands.Data[3*n : 4*n]
	p.m = allocBuf[float64](ex, n)

	xs, vs := p.xs.Data, p.vs.Data
	ex.Exec(funcTask(func() {
		for i := 0; i < n; i++ {
			switch i {
			case 0:
				h0, h1 := xs[1]-xs[0], xs[2]-xs[1]
				d0, d1 := (vs[1]-vs[0])/h0, (vs[2]-vs[1])/h1
				dl[0], d[0], du[0] = 0, h1, h1+h0
				b[0] = ((2*h1+3*h0)*h1*d0 + h0*h0*d1) / (h1 + h0)
			case n - 1:
				h0, h1 := xs[n-2]-xs[n-3], xs[n-1]-xs[n-2]
				d0, d1 := (vs[n-2]-vs[n-3])/h0, (vs[n-1]-vs[n-2])/h1
				dl[i], d[i], du[i] = h0+h1, h0, 0
				b[i] = ((2*h0+3*h1)*h0*d1 + h1*h1*d0) / (h0 + h1)
			default:
				h0, h1 := xs[i]-xs[i-1], xs[i+1]-xs[i]
				d0, d1 := (vs[i]-vs[i-1])/h0, (vs[i+1]-vs[i])/h1
				dl[i], d[i], du[i] = h1, 2*(h0+h1), h0
				b[i] = 3 * (d1*h0 + d0*h1)
			}
		}
	}))
	if err := compute.Default.SolveTridiagonal(ex, p.m.Data, dl, d, du, b, n); err != nil {
		releaseBuf(ex, bands)
		exceptions.Panicf("transforms.Interp1: %+v", err)
	}
	releaseBuf(ex, bands)
}

func (p *interpOp[T]) PostRun(ex executors.Executor) {
	p.exit(func() {
		p.x.PostRun(ex)
		p.v.PostRun(ex)
		p.xq.PostRun(ex)
		releaseBuf(ex, p.xs)
		releaseBuf(ex, p.vs)
		p.xs, p.vs = nil, nil
		if p.m != nil {
			releaseBuf(ex, p.m)
			p.m = nil
		}
	})
}

func (p *interpOp[T]) At(indices ...int) T {
	if p.xs == nil {
		notPrepared("Interp1")
	}
	q := float64(p.xq.At(indices...))
	lo, hi := searchSorted(p.xs.Data, q)
	switch p.method {
	case InterpNearest:
		return T(p.nearest(q, lo, hi))
	case InterpNext:
		return T(p.next(lo, hi))
	case InterpPrev:
		return T(p.prev(lo, hi))
	case InterpSpline:
		return T(p.spline(q, lo, hi))
	default:
		return T(p.linear(q, lo, hi))
	}
}

// searchSorted locates q in the sorted samples x. On return either
// x[lo] <= q <= x[hi] with hi-lo <= 1 (lo == hi on an exact match), or
// lo == len(x) marking q below the range, or hi == len(x) marking q above.
func searchSorted(x []float64, q float64) (lo, hi int) {
	n := len(x)
	if q < x[0] {
		return n, 0
	}
	if q == x[0] {
		return 0, 0
	}
	if q > x[n-1] {
		return n - 1, n
	}
	if q == x[n-1] {
		return n - 1, n - 1
	}
	lo, hi = 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if q == x[mid] {
			return mid, mid
		}
		if q < x[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, hi
}

func (p *interpOp[T]) linear(q float64, lo, hi int) float64 {
	xs, vs, n := p.xs.Data, p.vs.Data, p.n
	if lo == hi {
		return vs[lo]
	}
	if hi == 0 && lo == n { // below the range
		if n < 2 {
			return vs[0]
		}
		lo, hi = 0, 1
	} else if hi == n { // above the range
		if n < 2 {
			return vs[n-1]
		}
		lo, hi = n-2, n-1
	}
	return vs[lo] + (q-xs[lo])*(vs[hi]-vs[lo])/(xs[hi]-xs[lo])
}

func (p *interpOp[T]) nearest(q float64, lo, hi int) float64 {
	xs, vs, n := p.xs.Data, p.vs.Data, p.n
	if lo == n { // below the range
		return vs[hi]
	}
	if hi == n { // above the range
		return vs[lo]
	}
	if q-xs[lo] <= xs[hi]-q {
		return vs[lo]
	}
	return vs[hi]
}

func (p *interpOp[T]) next(lo, hi int) float64 {
	vs, n := p.vs.Data, p.n
	if hi == n { // above the range: no next sample, clamp
		return vs[lo]
	}
	return vs[hi]
}

func (p *interpOp[T]) prev(lo, hi int) float64 {
	vs, n := p.vs.Data, p.n
	if lo == n { // below the range: no previous sample, clamp
		return vs[hi]
	}
	return vs[lo]
}

// spline evaluates the Hermite cubic of the segment containing q, using the
// precomputed slopes. Out-of-range queries evaluate the boundary segment's
// cubic.
func (p *interpOp[T]) spline(q float64, lo, hi int) float64 {
	xs, vs, m, n := p.xs.Data, p.vs.Data, p.m.Data, p.n
	if lo == hi {
		return vs[lo]
	}
	if lo == n { // below the range
		lo, hi = 0, 1
	} else if hi == n { // above the range
		lo, hi = n-2, n-1
	}
	h := xs[hi] - xs[lo]
	t := (q - xs[lo]) / h
	s := (xs[hi] - q) / h
	vDiff := vs[hi] - vs[lo]
	return s*vs[lo] + t*vs[hi] + (h*(m[lo]*s-m[hi]*t)+vDiff*(t-s))*t*s
}
