package ops

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/gomat-dev/gomat/types/shapes"
)

// Number covers the element types the numeric generators and arithmetic
// nodes operate on.
type Number interface {
	constraints.Integer | constraints.Float
}

type generatorOp[T any] struct {
	leaf

	shape shapes.Shape
	fn    func(flat int) T
}

func (g *generatorOp[T]) Rank() int { return g.shape.Rank() }

func (g *generatorOp[T]) Size(dim int) int {
	checkDim(dim, g.shape.Rank())
	return g.shape.Dimensions[dim]
}

func (g *generatorOp[T]) At(indices ...int) T {
	return g.fn(g.shape.IndicesToFlat(indices))
}

func (g *generatorOp[T]) FlatAt(flat int) T { return g.fn(flat) }

// Generators compute elements on demand and own no storage, so they are
// never writable.
func (g *generatorOp[T]) Capability(kind Capability) int {
	if kind == CapWritable {
		return 0
	}
	return DefaultCapability(kind)
}

// Constant yields the same value at every coordinate of the given shape.
func Constant[T any](value T, shape shapes.Shape) Operator[T] {
	return &generatorOp[T]{shape: shape, fn: func(int) T { return value }}
}

// Zeros is Constant with the zero value of T.
func Zeros[T any](shape shapes.Shape) Operator[T] {
	var zero T
	return Constant(zero, shape)
}

// Ones is Constant(1) for numeric element types.
func Ones[T Number](shape shapes.Shape) Operator[T] {
	return Constant(T(1), shape)
}

// Range yields first, first+step, first+2*step, ... along a rank-1 shape of
// the given length.
func Range[T Number](length int, first, step T) Operator[T] {
	if length < 0 {
		exceptions.Panicf("ops.Range: length must be >= 0, got %d", length)
	}
	return &generatorOp[T]{
		shape: shapes.Make(length),
		fn:    func(flat int) T { return first + T(flat)*step },
	}
}

// Iota is Range starting at 0 with step 1.
func Iota[T Number](length int) Operator[T] {
	return Range[T](length, 0, 1)
}

// Linspace yields count evenly spaced values from first to last inclusive.
// count must be >= 2 so that both endpoints exist.
func Linspace[T constraints.Float](first, last T, count int) Operator[T] {
	if count < 2 {
		exceptions.Panicf("ops.Linspace: count must be >= 2, got %d", count)
	}
	step := (last - first) / T(count-1)
	return &generatorOp[T]{
		shape: shapes.Make(count),
		fn:    func(flat int) T { return first + T(flat)*step },
	}
}
