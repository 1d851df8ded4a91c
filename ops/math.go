package ops

import (
	"math"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/gomat-dev/gomat/executors"
)

type unaryOp[T, R any] struct {
	op Operator[T]
	fn func(T) R
}

// Unary builds a lazy element-wise node applying fn to each element of op.
// The result type may differ from the input type, which also serves as a
// lazy element-type conversion.
func Unary[T, R any](op Operator[T], fn func(T) R) Operator[R] {
	return &unaryOp[T, R]{op: op, fn: fn}
}

func (u *unaryOp[T, R]) Rank() int           { return u.op.Rank() }
func (u *unaryOp[T, R]) Size(dim int) int    { return u.op.Size(dim) }
func (u *unaryOp[T, R]) At(indices ...int) R { return u.fn(u.op.At(indices...)) }

func (u *unaryOp[T, R]) Capability(kind Capability) int {
	if kind == CapWritable {
		return 0
	}
	return u.op.Capability(kind)
}

func (u *unaryOp[T, R]) PreRun(ex executors.Executor)  { u.op.PreRun(ex) }
func (u *unaryOp[T, R]) PostRun(ex executors.Executor) { u.op.PostRun(ex) }

type binaryOp[T any] struct {
	lhs, rhs Operator[T]
	fn       func(T, T) T

	// Set when the corresponding operand is rank-0 and broadcast against the
	// other operand's shape.
	lhsScalar, rhsScalar bool
}

// Binary builds a lazy element-wise node combining two operators with fn.
// The operands must have equal shapes, except that a rank-0 operand
// broadcasts against the other's shape.
func Binary[T any](lhs, rhs Operator[T], fn func(T, T) T) Operator[T] {
	b := &binaryOp[T]{lhs: lhs, rhs: rhs, fn: fn}
	b.lhsScalar = lhs.Rank() == 0 && rhs.Rank() != 0
	b.rhsScalar = rhs.Rank() == 0 && lhs.Rank() != 0
	if !b.lhsScalar && !b.rhsScalar {
		if !ShapeOf(lhs).Equal(ShapeOf(rhs)) {
			exceptions.Panicf("ops.Binary: operand shapes %s and %s do not match",
				ShapeOf(lhs), ShapeOf(rhs))
		}
	}
	return b
}

func (b *binaryOp[T]) main() Operator[T] {
	if b.lhsScalar {
		return b.rhs
	}
	return b.lhs
}

func (b *binaryOp[T]) Rank() int        { return b.main().Rank() }
func (b *binaryOp[T]) Size(dim int) int { return b.main().Size(dim) }

func (b *binaryOp[T]) At(indices ...int) T {
	var l, r T
	if b.lhsScalar {
		l = b.lhs.At()
	} else {
		l = b.lhs.At(indices...)
	}
	if b.rhsScalar {
		r = b.rhs.At()
	} else {
		r = b.rhs.At(indices...)
	}
	return b.fn(l, r)
}

func (b *binaryOp[T]) Capability(kind Capability) int {
	if kind == CapWritable {
		return 0
	}
	return CombineCapabilities(kind, b.lhs.Capability(kind), b.rhs.Capability(kind))
}

func (b *binaryOp[T]) PreRun(ex executors.Executor) {
	b.lhs.PreRun(ex)
	b.rhs.PreRun(ex)
}

func (b *binaryOp[T]) PostRun(ex executors.Executor) {
	b.lhs.PostRun(ex)
	b.rhs.PostRun(ex)
}

// Add returns the lazy element-wise sum of lhs and rhs.
func Add[T Number](lhs, rhs Operator[T]) Operator[T] {
	return Binary(lhs, rhs, func(a, b T) T { return a + b })
}

// Sub returns the lazy element-wise difference lhs - rhs.
func Sub[T Number](lhs, rhs Operator[T]) Operator[T] {
	return Binary(lhs, rhs, func(a, b T) T { return a - b })
}

// Mul returns the lazy element-wise product of lhs and rhs.
func Mul[T Number](lhs, rhs Operator[T]) Operator[T] {
	return Binary(lhs, rhs, func(a, b T) T { return a * b })
}

// Div returns the lazy element-wise quotient lhs / rhs.
func Div[T Number](lhs, rhs Operator[T]) Operator[T] {
	return Binary(lhs, rhs, func(a, b T) T { return a / b })
}

// Neg returns the lazy element-wise negation of op.
func Neg[T Number](op Operator[T]) Operator[T] {
	return Unary(op, func(v T) T { return -v })
}

// Abs returns the lazy element-wise absolute value of op.
func Abs[T Number](op Operator[T]) Operator[T] {
	return Unary(op, func(v T) T {
		if v < 0 {
			return -v
		}
		return v
	})
}

// Sqrt returns the lazy element-wise square root of op.
func Sqrt[T constraints.Float](op Operator[T]) Operator[T] {
	return Unary(op, func(v T) T { return T(math.Sqrt(float64(v))) })
}

// Exp returns the lazy element-wise exponential of op.
func Exp[T constraints.Float](op Operator[T]) Operator[T] {
	return Unary(op, func(v T) T { return T(math.Exp(float64(v))) })
}

// Log returns the lazy element-wise natural logarithm of op.
func Log[T constraints.Float](op Operator[T]) Operator[T] {
	return Unary(op, func(v T) T { return T(math.Log(float64(v))) })
}

// Convert returns a lazy element-type conversion between numeric types.
func Convert[T, R Number](op Operator[T]) Operator[R] {
	return Unary(op, func(v T) R { return R(v) })
}
