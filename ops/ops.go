// Package ops defines the operator node abstraction at the heart of the
// expression engine, the capability negotiation protocol, and the stateless
// view operators (slice, reverse, remap, repeat, flatten, permute, shifts)
// that compose into lazy expression trees.
//
// An expression tree is built by nesting operators; nothing is computed until
// the tree is assigned to a destination with Set(dst, src).Run(executor).
// Views are pure coordinate remappings over an inner node: they allocate
// nothing and cost O(rank) to construct.
//
// Lifecycle: a node is constructed by composition, optionally queried for
// capabilities, prepared with PreRun (recursively propagated; transform nodes
// allocate and eagerly compute here), indexed any number of times in any
// order, then released with PostRun. A node must not be indexed before PreRun
// completes or after PostRun begins.
package ops

import (
	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/types/shapes"
)

// Operator is the contract every expression-tree node implements.
//
// Element access takes exactly Rank() coordinates (rank-0 nodes take none).
// Passing a coordinate outside [0, Size(dim)) is undefined: it is a caller
// contract, not runtime-checked, for performance.
type Operator[T any] interface {
	// Rank is the number of dimensions. Fixed at construction.
	Rank() int

	// Size returns the extent of the given dimension. It panics with an
	// exception if dim is outside [0, Rank()): that is a programming error.
	Size(dim int) int

	// At returns the element at the given coordinates.
	At(indices ...int) T

	// Capability returns this node's value for the given trait kind: its own
	// declared value combined with the values of every node it wraps.
	Capability(kind Capability) int

	// PreRun prepares the tree for indexing. Plain leaves and views forward
	// the call to their inner nodes; transform nodes allocate temporaries and
	// eagerly compute here, using the given executor.
	PreRun(ex executors.Executor)

	// PostRun releases whatever PreRun acquired, recursively.
	PostRun(ex executors.Executor)
}

// Assignable is an Operator that additionally supports write access through
// the same coordinate contract. Whether a node is writable is also declared
// through CapWritable, so generic consumers can check without a type switch.
type Assignable[T any] interface {
	Operator[T]

	// Set stores value at the given coordinates. Same (unchecked) coordinate
	// contract as At.
	Set(value T, indices ...int)
}

// ShapeOf collects the operator's per-dimension sizes into a Shape.
func ShapeOf[T any](op Operator[T]) shapes.Shape {
	dims := make([]int, op.Rank())
	for axis := range dims {
		dims[axis] = op.Size(axis)
	}
	return shapes.Shape{Dimensions: dims}
}

// checkDim panics with an exception if dim is not a valid dimension index
// for the given rank.
func checkDim(dim, rank int) {
	if dim < 0 || dim >= rank {
		exceptions.Panicf("ops: dimension %d out of range for rank-%d operator", dim, rank)
	}
}

// checkAxis resolves and validates an axis argument against rank.
func checkAxis(axis, rank int) int {
	if axis < 0 || axis >= rank {
		exceptions.Panicf("ops: axis %d out of range for rank-%d operator", axis, rank)
	}
	return axis
}

// viewOf is the embeddable base for single-input view operators: it forwards
// shape queries, capabilities and lifecycle to the wrapped node, so a view
// only overrides what it changes.
type viewOf[T any] struct {
	of Operator[T]
}

func (v *viewOf[T]) Rank() int                      { return v.of.Rank() }
func (v *viewOf[T]) Size(dim int) int               { return v.of.Size(dim) }
func (v *viewOf[T]) Capability(kind Capability) int { return v.of.Capability(kind) }
func (v *viewOf[T]) PreRun(ex executors.Executor)   { v.of.PreRun(ex) }
func (v *viewOf[T]) PostRun(ex executors.Executor)  { v.of.PostRun(ex) }

// setInner writes through to the wrapped node, which the capability protocol
// guarantees is Assignable whenever the view itself reports CapWritable.
func (v *viewOf[T]) setInner(value T, indices []int) {
	v.of.(Assignable[T]).Set(value, indices...)
}

// leaf is the embeddable base for nodes without inner operators (generators,
// dense storage). It declares the kind defaults and a no-op lifecycle.
type leaf struct{}

func (leaf) Capability(kind Capability) int { return DefaultCapability(kind) }
func (leaf) PreRun(ex executors.Executor)   {}
func (leaf) PostRun(ex executors.Executor)  {}
