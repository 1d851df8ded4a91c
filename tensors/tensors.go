// Package tensors provides the dense, host-resident storage leaf of the
// expression engine: a row-major flat buffer plus a shape, implementing the
// full operator contract including writes and the flat fast paths.
package tensors

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"

	"github.com/gomat-dev/gomat/executors"
	"github.com/gomat-dev/gomat/ops"
	"github.com/gomat-dev/gomat/types/shapes"
)

// Tensor is dense row-major storage for elements of type T. It is an
// operator leaf: it reports default capabilities, has a no-op lifecycle and
// supports both coordinate and flat element access.
type Tensor[T any] struct {
	shape   shapes.Shape
	strides []int
	flat    []T
}

// Compile-time check that Tensor satisfies the writable operator contract
// and the flat fast paths.
var (
	_ ops.Assignable[float64] = (*Tensor[float64])(nil)
	_ ops.FlatReader[float64] = (*Tensor[float64])(nil)
	_ ops.FlatWriter[float64] = (*Tensor[float64])(nil)
)

// New allocates a zero-initialized tensor with the given dimensions.
func New[T any](dimensions ...int) *Tensor[T] {
	shape := shapes.Make(dimensions...)
	return &Tensor[T]{
		shape:   shape,
		strides: shape.Strides(),
		flat:    make([]T, shape.Size()),
	}
}

// FromFlat wraps an existing flat slice as a tensor of the given dimensions,
// without copying. The slice length must equal the shape's size.
func FromFlat[T any](flat []T, dimensions ...int) *Tensor[T] {
	shape := shapes.Make(dimensions...)
	if len(flat) != shape.Size() {
		exceptions.Panicf("tensors.FromFlat: got %d elements for shape %s (size %d)",
			len(flat), shape, shape.Size())
	}
	return &Tensor[T]{
		shape:   shape,
		strides: shape.Strides(),
		flat:    flat,
	}
}

// FromValues builds a rank-1 tensor from the given values.
func FromValues[T any](values ...T) *Tensor[T] {
	flat := make([]T, len(values))
	copy(flat, values)
	return FromFlat(flat, len(values))
}

// Shape returns a clone of the tensor's shape.
func (t *Tensor[T]) Shape() shapes.Shape { return t.shape.Clone() }

func (t *Tensor[T]) Rank() int { return t.shape.Rank() }

func (t *Tensor[T]) Size(dim int) int { return t.shape.Dim(dim) }

// flatIndex converts coordinates to a flat offset using the cached strides.
// Coordinates are unchecked, per the operator element-access contract.
func (t *Tensor[T]) flatIndex(indices []int) int {
	flat := 0
	for d, i := range indices {
		flat += i * t.strides[d]
	}
	return flat
}

func (t *Tensor[T]) At(indices ...int) T { return t.flat[t.flatIndex(indices)] }

func (t *Tensor[T]) Set(value T, indices ...int) { t.flat[t.flatIndex(indices)] = value }

// FlatAt reads the element at the given row-major flat offset.
func (t *Tensor[T]) FlatAt(flat int) T { return t.flat[flat] }

// SetFlatAt writes the element at the given row-major flat offset.
func (t *Tensor[T]) SetFlatAt(value T, flat int) { t.flat[flat] = value }

// Data returns the underlying flat storage, aliased not copied.
func (t *Tensor[T]) Data() []T { return t.flat }

func (t *Tensor[T]) Capability(kind ops.Capability) int { return ops.DefaultCapability(kind) }

func (t *Tensor[T]) PreRun(ex executors.Executor) {}

func (t *Tensor[T]) PostRun(ex executors.Executor) {}

// maxStringElements caps how many elements String prints before eliding.
const maxStringElements = 64

// String renders the shape and up to maxStringElements elements in row-major
// order, for debugging and test failure messages.
func (t *Tensor[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor[%s]{", t.shape)
	for i, v := range t.flat {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i >= maxStringElements {
			fmt.Fprintf(&sb, "... (%d more)", len(t.flat)-i)
			break
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString("}")
	return sb.String()
}
