package tensors

import (
	"github.com/x448/float16"
)

// FromFloat16 widens half-precision storage into a float32 tensor. Half
// precision is a storage format here, not a compute format: elements are
// widened on load and narrowed on store.
func FromFloat16(values []float16.Float16, dimensions ...int) *Tensor[float32] {
	flat := make([]float32, len(values))
	for i, v := range values {
		flat[i] = v.Float32()
	}
	return FromFlat(flat, dimensions...)
}

// ToFloat16 narrows the tensor's elements to half precision, rounding to
// nearest even.
func ToFloat16(t *Tensor[float32]) []float16.Float16 {
	out := make([]float16.Float16, len(t.flat))
	for i, v := range t.flat {
		out[i] = float16.Fromfloat32(v)
	}
	return out
}
