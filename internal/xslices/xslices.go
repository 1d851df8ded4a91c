// Package xslices holds generic slice helpers used across the module.
package xslices

// Map applies fn to each element of in, returning the new resulting slice.
func Map[In, Out any](in []In, fn func(In) Out) []Out {
	out := make([]Out, len(in))
	for ii, v := range in {
		out[ii] = fn(v)
	}
	return out
}

// Fill sets every element of the slice to value.
func Fill[T any](slice []T, value T) {
	for ii := range slice {
		slice[ii] = value
	}
}

// Iota returns a slice of the given length with values start, start+1, ....
func Iota[T interface{ ~int | ~int32 | ~int64 }](start T, length int) []T {
	out := make([]T, length)
	for ii := range out {
		out[ii] = start + T(ii)
	}
	return out
}

// At returns the element at the given position. Negative positions count
// from the end, so At(s, -1) is the last element.
func At[T any](slice []T, pos int) T {
	if pos < 0 {
		pos += len(slice)
	}
	return slice[pos]
}

// Last returns the last element of the slice.
func Last[T any](slice []T) T { return slice[len(slice)-1] }
