package ops

import "github.com/gomlx/exceptions"

// Capability identifies a trait kind negotiated across an expression tree.
//
// Each kind has a default value ("no constraint", the identity of its
// combiner) and an associative, commutative binary combiner, so traversal
// order does not matter. A node's exported value for a kind is its own
// declared value combined with the values of every node it wraps. The
// executor picks fast paths only when the whole tree agrees they are safe.
type Capability int

//go:generate go tool enumer -type=Capability -trimprefix=Cap -output=capability_enumer.go capabilities.go

const (
	// CapElementsPerStep is the safe processing granularity: the maximum
	// number of contiguous elements that may be produced or consumed per
	// evaluation step. Views with non-contiguous access degrade it to 1.
	CapElementsPerStep Capability = iota

	// CapWritable reports whether the node supports random-access writes.
	// Combined with logical AND; computed nodes declare 0.
	CapWritable

	// CapDeterministic reports whether repeated indexing yields identical
	// values. Combined with logical AND.
	CapDeterministic

	capabilityCount
)

// NoStepLimit is the "no constraint" granularity: any number of contiguous
// elements may be processed per step.
const NoStepLimit = 1 << 30

type capabilityAttributes struct {
	defaultValue int
	combine      func(a, b int) int
}

var capAttrs = [capabilityCount]capabilityAttributes{
	CapElementsPerStep: {defaultValue: NoStepLimit, combine: minInt},
	CapWritable:        {defaultValue: 1, combine: andInt},
	CapDeterministic:   {defaultValue: 1, combine: andInt},
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func andInt(a, b int) int {
	if a != 0 && b != 0 {
		return 1
	}
	return 0
}

// DefaultCapability returns the kind's default ("no constraint") value.
func DefaultCapability(kind Capability) int {
	if kind < 0 || kind >= capabilityCount {
		exceptions.Panicf("ops: unknown capability kind %d", kind)
	}
	return capAttrs[kind].defaultValue
}

// CombineCapabilities folds the given values under the kind's combiner.
// With no values it returns the kind's default.
func CombineCapabilities(kind Capability, values ...int) int {
	result := DefaultCapability(kind)
	for _, v := range values {
		result = capAttrs[kind].combine(result, v)
	}
	return result
}
