// Package memory provides allocation of temporary buffers for transform
// nodes, with handle-based live tracking so leaks and double frees are
// caught in tests rather than silently accumulating.
package memory

import (
	"sync"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomat-dev/gomat/executors"
)

// Space identifies where an allocation lives. The host allocator only
// serves SpaceHost; an asynchronous device backend would add its own
// allocator serving SpaceDevice.
type Space int

const (
	SpaceHost Space = iota
	SpaceDevice
)

//go:generate go tool enumer -type=Space -trimprefix=Space memory.go

// Handle identifies one live allocation. Handles are created by an
// Allocator and must be returned to the same Allocator exactly once.
type Handle struct {
	id    uuid.UUID
	space Space
	bytes []byte
}

// ID returns the allocation's unique identifier.
func (h *Handle) ID() uuid.UUID { return h.id }

// Space returns where the allocation lives.
func (h *Handle) Space() Space { return h.space }

// Bytes returns the raw storage. Valid until the handle is freed.
func (h *Handle) Bytes() []byte { return h.bytes }

// Size returns the allocation size in bytes.
func (h *Handle) Size() int { return len(h.bytes) }

// Allocator hands out and reclaims temporary buffers. The executor is the
// one the surrounding evaluation runs on, so an asynchronous implementation
// can order the allocation against in-flight work.
type Allocator interface {
	Allocate(byteSize int, space Space, ex executors.Executor) (*Handle, error)
	Free(h *Handle) error
}

// Default is the allocator transform nodes use unless configured otherwise.
var Default Allocator = NewHostAllocator()

// HostAllocator allocates from the Go heap and tracks live handles. Safe
// for concurrent use.
type HostAllocator struct {
	mu        sync.Mutex
	live      map[uuid.UUID]*Handle
	liveBytes int64
}

func NewHostAllocator() *HostAllocator {
	return &HostAllocator{live: make(map[uuid.UUID]*Handle)}
}

func (a *HostAllocator) Allocate(byteSize int, space Space, ex executors.Executor) (*Handle, error) {
	if space != SpaceHost {
		return nil, errors.Errorf("host allocator cannot allocate in space %s", space)
	}
	if byteSize < 0 {
		return nil, errors.Errorf("cannot allocate %d bytes", byteSize)
	}
	h := &Handle{
		id:    uuid.New(),
		space: space,
		bytes: make([]byte, byteSize),
	}
	a.mu.Lock()
	a.live[h.id] = h
	a.liveBytes += int64(byteSize)
	a.mu.Unlock()
	klog.V(2).Infof("memory: allocated %s (handle %s), %s live",
		humanize.Bytes(uint64(byteSize)), h.id, humanize.Bytes(uint64(a.LiveBytes())))
	return h, nil
}

func (a *HostAllocator) Free(h *Handle) error {
	if h == nil {
		return errors.New("cannot free a nil handle")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.live[h.id]; !found {
		return errors.Errorf("handle %s is not live: double free or wrong allocator", h.id)
	}
	delete(a.live, h.id)
	a.liveBytes -= int64(len(h.bytes))
	h.bytes = nil
	klog.V(2).Infof("memory: freed handle %s, %s live", h.id, humanize.Bytes(uint64(a.liveBytes)))
	return nil
}

// LiveCount returns the number of outstanding handles.
func (a *HostAllocator) LiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// LiveBytes returns the total bytes held by outstanding handles.
func (a *HostAllocator) LiveBytes() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.liveBytes
}

// Buffer is a typed view over one allocation: Data aliases the handle's
// storage and is valid until the buffer is freed.
type Buffer[T any] struct {
	handle *Handle
	from   Allocator

	Data []T
}

// Alloc allocates storage for n elements of type T and returns a typed
// buffer over it.
func Alloc[T any](a Allocator, n int, space Space, ex executors.Executor) (*Buffer[T], error) {
	var elem T
	elemSize := int(unsafe.Sizeof(elem))
	h, err := a.Allocate(n*elemSize, space, ex)
	if err != nil {
		return nil, errors.WithMessagef(err, "allocating %d elements", n)
	}
	b := &Buffer[T]{handle: h, from: a}
	if n > 0 {
		b.Data = unsafe.Slice((*T)(unsafe.Pointer(&h.bytes[0])), n)
	}
	return b, nil
}

// Free returns the buffer's storage to its allocator.
func (b *Buffer[T]) Free() error {
	b.Data = nil
	return b.from.Free(b.handle)
}
