package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomat-dev/gomat/executors"
)

func TestAllocateFree(t *testing.T) {
	a := NewHostAllocator()
	ex := executors.NewHost()

	h, err := a.Allocate(256, SpaceHost, ex)
	require.NoError(t, err)
	assert.Equal(t, 256, h.Size())
	assert.Equal(t, SpaceHost, h.Space())
	assert.Equal(t, 1, a.LiveCount())
	assert.Equal(t, int64(256), a.LiveBytes())

	require.NoError(t, a.Free(h))
	assert.Equal(t, 0, a.LiveCount())
	assert.Equal(t, int64(0), a.LiveBytes())
}

func TestDoubleFree(t *testing.T) {
	a := NewHostAllocator()
	h, err := a.Allocate(16, SpaceHost, executors.NewHost())
	require.NoError(t, err)
	require.NoError(t, a.Free(h))

	err = a.Free(h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "double free")

	require.Error(t, a.Free(nil))
}

func TestAllocateErrors(t *testing.T) {
	a := NewHostAllocator()
	ex := executors.NewHost()

	_, err := a.Allocate(16, SpaceDevice, ex)
	require.Error(t, err)

	_, err = a.Allocate(-1, SpaceHost, ex)
	require.Error(t, err)
}

func TestHandleIDsUnique(t *testing.T) {
	a := NewHostAllocator()
	ex := executors.NewHost()
	h1, err := a.Allocate(8, SpaceHost, ex)
	require.NoError(t, err)
	h2, err := a.Allocate(8, SpaceHost, ex)
	require.NoError(t, err)
	assert.NotEqual(t, h1.ID(), h2.ID())
}

func TestTypedBuffer(t *testing.T) {
	a := NewHostAllocator()
	ex := executors.NewHost()

	buf, err := Alloc[float64](a, 10, SpaceHost, ex)
	require.NoError(t, err)
	require.Len(t, buf.Data, 10)
	for i := range buf.Data {
		buf.Data[i] = float64(i)
	}
	assert.Equal(t, 9.0, buf.Data[9])
	assert.Equal(t, int64(80), a.LiveBytes())

	require.NoError(t, buf.Free())
	assert.Nil(t, buf.Data)
	assert.Equal(t, 0, a.LiveCount())
}

func TestZeroSizeBuffer(t *testing.T) {
	a := NewHostAllocator()
	buf, err := Alloc[int64](a, 0, SpaceHost, executors.NewHost())
	require.NoError(t, err)
	assert.Empty(t, buf.Data)
	require.NoError(t, buf.Free())
}

func TestSpaceEnum(t *testing.T) {
	assert.Equal(t, "Host", SpaceHost.String())
	v, err := SpaceString("Device")
	require.NoError(t, err)
	assert.Equal(t, SpaceDevice, v)
}
