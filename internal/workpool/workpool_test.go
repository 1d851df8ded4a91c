package workpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := New(3)
	assert.Equal(t, 3, p.MaxParallelism())

	var running, peak, done atomic.Int32
	for i := 0; i < 50; i++ {
		p.Go(func() {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			running.Add(-1)
			done.Add(1)
		})
	}
	p.Wait()

	require.Equal(t, int32(50), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestPoolDefaults(t *testing.T) {
	assert.GreaterOrEqual(t, New(0).MaxParallelism(), 1)
	assert.Equal(t, 1, New(1).MaxParallelism())
}

func TestWaitOnIdlePool(t *testing.T) {
	New(2).Wait() // Must not block.
}
