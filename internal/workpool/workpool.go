// Package workpool caps the number of goroutines an evaluation fans out to.
package workpool

import (
	"runtime"
	"sync"
)

// Pool is a counting limiter on concurrently running chunks. The zero value
// is not valid; use New.
type Pool struct {
	maxParallelism int

	mu         sync.Mutex
	cond       sync.Cond
	numRunning int
}

// New returns a Pool allowing up to maxParallelism chunks to run at once.
// maxParallelism < 1 means one per available core.
func New(maxParallelism int) *Pool {
	if maxParallelism < 1 {
		maxParallelism = runtime.NumCPU()
	}
	p := &Pool{maxParallelism: maxParallelism}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// MaxParallelism returns the configured limit.
func (p *Pool) MaxParallelism() int { return p.maxParallelism }

// Go runs task in its own goroutine, blocking the caller until the pool has
// a free slot. Pair with Wait to join all running tasks.
func (p *Pool) Go(task func()) {
	p.mu.Lock()
	for p.numRunning >= p.maxParallelism {
		p.cond.Wait()
	}
	p.numRunning++
	p.mu.Unlock()

	go func() {
		task()
		p.mu.Lock()
		p.numRunning--
		p.cond.Broadcast()
		p.mu.Unlock()
	}()
}

// Wait blocks until every task started with Go has finished.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.numRunning > 0 {
		p.cond.Wait()
	}
}
