package executors

import (
	"runtime"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/gomat-dev/gomat/internal/workpool"
)

// ThreadsMode selects the threading policy of a Host executor.
type ThreadsMode int

//go:generate go tool enumer -type=ThreadsMode -trimprefix=Threads -output=threadsmode_enumer.go host.go

const (
	// ThreadsSingle runs the evaluation loop on the calling goroutine.
	ThreadsSingle ThreadsMode = iota

	// ThreadsSelect uses an explicitly configured number of workers.
	ThreadsSelect

	// ThreadsAll uses one worker per available core.
	ThreadsAll
)

// Tasks smaller than this are not worth partitioning across workers.
const minParallelSize = 1024

// Chunks handed to the pool per worker, for load balancing.
const chunksPerWorker = 4

// Host is the synchronous multi-core executor. The zero value is not valid;
// use one of the constructors. A Host is immutable and safe to share across
// evaluations.
type Host struct {
	mode       ThreadsMode
	numThreads int
}

var _ Executor = (*Host)(nil)

// NewHost returns a single-threaded host executor.
func NewHost() *Host {
	return &Host{mode: ThreadsSingle, numThreads: 1}
}

// NewHostWithThreads returns a host executor with a fixed worker count.
// It panics with an exception if numThreads < 1.
func NewHostWithThreads(numThreads int) *Host {
	if numThreads < 1 {
		exceptions.Panicf("executors.NewHostWithThreads(%d): thread count must be >= 1", numThreads)
	}
	return &Host{mode: ThreadsSelect, numThreads: numThreads}
}

// NewHostAll returns a host executor using all available cores.
func NewHostAll() *Host {
	return &Host{mode: ThreadsAll, numThreads: runtime.NumCPU()}
}

// Mode returns the threading policy.
func (h *Host) Mode() ThreadsMode { return h.mode }

// NumThreads returns the number of workers Exec will use.
func (h *Host) NumThreads() int { return h.numThreads }

// Exec visits every coordinate of the task exactly once, partitioning the
// flat coordinate space across workers. Within one worker the visit order is
// row-major; across workers no order is implied, but no coordinate is ever
// visited by more than one worker. Exec returns only after all work is done.
func (h *Host) Exec(task Task) {
	shape := task.Shape()
	if shape.Rank() == 0 {
		task.Step(nil)
		return
	}
	total := shape.Size()
	if total == 0 {
		return // Empty iteration space, nothing to do.
	}

	numWorkers := h.numThreads
	if numWorkers > total {
		numWorkers = total
	}
	if numWorkers <= 1 || total < minParallelSize {
		execRange(task, shape, 0, total)
		return
	}

	// Over-partition relative to the worker count so a slow chunk does not
	// straggle the whole evaluation; the pool caps actual parallelism.
	chunk := (total + numWorkers*chunksPerWorker - 1) / (numWorkers * chunksPerWorker)
	klog.V(2).Infof("executors.Host: %d elements across %d workers (chunk=%d)", total, numWorkers, chunk)
	pool := workpool.New(numWorkers)
	for lo := 0; lo < total; lo += chunk {
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		lo, hi := lo, hi
		pool.Go(func() { execRange(task, shape, lo, hi) })
	}
	pool.Wait()
}

// Sync is a no-op: execution already completed by the time Exec returned.
func (h *Host) Sync() {}
