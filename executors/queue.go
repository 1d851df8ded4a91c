package executors

import (
	"sync"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Queue is the asynchronous executor: the host-side rendition of a device
// command stream. Exec enqueues the task and returns without waiting; a
// dedicated worker goroutine runs tasks strictly in enqueue order. Sync is
// the only blocking point.
//
// Multiple Exec calls on one Queue execute in enqueue order but overlap with
// the caller until Sync. Across different Queue instances no ordering is
// implied; callers must Sync before depending on results across queues.
type Queue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	pending   []Task
	inFlight  bool
	finalized bool
}

var _ Executor = (*Queue)(nil)

// NewQueue creates an asynchronous in-order queue executor and starts its
// worker. Call Finalize when done to stop the worker.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	go q.worker()
	return q
}

// Exec enqueues the task and returns immediately, never blocking the caller.
// It panics with an exception if the queue has been finalized.
func (q *Queue) Exec(task Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finalized {
		exceptions.Panicf("executors.Queue: Exec called after Finalize")
	}
	q.pending = append(q.pending, task)
	q.cond.Broadcast()
}

// Sync blocks until every task enqueued before the call has completed.
func (q *Queue) Sync() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) > 0 || q.inFlight {
		q.cond.Wait()
	}
}

// Finalize drains the queue and stops the worker goroutine. The queue must
// not be used afterward.
func (q *Queue) Finalize() {
	q.Sync()
	q.mu.Lock()
	defer q.mu.Unlock()
	q.finalized = true
	q.cond.Broadcast()
}

// worker pops tasks in enqueue order and runs each sequentially over its full
// coordinate space. The queue is a single in-order stream: there is never
// more than one task in flight.
func (q *Queue) worker() {
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.finalized {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.finalized {
			q.mu.Unlock()
			return
		}
		task := q.pending[0]
		q.pending = q.pending[1:]
		q.inFlight = true
		q.mu.Unlock()

		q.runTask(task)

		q.mu.Lock()
		q.inFlight = false
		q.cond.Broadcast()
		q.mu.Unlock()
	}
}

func (q *Queue) runTask(task Task) {
	shape := task.Shape()
	if shape.Rank() == 0 {
		task.Step(nil)
		return
	}
	total := shape.Size()
	if total == 0 {
		return
	}
	klog.V(2).Infof("executors.Queue: running %d-element task", total)
	execRange(task, shape, 0, total)
}
