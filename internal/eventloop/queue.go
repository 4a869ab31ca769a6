// Package eventloop serializes work onto the single UI thread.
//
// Any goroutine may Post a task. Only the UI thread calls Drain, which runs tasks
// in FIFO order, one at a time, so handlers never run concurrently with each other.
package eventloop

import "sync"

// Poster queues a task for the UI thread.
type Poster interface {
	Post(task func())
}

// Queue is a FIFO task queue with a wake-up signal.
type Queue struct {
	mu       sync.Mutex
	tasks    []func()
	wake     chan struct{}
	draining bool
	closed   bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post appends task and signals the UI thread. Tasks posted after Close are dropped.
func (q *Queue) Post(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks = append(q.tasks, task)

	// Under the lock so Close cannot close the channel mid-send
	select {
	case q.wake <- struct{}{}:
	default:
		// A wake-up is already pending
	}
}

// Wake returns a channel that receives when tasks are pending.
// It is closed by Close.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs queued tasks until the queue is empty, including tasks posted by
// the tasks themselves, and returns how many ran. A nested Drain call from inside
// a task returns 0 immediately; the outer call picks up the remaining work.
func (q *Queue) Drain() int {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return 0
	}
	q.draining = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		ran++
	}
}

// Close drops pending tasks and rejects new ones. Wake listeners are released.
// Calling it more than once is harmless.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.tasks = nil
	close(q.wake)
}
