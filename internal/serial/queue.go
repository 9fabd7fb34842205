// Package serial runs callbacks one at a time in the order they were pushed.
package serial

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Queue is an unbounded FIFO of tasks drained by a single goroutine. Push never blocks, so it is
// safe to call while holding a lock that the tasks themselves take.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func NewQueue() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// Push appends a task and reports false when the queue is already closed.
func (q *Queue) Push(task func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.tasks = append(q.tasks, task)
	q.signal()
	return true
}

// Close rejects new tasks. Tasks pushed before Close still run, then the worker exits.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.signal()
}

// Done is closed once the worker has run every accepted task after Close.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.mu.Unlock()
			<-q.wake
			q.mu.Lock()
		}

		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}

		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		execute(task)
	}
}

func execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("serial task panicked: %v", r)
		}
	}()
	task()
}
