package preview

import (
	"sync"

	"wallpick/internal/errors"
)

// Queue carries decode requests from the UI to the worker. It is an
// unbounded FIFO: Push never blocks, Pop waits for the next path.
//
// Duplicates are allowed; coalescing is the controller's job.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	closed bool
	pushed int
}

// NewQueue creates an empty, open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends path. It fails with errors.ErrWorkerStopped once the queue
// is closed.
func (q *Queue) Push(path string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errors.ErrWorkerStopped
	}
	q.items = append(q.items, path)
	q.pushed++
	q.cond.Signal() // wake the worker
	return nil
}

// Pop removes and returns the oldest path, blocking while the queue is
// empty. Items pushed before Close are still returned; after that Pop
// reports false.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return "", false
	}
	return q.shift(), true
}

// TryPop is like Pop but never blocks.
func (q *Queue) TryPop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	return q.shift(), true
}

func (q *Queue) shift() string {
	path := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return path
}

// Close stops accepting requests and wakes a blocked Pop. It is safe to
// call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued paths.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pushed returns how many paths have ever been accepted.
func (q *Queue) Pushed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pushed
}
