package assets

import "sync"

// Queue carries completion callbacks from loader goroutines back to the goroutine that owns the scene.
// Post may be called from any goroutine; Drain runs the callbacks on the caller's goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post enqueues fn to run on the next Drain.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every callback posted so far, in posting order, and returns how many ran.
// Callbacks posted while draining run on the next Drain. It never blocks waiting for work.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of callbacks waiting for Drain.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
