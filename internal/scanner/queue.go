package scanner

import "sync"

// dirQueue is an unbounded FIFO of pending directories shared by all
// workers. It tracks outstanding work (pushed but not yet finished
// expansions) so Pop can distinguish "momentarily empty while another
// worker is still producing" from "traversal exhausted".
type dirQueue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       []string
	outstanding int // pushed, not yet Finish'ed
	closed      bool
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push schedules one directory for expansion. Pushes after Close are
// dropped: cancellation has already fired and no further work may be
// enqueued.
func (q *dirQueue) Push(dir string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, dir)
	q.outstanding++
	q.cond.Signal()
}

// Pop blocks until a directory is available and returns it. It returns
// ok=false when the queue is closed, or when it is empty and no expansion
// is in flight (nothing can produce more work).
//
// Every Pop that returns ok=true must be balanced by one Finish call.
func (q *dirQueue) Pop() (dir string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if q.closed {
			return "", false
		}
		if len(q.items) > 0 {
			dir = q.items[0]
			q.items = q.items[1:]
			return dir, true
		}
		if q.outstanding == 0 {
			return "", false
		}
		q.cond.Wait()
	}
}

// Finish marks one popped directory as fully expanded. When the last
// outstanding expansion finishes with an empty queue, all blocked Pop
// calls return ok=false.
func (q *dirQueue) Finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.outstanding--
	if q.outstanding == 0 {
		q.cond.Broadcast()
	}
}

// Close wakes every blocked Pop and makes the queue refuse further work.
// Called once when cancellation fires.
func (q *dirQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
