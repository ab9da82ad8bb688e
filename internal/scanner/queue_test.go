package scanner

import (
	"sync"
	"testing"
	"time"
)

// TestQueueFIFO verifies basic push/pop ordering.
func TestQueueFIFO(t *testing.T) {
	q := newDirQueue()
	q.Push("a")
	q.Push("b")

	for _, want := range []string{"a", "b"} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
}

// TestQueueExhaustion verifies that Pop reports exhaustion only after the
// last outstanding expansion finishes, not while a popped directory could
// still produce children.
func TestQueueExhaustion(t *testing.T) {
	q := newDirQueue()
	q.Push("root")

	dir, ok := q.Pop()
	if !ok || dir != "root" {
		t.Fatalf("Pop() = (%q, %v)", dir, ok)
	}

	// A second consumer must block: the queue is empty but "root" is
	// still being expanded and may push children.
	popped := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		popped <- ok
	}()

	select {
	case <-popped:
		t.Fatal("Pop returned while an expansion was still outstanding")
	case <-time.After(50 * time.Millisecond):
	}

	q.Finish() // root produced nothing

	select {
	case ok := <-popped:
		if ok {
			t.Error("Pop() ok = true on an exhausted queue")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after exhaustion")
	}
}

// TestQueueCloseWakesBlockedPop verifies that Close releases every
// blocked consumer.
func TestQueueCloseWakesBlockedPop(t *testing.T) {
	q := newDirQueue()
	q.Push("pending")
	if _, ok := q.Pop(); !ok {
		t.Fatal("expected item")
	}

	var wg sync.WaitGroup
	results := make(chan bool, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.Pop()
			results <- ok
		}()
	}

	q.Close()
	wg.Wait()
	close(results)

	for ok := range results {
		if ok {
			t.Error("Pop() ok = true after Close")
		}
	}
}

// TestQueuePushAfterCloseIsDropped verifies that no work is enqueued once
// cancellation has closed the queue.
func TestQueuePushAfterCloseIsDropped(t *testing.T) {
	q := newDirQueue()
	q.Close()
	q.Push("late")

	if _, ok := q.Pop(); ok {
		t.Error("Pop() returned an item pushed after Close")
	}
}
