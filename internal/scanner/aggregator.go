package scanner

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivoronin/scandog/internal/types"
)

// aggregator is the shared accumulator for scan statistics. Counters use
// atomics for lock-free updates from any worker; match and error slices
// take a mutex since appends cannot be atomic.
//
// All operations are commutative, so final totals are independent of the
// order workers happen to call them. Individual Progress reads may not see
// a perfectly consistent view across counters (bytes might be newer than
// files), which is acceptable for the progress display.
type aggregator struct {
	files   atomic.Int64
	dirs    atomic.Int64
	bytes   atomic.Int64
	matched atomic.Int64
	errs    atomic.Int64

	mu      sync.Mutex
	matches []string
	records []types.ErrorRecord
}

func newAggregator() *aggregator {
	return &aggregator{}
}

// AddFile accounts one classified regular file.
func (a *aggregator) AddFile(size int64) {
	a.files.Add(1)
	a.bytes.Add(size)
}

// AddDir accounts one discovered directory.
func (a *aggregator) AddDir() {
	a.dirs.Add(1)
}

// AddMatch appends one pattern-matched file path in discovery order.
func (a *aggregator) AddMatch(path string) {
	a.matched.Add(1)
	a.mu.Lock()
	a.matches = append(a.matches, path)
	a.mu.Unlock()
}

// AddError appends one per-path error record.
func (a *aggregator) AddError(rec types.ErrorRecord) {
	a.errs.Add(1)
	a.mu.Lock()
	a.records = append(a.records, rec)
	a.mu.Unlock()
}

// Progress returns the current counters. Safe to call concurrently with
// ongoing updates.
func (a *aggregator) Progress() types.Progress {
	return types.Progress{
		Files:   a.files.Load(),
		Dirs:    a.dirs.Load(),
		Bytes:   a.bytes.Load(),
		Matched: a.matched.Load(),
		Errors:  a.errs.Load(),
	}
}

// snapshot builds the final result. Callers must guarantee all workers
// have exited first (the worker join happens-before this read), so no
// further mutation can race with it.
func (a *aggregator) snapshot(elapsed time.Duration, timedOut bool) *types.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &types.Result{
		TotalSize:    a.bytes.Load(),
		FileCount:    a.files.Load(),
		DirCount:     a.dirs.Load(),
		MatchedFiles: a.matches,
		Errors:       a.records,
		Elapsed:      elapsed,
		TimedOut:     timedOut,
	}
}
