// Package scanner provides bounded-concurrency filesystem traversal with
// aggregate disk usage accounting.
//
// # Architecture Overview
//
// The scanner walks a directory tree with a fixed pool of workers pulling
// pending directories from a shared FIFO queue. Workers never recurse:
// subdirectories discovered during one expansion are pushed back onto the
// queue, so memory grows with traversal breadth, not tree size or depth.
//
// # Concurrency Model
//
//  1. WORKER GOROUTINES (fixed pool)
//     - Exactly Workers goroutines, started together in Run
//     - Each worker: pop directory → list entries → classify each entry
//       (files into the aggregator, subdirectories back onto the queue)
//     - Workers poll the cancellation controller at the top of each
//       expansion and between entries, never mid-syscall
//
//  2. MAIN GOROUTINE (orchestrator)
//     - Validates the root, seeds the queue, starts workers
//     - Waits for all workers to exit, then snapshots the aggregator
//
//  3. WATCHER GOROUTINE
//     - Closes the queue when cancellation fires, waking blocked workers
//
// # Synchronization Primitives
//
//	┌──────────────┬──────────────────────────────────────────────────┐
//	│ Primitive    │ Purpose                                          │
//	├──────────────┼──────────────────────────────────────────────────┤
//	│ dirQueue     │ Pending directories + outstanding-work tracking  │
//	│ aggregator   │ Atomic counters, locked match/error slices       │
//	│ visitedSet   │ Locked (dev,ino) set for symlink cycle cutting   │
//	│ controller   │ Atomic cancellation flag + deadline timer        │
//	└──────────────┴──────────────────────────────────────────────────┘
//
// # Termination
//
// The queue reports exhaustion when it is empty and no expansion is in
// flight, letting every worker return. On cancellation (deadline expiry or
// external stop) workers finish their current entry batch without
// enqueueing further subdirectories, so the wall-clock overrun beyond a
// deadline is bounded by one in-flight directory expansion.
//
// # Why This Design?
//
//   - Fixed pool bounds concurrent directory reads and goroutine count
//   - Atomic counters eliminate lock contention for stats updates
//   - Queue-based dispatch avoids recursion-depth blowup on deep trees
//   - Commutative aggregation keeps totals independent of worker order
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ivoronin/scandog/internal/progress"
	"github.com/ivoronin/scandog/internal/types"
)

// ErrInvalidRoot is returned by New when the root path does not exist, is
// not a directory, or cannot be stat'ed. No workers are started in that
// case; all other failures are accumulated per path inside the result.
var ErrInvalidRoot = errors.New("invalid scan root")

// Config holds scan parameters. It is read once by New and never mutated
// after the scan starts.
type Config struct {
	Root           string         // directory to scan
	Pattern        *regexp.Regexp // optional filter on file base names
	Workers        int            // concurrent directory expansions (<=0: NumCPU)
	SkipHidden     bool           // omit dot-entries entirely
	FollowSymlinks bool           // descend symlinked directories, cycle-safe
	Timeout        time.Duration  // 0 = no deadline
	ShowProgress   bool           // render a progress spinner to stderr
	Logger         zerolog.Logger // per-directory debug logging
}

// Scanner traverses one directory tree and aggregates usage statistics.
//
// The scanner is designed for single-use: create with New, call Run once.
// Stop may be called from any goroutine to truncate a running scan.
type Scanner struct {
	// Config (immutable, set by New)
	root         string
	rootInfo     os.FileInfo
	workers      int
	skipHidden   bool
	follow       bool
	timeout      time.Duration
	showProgress bool
	matcher      *matcher
	log          zerolog.Logger

	// Shared runtime state, each individually synchronized
	queue   *dirQueue
	agg     *aggregator
	visited *visitedSet
	ctrl    *controller
	bar     *progress.Bar
	stats   *stats
}

// New validates the root path and prepares a Scanner. Returns an error
// wrapping ErrInvalidRoot when the root cannot be scanned at all.
func New(cfg Config) (*Scanner, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Scanner{
		root:         root,
		rootInfo:     info,
		workers:      workers,
		skipHidden:   cfg.SkipHidden,
		follow:       cfg.FollowSymlinks,
		timeout:      cfg.Timeout,
		showProgress: cfg.ShowProgress,
		matcher:      newMatcher(cfg.Pattern),
		log:          cfg.Logger,
		queue:        newDirQueue(),
		agg:          newAggregator(),
		visited:      newVisitedSet(),
		ctrl:         newController(),
	}, nil
}

// Run executes the scan and returns the final result. It blocks until the
// tree is exhausted or cancellation (deadline or Stop) has fully
// propagated; partial results are valid and marked via Result.TimedOut
// and Result.Errors.
func (s *Scanner) Run() *types.Result {
	start := time.Now()
	s.stats = &stats{agg: s.agg, start: start}
	s.bar = progress.New(s.showProgress)
	s.bar.Describe(s.stats)

	s.ctrl.Start(s.timeout)
	defer s.ctrl.StopTimer()

	// Watcher: wake workers blocked on the queue when cancellation fires.
	scanDone := make(chan struct{})
	go func() {
		select {
		case <-s.ctrl.Done():
			s.queue.Close()
		case <-scanDone:
		}
	}()

	// Seed with the root; it counts as a directory once listed, like any
	// other.
	if s.follow {
		if id, ok := identityFromInfo(s.rootInfo); ok {
			s.visited.TryVisit(id)
		}
	}
	s.queue.Push(s.root)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker()
		}()
	}
	wg.Wait()
	close(scanDone)

	res := s.agg.snapshot(time.Since(start), s.ctrl.TimedOut())
	s.bar.Finish(s.stats)
	return res
}

// Stop truncates the scan with the same semantics as a deadline expiry,
// except Result.TimedOut stays false. Safe to call from any goroutine,
// including before Run.
func (s *Scanner) Stop() {
	s.ctrl.Cancel()
}

// Progress returns a snapshot of the in-flight counters. It uses the same
// read path as the final snapshot and never blocks scanning.
func (s *Scanner) Progress() types.Progress {
	return s.agg.Progress()
}

// worker pops directories until the queue is exhausted or closed.
func (s *Scanner) worker() {
	for {
		dir, ok := s.queue.Pop()
		if !ok {
			return
		}
		s.expand(dir)
		s.queue.Finish()
	}
}

// expand lists one directory and classifies its entries. Listing failures
// are recorded against the directory; per-entry failures never abort the
// remaining siblings.
func (s *Scanner) expand(dir string) {
	if s.ctrl.IsCancelled() {
		return
	}
	s.log.Debug().Str("dir", dir).Msg("expanding directory")

	entries, entryErrs, err := s.listDirectory(dir)
	for _, rec := range entryErrs {
		s.agg.AddError(rec)
	}
	if err != nil {
		// An unreadable directory is an error record, not a counted
		// entry; it contributes to neither total.
		s.log.Debug().Str("dir", dir).Err(err).Msg("directory unreadable")
		s.agg.AddError(types.ErrorRecord{
			Path:    dir,
			Kind:    types.ErrKindUnreadable,
			Message: err.Error(),
		})
		return
	}
	s.agg.AddDir()

	for _, e := range entries {
		if s.ctrl.IsCancelled() {
			return
		}
		s.classify(e)
	}
	s.bar.Describe(s.stats)
}

// classify routes one entry: subdirectories back onto the queue, files
// into the aggregator. Sockets, devices and other specials are observed
// but not counted.
func (s *Scanner) classify(e types.Entry) {
	switch e.Type {
	case types.TypeDirectory:
		s.enqueueDir(e.Path, e.Identity, e.HasIdent)
	case types.TypeFile:
		// With symlink following on, file identities go through the
		// tracker too, so a target reached both directly and through a
		// link is sized exactly once.
		if s.follow && e.HasIdent && !s.visited.TryVisit(e.Identity) {
			return
		}
		s.countFile(e.Path, e.Name, e.Size)
	case types.TypeSymlink:
		s.classifySymlink(e)
	}
}

// enqueueDir schedules a directory for expansion. When following
// symlinks, every directory registers its identity first so a tree
// reachable through multiple aliases is visited exactly once. Directories
// count toward the total when their listing succeeds, not at discovery,
// keeping unreadable ones out of the counts.
func (s *Scanner) enqueueDir(path string, id types.Identity, hasIdent bool) {
	if s.follow && hasIdent && !s.visited.TryVisit(id) {
		s.log.Debug().Str("dir", path).Msg("identity already visited, skipping")
		return
	}
	s.queue.Push(path)
}

// classifySymlink resolves a symlink one level through the filesystem's
// own resolution and counts the target. Targets are never expanded unless
// symlink following is enabled; dangling links become error records.
func (s *Scanner) classifySymlink(e types.Entry) {
	info, err := os.Stat(e.Path)
	if err != nil {
		s.agg.AddError(types.ErrorRecord{
			Path:    e.Path,
			Kind:    types.ErrKindBrokenSymlink,
			Message: err.Error(),
		})
		return
	}

	switch {
	case info.IsDir():
		if !s.follow {
			// Recorded as a directory, never descended.
			s.agg.AddDir()
			return
		}
		id, ok := identityFromInfo(info)
		s.enqueueDir(e.Path, id, ok)
	case info.Mode().IsRegular():
		if s.follow {
			// Size-count a target reached through multiple links once.
			if id, ok := identityFromInfo(info); ok && !s.visited.TryVisit(id) {
				return
			}
		}
		s.countFile(e.Path, e.Name, info.Size())
	}
}

func (s *Scanner) countFile(path, name string, size int64) {
	s.agg.AddFile(size)
	if s.matcher.Matches(name) {
		s.agg.AddMatch(path)
	}
}

// stats renders in-flight counters for the progress spinner.
type stats struct {
	agg   *aggregator
	start time.Time
}

func (s *stats) String() string {
	p := s.agg.Progress()
	return fmt.Sprintf("Scanned %d files, %d dirs (%s) in %.1fs",
		p.Files, p.Dirs, humanize.IBytes(uint64(p.Bytes)),
		time.Since(s.start).Seconds())
}
