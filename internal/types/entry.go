// Package types provides shared types used across the scandog codebase.
package types

import "time"

// EntryType classifies a directory entry.
type EntryType int

const (
	TypeFile EntryType = iota
	TypeDirectory
	TypeSymlink
	TypeOther
)

// String returns a human-readable name for the entry type.
func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Identity is the (device, inode) pair uniquely identifying a filesystem
// object. Used to detect symlink cycles and revisits through path aliases.
type Identity struct {
	Dev uint64
	Ino uint64
}

// Entry holds metadata for one item returned when listing a directory.
// Entries are transient: produced and consumed within a single directory
// expansion, never retained after aggregation.
type Entry struct {
	Name     string
	Path     string
	Type     EntryType
	Size     int64 // regular files only
	Identity Identity
	HasIdent bool // Identity fields are valid
}

// ErrorKind categorizes per-path scan errors.
type ErrorKind int

const (
	// ErrKindUnreadable marks a directory that could not be listed or an
	// entry whose metadata could not be read.
	ErrKindUnreadable ErrorKind = iota
	// ErrKindBrokenSymlink marks a symlink whose target does not resolve.
	ErrKindBrokenSymlink
)

// String returns the stable name used in JSON output.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindBrokenSymlink:
		return "broken_symlink"
	default:
		return "unreadable"
	}
}

// ErrorRecord describes one non-fatal per-path failure. Records are
// appended to the result and never mutated or removed.
type ErrorRecord struct {
	Path    string
	Kind    ErrorKind
	Message string
}

// Result is the final immutable outcome of one scan. It is constructed
// exactly once, after every worker has exited, from a consistent snapshot
// of the aggregator.
type Result struct {
	TotalSize    int64
	FileCount    int64
	DirCount     int64
	MatchedFiles []string // discovery order, not globally sorted
	Errors       []ErrorRecord
	Elapsed      time.Duration
	TimedOut     bool
}

// Progress is a read-only snapshot of in-flight scan counters, safe to
// poll from a reporting goroutine while the scan is running.
type Progress struct {
	Files   int64
	Dirs    int64
	Bytes   int64
	Matched int64
	Errors  int64
}
