package scanner

import (
	"sync"

	"github.com/ivoronin/scandog/internal/types"
)

// visitedSet tracks (device, inode) identities already seen during one
// scan. Keying by identity rather than path detects cycles through
// multiple path aliases. The set grows monotonically for the lifetime of
// a single scan.
type visitedSet struct {
	mu   sync.Mutex
	seen map[types.Identity]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[types.Identity]struct{})}
}

// TryVisit records the identity and reports whether this was the first
// visit. Exactly one caller wins when invoked concurrently with the same
// identity.
func (v *visitedSet) TryVisit(id types.Identity) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[id]; ok {
		return false
	}
	v.seen[id] = struct{}{}
	return true
}
