//go:build windows

package scanner

import (
	"os"

	"github.com/ivoronin/scandog/internal/types"
)

// identityFromInfo reports no identity on Windows: without (device,
// inode) pairs, symlink cycle detection falls back to never skipping, and
// symlinked directory loops are cut only by the deadline.
func identityFromInfo(_ os.FileInfo) (types.Identity, bool) {
	return types.Identity{}, false
}
