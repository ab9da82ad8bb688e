//go:build !windows

package scanner

import (
	"os"
	"syscall"

	"github.com/ivoronin/scandog/internal/types"
)

// identityFromInfo extracts the (device, inode) pair from file metadata.
func identityFromInfo(info os.FileInfo) (types.Identity, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return types.Identity{}, false
	}
	return types.Identity{
		Dev: uint64(stat.Dev), //nolint:unconvert // platform-dependent type
		Ino: stat.Ino,
	}, true
}
