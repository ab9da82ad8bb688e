package scanner

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivoronin/scandog/internal/types"
)

// listDirectory reads one directory and classifies its immediate entries.
//
// Uses batched ReadDir (1000 entries per batch) to bound memory when
// listing directories with millions of files. This is the only place
// where directory I/O occurs.
//
// Failure modes:
//   - opening or reading the directory fails → non-nil error, caller
//     records the whole directory as unreadable
//   - a single entry cannot be stat'ed → an ErrorRecord in entryErrs,
//     siblings are unaffected
//
// Hidden entries (dot-prefixed names) are omitted entirely when
// SkipHidden is set: not listed, not counted, not errored. Symlinks are
// classified only; descent decisions belong to the caller.
func (s *Scanner) listDirectory(dirPath string) (entries []types.Entry, entryErrs []types.ErrorRecord, err error) {
	dir, err := os.Open(dirPath)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = dir.Close() }()

	const batchSize = 1000
	for {
		batch, err := dir.ReadDir(batchSize)
		if len(batch) == 0 {
			if err != nil && err != io.EOF {
				return entries, entryErrs, err
			}
			break
		}

		for _, de := range batch {
			name := de.Name()
			if s.skipHidden && strings.HasPrefix(name, ".") {
				continue
			}
			fullPath := filepath.Join(dirPath, name)

			switch {
			case de.IsDir():
				e := types.Entry{Name: name, Path: fullPath, Type: types.TypeDirectory}
				if s.follow {
					// Identity is only needed for cycle cutting; skip the
					// extra stat when symlinks are not followed.
					if info, ierr := de.Info(); ierr == nil {
						e.Identity, e.HasIdent = identityFromInfo(info)
					}
				}
				entries = append(entries, e)

			case de.Type()&fs.ModeSymlink != 0:
				entries = append(entries, types.Entry{Name: name, Path: fullPath, Type: types.TypeSymlink})

			case de.Type().IsRegular():
				info, ierr := de.Info()
				if ierr != nil {
					entryErrs = append(entryErrs, types.ErrorRecord{
						Path:    fullPath,
						Kind:    types.ErrKindUnreadable,
						Message: ierr.Error(),
					})
					continue
				}
				e := types.Entry{Name: name, Path: fullPath, Type: types.TypeFile, Size: info.Size()}
				e.Identity, e.HasIdent = identityFromInfo(info)
				entries = append(entries, e)

			default:
				// FIFOs, sockets, devices
				entries = append(entries, types.Entry{Name: name, Path: fullPath, Type: types.TypeOther})
			}
		}
	}

	return entries, entryErrs, nil
}
