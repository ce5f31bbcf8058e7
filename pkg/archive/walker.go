package archive

import (
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"
	log "github.com/rs/zerolog/log"
)

// WalkSource recursively enumerates every regular file under sourcePath and
// appends it to staging as a (relative name, absolute source path) pair.
// Relative names use forward slashes regardless of the host separator.
//
// Two classes of entry are skipped with a diagnostic rather than failing
// the walk: paths that are neither a regular file nor a directory
// (symlinks, devices, sockets), and files whose relative name plus NUL
// terminator does not fit the fixed name slot.
func WalkSource(sourcePath string, staging *StagingList) error {
	root := filepath.Clean(sourcePath)

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if !de.IsRegular() {
				log.Debug().Msgf("skipping non-regular path %s", path)
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("resolving %s relative to %s: %w", path, root, err)
			}
			name := filepath.ToSlash(rel)

			if !FitsNameSlot(name) {
				log.Error().Msgf("relative path %s is too long to pack, skipping", name)
				return nil
			}

			staging.Append(name, path)
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	return nil
}
