package archive

import (
	"os"

	log "github.com/rs/zerolog/log"
)

// IsStale reports whether sourceDir has been modified more recently than
// the bale at archivePath. The check is whole-directory granularity: only
// the root directory's own mtime is consulted, so a change deep in the tree
// that does not bump it can be missed.
//
// Any stat or path-kind failure collapses to a conservative false with a
// diagnostic; callers cannot distinguish "up to date" from "could not
// determine".
func IsStale(sourceDir, archivePath string) bool {
	dirInfo, err := os.Stat(sourceDir)
	if err != nil {
		log.Error().Msgf("staleness check: cannot stat directory %s: %v", sourceDir, err)
		return false
	}
	if !dirInfo.IsDir() {
		log.Error().Msgf("staleness check: %s is not a directory", sourceDir)
		return false
	}

	archiveInfo, err := os.Stat(archivePath)
	if err != nil {
		log.Error().Msgf("staleness check: cannot stat bale %s: %v", archivePath, err)
		return false
	}
	if !archiveInfo.Mode().IsRegular() {
		log.Error().Msgf("staleness check: %s is not a regular file", archivePath)
		return false
	}

	if dirInfo.ModTime().After(archiveInfo.ModTime()) {
		log.Debug().Msgf("directory %s is newer than bale %s", sourceDir, archivePath)
		return true
	}

	log.Debug().Msgf("directory %s is not newer than bale %s", sourceDir, archivePath)
	return false
}
