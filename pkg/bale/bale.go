package bale

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/balekit/bale/pkg/archive"
	"github.com/balekit/bale/pkg/common"
)

// SetLogLevel adjusts global logging verbosity. Accepted levels are
// "debug", "info", "warn", "error", and "disabled".
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled", "none", "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("invalid log level %q: must be one of: debug, info, warn, error, disabled", level)
	}
	return nil
}

type CreateOptions struct {
	InputPath  string
	OutputPath string
	Force      bool
	Verbose    bool
}

type ExtractOptions struct {
	InputFile  string
	OutputPath string
}

// CreateArchive packs the input directory into a bale at OutputPath.
// Unless Force is set, an existing archive that is not stale relative to
// the input directory is left untouched. A destination that does not exist
// yet always gets packed.
func CreateArchive(opts CreateOptions) error {
	if !opts.Force && !needsPack(opts.InputPath, opts.OutputPath) {
		log.Info().Msgf("bale %s is up to date, skipping pack", opts.OutputPath)
		return nil
	}

	staging := &archive.StagingList{}
	if err := archive.WalkSource(opts.InputPath, staging); err != nil {
		return err
	}
	log.Debug().Msgf("staged %d entries from %s", staging.Len(), opts.InputPath)

	archiver := archive.NewArchiver(archive.ArchiverOptions{Verbose: opts.Verbose})
	return archiver.Write(staging, opts.OutputPath)
}

// needsPack decides whether the destination must be (re)written. The
// staleness oracle only arbitrates between an existing bale and its source
// directory; a missing or irregular destination is not "up to date", it has
// never been packed.
func needsPack(inputPath, outputPath string) bool {
	info, err := os.Stat(outputPath)
	if err != nil || !info.Mode().IsRegular() {
		return true
	}
	return archive.IsStale(inputPath, outputPath)
}

// ExtractArchive unpacks every entry of a bale under OutputPath.
func ExtractArchive(opts ExtractOptions) error {
	r := archive.NewReader()
	defer r.Close()
	return r.ExtractAll(opts.InputFile, opts.OutputPath)
}

// Lookup is a one-shot resolve of a logical name to its bytes. Callers
// doing repeated lookups against the same archive should hold an
// archive.Reader instead to reuse its handle cache.
func Lookup(archivePath, name string) ([]byte, error) {
	r := archive.NewReader()
	defer r.Close()
	return r.Lookup(archivePath, name)
}

// Exists reports whether a logical name is present in the archive.
func Exists(archivePath, name string) (bool, error) {
	r := archive.NewReader()
	defer r.Close()
	return r.Exists(archivePath, name)
}

// List returns the archive's manifest, sorted by name.
func List(archivePath string) ([]*common.EntryInfo, error) {
	r := archive.NewReader()
	defer r.Close()
	return r.List(archivePath)
}

// Stat returns the header record for one logical name.
func Stat(archivePath, name string) (*common.EntryInfo, error) {
	r := archive.NewReader()
	defer r.Close()
	return r.Stat(archivePath, name)
}
