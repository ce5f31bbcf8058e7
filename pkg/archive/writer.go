package archive

import (
	"fmt"
	"math"
	"os"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	log "github.com/rs/zerolog/log"

	"github.com/balekit/bale/pkg/common"
)

type ArchiverOptions struct {
	Verbose bool
}

// Archiver writes staged entries into a bale using a two-phase scheme:
// first the prolog and a zeroed fixed-width record per entry, then the data
// section, patching each record in place once its final placement is known.
type Archiver struct {
	opts ArchiverOptions
}

func NewArchiver(opts ArchiverOptions) *Archiver {
	return &Archiver{opts: opts}
}

// Write packs the staged entries into outputPath. The archive is assembled
// in a temporary file beside the destination and renamed into place only on
// success, so a failed pack never leaves a partially valid bale behind.
// The staging list is cleared unconditionally once the attempt completes.
func (a *Archiver) Write(staging *StagingList, outputPath string) error {
	defer staging.Reset()

	entries, err := a.admitEntries(staging)
	if err != nil {
		return err
	}

	// Serialize packs against the same destination across processes.
	lockPath := outputPath + ".lock"
	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring pack lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("another pack is already writing %s", outputPath)
	}
	defer func() {
		fileLock.Unlock()
		os.Remove(lockPath)
	}()

	tmpPath := fmt.Sprintf("%s.%s", outputPath, uuid.New().String()[:6])
	outFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating archive file %s: %w", tmpPath, err)
	}

	committed := false
	defer func() {
		if !committed {
			outFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := a.writeHeaderTable(outFile, entries); err != nil {
		return err
	}
	if err := a.writeDataSection(outFile, entries); err != nil {
		return err
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("closing archive file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("moving archive into place at %s: %w", outputPath, err)
	}
	committed = true

	log.Info().Msgf("packed %d entries into %s", len(entries), outputPath)
	return nil
}

// admitEntries validates the staged set before any byte is written. Names
// that do not fit the slot are excluded with a diagnostic, matching the
// walker's behavior for callers that stage entries directly. Duplicate
// names are rejected outright: the table would silently shadow all but the
// first match at lookup time.
func (a *Archiver) admitEntries(staging *StagingList) ([]StagingEntry, error) {
	entries := make([]StagingEntry, 0, staging.Len())
	seen := make(map[string]struct{}, staging.Len())

	for _, e := range staging.Entries() {
		if !FitsNameSlot(e.Name) {
			log.Error().Msgf("relative path %s is too long to pack, skipping", e.Name)
			continue
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("entry %q staged twice: %w", e.Name, common.ErrDuplicateEntry)
		}
		seen[e.Name] = struct{}{}
		entries = append(entries, e)
	}

	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("%d entries staged, format holds at most %d: %w",
			len(entries), MaxEntries, common.ErrTooManyEntries)
	}

	return entries, nil
}

// writeHeaderTable emits the prolog and one zeroed record per entry, in
// staging order. This fixes every record's offset before data placement is
// known; only each record's name is final at this point.
func (a *Archiver) writeHeaderTable(outFile *os.File, entries []StagingEntry) error {
	if _, err := outFile.Write(EncodeProlog(uint16(len(entries)))); err != nil {
		return fmt.Errorf("writing prolog: %w", err)
	}

	for _, e := range entries {
		rec, err := EncodeRecord(&common.EntryInfo{Name: e.Name})
		if err != nil {
			return err
		}
		if _, err := outFile.Write(rec); err != nil {
			return fmt.Errorf("writing placeholder record for %q: %w", e.Name, err)
		}
	}

	return nil
}

// writeDataSection reads each source file, applies the compression policy,
// appends the stored bytes, and patches the entry's reserved record with
// the final offset and sizes.
func (a *Archiver) writeDataSection(outFile *os.File, entries []StagingEntry) error {
	dataCursor := DataStart(len(entries))

	for i, e := range entries {
		raw, err := os.ReadFile(e.SourcePath)
		if err != nil {
			return fmt.Errorf("reading source file %s: %w", e.SourcePath, err)
		}

		stored := raw
		kind := common.CompressionNone
		if len(raw) > CompressionThreshold {
			stored, err = Compress(raw)
			if err != nil {
				return fmt.Errorf("compressing %s: %w", e.Name, err)
			}
			kind = common.CompressionDeflate
		}

		if dataCursor+int64(len(stored)) > math.MaxUint32 {
			return fmt.Errorf("entry %q would push the data section past the 32-bit offset limit", e.Name)
		}

		if _, err := outFile.WriteAt(stored, dataCursor); err != nil {
			return fmt.Errorf("writing data for %q: %w", e.Name, err)
		}

		rec, err := EncodeRecord(&common.EntryInfo{
			Name:             e.Name,
			DataOffset:       uint32(dataCursor),
			StoredSize:       uint32(len(stored)),
			Compression:      kind,
			UncompressedSize: uint32(len(raw)),
			Content:          common.ContentMisc,
		})
		if err != nil {
			return err
		}
		if _, err := outFile.WriteAt(rec, RecordOffset(i)); err != nil {
			return fmt.Errorf("patching record for %q: %w", e.Name, err)
		}

		if a.opts.Verbose {
			log.Info().Msgf("packed %s (%d -> %d bytes, %s)", e.Name, len(raw), len(stored), kind)
		}

		dataCursor += int64(len(stored))
	}

	return nil
}
