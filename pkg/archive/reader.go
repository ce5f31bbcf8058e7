package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/rs/zerolog/log"
	"github.com/tidwall/btree"

	"github.com/balekit/bale/pkg/common"
)

// Reader resolves logical names against a bale. It keeps a single-slot
// HandleCache so consecutive lookups against the same archive reuse one
// open handle and one parsed prolog.
type Reader struct {
	cache HandleCache
}

func NewReader() *Reader {
	return &Reader{}
}

// Lookup returns the bytes stored under name in the bale at archivePath,
// transparently decompressed. A name that is not present yields
// common.ErrEntryNotFound; callers should treat that as a normal absent
// result rather than a failure.
func (r *Reader) Lookup(archivePath, name string) ([]byte, error) {
	info, err := r.Stat(archivePath, name)
	if err != nil {
		return nil, err
	}
	return r.materialize(info)
}

// Stat returns the header record for name without materializing its bytes.
func (r *Reader) Stat(archivePath, name string) (*common.EntryInfo, error) {
	if err := r.cache.EnsureOpen(archivePath); err != nil {
		return nil, err
	}

	var found *common.EntryInfo
	err := r.scanRecords(func(info *common.EntryInfo) bool {
		if info.Name == name {
			found = info
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%q in %s: %w", name, archivePath, common.ErrEntryNotFound)
	}
	return found, nil
}

// Exists reports whether name is present in the bale at archivePath.
func (r *Reader) Exists(archivePath, name string) (bool, error) {
	_, err := r.Stat(archivePath, name)
	if err != nil {
		if errors.Is(err, common.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns every header record in the bale, sorted by name. Entries
// that shadow an earlier identical name are dropped, mirroring the
// first-match-wins rule of Lookup for archives produced elsewhere.
func (r *Reader) List(archivePath string) ([]*common.EntryInfo, error) {
	if err := r.cache.EnsureOpen(archivePath); err != nil {
		return nil, err
	}

	manifest := btree.NewBTreeG(func(a, b *common.EntryInfo) bool {
		return a.Name < b.Name
	})
	err := r.scanRecords(func(info *common.EntryInfo) bool {
		if _, shadowed := manifest.Get(info); !shadowed {
			manifest.Set(info)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*common.EntryInfo, 0, manifest.Len())
	manifest.Scan(func(info *common.EntryInfo) bool {
		entries = append(entries, info)
		return true
	})
	return entries, nil
}

// ExtractAll writes every entry of the bale back out under outputPath,
// decompressed, recreating the relative directory structure.
func (r *Reader) ExtractAll(archivePath, outputPath string) error {
	if err := r.cache.EnsureOpen(archivePath); err != nil {
		return err
	}

	var records []*common.EntryInfo
	err := r.scanRecords(func(info *common.EntryInfo) bool {
		records = append(records, info)
		return true
	})
	if err != nil {
		return err
	}

	for _, info := range records {
		// The writer never produces absolute or dot-dot names, but a
		// foreign archive might; such a name must not escape outputPath.
		if !fs.ValidPath(info.Name) || info.Name == "." {
			return fmt.Errorf("entry %q has an unsafe path, refusing to extract", info.Name)
		}

		data, err := r.materialize(info)
		if err != nil {
			return fmt.Errorf("extracting %q: %w", info.Name, err)
		}

		destPath := filepath.Join(outputPath, filepath.FromSlash(info.Name))
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %q: %w", info.Name, err)
		}
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", destPath, err)
		}

		log.Debug().Msgf("extracted %s (%d bytes)", info.Name, len(data))
	}

	return nil
}

// Close releases the cached handle. Safe to call repeatedly.
func (r *Reader) Close() error {
	return r.cache.Close()
}

// scanRecords walks the header table in write order, decoding each
// fixed-width record and handing it to visit. Returning false from visit
// stops the scan. The cache must hold an open handle.
func (r *Reader) scanRecords(visit func(*common.EntryInfo) bool) error {
	file := r.cache.File()
	if _, err := file.Seek(PrologLength, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to header table: %w", err)
	}

	buf := make([]byte, RecordLength)
	for i := 0; i < r.cache.EntryCount(); i++ {
		if _, err := io.ReadFull(file, buf); err != nil {
			return fmt.Errorf("reading header record %d: %w", i, err)
		}
		info, err := DecodeRecord(buf)
		if err != nil {
			return fmt.Errorf("header record %d: %w", i, err)
		}
		if !visit(info) {
			return nil
		}
	}

	return nil
}

// materialize reads an entry's stored bytes and decompresses them when the
// record says to. A decompression failure is surfaced to the caller but
// leaves the cached handle intact.
func (r *Reader) materialize(info *common.EntryInfo) ([]byte, error) {
	stored := make([]byte, info.StoredSize)
	if info.StoredSize > 0 {
		if _, err := r.cache.File().ReadAt(stored, int64(info.DataOffset)); err != nil {
			return nil, fmt.Errorf("reading data for %q: %w", info.Name, err)
		}
	}

	if info.Compression == common.CompressionNone {
		return stored, nil
	}

	raw, err := Decompress(stored, info.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", info.Name, err)
	}
	return raw, nil
}
