package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/balekit/bale/pkg/common"
)

// HandleCache holds at most one open bale: its path, read handle, and the
// parsed prolog. Repeated lookups against the same path reuse the handle
// without re-reading the prolog; targeting a different path replaces the
// slot wholesale. A HandleCache is owned by its caller and is not
// synchronized -- concurrent use requires external serialization.
type HandleCache struct {
	path    string
	file    *os.File
	version uint8
	count   uint16
}

// EnsureOpen makes the cache hold an open handle for path. Opening reads
// and validates the prolog: an archive whose version byte is not the
// supported one fails unconditionally.
func (c *HandleCache) EnsureOpen(path string) error {
	if c.file != nil && c.path == path {
		return nil
	}
	c.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening bale %s: %w", path, err)
	}

	prolog := make([]byte, PrologLength)
	if _, err := io.ReadFull(f, prolog); err != nil {
		f.Close()
		return fmt.Errorf("reading prolog of %s: %w", path, err)
	}

	version, count, err := DecodeProlog(prolog)
	if err != nil {
		f.Close()
		return fmt.Errorf("parsing prolog of %s: %w", path, err)
	}
	if version != BaleFormatVersion {
		f.Close()
		return fmt.Errorf("bale %s has format version %d, this build supports %d: %w",
			path, version, BaleFormatVersion, common.ErrFormatVersionMismatch)
	}

	c.path = path
	c.file = f
	c.version = version
	c.count = count
	return nil
}

// File returns the cached read handle. Valid only after a successful
// EnsureOpen.
func (c *HandleCache) File() *os.File {
	return c.file
}

// EntryCount returns the entry count parsed from the cached prolog.
func (c *HandleCache) EntryCount() int {
	return int(c.count)
}

// Version returns the format version parsed from the cached prolog.
func (c *HandleCache) Version() uint8 {
	return c.version
}

// Close releases the handle and clears all cached state.
func (c *HandleCache) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.path = ""
	c.file = nil
	c.version = 0
	c.count = 0
	return err
}
