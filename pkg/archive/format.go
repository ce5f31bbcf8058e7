package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/balekit/bale/pkg/common"
)

// BaleFormatVersion is the only format version this build reads or writes.
// There is no backward-compatibility path for older archives.
const BaleFormatVersion uint8 = 0x01

const (
	// PrologLength covers the 1-byte version plus the 2-byte entry count.
	PrologLength = 3

	// NameSlotLength is the fixed, NUL-padded name slot in every header
	// record. The significant part of a name is at most NameSlotLength-1
	// bytes; the final byte stays NUL.
	NameSlotLength = 64

	// RecordLength is the fixed width of one header record: name slot,
	// data offset, stored size, compression kind, uncompressed size,
	// content kind.
	RecordLength = NameSlotLength + 4 + 4 + 1 + 4 + 1

	// MaxEntries is bounded by the uint16 entry count in the prolog.
	MaxEntries = math.MaxUint16

	// CompressionThreshold is the raw size above which an entry's bytes
	// are stored deflated. At or below it they are stored raw.
	CompressionThreshold = 256
)

// headerRecord is the wire shape of one table entry. All multi-byte fields
// are little-endian regardless of host byte order.
type headerRecord struct {
	Name             [NameSlotLength]byte
	DataOffset       uint32
	StoredSize       uint32
	Compression      uint8
	UncompressedSize uint32
	Content          uint8
}

// RecordOffset returns the absolute file offset of header record i.
func RecordOffset(i int) int64 {
	return PrologLength + int64(i)*RecordLength
}

// DataStart returns the absolute file offset where the data section begins
// for an archive holding entryCount records.
func DataStart(entryCount int) int64 {
	return PrologLength + int64(entryCount)*RecordLength
}

// FitsNameSlot reports whether name plus its NUL terminator fits the slot.
func FitsNameSlot(name string) bool {
	return len(name)+1 <= NameSlotLength
}

// EncodeProlog renders the archive preamble.
func EncodeProlog(entryCount uint16) []byte {
	buf := make([]byte, PrologLength)
	buf[0] = BaleFormatVersion
	binary.LittleEndian.PutUint16(buf[1:], entryCount)
	return buf
}

// DecodeProlog parses the archive preamble. Version validation is left to
// the caller so it can surface a useful error.
func DecodeProlog(buf []byte) (version uint8, entryCount uint16, err error) {
	if len(buf) < PrologLength {
		return 0, 0, fmt.Errorf("prolog truncated: got %d bytes, need %d", len(buf), PrologLength)
	}
	return buf[0], binary.LittleEndian.Uint16(buf[1:]), nil
}

// EncodeRecord renders one fixed-width header record.
func EncodeRecord(info *common.EntryInfo) ([]byte, error) {
	if !FitsNameSlot(info.Name) {
		return nil, fmt.Errorf("name %q is %d bytes: %w", info.Name, len(info.Name), common.ErrNameTooLong)
	}

	rec := headerRecord{
		DataOffset:       info.DataOffset,
		StoredSize:       info.StoredSize,
		Compression:      uint8(info.Compression),
		UncompressedSize: info.UncompressedSize,
		Content:          uint8(info.Content),
	}
	copy(rec.Name[:], info.Name)

	buf := bytes.NewBuffer(make([]byte, 0, RecordLength))
	if err := binary.Write(buf, binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("encoding header record for %q: %w", info.Name, err)
	}
	return buf.Bytes(), nil
}

// DecodeRecord parses one fixed-width header record.
func DecodeRecord(data []byte) (*common.EntryInfo, error) {
	if len(data) < RecordLength {
		return nil, fmt.Errorf("header record truncated: got %d bytes, need %d", len(data), RecordLength)
	}

	rec := new(headerRecord)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, rec); err != nil {
		return nil, fmt.Errorf("decoding header record: %w", err)
	}

	name := rec.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	return &common.EntryInfo{
		Name:             string(name),
		DataOffset:       rec.DataOffset,
		StoredSize:       rec.StoredSize,
		Compression:      common.CompressionKind(rec.Compression),
		UncompressedSize: rec.UncompressedSize,
		Content:          common.ContentKind(rec.Content),
	}, nil
}
