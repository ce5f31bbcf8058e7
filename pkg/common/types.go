package common

// CompressionKind tells the reader how an entry's stored bytes must be
// interpreted.
type CompressionKind uint8

const (
	CompressionNone CompressionKind = iota
	CompressionDeflate
)

func (k CompressionKind) String() string {
	switch k {
	case CompressionNone:
		return "none"
	case CompressionDeflate:
		return "deflate"
	}
	return "unknown"
}

// ContentKind is a reserved classification tag carried in every header
// record. Lookup ignores it; a future typed-accessor layer can key off it.
type ContentKind uint8

const (
	ContentMisc ContentKind = iota
	ContentImage
	ContentAudio
	ContentBytecode // never compressed once typed exclusions land
)

func (k ContentKind) String() string {
	switch k {
	case ContentMisc:
		return "misc"
	case ContentImage:
		return "image"
	case ContentAudio:
		return "audio"
	case ContentBytecode:
		return "bytecode"
	}
	return "unknown"
}

// EntryInfo is the decoded form of one fixed-width header record.
type EntryInfo struct {
	Name             string
	DataOffset       uint32
	StoredSize       uint32
	Compression      CompressionKind
	UncompressedSize uint32
	Content          ContentKind
}
