package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/balekit/bale/pkg/common"
)

// Compress deflates raw into a zlib stream. It fails only on stream
// failures, never on data content.
func Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)

	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compressing entry data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing compressed stream: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates data and verifies the result is exactly expectedSize
// bytes. A mismatch or an incomplete stream is a hard failure, not a
// warning -- the header record and the stream disagree about the entry.
func Decompress(data []byte, expectedSize uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening compressed stream: %w", err)
	}
	defer zr.Close()

	buf := bytes.NewBuffer(make([]byte, 0, expectedSize))
	n, err := io.Copy(buf, zr)
	if err != nil {
		return nil, fmt.Errorf("inflating entry data: %w", err)
	}
	if n != int64(expectedSize) {
		return nil, fmt.Errorf("inflated %d bytes, header records %d: %w", n, expectedSize, common.ErrSizeMismatch)
	}

	return buf.Bytes(), nil
}
