package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balekit/bale/pkg/common"
)

func TestRecordRoundTrip(t *testing.T) {
	in := &common.EntryInfo{
		Name:             "textures/player/idle.png",
		DataOffset:       4211,
		StoredSize:       1887,
		Compression:      common.CompressionDeflate,
		UncompressedSize: 9001,
		Content:          common.ContentImage,
	}

	buf, err := EncodeRecord(in)
	require.NoError(t, err)
	require.Len(t, buf, RecordLength)

	out, err := DecodeRecord(buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRecordNameBoundary(t *testing.T) {
	tests := []struct {
		name    string
		nameLen int
		wantErr error
	}{
		{name: "fits with terminator", nameLen: NameSlotLength - 1},
		{name: "one byte too long", nameLen: NameSlotLength, wantErr: common.ErrNameTooLong},
		{name: "way too long", nameLen: 200, wantErr: common.ErrNameTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entryName := strings.Repeat("x", tc.nameLen)
			buf, err := EncodeRecord(&common.EntryInfo{Name: entryName})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			out, err := DecodeRecord(buf)
			require.NoError(t, err)
			require.Equal(t, entryName, out.Name)
		})
	}
}

func TestPrologRoundTrip(t *testing.T) {
	buf := EncodeProlog(512)
	require.Len(t, buf, PrologLength)

	version, count, err := DecodeProlog(buf)
	require.NoError(t, err)
	require.Equal(t, BaleFormatVersion, version)
	require.Equal(t, uint16(512), count)
}

func TestDecodeTruncated(t *testing.T) {
	_, _, err := DecodeProlog([]byte{0x01})
	require.Error(t, err)

	_, err = DecodeRecord(make([]byte, RecordLength-1))
	require.Error(t, err)
}

func TestLayoutInvariants(t *testing.T) {
	require.Equal(t, 78, RecordLength)
	require.Equal(t, int64(3), DataStart(0))
	require.Equal(t, int64(3+2*78), DataStart(2))
	require.Equal(t, int64(3+78), RecordOffset(1))
}
