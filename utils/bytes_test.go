package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteReaderLittleEndian(t *testing.T) {
	reader := NewByteReader([]byte{
		0x7f,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xfe, 0xff, 0xff, 0xff,
		'R', 'I', 'F', 'F',
	})

	u8, err := reader.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7f), u8)

	u16, err := reader.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := reader.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	i32, err := reader.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i32)

	tag, err := reader.FourCC()
	require.NoError(t, err)
	assert.Equal(t, "RIFF", tag)

	assert.True(t, reader.EOF())
	assert.Equal(t, 0, reader.Remaining())
}

func TestByteReaderOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		read func(r *ByteReader) error
	}{
		{"u16", func(r *ByteReader) error { _, err := r.Uint16(); return err }},
		{"u32", func(r *ByteReader) error { _, err := r.Uint32(); return err }},
		{"fourcc", func(r *ByteReader) error { _, err := r.FourCC(); return err }},
		{"read", func(r *ByteReader) error { _, err := r.Read(5); return err }},
		{"skip", func(r *ByteReader) error { return r.Skip(4) }},
		{"seek", func(r *ByteReader) error { return r.Seek(4) }},
		{"negative read", func(r *ByteReader) error { _, err := r.Read(-1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewByteReader([]byte{1, 2})
			require.NoError(t, reader.Skip(1))
			err := tt.read(reader)
			assert.ErrorIs(t, err, ErrOutOfRange)
			assert.Equal(t, 1, reader.Pos(), "position must not move on failure")
		})
	}
}

func TestByteReaderSlice(t *testing.T) {
	reader := NewByteReader([]byte{0, 1, 2, 3, 4})

	b, err := reader.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.Equal(t, 0, reader.Pos())

	_, err = reader.Slice(3, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, reader.Seek(5))
	assert.True(t, reader.EOF())
}

func TestCString(t *testing.T) {
	tests := []struct {
		name string
		in   CString
		want string
	}{
		{"terminated", CString("Arrow\x00junk"), "Arrow"},
		{"unterminated", CString("Busy"), "Busy"},
		{"empty", CString("\x00abc"), ""},
		{"windows-1252", CString("Caf\xe9 \x00"), "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Text())
		})
	}
}

func TestHexDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HexDump(&buf, []byte("RIFF\x00\x01"), 0x10))

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "00000010  52 49 46 46 00 01 "))
	assert.True(t, strings.HasSuffix(line, "|RIFF..|\n"))
}
