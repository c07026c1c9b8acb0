package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrOutOfRange = errors.New("bytes: out of range")
)

// ByteReader reads little-endian values from a borrowed buffer.
// Reads past the end fail with ErrOutOfRange and leave the position untouched.
type ByteReader struct {
	data []byte
	pos  int
}

func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

func (reader *ByteReader) Pos() int       { return reader.pos }
func (reader *ByteReader) Len() int       { return len(reader.data) }
func (reader *ByteReader) Remaining() int { return len(reader.data) - reader.pos }
func (reader *ByteReader) EOF() bool      { return reader.pos >= len(reader.data) }
func (reader *ByteReader) Bytes() []byte  { return reader.data }

func (reader *ByteReader) Seek(pos int) error {
	if pos < 0 || pos > len(reader.data) {
		return fmt.Errorf("%w: seek to %d of %d", ErrOutOfRange, pos, len(reader.data))
	}
	reader.pos = pos
	return nil
}

func (reader *ByteReader) Skip(n int) error {
	if err := reader.need(n); err != nil {
		return err
	}
	reader.pos += n
	return nil
}

func (reader *ByteReader) Uint8() (uint8, error) {
	if err := reader.need(1); err != nil {
		return 0, err
	}
	v := reader.data[reader.pos]
	reader.pos++
	return v, nil
}

func (reader *ByteReader) Uint16() (uint16, error) {
	if err := reader.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(reader.data[reader.pos:])
	reader.pos += 2
	return v, nil
}

func (reader *ByteReader) Uint32() (uint32, error) {
	if err := reader.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(reader.data[reader.pos:])
	reader.pos += 4
	return v, nil
}

func (reader *ByteReader) Int32() (int32, error) {
	v, err := reader.Uint32()
	return int32(v), err
}

// FourCC reads a 4-byte chunk tag.
func (reader *ByteReader) FourCC() (string, error) {
	b, err := reader.Read(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Read returns the next n bytes as a sub-slice of the buffer.
func (reader *ByteReader) Read(n int) ([]byte, error) {
	if err := reader.need(n); err != nil {
		return nil, err
	}
	b := reader.data[reader.pos : reader.pos+n : reader.pos+n]
	reader.pos += n
	return b, nil
}

func (reader *ByteReader) Peek(n int) ([]byte, error) {
	if err := reader.need(n); err != nil {
		return nil, err
	}
	return reader.data[reader.pos : reader.pos+n : reader.pos+n], nil
}

// Slice returns data[offset:offset+n] without moving the position.
func (reader *ByteReader) Slice(offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset > len(reader.data)-n {
		return nil, fmt.Errorf("%w: slice [%d:+%d] of %d", ErrOutOfRange, offset, n, len(reader.data))
	}
	return reader.data[offset : offset+n : offset+n], nil
}

func (reader *ByteReader) need(n int) error {
	if n < 0 || n > len(reader.data)-reader.pos {
		return fmt.Errorf("%w: need %d bytes at %d, have %d", ErrOutOfRange, n, reader.pos, len(reader.data)-reader.pos)
	}
	return nil
}
