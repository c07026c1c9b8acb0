// Package riff walks RIFF-family chunk trees (RIFF/LIST framing, word-aligned chunks).
package riff

import (
	"errors"
)

const (
	headerSize     = 8
	fileHeaderSize = 12
)

var (
	ErrInvalid = errors.New("riff: invalid container")
)

// Chunk is a view of one chunk inside a walked range. Data borrows the source buffer.
type Chunk struct {
	ID       string
	Size     uint32
	Offset   int // offset of the chunk header within the walked range
	Data     []byte
	FormType string // LIST and RIFF only
}

func (chunk Chunk) IsList() bool { return chunk.ID == "RIFF" || chunk.ID == "LIST" }

// DataOffset is the offset of Data within the walked range.
func (chunk Chunk) DataOffset() int {
	if chunk.ID == "LIST" {
		return chunk.Offset + fileHeaderSize
	}
	return chunk.Offset + headerSize
}

// Truncated reports whether the declared size exceeded the bytes actually present.
func (chunk Chunk) Truncated() bool {
	declared := uint64(chunk.Size)
	if chunk.ID == "LIST" {
		declared -= 4
	}
	return uint64(len(chunk.Data)) < declared
}

// Info holds the string entries of a LIST INFO chunk keyed by their tag (INAM, IART, ...).
type Info map[string]string

func (info Info) Title() string  { return info["INAM"] }
func (info Info) Author() string { return info["IART"] }
