package riff

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/cam-per/ani2xcursor/utils"
)

// Reader validates a RIFF buffer and walks its chunks. A Reader built from a
// buffer that is not RIFF is not usable; check Valid before Root or FormType.
type Reader struct {
	data     []byte
	root     Chunk
	err      error
	Warnings []string
}

func NewReader(data []byte) *Reader {
	reader := &Reader{data: data}
	reader.err = reader.readHeader()
	if reader.err != nil {
		slog.Debug("riff: rejected buffer", "err", reader.err)
	}
	return reader
}

func (reader *Reader) Valid() bool      { return reader.err == nil }
func (reader *Reader) Err() error       { return reader.err }
func (reader *Reader) Root() Chunk      { return reader.root }
func (reader *Reader) FormType() string { return reader.root.FormType }

func (reader *Reader) readHeader() error {
	if len(reader.data) < fileHeaderSize {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalid, len(reader.data), fileHeaderSize)
	}

	r := utils.NewByteReader(reader.data)
	id, _ := r.FourCC()
	if id != "RIFF" {
		return fmt.Errorf("%w: signature %q", ErrInvalid, id)
	}
	size, _ := r.Uint32()
	form, _ := r.FourCC()

	if uint64(size)+headerSize > uint64(len(reader.data)) {
		reader.warn("riff: declared size %d exceeds file size %d", uint64(size)+headerSize, len(reader.data))
	}

	available := len(reader.data) - fileHeaderSize
	body := available
	if size >= 4 && uint64(size-4) < uint64(available) {
		body = int(size - 4)
	}

	reader.root = Chunk{
		ID:       "RIFF",
		Size:     size,
		Data:     reader.data[fileHeaderSize : fileHeaderSize+body],
		FormType: form,
	}
	slog.Debug("riff: header", "form", form, "size", size)
	return nil
}

// ParseChunk reads the chunk header at offset within data. It returns the chunk,
// the offset of the next sibling (word aligned) and false when no complete
// header fits in the remaining bytes.
func ParseChunk(data []byte, offset int) (Chunk, int, bool) {
	if offset < 0 || len(data)-offset < headerSize {
		return Chunk{}, offset, false
	}

	chunk := Chunk{
		ID:     string(data[offset : offset+4]),
		Size:   binary.LittleEndian.Uint32(data[offset+4:]),
		Offset: offset,
	}

	start := offset + headerSize
	declared := uint64(chunk.Size)
	if chunk.ID == "LIST" {
		if chunk.Size < 4 || len(data)-offset < fileHeaderSize {
			return Chunk{}, offset, false
		}
		chunk.FormType = string(data[offset+8 : offset+12])
		start = offset + fileHeaderSize
		declared -= 4
	}

	end := len(data)
	if declared < uint64(end-start) {
		end = start + int(declared)
	}
	chunk.Data = data[start:end:end]

	next := uint64(offset) + headerSize + uint64(chunk.Size)
	if next&1 == 1 {
		next++
	}
	if next > uint64(len(data)) {
		next = uint64(len(data))
	}
	return chunk, int(next), true
}

// Walk calls fn for every chunk in data, in order, until fn returns false or
// fewer than 8 bytes remain.
func (reader *Reader) Walk(data []byte, fn func(chunk Chunk) bool) {
	offset := 0
	for offset < len(data) {
		chunk, next, ok := ParseChunk(data, offset)
		if !ok {
			if len(data)-offset > 0 {
				slog.Debug("riff: trailing bytes ignored", "offset", offset, "len", len(data)-offset)
			}
			return
		}
		if chunk.Truncated() {
			reader.warn("riff: chunk %q at %d declares %d bytes, only %d present", chunk.ID, offset, chunk.Size, len(chunk.Data))
		}
		slog.Debug("riff: chunk", "id", chunk.ID, "form", chunk.FormType, "offset", offset, "size", chunk.Size)
		if !fn(chunk) {
			return
		}
		offset = next
	}
}

// FindChunk returns the first chunk with the given id.
func (reader *Reader) FindChunk(data []byte, id string) (Chunk, bool) {
	var (
		found Chunk
		ok    bool
	)
	reader.Walk(data, func(chunk Chunk) bool {
		if chunk.ID == id {
			found, ok = chunk, true
			return false
		}
		return true
	})
	return found, ok
}

// FindList returns the first LIST chunk with the given form type.
func (reader *Reader) FindList(data []byte, formType string) (Chunk, bool) {
	var (
		found Chunk
		ok    bool
	)
	reader.Walk(data, func(chunk Chunk) bool {
		if chunk.ID == "LIST" && chunk.FormType == formType {
			found, ok = chunk, true
			return false
		}
		return true
	})
	return found, ok
}

// ReadInfo collects the string sub-chunks of a LIST INFO body.
func (reader *Reader) ReadInfo(data []byte) Info {
	info := make(Info)
	reader.Walk(data, func(chunk Chunk) bool {
		if text := utils.CString(chunk.Data).Text(); text != "" {
			info[chunk.ID] = text
		}
		return true
	})
	return info
}

func (reader *Reader) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	reader.Warnings = append(reader.Warnings, msg)
	slog.Warn(msg)
}
