package ico

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/cam-per/ani2xcursor/cursor"
)

type Decoder struct {
	data     []byte
	header   fileHeader
	entries  []DirEntry
	Warnings []string
}

// NewDecoder reads the whole stream and validates its header and directory.
func NewDecoder(r io.Reader) (*Decoder, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates the header and directory of an ICO/CUR file held in memory.
// The decoder borrows data.
func Parse(data []byte) (*Decoder, error) {
	decoder := &Decoder{data: data}
	if err := decoder.decodeDirectory(); err != nil {
		return nil, err
	}
	return decoder, nil
}

// Decode returns the best-scoring image of an ICO/CUR file.
func Decode(data []byte) (*cursor.Image, error) {
	decoder, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return decoder.Decode()
}

// DecodeAll returns every image of an ICO/CUR file in directory order.
func DecodeAll(data []byte) ([]*cursor.Image, error) {
	decoder, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return decoder.DecodeAll()
}

func (decoder *Decoder) decodeDirectory() error {
	if len(decoder.data) < fileHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrTooSmall, len(decoder.data))
	}

	r := bytes.NewReader(decoder.data)
	if err := binary.Read(r, binary.LittleEndian, &decoder.header); err != nil {
		return err
	}
	h := decoder.header
	if h.Reserved != 0 {
		return fmt.Errorf("%w: %d", ErrBadReserved, h.Reserved)
	}
	if h.Type != TypeIcon && h.Type != TypeCursor {
		return fmt.Errorf("%w: %d", ErrBadType, h.Type)
	}
	if h.Count == 0 {
		return ErrNoImages
	}
	if need := fileHeaderSize + int(h.Count)*dirEntrySize; len(decoder.data) < need {
		return fmt.Errorf("%w: directory of %d entries needs %d bytes, have %d", ErrTooSmall, h.Count, need, len(decoder.data))
	}

	decoder.entries = make([]DirEntry, h.Count)
	if err := binary.Read(r, binary.LittleEndian, &decoder.entries); err != nil {
		return err
	}
	slog.Debug("ico: directory", "cursor", decoder.IsCursor(), "images", h.Count)
	return nil
}

func (decoder *Decoder) IsCursor() bool      { return decoder.header.Type == TypeCursor }
func (decoder *Decoder) Entries() []DirEntry { return decoder.entries }

// Hotspot is the entry's hotspot for cursors and the origin for icons.
func (decoder *Decoder) Hotspot(e DirEntry) (uint16, uint16) {
	if !decoder.IsCursor() {
		return 0, 0
	}
	return e.Planes, e.BitCount
}

// Best returns the index of the entry with the highest width*height*bpp.
// Cursors carry no bit depth in the directory and count as 32 bpp.
// The first of equal scores wins.
func (decoder *Decoder) Best() int {
	best := 0
	var bestScore uint64
	for i, e := range decoder.entries {
		bpp := uint64(32)
		if !decoder.IsCursor() && e.BitCount != 0 {
			bpp = uint64(e.BitCount)
		}
		score := uint64(e.PixelWidth()) * uint64(e.PixelHeight()) * bpp
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Format names the payload encoding of an entry: "png", "bmp", or "" when the
// entry lies outside the file.
func (decoder *Decoder) Format(index int) string {
	if index < 0 || index >= len(decoder.entries) {
		return ""
	}
	e := decoder.entries[index]
	if uint64(e.Offset)+uint64(e.Size) > uint64(len(decoder.data)) {
		return ""
	}
	return sniff(decoder.data[e.Offset : e.Offset+e.Size]).String()
}

func (decoder *Decoder) Decode() (*cursor.Image, error) {
	return decoder.DecodeEntry(decoder.Best())
}

func (decoder *Decoder) DecodeAll() ([]*cursor.Image, error) {
	images := make([]*cursor.Image, 0, len(decoder.entries))
	for i := range decoder.entries {
		img, err := decoder.DecodeEntry(i)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (decoder *Decoder) DecodeEntry(index int) (*cursor.Image, error) {
	if index < 0 || index >= len(decoder.entries) {
		return nil, fmt.Errorf("ico: entry %d of %d", index, len(decoder.entries))
	}
	e := decoder.entries[index]

	end := uint64(e.Offset) + uint64(e.Size)
	if end > uint64(len(decoder.data)) {
		return nil, fmt.Errorf("%w: entry %d ends at %d, file has %d bytes", ErrDataOutOfRange, index, end, len(decoder.data))
	}
	data := decoder.data[e.Offset:end]

	kind := sniff(data)
	slog.Debug("ico: entry",
		"index", index,
		"format", kind,
		"width", e.PixelWidth(),
		"height", e.PixelHeight(),
		"offset", e.Offset,
		"size", e.Size,
	)

	var (
		img *cursor.Image
		err error
	)
	switch kind {
	case payloadPNG:
		img, err = decodePNG(data)
	default:
		img, err = decoder.decodeBitmap(data, e)
	}
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", index, err)
	}
	img.HotspotX, img.HotspotY = decoder.Hotspot(e)
	return img, nil
}

func (decoder *Decoder) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	decoder.Warnings = append(decoder.Warnings, msg)
	slog.Warn(msg)
}
