package xcursor

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cam-per/ani2xcursor/cursor"
)

// Image is one decoded image chunk.
type Image struct {
	*cursor.Image
	Size  int
	Delay uint32
}

type Decoder struct {
	data []byte
	toc  []tocEntry
}

func NewDecoder(r io.Reader) (*Decoder, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	decoder := &Decoder{data: data}
	if err := decoder.decodeTOC(); err != nil {
		return nil, err
	}
	return decoder, nil
}

// IsXcursor reports whether data starts with the Xcursor magic.
func IsXcursor(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}

func (decoder *Decoder) decodeTOC() error {
	if !IsXcursor(decoder.data) {
		return ErrBadMagic
	}
	if len(decoder.data) < fileHeaderSize {
		return ErrTruncated
	}

	var h fileHeader
	r := bytes.NewReader(decoder.data)
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return err
	}
	if int(h.Size) < fileHeaderSize || uint64(h.Size)+uint64(h.NTOC)*uint64(tocEntrySize) > uint64(len(decoder.data)) {
		return fmt.Errorf("%w: table of %d entries", ErrTruncated, h.NTOC)
	}
	if _, err := r.Seek(int64(h.Size), io.SeekStart); err != nil {
		return err
	}
	decoder.toc = make([]tocEntry, h.NTOC)
	return binary.Read(r, binary.LittleEndian, &decoder.toc)
}

// Sizes returns the nominal size of every image chunk in table order.
func (decoder *Decoder) Sizes() []int {
	var out []int
	for _, e := range decoder.toc {
		if e.Type == ImageType {
			out = append(out, int(e.Subtype))
		}
	}
	return out
}

// Images decodes every image chunk in table order. Chunks of other types are
// skipped.
func (decoder *Decoder) Images() ([]Image, error) {
	var images []Image
	for i, e := range decoder.toc {
		if e.Type != ImageType {
			continue
		}
		img, err := decoder.decodeImage(e)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (decoder *Decoder) decodeImage(e tocEntry) (Image, error) {
	if uint64(e.Position)+uint64(imageHeaderSize) > uint64(len(decoder.data)) {
		return Image{}, ErrTruncated
	}

	var h imageHeader
	if err := binary.Read(bytes.NewReader(decoder.data[e.Position:]), binary.LittleEndian, &h); err != nil {
		return Image{}, err
	}
	if h.Width > maxDimension || h.Height > maxDimension {
		return Image{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, h.Width, h.Height)
	}

	start := uint64(e.Position) + uint64(h.Size)
	end := start + uint64(h.Width)*uint64(h.Height)*4
	if end > uint64(len(decoder.data)) {
		return Image{}, ErrTruncated
	}

	img := cursor.New(int(h.Width), int(h.Height))
	img.HotspotX, img.HotspotY = uint16(h.XHot), uint16(h.YHot)
	src := decoder.data[start:end]
	for i := 0; i < len(src); i += 4 {
		img.Pix[i+0] = src[i+2]
		img.Pix[i+1] = src[i+1]
		img.Pix[i+2] = src[i+0]
		img.Pix[i+3] = src[i+3]
	}
	return Image{Image: img, Size: int(h.Subtype), Delay: h.Delay}, nil
}
