package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/pal"
)

// bitmap is the decoding state of one DIB payload. The stored height covers
// the color rows followed by the AND mask rows.
type bitmap struct {
	data        []byte
	header      bitmapInfoHeader
	width       int
	height      int
	topDown     bool
	palette     pal.Palette
	pixelOffset int
	maskOffset  int
	stride      int
	maskStride  int
}

func (decoder *Decoder) decodeBitmap(data []byte, e DirEntry) (*cursor.Image, error) {
	if len(data) < bitmapInfoHeaderSize {
		return nil, fmt.Errorf("%w: bitmap header needs %d bytes, have %d", ErrTooSmall, bitmapInfoHeaderSize, len(data))
	}

	bm := &bitmap{data: data}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &bm.header); err != nil {
		return nil, err
	}
	h := bm.header
	slog.Debug("ico: bitmap",
		"header_size", h.Size,
		"width", h.Width,
		"height", h.Height,
		"bpp", h.BitCount,
		"compression", h.Compression,
	)

	if h.Compression != 0 {
		return nil, fmt.Errorf("%w: compression %d", ErrCompressed, h.Compression)
	}

	bm.topDown = h.Height < 0
	bm.width = int(h.Width)
	bm.height = int(abs(int64(h.Height)) / 2)
	if bm.width <= 0 {
		bm.width = e.PixelWidth()
	}
	if bm.height == 0 {
		bm.height = e.PixelHeight()
	}
	if bm.width > maxDimension || bm.height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, bm.width, bm.height)
	}

	bpp := int(h.BitCount)
	bm.stride = (bm.width*bpp + 31) / 32 * 4
	bm.maskStride = (bm.width + 31) / 32 * 4

	headerSize := max(int(h.Size), bitmapInfoHeaderSize)
	bm.pixelOffset = headerSize
	if bpp <= 8 {
		colors := 1 << bpp
		bm.pixelOffset += colors * 4
		bm.palette = decoder.decodePalette(data, headerSize, colors)
	}
	bm.maskOffset = bm.pixelOffset + bm.stride*bm.height

	if required := bm.maskOffset + bm.maskStride*bm.height; len(data) < required {
		decoder.warn("ico: bitmap data truncated (%d < %d bytes), missing pixels stay transparent", len(data), required)
	}

	img := cursor.New(bm.width, bm.height)
	switch bpp {
	case 1, 4, 8, 24, 32:
		bm.decodeColors(img, bpp)
	default:
		decoder.warn("ico: unsupported bitmap bit depth %d", bpp)
	}
	if bpp != 32 {
		bm.applyMask(img)
	}
	return img, nil
}

func (decoder *Decoder) decodePalette(data []byte, offset, colors int) pal.Palette {
	var table []byte
	if offset < len(data) {
		table = data[offset:]
	}
	palette, err := pal.NewDecoder(bytes.NewReader(table)).Decode(pal.LayoutBGRX, colors)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		decoder.warn("ico: color table truncated (%d of %d entries)", len(palette), colors)
	}
	return palette
}

// sourceRow maps an output row to its row in the stored (usually bottom-up) raster.
func (bm *bitmap) sourceRow(y int) int {
	if bm.topDown {
		return y
	}
	return bm.height - 1 - y
}

func (bm *bitmap) decodeColors(img *cursor.Image, bpp int) {
	data := bm.data
	for y := 0; y < bm.height; y++ {
		row := bm.pixelOffset + bm.sourceRow(y)*bm.stride
		for x := 0; x < bm.width; x++ {
			if row+x*bpp/8 >= len(data) {
				continue
			}

			var r, g, b, a uint8
			switch bpp {
			case 1:
				idx := (data[row+x/8] >> (7 - uint(x%8))) & 1
				c := bm.palette.Lookup(int(idx))
				r, g, b, a = c.R, c.G, c.B, c.A
			case 4:
				v := data[row+x/2]
				if x%2 == 0 {
					v >>= 4
				}
				c := bm.palette.Lookup(int(v & 0x0f))
				r, g, b, a = c.R, c.G, c.B, c.A
			case 8:
				c := bm.palette.Lookup(int(data[row+x]))
				r, g, b, a = c.R, c.G, c.B, c.A
			case 24:
				i := row + x*3
				if i+2 >= len(data) {
					continue
				}
				r, g, b, a = data[i+2], data[i+1], data[i], 0xff
			case 32:
				i := row + x*4
				if i+3 >= len(data) {
					continue
				}
				r, g, b, a = data[i+2], data[i+1], data[i], data[i+3]
			}

			o := img.PixOffset(x, y)
			img.Pix[o+0] = r
			img.Pix[o+1] = g
			img.Pix[o+2] = b
			img.Pix[o+3] = a
		}
	}
}

// applyMask clears alpha wherever the AND mask bit is set.
func (bm *bitmap) applyMask(img *cursor.Image) {
	data := bm.data
	if bm.maskOffset+bm.maskStride > len(data) {
		return
	}
	for y := 0; y < bm.height; y++ {
		row := bm.maskOffset + bm.sourceRow(y)*bm.maskStride
		for x := 0; x < bm.width; x++ {
			i := row + x/8
			if i >= len(data) {
				continue
			}
			if data[i]&(0x80>>uint(x%8)) != 0 {
				img.Pix[img.PixOffset(x, y)+3] = 0
			}
		}
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
