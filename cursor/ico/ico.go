// Package ico decodes Windows ICO and CUR containers with BMP/DIB or PNG payloads.
package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	TypeIcon   uint16 = 1
	TypeCursor uint16 = 2
)

// Decoded images larger than this on either axis are rejected.
const maxDimension = 4096

var (
	ErrTooSmall       = errors.New("ico: data too small")
	ErrBadReserved    = errors.New("ico: reserved field is not zero")
	ErrBadType        = errors.New("ico: type is neither icon nor cursor")
	ErrNoImages       = errors.New("ico: no images")
	ErrDataOutOfRange = errors.New("ico: image data extends beyond file")
	ErrCompressed     = errors.New("ico: compressed bitmaps are not supported")
	ErrTooLarge       = errors.New("ico: image dimensions too large")
	ErrPNG            = errors.New("ico: invalid PNG payload")
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fileHeader struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

var (
	fileHeaderSize = binary.Size(fileHeader{})
	dirEntrySize   = binary.Size(DirEntry{})
)

// DirEntry is one directory row. Planes and BitCount hold the hotspot in CUR files.
type DirEntry struct {
	Width      uint8 // 0 means 256
	Height     uint8 // 0 means 256
	ColorCount uint8
	Reserved   uint8
	Planes     uint16 // CUR: hotspot x
	BitCount   uint16 // CUR: hotspot y
	Size       uint32
	Offset     uint32
}

func (e DirEntry) PixelWidth() int  { return dimension(e.Width) }
func (e DirEntry) PixelHeight() int { return dimension(e.Height) }

func dimension(v uint8) int {
	if v == 0 {
		return 256
	}
	return int(v)
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32 // XOR and AND masks together; negative means top-down
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

var bitmapInfoHeaderSize = binary.Size(bitmapInfoHeader{})

// payload is the embedded image format, chosen by sniffing the first bytes.
type payload uint8

const (
	payloadBMP payload = iota
	payloadPNG
)

func (p payload) String() string {
	if p == payloadPNG {
		return "png"
	}
	return "bmp"
}

func sniff(data []byte) payload {
	if bytes.HasPrefix(data, pngSignature) {
		return payloadPNG
	}
	return payloadBMP
}
