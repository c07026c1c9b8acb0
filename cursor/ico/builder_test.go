package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

type testEntry struct {
	width, height uint8
	planes, bpp   uint16
	payload       []byte
}

// container assembles an ICO/CUR file the way icon writers lay it out:
// header, directory, then payloads in directory order.
func container(typ uint16, entries ...testEntry) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, fileHeader{Type: typ, Count: uint16(len(entries))})

	offset := uint32(fileHeaderSize + len(entries)*dirEntrySize)
	for _, e := range entries {
		binary.Write(&buf, binary.LittleEndian, DirEntry{
			Width:    e.width,
			Height:   e.height,
			Planes:   e.planes,
			BitCount: e.bpp,
			Size:     uint32(len(e.payload)),
			Offset:   offset,
		})
		offset += uint32(len(e.payload))
	}
	for _, e := range entries {
		buf.Write(e.payload)
	}
	return buf.Bytes()
}

func infoHeader(width, height int, bpp uint16, topDown bool) []byte {
	h := int32(height * 2)
	if topDown {
		h = -h
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, bitmapInfoHeader{
		Size:     uint32(bitmapInfoHeaderSize),
		Width:    int32(width),
		Height:   h,
		Planes:   1,
		BitCount: bpp,
	})
	return buf.Bytes()
}

func stride(width, bpp int) int { return (width*bpp + 31) / 32 * 4 }

// dib32 encodes top-down RGBA pixels as a bottom-up BGRA DIB with an empty AND mask.
func dib32(width, height int, rgba []byte) []byte {
	buf := bytes.NewBuffer(infoHeader(width, height, 32, false))
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			p := rgba[(y*width+x)*4:]
			buf.Write([]byte{p[2], p[1], p[0], p[3]})
		}
	}
	buf.Write(make([]byte, stride(width, 1)*height))
	return buf.Bytes()
}

// dibIndexed encodes a paletted bottom-up DIB. index and masked are indexed by
// output (top-down) coordinates.
func dibIndexed(width, height, bpp int, palette []color.NRGBA, index func(x, y int) int, masked func(x, y int) bool) []byte {
	buf := bytes.NewBuffer(infoHeader(width, height, uint16(bpp), false))
	for i := 0; i < 1<<bpp; i++ {
		var c color.NRGBA
		if i < len(palette) {
			c = palette[i]
		}
		buf.Write([]byte{c.B, c.G, c.R, 0})
	}

	perByte := 8 / bpp
	for y := height - 1; y >= 0; y-- {
		row := make([]byte, stride(width, bpp))
		for x := 0; x < width; x++ {
			shift := uint(8 - bpp*(x%perByte+1))
			row[x/perByte] |= byte(index(x, y)) << shift
		}
		buf.Write(row)
	}
	writeMask(buf, width, height, masked)
	return buf.Bytes()
}

func dib24(width, height int, rgb func(x, y int) [3]byte, masked func(x, y int) bool) []byte {
	buf := bytes.NewBuffer(infoHeader(width, height, 24, false))
	for y := height - 1; y >= 0; y-- {
		row := make([]byte, stride(width, 24))
		for x := 0; x < width; x++ {
			c := rgb(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = c[2], c[1], c[0]
		}
		buf.Write(row)
	}
	writeMask(buf, width, height, masked)
	return buf.Bytes()
}

func writeMask(buf *bytes.Buffer, width, height int, masked func(x, y int) bool) {
	for y := height - 1; y >= 0; y-- {
		row := make([]byte, stride(width, 1))
		for x := 0; x < width; x++ {
			if masked(x, y) {
				row[x/8] |= 0x80 >> uint(x%8)
			}
		}
		buf.Write(row)
	}
}

func pngPayload(width, height int, c color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func gradient(width, height int) []byte {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			pix[i+0] = uint8(x * 7)
			pix[i+1] = uint8(y * 5)
			pix[i+2] = uint8(x ^ y)
			pix[i+3] = uint8((x + y) * 4)
		}
	}
	return pix
}

func never(x, y int) bool  { return false }
func always(x, y int) bool { return true }
