// Package fixture assembles small ANI and CUR files for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
)

// Image is one square 32-bit cursor image filled with a single byte value.
type Image struct {
	Size   int
	HX, HY uint16
	Fill   byte
}

// CUR builds a cursor file with one uncompressed 32-bit DIB per image.
func CUR(images ...Image) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 2, uint16(len(images))})

	payloads := make([][]byte, len(images))
	offset := 6 + 16*len(images)
	for i, img := range images {
		payloads[i] = DIB(img.Size, img.Fill)
		binary.Write(&buf, binary.LittleEndian, struct {
			Width, Height, Colors, Reserved uint8
			HotspotX, HotspotY              uint16
			Size, Offset                    uint32
		}{
			Width:    uint8(img.Size),
			Height:   uint8(img.Size),
			HotspotX: img.HX,
			HotspotY: img.HY,
			Size:     uint32(len(payloads[i])),
			Offset:   uint32(offset),
		})
		offset += len(payloads[i])
	}
	for _, p := range payloads {
		buf.Write(p)
	}
	return buf.Bytes()
}

// DIB is a bottom-up 32-bit bitmap with an empty AND mask.
func DIB(size int, fill byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, []int32{40, int32(size), int32(size * 2)})
	binary.Write(&buf, binary.LittleEndian, []uint16{1, 32})
	buf.Write(make([]byte, 24))
	buf.Write(bytes.Repeat([]byte{fill}, size*size*4))
	buf.Write(make([]byte, (size+31)/32*4*size))
	return buf.Bytes()
}

func Chunk(id string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// List builds a RIFF or LIST container.
func List(id, form string, children ...[]byte) []byte {
	body := []byte(form)
	for _, c := range children {
		body = append(body, c...)
	}
	return Chunk(id, body)
}

func U32s(values ...uint32) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, values)
	return buf.Bytes()
}

// Animation describes an ACON file. Rates and Sequence are omitted when nil.
type Animation struct {
	Steps    uint32
	Rate     uint32
	Rates    []uint32
	Sequence []uint32
	Frames   [][]byte
}

func (a Animation) Bytes() []byte {
	header := U32s(36, uint32(len(a.Frames)), a.Steps, 0, 0, 0, 0, a.Rate, 1)
	children := [][]byte{Chunk("anih", header)}
	if a.Rates != nil {
		children = append(children, Chunk("rate", U32s(a.Rates...)))
	}
	if a.Sequence != nil {
		children = append(children, Chunk("seq ", U32s(a.Sequence...)))
	}

	icons := make([][]byte, len(a.Frames))
	for i, f := range a.Frames {
		icons[i] = Chunk("icon", f)
	}
	children = append(children, List("LIST", "fram", icons...))
	return List("RIFF", "ACON", children...)
}

// ANI is an animation with default timing, one frame per step.
func ANI(frames ...[]byte) []byte {
	return Animation{Frames: frames}.Bytes()
}
