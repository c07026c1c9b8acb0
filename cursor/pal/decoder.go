// Package pal decodes DIB color tables.
package pal

import (
	"errors"
	"image/color"
	"io"
)

type Layout uint8

const (
	LayoutBGRX Layout = iota // RGBQUAD: blue, green, red, reserved
	LayoutBGR                // RGBTRIPLE
)

func (layout Layout) EntrySize() int {
	switch layout {
	case LayoutBGR:
		return 3
	default:
		return 4
	}
}

// Palette entries are fully opaque; transparency in paletted DIBs comes from the AND mask.
type Palette []color.NRGBA

// Lookup returns the entry at index, or transparent black past the end of the table.
func (p Palette) Lookup(index int) color.NRGBA {
	if index < 0 || index >= len(p) {
		return color.NRGBA{}
	}
	return p[index]
}

type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads up to size entries. When the input ends early it returns the
// complete entries read so far together with io.ErrUnexpectedEOF.
func (decoder *Decoder) Decode(layout Layout, size int) (Palette, error) {
	pal := make(Palette, 0, size)
	buf := make([]byte, layout.EntrySize())

	for i := 0; i < size; i++ {
		if _, err := io.ReadFull(decoder.r, buf); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return pal, err
		}
		pal = append(pal, color.NRGBA{R: buf[2], G: buf[1], B: buf[0], A: 0xFF})
	}
	return pal, nil
}
