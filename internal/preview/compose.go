// Package preview renders contact sheets of decoded cursors for quick visual
// checks before a theme is built.
package preview

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cam-per/ani2xcursor/cursor"
)

const (
	margin    = 4
	spacing   = 4
	checkSize = 8
)

var (
	checkLight = color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	checkDark  = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

var ErrNoFrames = errors.New("preview: no frames")

// Checkerboard fills a new opaque image with 8px light and dark squares.
func Checkerboard(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := checkDark
			if (x/checkSize+y/checkSize)%2 == 1 {
				c = checkLight
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Compose lays frames out left to right, each centered in a square cell as
// large as the biggest frame, over a checkerboard. Frames are magnified by
// scale with nearest-neighbour sampling so small cursors stay crisp.
func Compose(frames []*cursor.Image, scale int) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	scale = max(scale, 1)

	cell := 1
	for _, f := range frames {
		cell = max(cell, f.Nominal()*scale)
	}

	width := margin*2 + cell*len(frames) + spacing*(len(frames)-1)
	height := margin*2 + cell
	sheet := Checkerboard(width, height)

	for i, f := range frames {
		w, h := f.Width*scale, f.Height*scale
		x := margin + i*(cell+spacing) + (cell-w)/2
		y := margin + (cell-h)/2
		dst := image.Rect(x, y, x+w, y+h)
		draw.NearestNeighbor.Scale(sheet, dst, f.NRGBA(), f.NRGBA().Bounds(), draw.Over, nil)
	}
	return sheet, nil
}

var (
	placeholderBackground = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	placeholderText       = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	placeholderError      = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
)

// Placeholder is the sheet written for files that failed to decode: the file
// name above a red "decode failed".
func Placeholder(name string) *image.NRGBA {
	const padding = 10
	face := basicfont.Face7x13
	line := face.Metrics().Height.Ceil()
	status := "decode failed"

	textWidth := max(font.MeasureString(face, name).Ceil(), font.MeasureString(face, status).Ceil())
	width := max(120, textWidth+padding*2)
	height := padding*2 + line*2 + 4

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	d.Src = image.NewUniform(placeholderText)
	d.Dot = fixed.P(padding, padding+ascent)
	d.DrawString(name)

	d.Src = image.NewUniform(placeholderError)
	d.Dot = fixed.P(padding, padding+line+4+ascent)
	d.DrawString(status)
	return img
}
