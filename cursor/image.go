// Package cursor holds the decoded cursor image shared by the format decoders,
// size selection and the writers.
package cursor

import (
	"image"
)

// Image is a straight-alpha RGBA8 raster, row-major and top-down.
// len(Pix) == Width*Height*4.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	HotspotX uint16
	HotspotY uint16
}

func New(width, height int) *Image {
	return &Image{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// Nominal is the size class of the image, max(width, height).
func (img *Image) Nominal() int { return max(img.Width, img.Height) }

func (img *Image) Stride() int { return img.Width * 4 }

func (img *Image) PixOffset(x, y int) int { return y*img.Width*4 + x*4 }

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := *img
	out.Pix = append([]byte(nil), img.Pix...)
	return &out
}

// NRGBA wraps the pixels without copying.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Stride(),
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// FromNRGBA copies an NRGBA raster into a cursor image.
func FromNRGBA(src *image.NRGBA, hotspotX, hotspotY uint16) *Image {
	b := src.Bounds()
	img := New(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(img.Pix[y*img.Stride():(y+1)*img.Stride()], row[:img.Stride()])
	}
	img.HotspotX, img.HotspotY = hotspotX, hotspotY
	return img
}
