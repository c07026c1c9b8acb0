package ico

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/cam-per/ani2xcursor/cursor"
)

func decodePNG(data []byte) (*cursor.Image, error) {
	config, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPNG, err)
	}
	if config.Width > maxDimension || config.Height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, config.Width, config.Height)
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPNG, err)
	}
	return cursor.FromNRGBA(toNRGBA(src), 0, 0), nil
}

// toNRGBA converts any decoded PNG to straight-alpha RGBA8.
func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
