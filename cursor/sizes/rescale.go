package sizes

import (
	"fmt"
	"math"

	"github.com/cam-per/ani2xcursor/cursor"
)

// Rescale resizes img so that its nominal size becomes target, keeping the
// aspect ratio. Pixels are blended bilinearly on straight alpha with
// clamp-to-edge sampling. A target equal to the current nominal size returns
// a copy of img.
func Rescale(img *cursor.Image, target int) (*cursor.Image, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("sizes: cannot rescale empty %dx%d image", img.Width, img.Height)
	}
	nominal := img.Nominal()
	if nominal == target {
		return img.Clone(), nil
	}

	w, h := scaledDimensions(img.Width, img.Height, target)
	out := cursor.New(w, h)

	scaleX := float64(w) / float64(img.Width)
	scaleY := float64(h) / float64(img.Height)
	out.HotspotX = scaleHotspot(img.HotspotX, scaleX, w)
	out.HotspotY = scaleHotspot(img.HotspotY, scaleY, h)

	for y := 0; y < h; y++ {
		sy := (float64(y)+0.5)*float64(img.Height)/float64(h) - 0.5
		y0, y1, fy := neighbours(sy, img.Height)

		for x := 0; x < w; x++ {
			sx := (float64(x)+0.5)*float64(img.Width)/float64(w) - 0.5
			x0, x1, fx := neighbours(sx, img.Width)

			p00 := img.PixOffset(x0, y0)
			p10 := img.PixOffset(x1, y0)
			p01 := img.PixOffset(x0, y1)
			p11 := img.PixOffset(x1, y1)
			o := out.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				v00 := float64(img.Pix[p00+c])
				v10 := float64(img.Pix[p10+c])
				v01 := float64(img.Pix[p01+c])
				v11 := float64(img.Pix[p11+c])
				v0 := v00 + (v10-v00)*fx
				v1 := v01 + (v11-v01)*fx
				out.Pix[o+c] = clampByte(v0 + (v1-v0)*fy)
			}
		}
	}
	return out, nil
}

// scaledDimensions rounds both axes by target/nominal. When rounding misses the
// target on the larger axis, that axis is forced to target and the other one is
// recomputed from the exact ratio.
func scaledDimensions(width, height, target int) (int, int) {
	scale := float64(target) / float64(max(width, height))
	w := max(1, int(math.Round(float64(width)*scale)))
	h := max(1, int(math.Round(float64(height)*scale)))
	if max(w, h) == target {
		return w, h
	}
	if width >= height {
		return target, max(1, int(math.Round(float64(height)*float64(target)/float64(width))))
	}
	return max(1, int(math.Round(float64(width)*float64(target)/float64(height)))), target
}

func scaleHotspot(v uint16, scale float64, size int) uint16 {
	return uint16(math.Min(math.Max(math.Round(float64(v)*scale), 0), float64(size-1)))
}

// neighbours returns the two source texels around s, clamped to [0, n-1], and
// the fractional weight of the second one.
func neighbours(s float64, n int) (int, int, float64) {
	i0 := int(math.Floor(s))
	f := s - float64(i0)
	i1 := i0 + 1
	return clampInt(i0, 0, n-1), clampInt(i1, 0, n-1), f
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampByte(v float64) uint8 {
	return uint8(math.Min(math.Max(math.Round(v), 0), 255))
}
