package sizes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam-per/ani2xcursor/cursor"
)

func TestRescaleIdentity(t *testing.T) {
	img := cursor.New(32, 20)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	img.HotspotX, img.HotspotY = 7, 9

	out, err := Rescale(img, 32)
	require.NoError(t, err)
	assert.Equal(t, img, out)
	assert.NotSame(t, img, out)
}

func TestRescaleInvalidTarget(t *testing.T) {
	_, err := Rescale(cursor.New(4, 4), 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRescaleDimensions(t *testing.T) {
	tests := []struct {
		width, height, target int
		wantW, wantH          int
	}{
		{32, 32, 24, 24, 24},
		{32, 16, 24, 24, 12},
		{16, 32, 48, 24, 48},
		{3, 2, 2, 2, 1},
		{64, 1, 8, 8, 1},
	}

	for _, tt := range tests {
		out, err := Rescale(cursor.New(tt.width, tt.height), tt.target)
		require.NoError(t, err)
		assert.Equal(t, tt.wantW, out.Width, "%dx%d -> %d", tt.width, tt.height, tt.target)
		assert.Equal(t, tt.wantH, out.Height, "%dx%d -> %d", tt.width, tt.height, tt.target)
		assert.Len(t, out.Pix, out.Width*out.Height*4)
		assert.Equal(t, tt.target, out.Nominal())
	}
}

func TestRescaleHotspot(t *testing.T) {
	img := cursor.New(32, 32)
	img.HotspotX, img.HotspotY = 31, 10

	out, err := Rescale(img, 16)
	require.NoError(t, err)
	assert.Equal(t, uint16(15), out.HotspotX, "clamped to the last column")
	assert.Equal(t, uint16(5), out.HotspotY)

	out, err = Rescale(img, 48)
	require.NoError(t, err)
	assert.Equal(t, uint16(47), out.HotspotX)
	assert.Equal(t, uint16(15), out.HotspotY)
}

func TestRescaleBilinear(t *testing.T) {
	img := cursor.New(2, 1)
	copy(img.Pix, []byte{
		0, 10, 20, 255,
		255, 10, 20, 0,
	})

	out, err := Rescale(img, 4)
	require.NoError(t, err)
	require.Equal(t, 4, out.Width)
	require.Equal(t, 2, out.Height)

	wantR := []byte{0, 64, 191, 255}
	wantA := []byte{255, 191, 64, 0}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			o := out.PixOffset(x, y)
			assert.Equal(t, wantR[x], out.Pix[o], "red at %d,%d", x, y)
			assert.Equal(t, byte(10), out.Pix[o+1])
			assert.Equal(t, byte(20), out.Pix[o+2])
			assert.Equal(t, wantA[x], out.Pix[o+3], "alpha at %d,%d", x, y)
		}
	}
}

func TestRescaleUniformStaysUniform(t *testing.T) {
	img := cursor.New(16, 16)
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{12, 34, 56, 78})
	}

	for _, target := range []int{5, 24, 48} {
		out, err := Rescale(img, target)
		require.NoError(t, err)
		for i := 0; i < len(out.Pix); i += 4 {
			require.Equal(t, []byte{12, 34, 56, 78}, out.Pix[i:i+4], "target %d", target)
		}
	}
}
