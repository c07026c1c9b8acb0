package ico

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderErrors(t *testing.T) {
	valid := container(TypeCursor, testEntry{width: 1, height: 1, payload: dib32(1, 1, make([]byte, 4))})

	badReserved := bytes.Clone(valid)
	badReserved[0] = 1
	badType := bytes.Clone(valid)
	badType[2] = 3

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTooSmall},
		{"short header", []byte{0, 0, 2}, ErrTooSmall},
		{"reserved", badReserved, ErrBadReserved},
		{"type", badType, ErrBadType},
		{"no images", []byte{0, 0, 1, 0, 0, 0}, ErrNoImages},
		{"truncated directory", []byte{0, 0, 1, 0, 2, 0, 16, 16, 0, 0}, ErrTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(valid)
	assert.NoError(t, err)
}

func TestEntryBeyondFile(t *testing.T) {
	data := container(TypeIcon, testEntry{width: 2, height: 2, payload: dib32(2, 2, make([]byte, 16))})
	data = data[:len(data)-4]

	_, err := DecodeAll(data)
	assert.ErrorIs(t, err, ErrDataOutOfRange)
}

func TestDecode32BitCursorIsLossless(t *testing.T) {
	pix := gradient(32, 32)
	data := container(TypeCursor, testEntry{width: 32, height: 32, planes: 5, bpp: 9, payload: dib32(32, 32, pix)})

	decoder, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, decoder.IsCursor())

	img, err := decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width)
	assert.Equal(t, 32, img.Height)
	assert.Equal(t, uint16(5), img.HotspotX)
	assert.Equal(t, uint16(9), img.HotspotY)
	assert.Equal(t, pix, img.Pix)
	assert.Empty(t, decoder.Warnings)
}

func TestDecodeTopDown(t *testing.T) {
	payload := infoHeader(1, 2, 32, true)
	payload = append(payload,
		10, 20, 30, 255, // row 0
		40, 50, 60, 128, // row 1
	)
	payload = append(payload, make([]byte, 8)...)

	img, err := Decode(container(TypeIcon, testEntry{width: 1, height: 2, payload: payload}))
	require.NoError(t, err)
	assert.Equal(t, []byte{30, 20, 10, 255, 60, 50, 40, 128}, img.Pix)
	assert.Equal(t, uint16(0), img.HotspotX, "icons have no hotspot")
}

func TestDecodeMonochromeMask(t *testing.T) {
	palette := []color.NRGBA{{R: 0, G: 0, B: 0, A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	checker := func(x, y int) int { return (x + y) % 2 }

	t.Run("mask set everywhere", func(t *testing.T) {
		img, err := Decode(container(TypeIcon, testEntry{width: 16, height: 16, payload: dibIndexed(16, 16, 1, palette, checker, always)}))
		require.NoError(t, err)
		for i := 3; i < len(img.Pix); i += 4 {
			require.Equal(t, byte(0), img.Pix[i], "pixel %d must be transparent", i/4)
		}
	})

	t.Run("mask clear", func(t *testing.T) {
		img, err := Decode(container(TypeIcon, testEntry{width: 16, height: 16, payload: dibIndexed(16, 16, 1, palette, checker, never)}))
		require.NoError(t, err)
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				want := palette[checker(x, y)]
				o := img.PixOffset(x, y)
				require.Equal(t, []byte{want.R, want.G, want.B, 255}, img.Pix[o:o+4], "pixel %d,%d", x, y)
			}
		}
	})
}

func TestDecodePalettedDepths(t *testing.T) {
	palette := make([]color.NRGBA, 256)
	for i := range palette {
		palette[i] = color.NRGBA{R: uint8(i), G: uint8(255 - i), B: uint8(i * 3), A: 255}
	}
	masked := func(x, y int) bool { return x == 0 && y == 0 }

	for _, bpp := range []int{1, 4, 8} {
		index := func(x, y int) int { return (x*3 + y) % (1 << bpp) }
		data := container(TypeIcon, testEntry{width: 8, height: 8, bpp: uint16(bpp), payload: dibIndexed(8, 8, bpp, palette, index, masked)})

		img, err := Decode(data)
		require.NoError(t, err, "bpp %d", bpp)

		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				c := palette[index(x, y)]
				want := []byte{c.R, c.G, c.B, 255}
				if masked(x, y) {
					want[3] = 0
				}
				o := img.PixOffset(x, y)
				require.Equal(t, want, img.Pix[o:o+4], "bpp %d pixel %d,%d", bpp, x, y)
			}
		}
	}
}

func TestDecode24Bit(t *testing.T) {
	rgb := func(x, y int) [3]byte { return [3]byte{uint8(x * 40), uint8(y * 40), 7} }
	masked := func(x, y int) bool { return y == 2 }

	img, err := Decode(container(TypeIcon, testEntry{width: 3, height: 3, bpp: 24, payload: dib24(3, 3, rgb, masked)}))
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := rgb(x, y)
			alpha := byte(255)
			if masked(x, y) {
				alpha = 0
			}
			o := img.PixOffset(x, y)
			assert.Equal(t, []byte{c[0], c[1], c[2], alpha}, img.Pix[o:o+4])
		}
	}
}

func TestDecodeCompressed(t *testing.T) {
	payload := dib32(2, 2, make([]byte, 16))
	payload[16] = 1 // BI_RLE8

	_, err := Decode(container(TypeIcon, testEntry{width: 2, height: 2, payload: payload}))
	assert.ErrorIs(t, err, ErrCompressed)
}

func TestDecodeUnsupportedDepth(t *testing.T) {
	payload := infoHeader(2, 2, 16, false)
	payload = append(payload, bytes.Repeat([]byte{0xff}, 8)...)
	payload = append(payload, make([]byte, 8)...)

	decoder, err := Parse(container(TypeIcon, testEntry{width: 2, height: 2, payload: payload}))
	require.NoError(t, err)

	img, err := decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), img.Pix)
	require.Len(t, decoder.Warnings, 1)
	assert.Contains(t, decoder.Warnings[0], "bit depth 16")
}

func TestDecodeTruncatedPixels(t *testing.T) {
	pix := gradient(4, 4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	payload := dib32(4, 4, pix)
	// Keep the header and the first two stored rows, output rows 3 and 2.
	payload = payload[:bitmapInfoHeaderSize+2*16]

	decoder, err := Parse(container(TypeCursor, testEntry{width: 4, height: 4, payload: payload}))
	require.NoError(t, err)
	img, err := decoder.Decode()
	require.NoError(t, err)
	require.NotEmpty(t, decoder.Warnings)

	assert.Equal(t, pix[2*16:], img.Pix[2*16:])
	assert.Equal(t, make([]byte, 2*16), img.Pix[:2*16])
}

func TestDecodeZeroHeaderDimensions(t *testing.T) {
	payload := infoHeader(0, 0, 32, false)
	payload = append(payload, make([]byte, 16*16*4+16*4)...)

	img, err := Decode(container(TypeIcon, testEntry{width: 16, height: 16, payload: payload}))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 16, img.Height)
}

func TestDecodeTooLarge(t *testing.T) {
	payload := infoHeader(100000, 1, 32, false)
	_, err := Decode(container(TypeIcon, testEntry{payload: payload}))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDecodePNG(t *testing.T) {
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	payload := pngPayload(20, 24, c)

	t.Run("cursor hotspot from directory", func(t *testing.T) {
		img, err := Decode(container(TypeCursor, testEntry{width: 20, height: 24, planes: 3, bpp: 4, payload: payload}))
		require.NoError(t, err)
		assert.Equal(t, 20, img.Width)
		assert.Equal(t, 24, img.Height)
		assert.Equal(t, uint16(3), img.HotspotX)
		assert.Equal(t, uint16(4), img.HotspotY)
		assert.Equal(t, []byte{200, 100, 50, 128}, img.Pix[:4])
	})

	t.Run("icon has no hotspot", func(t *testing.T) {
		img, err := Decode(container(TypeIcon, testEntry{width: 20, height: 24, planes: 1, bpp: 32, payload: payload}))
		require.NoError(t, err)
		assert.Equal(t, uint16(0), img.HotspotX)
		assert.Equal(t, uint16(0), img.HotspotY)
	})

	t.Run("grayscale converts to rgba", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 4, 4))
		for i := range gray.Pix {
			gray.Pix[i] = 0x80
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, gray))

		img, err := Decode(container(TypeIcon, testEntry{width: 4, height: 4, payload: buf.Bytes()}))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x80, 0x80, 0x80, 0xff}, img.Pix[:4])
		assert.Equal(t, img.Pix[:4], img.Pix[len(img.Pix)-4:])
	})

	t.Run("corrupt", func(t *testing.T) {
		broken := bytes.Clone(payload[:20])
		_, err := Decode(container(TypeIcon, testEntry{width: 20, height: 24, payload: broken}))
		assert.ErrorIs(t, err, ErrPNG)
	})
}

func TestBest(t *testing.T) {
	tests := []struct {
		name    string
		typ     uint16
		entries []testEntry
		want    int
	}{
		{
			name: "largest area",
			typ:  TypeIcon,
			entries: []testEntry{
				{width: 16, height: 16, bpp: 32},
				{width: 48, height: 48, bpp: 32},
				{width: 32, height: 32, bpp: 32},
			},
			want: 1,
		},
		{
			name: "depth breaks size",
			typ:  TypeIcon,
			entries: []testEntry{
				{width: 32, height: 32, bpp: 4},
				{width: 32, height: 32, bpp: 32},
			},
			want: 1,
		},
		{
			name: "zero means 256",
			typ:  TypeIcon,
			entries: []testEntry{
				{width: 128, height: 128, bpp: 32},
				{width: 0, height: 0, bpp: 32},
			},
			want: 1,
		},
		{
			name: "missing depth counts as 32",
			typ:  TypeIcon,
			entries: []testEntry{
				{width: 32, height: 32, bpp: 24},
				{width: 32, height: 32},
			},
			want: 1,
		},
		{
			name: "first of equal scores wins",
			typ:  TypeIcon,
			entries: []testEntry{
				{width: 32, height: 32, bpp: 32},
				{width: 32, height: 32, bpp: 32},
			},
			want: 0,
		},
		{
			name: "cursor hotspot is not a depth",
			typ:  TypeCursor,
			entries: []testEntry{
				{width: 32, height: 32, planes: 1, bpp: 1},
				{width: 32, height: 32, planes: 30, bpp: 30},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.entries {
				tt.entries[i].payload = []byte{0}
			}
			decoder, err := Parse(container(tt.typ, tt.entries...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, decoder.Best())
		})
	}
}

func TestDecodeAllKeepsDirectoryOrder(t *testing.T) {
	data := container(TypeCursor,
		testEntry{width: 16, height: 16, planes: 1, bpp: 1, payload: dib32(16, 16, make([]byte, 16*16*4))},
		testEntry{width: 32, height: 32, planes: 2, bpp: 2, payload: dib32(32, 32, make([]byte, 32*32*4))},
		testEntry{width: 48, height: 48, planes: 3, bpp: 3, payload: dib32(48, 48, make([]byte, 48*48*4))},
	)

	decoder, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, decoder.Entries(), 3)

	images, err := decoder.DecodeAll()
	require.NoError(t, err)
	require.Len(t, images, 3)
	for i, want := range []int{16, 32, 48} {
		assert.Equal(t, want, images[i].Nominal())
		assert.Equal(t, uint16(i+1), images[i].HotspotX)
	}

	best, err := decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, 48, best.Nominal())
}

func TestNewDecoder(t *testing.T) {
	data := container(TypeIcon, testEntry{width: 1, height: 1, payload: dib32(1, 1, []byte{1, 2, 3, 4})})
	decoder, err := NewDecoder(bytes.NewReader(data))
	require.NoError(t, err)

	img, err := decoder.DecodeEntry(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, img.Pix)

	_, err = decoder.DecodeEntry(1)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	data := container(TypeIcon,
		testEntry{width: 1, height: 1, payload: dib32(1, 1, make([]byte, 4))},
		testEntry{width: 2, height: 2, payload: pngPayload(2, 2, color.NRGBA{A: 255})},
	)
	decoder, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "bmp", decoder.Format(0))
	assert.Equal(t, "png", decoder.Format(1))
	assert.Equal(t, "", decoder.Format(2))
}
