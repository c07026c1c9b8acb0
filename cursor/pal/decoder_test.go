package pal

import (
	"bytes"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		data   []byte
		size   int
		want   Palette
		err    error
	}{
		{
			name:   "rgbquad",
			layout: LayoutBGRX,
			data:   []byte{0x10, 0x20, 0x30, 0x00, 0xff, 0xfe, 0xfd, 0x99},
			size:   2,
			want: Palette{
				{R: 0x30, G: 0x20, B: 0x10, A: 0xff},
				{R: 0xfd, G: 0xfe, B: 0xff, A: 0xff},
			},
		},
		{
			name:   "rgbtriple",
			layout: LayoutBGR,
			data:   []byte{1, 2, 3, 4, 5, 6},
			size:   2,
			want: Palette{
				{R: 3, G: 2, B: 1, A: 0xff},
				{R: 6, G: 5, B: 4, A: 0xff},
			},
		},
		{
			name:   "truncated table keeps complete entries",
			layout: LayoutBGRX,
			data:   []byte{1, 2, 3, 0, 4, 5},
			size:   4,
			want:   Palette{{R: 3, G: 2, B: 1, A: 0xff}},
			err:    io.ErrUnexpectedEOF,
		},
		{
			name:   "empty input",
			layout: LayoutBGRX,
			size:   2,
			want:   Palette{},
			err:    io.ErrUnexpectedEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDecoder(bytes.NewReader(tt.data)).Decode(tt.layout, tt.size)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup(t *testing.T) {
	p := Palette{{R: 1, A: 0xff}}
	assert.Equal(t, color.NRGBA{R: 1, A: 0xff}, p.Lookup(0))
	assert.Equal(t, color.NRGBA{}, p.Lookup(1))
	assert.Equal(t, color.NRGBA{}, p.Lookup(-1))
}
