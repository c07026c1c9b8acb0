package xcursor

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cam-per/ani2xcursor/cursor"
)

type Encoder struct {
	w *bufio.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes images in the given order. delays is parallel to images;
// missing entries get DefaultDelay. Pixels are stored as straight-alpha ARGB.
func (encoder *Encoder) Encode(images []*cursor.Image, delays []uint32) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	for i, img := range images {
		if img.Width <= 0 || img.Height <= 0 || img.Width > maxDimension || img.Height > maxDimension {
			return fmt.Errorf("%w: image %d is %dx%d", ErrTooLarge, i, img.Width, img.Height)
		}
	}

	w := encoder.w
	header := fileHeader{
		Size:    uint32(fileHeaderSize),
		Version: FileVersion,
		NTOC:    uint32(len(images)),
	}
	copy(header.Magic[:], Magic)
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	pos := uint32(fileHeaderSize + len(images)*tocEntrySize)
	for _, img := range images {
		entry := tocEntry{Type: ImageType, Subtype: uint32(img.Nominal()), Position: pos}
		if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
			return err
		}
		pos += uint32(imageHeaderSize + img.Width*img.Height*4)
	}

	for i, img := range images {
		delay := uint32(DefaultDelay)
		if i < len(delays) {
			delay = delays[i]
		}
		if err := encoder.encodeImage(img, delay); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (encoder *Encoder) encodeImage(img *cursor.Image, delay uint32) error {
	h := imageHeader{
		Size:    uint32(imageHeaderSize),
		Type:    ImageType,
		Subtype: uint32(img.Nominal()),
		Version: ImageVersion,
		Width:   uint32(img.Width),
		Height:  uint32(img.Height),
		XHot:    uint32(img.HotspotX),
		YHot:    uint32(img.HotspotY),
		Delay:   delay,
	}
	if err := binary.Write(encoder.w, binary.LittleEndian, h); err != nil {
		return err
	}

	// ARGB as a little-endian u32 is B, G, R, A in memory.
	row := make([]byte, img.Stride())
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*img.Stride() : (y+1)*img.Stride()]
		for x := 0; x < len(src); x += 4 {
			row[x+0] = src[x+2]
			row[x+1] = src[x+1]
			row[x+2] = src[x+0]
			row[x+3] = src[x+3]
		}
		if _, err := encoder.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile encodes images to path through a temporary file in the same
// directory, so a failed write never leaves a partial cursor behind.
func WriteFile(path string, images []*cursor.Image, delays []uint32) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := NewEncoder(f).Encode(images, delays); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	slog.Debug("wrote cursor", "file", filepath.Base(path), "images", len(images))
	return nil
}
