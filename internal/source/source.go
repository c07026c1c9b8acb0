// Package source writes cursors as editable sources: PNG frames per size, an
// xcursorgen config, SVG wrappers of the largest size and the alias list.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vincent-petithory/dataurl"

	"github.com/cam-per/ani2xcursor/cursor"
)

var (
	ErrNoFrames      = errors.New("source: no frames")
	ErrDelayMismatch = errors.New("source: frame and delay counts differ")
)

type group struct {
	size    int
	indices []int
}

// groupBySize keeps first-seen size order and frame order within each size.
func groupBySize(images []*cursor.Image) []group {
	var groups []group
	index := map[int]int{}
	for i, img := range images {
		n := img.Nominal()
		g, ok := index[n]
		if !ok {
			g = len(groups)
			index[n] = g
			groups = append(groups, group{size: n})
		}
		groups[g].indices = append(groups[g].indices, i)
	}
	return groups
}

// FrameName is base for single frames and base-NN (1-based, at least two
// digits) inside an animation.
func FrameName(base string, index, total int) string {
	if total <= 1 {
		return base
	}
	width := max(2, len(strconv.Itoa(total)))
	return fmt.Sprintf("%s-%0*d", base, width, index+1)
}

// WriteCursor writes one cursor below dir:
//
//	png/<size>/<frame>.png
//	config/<name>.cursor
//	svg/<frame>.svg
//
// Config lines are "<size> <xhot> <yhot> <png> [<delay>]"; delays are written
// only when some size has more than one frame.
func WriteCursor(dir, name string, images []*cursor.Image, delays []uint32) error {
	if len(images) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFrames, name)
	}
	if len(images) != len(delays) {
		return fmt.Errorf("%w: %s has %d frames and %d delays", ErrDelayMismatch, name, len(images), len(delays))
	}

	groups := groupBySize(images)
	animated := false
	for _, g := range groups {
		if len(g.indices) > 1 {
			animated = true
		}
	}

	var config strings.Builder
	largest := 0
	for gi, g := range groups {
		if g.size > groups[largest].size {
			largest = gi
		}
		sizeDir := strconv.Itoa(g.size)
		for fi, idx := range g.indices {
			img := images[idx]
			frame := FrameName(name, fi, len(g.indices))
			rel := "png/" + sizeDir + "/" + frame + ".png"
			if err := writePNG(filepath.Join(dir, filepath.FromSlash(rel)), img); err != nil {
				return err
			}

			fmt.Fprintf(&config, "%d %d %d %s", g.size, img.HotspotX, img.HotspotY, rel)
			if animated {
				fmt.Fprintf(&config, " %d", delays[idx])
			}
			config.WriteByte('\n')
		}
	}

	if err := writeFile(filepath.Join(dir, "config", name+".cursor"), []byte(config.String())); err != nil {
		return err
	}

	g := groups[largest]
	for fi, idx := range g.indices {
		frame := FrameName(name, fi, len(g.indices))
		svg, err := svgWrapper(images[idx])
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, "svg", frame+".svg"), svg); err != nil {
			return err
		}
	}

	slog.Debug("wrote source cursor", "name", name, "sizes", len(groups))
	return nil
}

// Alias is one cursorList line: alias name and the cursor it points at.
type Alias struct {
	Name   string
	Target string
}

// WriteCursorList writes dir/cursorList.
func WriteCursorList(dir string, aliases []Alias) error {
	var b strings.Builder
	for _, a := range aliases {
		fmt.Fprintf(&b, "%s %s\n", a.Name, a.Target)
	}
	return writeFile(filepath.Join(dir, "cursorList"), []byte(b.String()))
}

func encodePNG(img *cursor.Image) ([]byte, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*4 {
		return nil, fmt.Errorf("source: invalid %dx%d image with %d bytes", img.Width, img.Height, len(img.Pix))
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.NRGBA()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePNG(path string, img *cursor.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func svgWrapper(img *cursor.Image) ([]byte, error) {
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	w, h := img.Width, img.Height
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<image width="%d" height="%d" href="%s" /></svg>`+"\n",
		w, h, w, h, w, h, dataurl.EncodeBytes(data))
	return []byte(svg), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
