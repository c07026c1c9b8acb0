// Package convert turns ANI and CUR files into per-size frame groups ready for
// a cursor theme writer.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/sizes"
)

var (
	ErrNoFrames        = errors.New("convert: no frames decoded")
	ErrUnsupportedType = errors.New("convert: unsupported file type")
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindANI
	KindCUR
)

func (k Kind) String() string {
	switch k {
	case KindANI:
		return "ani"
	case KindCUR:
		return "cur"
	}
	return "unknown"
}

// KindOf classifies a path by extension. Icons go through the cursor path and
// get a 0,0 hotspot.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ani":
		return KindANI
	case ".cur", ".ico":
		return KindCUR
	}
	return KindUnknown
}

type Frame struct {
	Image   *cursor.Image
	DelayMS uint32
}

// Group holds every playback step of one exported size, in step order.
type Group struct {
	Size   int
	Frames []Frame
}

type Result struct {
	Groups   []Group
	Animated bool

	Title  string
	Author string

	Warnings []string
}

// Images flattens the groups in export order.
func (r *Result) Images() []*cursor.Image {
	var out []*cursor.Image
	for _, g := range r.Groups {
		for _, f := range g.Frames {
			out = append(out, f.Image)
		}
	}
	return out
}

// Delays is parallel to Images.
func (r *Result) Delays() []uint32 {
	var out []uint32
	for _, g := range r.Groups {
		for _, f := range g.Frames {
			out = append(out, f.DelayMS)
		}
	}
	return out
}

// Sizes lists the group sizes in export order.
func (r *Result) Sizes() []int {
	out := make([]int, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Size
	}
	return out
}

func (r *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	slog.Warn(msg)
}

type Converter struct {
	Selection sizes.Selection
}

func New(sel sizes.Selection) *Converter {
	return &Converter{Selection: sel}
}

// ConvertFile reads path and converts it according to its extension.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	kind := KindOf(path)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("processing", "file", filepath.Base(path), "type", kind)

	var result *Result
	switch kind {
	case KindANI:
		result, err = c.ConvertANI(data)
	default:
		result, err = c.ConvertCUR(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return result, nil
}

func (c *Converter) emit(result *Result, steps [][]*cursor.Image, delays []uint32) error {
	picks, err := sizes.Plan(steps[0], c.Selection)
	if err != nil {
		return err
	}

	for _, pick := range picks {
		if pick.Rescale {
			source := steps[0][pick.Index].Nominal()
			slog.Info("rescaling", "from", source, "to", pick.Target)
		}

		group := Group{Size: pick.Target, Frames: make([]Frame, 0, len(steps))}
		for step, images := range steps {
			img, err := pick.Apply(images)
			if err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			group.Frames = append(group.Frames, Frame{Image: img, DelayMS: delays[step]})
		}
		result.Groups = append(result.Groups, group)
	}

	for _, g := range result.Groups {
		slog.Debug("exported size", "size", g.Size, "frames", len(g.Frames))
	}
	return nil
}
