package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/ani"
	"github.com/cam-per/ani2xcursor/cursor/ico"
	"github.com/cam-per/ani2xcursor/cursor/sizes"
	"github.com/cam-per/ani2xcursor/internal/convert"
)

// Options control which size a preview shows and how much it is magnified.
type Options struct {
	Selection sizes.Selection
	Scale     int
}

// FramesANI picks the first, middle and last step of an animation at the
// preview size chosen on the first step.
func FramesANI(data []byte, sel sizes.Selection) ([]*cursor.Image, error) {
	anim, err := ani.Decode(data)
	if err != nil {
		return nil, err
	}
	if anim.NumSteps == 0 {
		return nil, ErrNoFrames
	}

	decodeStep := func(step int) ([]*cursor.Image, error) {
		frame, err := anim.StepFrame(step)
		if err != nil {
			return nil, err
		}
		return ico.DecodeAll(frame.IconData)
	}

	first, err := decodeStep(0)
	if err != nil {
		return nil, err
	}
	idx, err := sizes.PreviewIndex(first, sel)
	if err != nil {
		return nil, err
	}
	target := first[idx].Nominal()

	last := int(anim.NumSteps) - 1
	var frames []*cursor.Image
	for _, step := range slices.Compact([]int{0, last / 2, last}) {
		images := first
		if step != 0 {
			if images, err = decodeStep(step); err != nil {
				return nil, err
			}
		}
		frames = append(frames, images[sizes.FindClosest(images, target)])
	}
	return frames, nil
}

// FramesCUR returns the preview-size image of a static cursor.
func FramesCUR(data []byte, sel sizes.Selection) ([]*cursor.Image, error) {
	images, err := ico.DecodeAll(data)
	if err != nil {
		return nil, err
	}
	idx, err := sizes.PreviewIndex(images, sel)
	if err != nil {
		return nil, err
	}
	return []*cursor.Image{images[idx]}, nil
}

// Render builds the preview sheet of one cursor file.
func Render(path string, opts Options) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var frames []*cursor.Image
	switch convert.KindOf(path) {
	case convert.KindANI:
		frames, err = FramesANI(data, opts.Selection)
	case convert.KindCUR:
		frames, err = FramesCUR(data, opts.Selection)
	default:
		err = fmt.Errorf("%w: %s", convert.ErrUnsupportedType, path)
	}
	if err != nil {
		return nil, err
	}
	return Compose(frames, opts.Scale)
}

// Name flattens a path relative to the input directory into a file name.
func Name(rel string) string {
	rel = strings.ReplaceAll(filepath.ToSlash(rel), "\\", "/")
	return strings.ReplaceAll(rel, "/", "__") + ".png"
}

type Result struct {
	Generated int
	Failed    int
	// Guesses maps a role to the first file whose name suggests it.
	Guesses map[string]string
}

// GenerateDir writes a preview for every cursor file below inputDir. Files
// that fail to decode get a placeholder and are counted as failed.
func GenerateDir(inputDir, outputDir string, opts Options) (*Result, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("preview: skipping", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			if path != inputDir && path == outputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && convert.KindOf(path) != convert.KindUnknown {
			rel, err := filepath.Rel(inputDir, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	result := &Result{Guesses: map[string]string{}}
	for _, rel := range files {
		sheet, err := Render(filepath.Join(inputDir, filepath.FromSlash(rel)), opts)
		if err != nil {
			slog.Warn("preview decode failed", "file", rel, "err", err)
			sheet = Placeholder(filepath.Base(rel))
			result.Failed++
		}
		if err := WritePNG(filepath.Join(outputDir, Name(rel)), sheet); err != nil {
			return nil, err
		}
		result.Generated++

		stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		if role := GuessRole(stem); role != "" {
			if _, ok := result.Guesses[role]; !ok {
				result.Guesses[role] = rel
			}
		}
	}
	return result, nil
}

func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
