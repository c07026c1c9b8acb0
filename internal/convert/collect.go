package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/ani"
	"github.com/cam-per/ani2xcursor/cursor/ico"
)

// CollectSizes returns the sorted distinct nominal sizes stored in a cursor
// file, across every step of an animation.
func CollectSizes(path string) ([]int, error) {
	kind := KindOf(path)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if kind == KindANI {
		return collectANI(data)
	}
	images, err := ico.DecodeAll(data)
	if err != nil {
		return nil, err
	}
	return nominals(nil, images), nil
}

func collectANI(data []byte) ([]int, error) {
	anim, err := ani.Decode(data)
	if err != nil {
		return nil, err
	}

	var out []int
	for step := 0; uint64(step) < uint64(anim.NumSteps); step++ {
		frame, err := anim.StepFrame(step)
		if err != nil {
			return nil, err
		}
		images, err := ico.DecodeAll(frame.IconData)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		out = nominals(out, images)
	}
	return out, nil
}

func nominals(set []int, images []*cursor.Image) []int {
	for _, img := range images {
		if n := img.Nominal(); !slices.Contains(set, n) {
			set = append(set, n)
		}
	}
	slices.Sort(set)
	return set
}

// FileSizes is the size listing of one cursor file.
type FileSizes struct {
	Name  string
	Bytes int64
	Sizes []int
}

// CollectDir lists the sizes of every .ani and .cur file in dir, sorted by
// name, together with the union of all sizes. Unreadable files are logged and
// skipped.
func CollectDir(dir string) ([]FileSizes, []int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var (
		files []FileSizes
		all   []int
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || KindOf(entry.Name()) == KindUnknown {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, nil, err
		}

		found, err := CollectSizes(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("failed to read sizes", "file", entry.Name(), "err", err)
			continue
		}
		files = append(files, FileSizes{Name: entry.Name(), Bytes: info.Size(), Sizes: found})
		for _, n := range found {
			if !slices.Contains(all, n) {
				all = append(all, n)
			}
		}
	}
	slices.Sort(all)
	return files, all, nil
}
