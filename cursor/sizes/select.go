package sizes

import (
	"slices"

	"github.com/cam-per/ani2xcursor/cursor"
)

// SelectIndices returns the image indices a selection exports.
//
// All keeps every index including duplicate sizes. Max is index 0: inputs are
// not re-sorted, the first directory entry stands for the largest. Specific
// maps each target to the closest nominal size and never lists an index twice.
func SelectIndices(images []*cursor.Image, sel Selection) []int {
	if len(images) == 0 {
		return nil
	}

	switch sel.Filter {
	case All:
		indices := make([]int, len(images))
		for i := range indices {
			indices[i] = i
		}
		return indices
	case Max:
		return []int{0}
	case Specific:
		var indices []int
		for _, target := range DedupTargets(sel.Sizes) {
			idx := FindClosest(images, target)
			if !slices.Contains(indices, idx) {
				indices = append(indices, idx)
			}
		}
		return indices
	}
	return nil
}

// DedupTargets drops repeated sizes and keeps the first occurrence order.
func DedupTargets(targets []int) []int {
	out := make([]int, 0, len(targets))
	for _, t := range targets {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// FindExact returns the first image whose nominal size equals target.
func FindExact(images []*cursor.Image, target int) (int, bool) {
	for i, img := range images {
		if img.Nominal() == target {
			return i, true
		}
	}
	return 0, false
}

// FindClosest returns the image with the smallest nominal distance to target,
// the first one on ties. It returns 0 for an empty list.
func FindClosest(images []*cursor.Image, target int) int {
	best, bestDiff := 0, -1
	for i, img := range images {
		diff := img.Nominal() - target
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// Pick is one exported size: the source index and, for Specific selections
// without an exact match, the size to rescale it to.
type Pick struct {
	Index   int
	Target  int
	Rescale bool
}

// Plan turns a selection into picks for one representative set of images.
// Specific selections yield one pick per distinct target, exact matches
// reused as they are.
func Plan(images []*cursor.Image, sel Selection) ([]Pick, error) {
	if len(images) == 0 {
		return nil, ErrNothingSelected
	}

	var picks []Pick
	if sel.Filter == Specific {
		for _, target := range DedupTargets(sel.Sizes) {
			if target <= 0 {
				return nil, ErrInvalidTarget
			}
			if idx, ok := FindExact(images, target); ok {
				picks = append(picks, Pick{Index: idx, Target: target})
				continue
			}
			picks = append(picks, Pick{Index: FindClosest(images, target), Target: target, Rescale: true})
		}
	} else {
		for _, idx := range SelectIndices(images, sel) {
			picks = append(picks, Pick{Index: idx, Target: images[idx].Nominal()})
		}
	}

	if len(picks) == 0 {
		return nil, ErrNothingSelected
	}
	return picks, nil
}

// Apply produces the image of a pick from one set of images.
func (p Pick) Apply(images []*cursor.Image) (*cursor.Image, error) {
	img := images[p.Index]
	if p.Rescale {
		return Rescale(img, p.Target)
	}
	return img, nil
}

// PreviewIndex returns the selected index with the largest nominal size.
func PreviewIndex(images []*cursor.Image, sel Selection) (int, error) {
	indices := SelectIndices(images, sel)
	if len(indices) == 0 {
		return 0, ErrNothingSelected
	}

	best := indices[0]
	for _, idx := range indices[1:] {
		if images[idx].Nominal() > images[best].Nominal() {
			best = idx
		}
	}
	return best, nil
}
