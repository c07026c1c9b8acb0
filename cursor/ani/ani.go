// Package ani decodes Windows animated cursors (RIFF form ACON).
package ani

import (
	"encoding/binary"
	"fmt"
)

// DefaultJiffies is the display rate used when anih declares zero (about 167 ms).
const DefaultJiffies = 10

// anih flag bits.
const (
	FlagIcon     uint32 = 0x1 // frames are ICO/CUR data rather than raw bitmaps
	FlagSequence uint32 = 0x2 // a seq chunk is present
)

type header struct {
	Size     uint32
	Frames   uint32
	Steps    uint32
	Width    uint32
	Height   uint32
	BitCount uint32
	Planes   uint32
	Rate     uint32
	Flags    uint32
}

var headerSize = binary.Size(header{})

// Frame is one stored image of an animation. IconData is a private copy of the
// icon chunk and holds a complete ICO/CUR file.
type Frame struct {
	IconData []byte
	DelayMS  uint32

	// Filled in by the converter once the icon has been decoded.
	HotspotX, HotspotY uint16
	Width, Height      int
}

// Animation is a parsed ANI file. A step is a position in playback order,
// a frame a stored image; Sequence maps steps to frames (identity when empty).
type Animation struct {
	Frames      []Frame
	Sequence    []uint32
	Rates       []uint32 // per-step jiffies from the rate chunk, possibly shorter than NumSteps
	NumFrames   uint32
	NumSteps    uint32
	DisplayRate uint32
	Flags       uint32

	Title  string
	Author string

	Warnings []string
}

// JiffiesToMS converts 1/60 s ticks to milliseconds, rounding half up.
func JiffiesToMS(jiffies uint32) uint32 {
	return uint32((uint64(jiffies)*1000 + 30) / 60)
}

// FrameIndex resolves a step to the index of the frame it shows.
// Steps beyond a short sequence map to themselves.
func (anim *Animation) FrameIndex(step int) (int, error) {
	if step < 0 || uint64(step) >= uint64(anim.NumSteps) {
		return -1, fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, step, anim.NumSteps)
	}
	idx := step
	if step < len(anim.Sequence) {
		idx = int(anim.Sequence[step])
	}
	if idx < 0 || idx >= len(anim.Frames) {
		return -1, fmt.Errorf("%w: step %d refers to frame %d of %d", ErrFrameOutOfRange, step, idx, len(anim.Frames))
	}
	return idx, nil
}

// StepFrame returns the frame shown at step.
func (anim *Animation) StepFrame(step int) (*Frame, error) {
	idx, err := anim.FrameIndex(step)
	if err != nil {
		return nil, err
	}
	return &anim.Frames[idx], nil
}

// StepDelayMS is the delay of the frame shown at step. Delays live on frames,
// so a frame shared by several steps carries the last rate applied to it.
func (anim *Animation) StepDelayMS(step int) (uint32, error) {
	frame, err := anim.StepFrame(step)
	if err != nil {
		return 0, err
	}
	return frame.DelayMS, nil
}

// StepRateMS is the rate given to step itself: its rate entry, or the
// header's display rate when the rate table is shorter. Unlike StepDelayMS it
// is not affected by other steps showing the same frame.
func (anim *Animation) StepRateMS(step int) (uint32, error) {
	if step < 0 || uint64(step) >= uint64(anim.NumSteps) {
		return 0, fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, step, anim.NumSteps)
	}
	if step < len(anim.Rates) {
		return JiffiesToMS(anim.Rates[step]), nil
	}
	return JiffiesToMS(anim.DisplayRate), nil
}

// resolvableSteps bounds the steps that can map to a frame. A step past both
// the sequence and the frame list maps to itself and always fails.
func (anim *Animation) resolvableSteps() int {
	n := max(len(anim.Sequence), len(anim.Frames))
	if uint64(anim.NumSteps) < uint64(n) {
		n = int(anim.NumSteps)
	}
	return n
}

// TotalDurationMS sums the delays of every step. Steps that do not resolve to a
// frame contribute nothing.
func (anim *Animation) TotalDurationMS() uint32 {
	var total uint32
	for step := 0; step < anim.resolvableSteps(); step++ {
		if delay, err := anim.StepDelayMS(step); err == nil {
			total += delay
		}
	}
	return total
}

// Animated reports whether playback has more than one step.
func (anim *Animation) Animated() bool { return anim.NumSteps > 1 }
