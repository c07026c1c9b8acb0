package convert

import (
	"fmt"
	"log/slog"

	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/ani"
	"github.com/cam-per/ani2xcursor/cursor/ico"
)

// ConvertANI decodes every playback step of an animated cursor. The size
// decision is made on the first step and applied to every step so that all
// frames of one size share their dimensions.
func (c *Converter) ConvertANI(data []byte) (*Result, error) {
	anim, err := ani.Decode(data)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Animated: anim.Animated(),
		Title:    anim.Title,
		Author:   anim.Author,
		Warnings: append([]string(nil), anim.Warnings...),
	}

	steps, delays, err := decodeSteps(anim, result)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, ErrNoFrames
	}

	numSizes := len(steps[0])
	for _, images := range steps[1:] {
		if len(images) != numSizes {
			result.warn("convert: steps carry different numbers of sizes, using the first size only")
			numSizes = 1
			break
		}
	}
	if numSizes < len(steps[0]) {
		for i := range steps {
			steps[i] = steps[i][:numSizes]
		}
	}

	if err := c.emit(result, steps, delays); err != nil {
		return nil, err
	}
	if len(result.Groups) == 0 {
		return nil, ErrNoFrames
	}
	return result, nil
}

func decodeSteps(anim *ani.Animation, result *Result) ([][]*cursor.Image, []uint32, error) {
	capacity := min(uint64(anim.NumSteps), uint64(len(anim.Frames)+len(anim.Sequence)))
	steps := make([][]*cursor.Image, 0, capacity)
	delays := make([]uint32, 0, capacity)

	for step := 0; uint64(step) < uint64(anim.NumSteps); step++ {
		frame, err := anim.StepFrame(step)
		if err != nil {
			return nil, nil, err
		}

		decoder, err := ico.Parse(frame.IconData)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: %w", step, err)
		}
		images, err := decoder.DecodeAll()
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: %w", step, err)
		}
		result.Warnings = append(result.Warnings, decoder.Warnings...)
		if len(images) == 0 {
			return nil, nil, fmt.Errorf("%w: step %d", ErrNoFrames, step)
		}

		first := images[0]
		frame.HotspotX, frame.HotspotY = first.HotspotX, first.HotspotY
		frame.Width, frame.Height = first.Width, first.Height

		slog.Debug("step decoded", "step", step, "sizes", len(images), "delay_ms", frame.DelayMS)
		steps = append(steps, images)
		delays = append(delays, frame.DelayMS)
	}
	return steps, delays, nil
}
