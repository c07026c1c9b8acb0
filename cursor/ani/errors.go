package ani

import "errors"

var (
	ErrNotANI          = errors.New("ani: not an ACON RIFF file")
	ErrMissingHeader   = errors.New("ani: missing anih chunk")
	ErrShortHeader     = errors.New("ani: anih chunk too small")
	ErrNoFrames        = errors.New("ani: no frames")
	ErrMissingFrames   = errors.New("ani: missing LIST fram chunk")
	ErrStepOutOfRange  = errors.New("ani: step index out of range")
	ErrFrameOutOfRange = errors.New("ani: frame index out of range")
)
