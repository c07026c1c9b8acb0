package ani

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/cam-per/ani2xcursor/cursor/riff"
	"github.com/cam-per/ani2xcursor/utils"
)

type Decoder struct {
	reader *riff.Reader
	anim   Animation
}

// NewDecoder reads the whole stream and decodes it as an ANI file.
func NewDecoder(r io.Reader) (*Decoder, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	decoder := &Decoder{reader: riff.NewReader(data)}
	if err := decoder.decode(); err != nil {
		return nil, err
	}
	return decoder, nil
}

// Decode parses an ANI file held in memory.
func Decode(data []byte) (*Animation, error) {
	decoder := &Decoder{reader: riff.NewReader(data)}
	if err := decoder.decode(); err != nil {
		return nil, err
	}
	return decoder.Animation(), nil
}

func (decoder *Decoder) Animation() *Animation { return &decoder.anim }

func (decoder *Decoder) decode() error {
	reader := decoder.reader
	if !reader.Valid() {
		return fmt.Errorf("%w: %w", ErrNotANI, reader.Err())
	}
	if reader.FormType() != "ACON" {
		return fmt.Errorf("%w: form type %q", ErrNotANI, reader.FormType())
	}

	anim := &decoder.anim
	anim.DisplayRate = DefaultJiffies

	var anih, rate, seq, fram, info *riff.Chunk
	reader.Walk(reader.Root().Data, func(chunk riff.Chunk) bool {
		switch {
		case chunk.ID == "anih":
			anih = &chunk
		case chunk.ID == "rate":
			rate = &chunk
		case chunk.ID == "seq ":
			seq = &chunk
		case chunk.ID == "LIST" && chunk.FormType == "fram":
			fram = &chunk
		case chunk.ID == "LIST" && chunk.FormType == "INFO":
			info = &chunk
		}
		return true
	})
	decoder.collectWarnings()

	if anih == nil {
		return ErrMissingHeader
	}
	if err := decoder.decodeHeader(anih.Data); err != nil {
		return err
	}
	slog.Debug("ani: header",
		"frames", anim.NumFrames,
		"steps", anim.NumSteps,
		"rate", anim.DisplayRate,
		"flags", fmt.Sprintf("%#x", anim.Flags),
	)

	if rate != nil {
		anim.Rates = decoder.decodeTable("rate", rate.Data)
	}
	if seq != nil {
		anim.Sequence = decoder.decodeTable("seq ", seq.Data)
	}
	if info != nil {
		meta := reader.ReadInfo(info.Data)
		anim.Title, anim.Author = meta.Title(), meta.Author()
	}

	if fram == nil {
		return ErrMissingFrames
	}
	decoder.decodeFrames(fram.Data)
	decoder.collectWarnings()
	if len(anim.Frames) == 0 {
		return ErrNoFrames
	}

	decoder.applyDelays()
	slog.Debug("ani: decoded", "frames", len(anim.Frames), "steps", anim.NumSteps)
	return nil
}

func (decoder *Decoder) decodeHeader(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: %d bytes, need %d", ErrShortHeader, len(data), headerSize)
	}

	var h header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return err
	}

	if h.Frames == 0 {
		return fmt.Errorf("%w: anih declares 0 frames", ErrNoFrames)
	}

	anim := &decoder.anim
	anim.NumFrames = h.Frames
	anim.NumSteps = h.Steps
	anim.DisplayRate = h.Rate
	anim.Flags = h.Flags

	if anim.NumSteps == 0 {
		anim.NumSteps = anim.NumFrames
	}
	if anim.DisplayRate == 0 {
		anim.DisplayRate = DefaultJiffies
	}
	return nil
}

// decodeTable reads up to NumSteps u32 entries of a rate or seq chunk.
func (decoder *Decoder) decodeTable(name string, data []byte) []uint32 {
	steps := int(decoder.anim.NumSteps)
	entries := len(data) / 4
	if entries < steps {
		decoder.warn("ani: %q chunk has %d entries, expected %d", name, entries, steps)
	}

	r := utils.NewByteReader(data)
	table := make([]uint32, 0, min(entries, steps))
	for i := 0; i < entries && i < steps; i++ {
		v, err := r.Uint32()
		if err != nil {
			break
		}
		table = append(table, v)
	}
	return table
}

func (decoder *Decoder) decodeFrames(data []byte) {
	anim := &decoder.anim
	anim.Frames = make([]Frame, 0, min(int(anim.NumFrames), len(data)/8))

	decoder.reader.Walk(data, func(chunk riff.Chunk) bool {
		if chunk.ID != "icon" {
			return true
		}
		anim.Frames = append(anim.Frames, Frame{IconData: bytes.Clone(chunk.Data)})
		slog.Debug("ani: icon frame", "index", len(anim.Frames)-1, "bytes", len(chunk.Data))
		return true
	})

	if uint64(len(anim.Frames)) != uint64(anim.NumFrames) {
		decoder.warn("ani: expected %d frames, found %d", anim.NumFrames, len(anim.Frames))
	}
}

// applyDelays stores rates on frames. Without a sequence, step and frame
// indices coincide. With one, each step's rate is written to the frame it
// shows, so later steps overwrite earlier ones on shared frames.
func (decoder *Decoder) applyDelays() {
	anim := &decoder.anim
	fallback := JiffiesToMS(anim.DisplayRate)

	for i := range anim.Frames {
		if i < len(anim.Rates) {
			anim.Frames[i].DelayMS = JiffiesToMS(anim.Rates[i])
		} else {
			anim.Frames[i].DelayMS = fallback
		}
	}

	if len(anim.Sequence) == 0 || len(anim.Rates) == 0 {
		return
	}
	for step := 0; step < len(anim.Rates) && step < len(anim.Sequence); step++ {
		idx := anim.Sequence[step]
		if uint64(idx) < uint64(len(anim.Frames)) {
			anim.Frames[idx].DelayMS = JiffiesToMS(anim.Rates[step])
		}
	}
}

func (decoder *Decoder) collectWarnings() {
	decoder.anim.Warnings = append(decoder.anim.Warnings, decoder.reader.Warnings...)
	decoder.reader.Warnings = nil
}

func (decoder *Decoder) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	decoder.anim.Warnings = append(decoder.anim.Warnings, msg)
	slog.Warn(msg)
}
