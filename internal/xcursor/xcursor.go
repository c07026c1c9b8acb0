// Package xcursor reads and writes X11 Xcursor files and lays out cursor
// theme directories.
package xcursor

import (
	"encoding/binary"
	"errors"
)

const (
	Magic        = "Xcur"
	FileVersion  = 0x00010000
	ImageType    = 0xfffd0002
	ImageVersion = 1
	DefaultDelay = 100 // ms, used when an image has no delay
	maxDimension = 0x7fff
)

var (
	ErrNoImages  = errors.New("xcursor: no images")
	ErrBadMagic  = errors.New("xcursor: bad magic")
	ErrTooLarge  = errors.New("xcursor: image dimensions too large")
	ErrTruncated = errors.New("xcursor: truncated file")
)

type fileHeader struct {
	Magic   [4]byte
	Size    uint32
	Version uint32
	NTOC    uint32
}

type tocEntry struct {
	Type     uint32
	Subtype  uint32
	Position uint32
}

type imageHeader struct {
	Size    uint32
	Type    uint32
	Subtype uint32 // nominal size
	Version uint32
	Width   uint32
	Height  uint32
	XHot    uint32
	YHot    uint32
	Delay   uint32
}

var (
	fileHeaderSize  = binary.Size(fileHeader{})
	tocEntrySize    = binary.Size(tocEntry{})
	imageHeaderSize = binary.Size(imageHeader{})
)
