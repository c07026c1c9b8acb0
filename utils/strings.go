package utils

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// CString is a fixed-size or chunk-sized byte string terminated by the first NUL.
type CString []byte

func (c CString) NullTerminateBytes() []byte {
	i := bytes.IndexByte(c, 0)
	switch {
	case i == -1:
		return c
	case i == 0:
		return nil
	default:
		return c[:i]
	}
}

func (c CString) String() string { return string(c.NullTerminateBytes()) }

// Decode converts the string from a legacy code page, falling back to the raw bytes.
func (c CString) Decode(encoding *charmap.Charmap) string {
	buf, err := encoding.NewDecoder().Bytes(c.NullTerminateBytes())
	if err != nil {
		return c.String()
	}
	return string(buf)
}

// Text decodes Windows-1252 text as written by Windows resource tools and trims padding.
func (c CString) Text() string {
	return strings.TrimSpace(c.Decode(charmap.Windows1252))
}
