package convert

import (
	"github.com/cam-per/ani2xcursor/cursor"
	"github.com/cam-per/ani2xcursor/cursor/ico"
)

// ConvertCUR decodes every image of a static cursor or icon. Static frames
// carry a zero delay.
func (c *Converter) ConvertCUR(data []byte) (*Result, error) {
	decoder, err := ico.Parse(data)
	if err != nil {
		return nil, err
	}
	images, err := decoder.DecodeAll()
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: append([]string(nil), decoder.Warnings...)}
	if err := c.emit(result, [][]*cursor.Image{images}, []uint32{0}); err != nil {
		return nil, err
	}
	return result, nil
}
