// Package sizes picks which nominal sizes of a cursor get exported and
// synthesizes the missing ones.
package sizes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Filter uint8

const (
	All Filter = iota
	Max
	Specific
)

func (f Filter) String() string {
	switch f {
	case All:
		return "all"
	case Max:
		return "max"
	case Specific:
		return "specific"
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

// MaxTarget bounds the sizes accepted from configuration.
const MaxTarget = 256

var (
	ErrInvalidTarget   = errors.New("sizes: invalid target size")
	ErrNothingSelected = errors.New("sizes: no sizes selected")
)

type Selection struct {
	Filter Filter
	Sizes  []int // Specific only, in request order
}

func (s Selection) String() string {
	if s.Filter != Specific {
		return s.Filter.String()
	}
	parts := make([]string, len(s.Sizes))
	for i, size := range s.Sizes {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, ",")
}

// ParseSelection accepts "all", "max" or a comma separated list of sizes in 1..256.
func ParseSelection(value string) (Selection, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "", "all":
		return Selection{Filter: All}, nil
	case "max":
		return Selection{Filter: Max}, nil
	}

	var sel Selection
	sel.Filter = Specific
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		size, err := strconv.Atoi(field)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %q", ErrInvalidTarget, field)
		}
		if size < 1 || size > MaxTarget {
			return Selection{}, fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidTarget, size, MaxTarget)
		}
		sel.Sizes = append(sel.Sizes, size)
	}
	if len(sel.Sizes) == 0 {
		return Selection{}, fmt.Errorf("%w: empty list", ErrInvalidTarget)
	}
	return sel, nil
}
