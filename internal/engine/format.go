package engine

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks the cut side of a truncated value.
const Ellipsis = '…'

// Align is the alignment mode of a pending format directive.
type Align int

const (
	// AlignNone leaves the value untouched.
	AlignNone Align = iota
	// AlignLeft pads on the right: %<(w).
	AlignLeft
	// AlignLeftTrunc pads on the right or cuts the tail: %<(w,trunc).
	AlignLeftTrunc
	// AlignRight pads on the left: %>(w).
	AlignRight
	// AlignRightTrunc pads on the left or cuts the tail: %>(w,trunc).
	AlignRightTrunc
	// AlignRightLTrunc pads on the left or cuts the head: %>(w,ltrunc).
	AlignRightLTrunc
)

func (a Align) String() string {
	switch a {
	case AlignNone:
		return "none"
	case AlignLeft:
		return "left"
	case AlignLeftTrunc:
		return "left-trunc"
	case AlignRight:
		return "right"
	case AlignRightTrunc:
		return "right-trunc"
	case AlignRightLTrunc:
		return "right-ltrunc"
	default:
		return "unknown"
	}
}

// Format is the output format applied to the next key placeholder.
// The zero value means no formatting.
type Format struct {
	Align Align
	// Width is the field width in runes. It is positive unless Align is AlignNone.
	Width int
}

// Truncates reports whether the format cuts values longer than Width.
func (f Format) Truncates() bool {
	switch f.Align {
	case AlignLeftTrunc, AlignRightTrunc, AlignRightLTrunc:
		return true
	}
	return false
}

// Render applies the format to value. Widths are counted in runes.
func (f Format) Render(value string) string {
	if f.Align == AlignNone {
		return value
	}

	n := utf8.RuneCountInString(value)
	if f.Truncates() && n > f.Width {
		runes := []rune(value)
		keep := f.Width - 1
		if f.Align == AlignRightLTrunc {
			return string(Ellipsis) + string(runes[n-keep:])
		}
		return string(runes[:keep]) + string(Ellipsis)
	}

	padding := strings.Repeat(" ", max(f.Width-n, 0))
	switch f.Align {
	case AlignLeft, AlignLeftTrunc:
		return value + padding
	default:
		return padding + value
	}
}

// Measure returns the rune count Render produces for a value of n runes.
func (f Format) Measure(n int) int {
	switch {
	case f.Align == AlignNone:
		return n
	case f.Truncates():
		return f.Width
	default:
		return max(n, f.Width)
	}
}
