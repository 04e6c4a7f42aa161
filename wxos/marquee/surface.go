package marquee

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
)

type Overflow uint8

const (
	// OverflowTrailingEllipsis ends text that does not fit with "...".
	OverflowTrailingEllipsis Overflow = iota
)

type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Surface is what a marquee draws on.
//
// Rectangles are in the marquee's local coordinates: x=0 is the left edge
// of the frame passed to Create, so the bound-offset margin sits at negative
// x. Rectangles may extend past or start before the layer; the surface
// clips at the layer.
type Surface interface {
	FillRect(r image.Rectangle, c color.RGBA)
	DrawText(text string, font tinyfont.Fonter, r image.Rectangle, o Overflow, a Alignment, c color.RGBA)
}

// Metrics returns the single-line width of text laid out in a probe
// rectangle. It must be deterministic for a (text, font) pair.
type Metrics interface {
	Measure(text string, font tinyfont.Fonter, probeW, probeH int) int
}

// Invalidator asks the host to call Draw at its next repaint.
type Invalidator interface {
	MarkDirty()
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func()

func (f InvalidatorFunc) MarkDirty() { f() }
