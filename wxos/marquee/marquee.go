// Package marquee implements single-line text that scrolls horizontally
// when it does not fit its frame.
//
// A Registry owns every live Marquee and advances them together from one
// periodic Tick. Drawing is a separate pass: the host calls Draw when a
// marquee has asked to be redrawn. Neither is safe for concurrent use; the
// owner calls both from one goroutine.
package marquee

import (
	"errors"
	"image"
	"image/color"

	"wristwx/wxos/fonts"

	"tinygo.org/x/tinyfont"
)

var (
	ErrInvalidFrame = errors.New("marquee: empty frame")
	ErrRegistryFull = errors.New("marquee: registry full")
)

// Style is the font and colours of a marquee.
type Style struct {
	Font       tinyfont.Fonter
	Text       color.RGBA
	Background color.RGBA
}

// DefaultStyle is black system-font text on white.
func DefaultStyle() Style {
	return Style{
		Font:       fonts.System,
		Text:       color.RGBA{A: 0xFF},
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// State is the phase of a marquee's scroll cycle, derived from its counters.
type State uint8

const (
	StateSettling State = iota
	StateScrolling
	StateWrapping
	StateStatic
)

func (s State) String() string {
	switch s {
	case StateSettling:
		return "settling"
	case StateScrolling:
		return "scrolling"
	case StateWrapping:
		return "wrapping"
	case StateStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Marquee is one scrolling text widget. Handles stay valid after Destroy;
// every method on a destroyed marquee is a no-op.
type Marquee struct {
	reg *Registry

	// prev walks towards older instances; next only patches removals.
	prev, next *Marquee

	frame image.Rectangle
	layer image.Rectangle

	text  []byte
	style Style
	inv   Invalidator

	// width is the measured text width, -1 until the next Draw measures it.
	width     int
	offset    int
	countdown int

	dead     bool
	released bool
}

// SetText copies s into the marquee and restarts its cycle. Equal text is
// not short-circuited.
func (m *Marquee) SetText(s string) {
	if m.gone() {
		return
	}
	m.text = append(m.text[:0], s...)
	m.MarkDirty()
}

// SetFont switches the font and restarts the cycle.
func (m *Marquee) SetFont(f tinyfont.Fonter) {
	if m.gone() {
		return
	}
	m.style.Font = f
	m.MarkDirty()
}

// SetTextColor changes the text colour and restarts the cycle.
func (m *Marquee) SetTextColor(c color.RGBA) {
	if m.gone() {
		return
	}
	m.style.Text = c
	m.MarkDirty()
}

// SetBackgroundColor changes the fill colour and restarts the cycle.
func (m *Marquee) SetBackgroundColor(c color.RGBA) {
	if m.gone() {
		return
	}
	m.style.Background = c
	m.MarkDirty()
}

// MarkDirty forgets the measured width, rewinds the scroll and asks the host
// for a redraw.
func (m *Marquee) MarkDirty() {
	if m.gone() {
		return
	}
	m.width = -1
	m.offset = 0
	m.countdown = m.reg.cfg.SettleTicks
	m.invalidate()
}

// Destroy removes the marquee from its registry and drops its text.
// Calling it again is harmless. During Registry.Tick the removal happens
// once the walk is done.
func (m *Marquee) Destroy() {
	if m.gone() {
		return
	}
	m.reg.destroy(m)
}

// Alive reports whether Destroy has not been called.
func (m *Marquee) Alive() bool { return !m.gone() }

// Text returns a copy of the current text.
func (m *Marquee) Text() string { return string(m.text) }

func (m *Marquee) Font() tinyfont.Fonter { return m.style.Font }

func (m *Marquee) Style() Style { return m.style }

// Frame is the rectangle passed to Create.
func (m *Marquee) Frame() image.Rectangle { return m.frame }

// LayerFrame is Frame widened to the left by the bound offset.
func (m *Marquee) LayerFrame() image.Rectangle { return m.layer }

// Bounds is LayerFrame in local coordinates.
func (m *Marquee) Bounds() image.Rectangle {
	return image.Rect(-m.reg.cfg.BoundOffset, 0, m.frame.Dx(), m.frame.Dy())
}

// ContentWidth is the cached text width, or -1 when unmeasured.
func (m *Marquee) ContentWidth() int { return m.width }

// ScrollOffset is how many pixels the text has moved left since the last reset.
func (m *Marquee) ScrollOffset() int { return m.offset }

func (m *Marquee) SettleCountdown() int { return m.countdown }

// State reports the current phase. An unmeasured marquee counts as settling.
func (m *Marquee) State() State {
	switch {
	case m.width >= 0 && m.fits():
		return StateStatic
	case m.countdown > 0 || m.width < 0:
		return StateSettling
	case m.offset > m.width-m.layer.Dx()+m.reg.cfg.Gap:
		return StateWrapping
	default:
		return StateScrolling
	}
}

func (m *Marquee) gone() bool { return m == nil || m.reg == nil || m.dead || m.released }

// fits reports whether the measured text is drawn statically.
func (m *Marquee) fits() bool {
	return m.width < m.layer.Dx()-m.reg.cfg.BoundOffset
}

func (m *Marquee) scrolls() bool { return m.width >= 0 && !m.fits() }

func (m *Marquee) invalidate() {
	if m.inv != nil {
		m.inv.MarkDirty()
	}
}
