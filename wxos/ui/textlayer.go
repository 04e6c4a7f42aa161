package ui

import (
	"image"
	"image/color"

	"wristwx/wxos/fonts"
	"wristwx/wxos/marquee"

	"tinygo.org/x/tinyfont"
)

// TextLayer draws one line of text, cut with an ellipsis when too wide.
type TextLayer struct {
	layer *Layer
	text  string
	font  tinyfont.Fonter
	fg    color.RGBA
	bg    color.RGBA
	align marquee.Alignment
}

// NewTextLayer is black system-font text on white, left aligned.
func NewTextLayer(frame image.Rectangle) *TextLayer {
	t := &TextLayer{
		font: fonts.System,
		fg:   color.RGBA{A: 0xFF},
		bg:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
	t.layer = NewLayer(frame)
	t.layer.SetUpdateProc(t.draw)
	return t
}

func (t *TextLayer) Layer() *Layer { return t.layer }

func (t *TextLayer) Text() string { return t.text }

func (t *TextLayer) SetText(s string) {
	t.text = s
	t.layer.MarkDirty()
}

func (t *TextLayer) SetFont(f tinyfont.Fonter) {
	t.font = f
	t.layer.MarkDirty()
}

func (t *TextLayer) SetTextColor(c color.RGBA) {
	t.fg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetBackgroundColor(c color.RGBA) {
	t.bg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetAlignment(a marquee.Alignment) {
	t.align = a
	t.layer.MarkDirty()
}

func (t *TextLayer) draw(l *Layer, c *Context) {
	b := l.Bounds()
	c.FillRect(b, t.bg)
	c.DrawText(t.text, t.font, b, marquee.OverflowTrailingEllipsis, t.align, t.fg)
}
