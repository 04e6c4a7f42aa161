package ui

import (
	"image"
	"image/color"

	"wristwx/hal"
)

// Window is a full-screen layer tree on a solid background.
type Window struct {
	bg    color.RGBA
	root  *Layer
	dirty bool
}

func NewWindow(size image.Point, bg color.RGBA) *Window {
	w := &Window{bg: bg, dirty: true}
	w.root = NewLayer(image.Rectangle{Max: size})
	w.root.win = w
	return w
}

// Root is the layer children are added to.
func (w *Window) Root() *Layer { return w.root }

func (w *Window) SetBackgroundColor(c color.RGBA) {
	w.bg = c
	w.dirty = true
}

func (w *Window) Dirty() bool { return w.dirty }

func (w *Window) Invalidate() { w.dirty = true }

// Render repaints the whole tree into fb when a layer asked for it and
// reports whether it did. The caller presents fb.
func (w *Window) Render(fb hal.Framebuffer) bool {
	if !w.dirty || fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return false
	}
	w.dirty = false
	fb.ClearRGB(w.bg.R, w.bg.G, w.bg.B)
	w.root.render(NewContext(fb))
	return true
}
