// Package ui is the small layer toolkit the watch app renders with.
//
// A Window owns a tree of Layers. Each layer draws through a Context: a
// view of the framebuffer translated to the layer's drawing origin and
// clipped to its frame.
package ui

import (
	"image"
	"image/color"

	"wristwx/hal"
	"wristwx/wxos/marquee"

	"tinygo.org/x/tinyfont"
)

// Clear is the fully transparent colour; filling with it draws nothing.
var Clear = color.RGBA{}

// Context draws into an RGB565 framebuffer.
type Context struct {
	fb     hal.Framebuffer
	origin image.Point     // screen position of local (0, 0)
	clip   image.Rectangle // screen coordinates
}

// NewContext returns a context covering the whole framebuffer.
func NewContext(fb hal.Framebuffer) *Context {
	c := &Context{fb: fb}
	if fb != nil && fb.Format() == hal.PixelFormatRGB565 {
		c.clip = image.Rect(0, 0, fb.Width(), fb.Height())
	}
	return c
}

// Sub returns a context for a child frame given in local coordinates.
// Drawing origin is frame.Min shifted by offset; clipping is at frame.
func (c *Context) Sub(frame image.Rectangle, offset image.Point) *Context {
	screen := frame.Add(c.origin)
	return &Context{
		fb:     c.fb,
		origin: screen.Min.Add(offset),
		clip:   c.clip.Intersect(screen),
	}
}

// Clip returns the visible area in local coordinates.
func (c *Context) Clip() image.Rectangle { return c.clip.Sub(c.origin) }

func (c *Context) FillRect(r image.Rectangle, col color.RGBA) {
	if col.A == 0 || c.fb == nil {
		return
	}
	r = r.Add(c.origin).Intersect(c.clip)
	if r.Empty() {
		return
	}
	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	pixel := hal.RGB565(col.R, col.G, col.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y*stride + r.Min.X*2
		for x := 0; x < r.Dx(); x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func (c *Context) DrawText(text string, font tinyfont.Fonter, r image.Rectangle, o marquee.Overflow, a marquee.Alignment, col color.RGBA) {
	drawText(c, text, font, r, o, a, col)
}

// DrawBitmap paints the set pixels of b with its top-left corner at p.
func (c *Context) DrawBitmap(b *Bitmap, p image.Point, col color.RGBA) {
	if b == nil || col.A == 0 {
		return
	}
	s := b.Scale()
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			if !b.bit(x, y) {
				continue
			}
			c.FillRect(image.Rect(p.X+x*s, p.Y+y*s, p.X+(x+1)*s, p.Y+(y+1)*s), col)
		}
	}
}

// Size, SetPixel and Display make Context a drivers.Displayer so tinyfont
// draws through the same translation and clip.
func (c *Context) Size() (x, y int16) {
	r := c.Clip()
	return int16(r.Dx()), int16(r.Dy())
}

func (c *Context) SetPixel(x, y int16, col color.RGBA) {
	if col.A == 0 || c.fb == nil {
		return
	}
	p := image.Pt(int(x), int(y)).Add(c.origin)
	if !p.In(c.clip) {
		return
	}
	buf := c.fb.Buffer()
	off := p.Y*c.fb.StrideBytes() + p.X*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(col.R, col.G, col.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (c *Context) Display() error { return nil }
