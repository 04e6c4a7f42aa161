package ui

import (
	"image"
	"image/color"
)

// BitmapLayer draws a bitmap centred in its frame.
type BitmapLayer struct {
	layer *Layer
	bmp   *Bitmap
	fg    color.RGBA
	bg    color.RGBA
}

// NewBitmapLayer draws white on a clear background.
func NewBitmapLayer(frame image.Rectangle) *BitmapLayer {
	b := &BitmapLayer{fg: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}}
	b.layer = NewLayer(frame)
	b.layer.SetUpdateProc(b.draw)
	return b
}

func (b *BitmapLayer) Layer() *Layer { return b.layer }

func (b *BitmapLayer) Bitmap() *Bitmap { return b.bmp }

// SetBitmap replaces the drawn bitmap; nil draws only the background.
func (b *BitmapLayer) SetBitmap(bmp *Bitmap) {
	b.bmp = bmp
	b.layer.MarkDirty()
}

func (b *BitmapLayer) SetColors(fg, bg color.RGBA) {
	b.fg, b.bg = fg, bg
	b.layer.MarkDirty()
}

func (b *BitmapLayer) draw(l *Layer, c *Context) {
	bounds := l.Bounds()
	c.FillRect(bounds, b.bg)
	if b.bmp == nil {
		return
	}
	size := b.bmp.Size()
	at := image.Pt(
		bounds.Min.X+(bounds.Dx()-size.X)/2,
		bounds.Min.Y+(bounds.Dy()-size.Y)/2,
	)
	c.DrawBitmap(b.bmp, at, b.fg)
}
