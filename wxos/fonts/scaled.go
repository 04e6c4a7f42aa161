package fonts

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type scaledFont struct {
	base tinyfont.Fonter
	n    int
	g    scaledGlyph
}

type scaledGlyph struct {
	inner tinyfont.Glypher
	n     int
}

// scaleDisplayer turns each glyph pixel into an n×n block anchored at (x, y).
type scaleDisplayer struct {
	d    drivers.Displayer
	x, y int16
	n    int16
}

// Scaled returns base magnified by an integer factor n (n < 1 is treated as 1).
func Scaled(base tinyfont.Fonter, n int) tinyfont.Fonter {
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return base
	}
	return &scaledFont{base: base, n: n}
}

func (f *scaledFont) GetYAdvance() uint8 { return clampU8(int(f.base.GetYAdvance()) * f.n) }

func (f *scaledFont) GetGlyph(r rune) tinyfont.Glypher {
	f.g = scaledGlyph{inner: f.base.GetGlyph(r), n: f.n}
	return &f.g
}

func (g *scaledGlyph) Info() tinyfont.GlyphInfo {
	in := g.inner.Info()
	return tinyfont.GlyphInfo{
		Rune:     in.Rune,
		Width:    clampU8(int(in.Width) * g.n),
		Height:   clampU8(int(in.Height) * g.n),
		XAdvance: clampU8(int(in.XAdvance) * g.n),
		XOffset:  clampI8(int(in.XOffset) * g.n),
		YOffset:  clampI8(int(in.YOffset) * g.n),
	}
}

func (g *scaledGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	g.inner.Draw(&scaleDisplayer{d: display, x: x, y: y, n: int16(g.n)}, 0, 0, c)
}

func (s *scaleDisplayer) Size() (x, y int16) { return s.d.Size() }

func (s *scaleDisplayer) SetPixel(x, y int16, c color.RGBA) {
	bx := s.x + x*s.n
	by := s.y + y*s.n
	for dy := int16(0); dy < s.n; dy++ {
		for dx := int16(0); dx < s.n; dx++ {
			s.d.SetPixel(bx+dx, by+dy, c)
		}
	}
}

func (s *scaleDisplayer) Display() error { return nil }

func clampU8(v int) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func clampI8(v int) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}
