package fonts

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// bitGlyph is a 6-pixel-wide glyph stored as one byte per row,
// bit5 = leftmost pixel.
type bitGlyph struct {
	r       rune
	rows    []byte
	yOffset int8
}

var extraGlyphs = map[rune]bitGlyph{
	'°': {r: '°', yOffset: -7, rows: []byte{
		0b001100,
		0b010010,
		0b010010,
		0b001100,
	}},
	'…': {r: '…', yOffset: -1, rows: []byte{
		0b101010,
	}},
}

func (g *bitGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	for row, b := range g.rows {
		for col := 0; col < 6; col++ {
			if b&(0x20>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y+int16(g.yOffset)+int16(row), c)
		}
	}
}

func (g *bitGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    6,
		Height:   uint8(len(g.rows)),
		XAdvance: 6,
		XOffset:  0,
		YOffset:  g.yOffset,
	}
}

type extrasFont struct {
	base tinyfont.Fonter
	g    bitGlyph
}

// WithExtras returns base with glyphs for '°' and '…' that 7-bit fonts lack.
// Runes base already draws are replaced too.
func WithExtras(base tinyfont.Fonter) tinyfont.Fonter {
	return &extrasFont{base: base}
}

func (f *extrasFont) GetYAdvance() uint8 { return f.base.GetYAdvance() }

func (f *extrasFont) GetGlyph(r rune) tinyfont.Glypher {
	if g, ok := extraGlyphs[r]; ok {
		f.g = g
		return &f.g
	}
	return f.base.GetGlyph(r)
}
