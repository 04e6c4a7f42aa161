package ui

import (
	"image"
	"image/color"

	"wristwx/wxos/fonts"
	"wristwx/wxos/marquee"

	"tinygo.org/x/tinyfont"
)

const ellipsis = "..."

func drawText(c *Context, text string, font tinyfont.Fonter, r image.Rectangle, o marquee.Overflow, a marquee.Alignment, col color.RGBA) {
	if text == "" || font == nil || col.A == 0 || r.Dx() <= 0 {
		return
	}
	if o == marquee.OverflowTrailingEllipsis {
		text = truncateToWidth(font, text, r.Dx())
	}
	if text == "" {
		return
	}

	x := r.Min.X
	if a == marquee.AlignCenter {
		x += (r.Dx() - TextWidth(font, text)) / 2
	}
	y := r.Min.Y + fonts.Ascent(font)
	tinyfont.WriteLine(c, font, int16(x), int16(y), text, col)
}

// TextWidth is the single-line pixel width of s.
func TextWidth(font tinyfont.Fonter, s string) int {
	if font == nil || s == "" {
		return 0
	}
	w, _ := tinyfont.LineWidth(font, s)
	return int(w)
}

// truncateToWidth cuts s so it fits maxW, ending it with "..." when cut.
func truncateToWidth(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if TextWidth(f, s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if TextWidth(f, string(r)+ellipsis) <= maxW {
			return string(r) + ellipsis
		}
	}
	return ""
}
