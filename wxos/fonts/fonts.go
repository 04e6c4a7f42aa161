// Package fonts provides the font handles used on the watch.
//
// Fonts implement tinyfont.Fonter and are not safe for concurrent use:
// glyphs are reused between GetGlyph calls.
package fonts

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	// System is the fallback font: proggy Tiny with the watch extras.
	System tinyfont.Fonter = WithExtras(&proggy.TinySZ8pt7b)

	// Large is System at twice the size, for the temperature and city.
	Large tinyfont.Fonter = Scaled(System, 2)
)

// Ascent returns the distance from the top of a line to its baseline.
func Ascent(f tinyfont.Fonter) int {
	if f == nil {
		return 0
	}
	a := -int(f.GetGlyph('M').Info().YOffset)
	if a <= 0 {
		a = int(f.GetYAdvance()) * 3 / 4
	}
	return a
}

// Height returns the line height of f.
func Height(f tinyfont.Fonter) int {
	if f == nil {
		return 0
	}
	return int(f.GetYAdvance())
}
