package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"wristwx/hal"
	"wristwx/wxos/fonts"
	"wristwx/wxos/kernel"
	"wristwx/wxos/ui"

	"tinygo.org/x/tinyfont"
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("wristwx panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line != "" {
					l.WriteLineString(line)
				}
			}
		}

		disp := h.Display()
		if disp == nil || disp.Framebuffer() == nil {
			return
		}
		fb := disp.Framebuffer()
		fb.ClearRGB(255, 255, 255)
		drawPanic(ui.NewContext(fb), fb.Width(), fb.Height(), panicLines(info))
		_ = fb.Present()
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"PANIC",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// drawPanic wraps lines at the screen width and stops at the bottom.
func drawPanic(d *ui.Context, w, h int, lines []string) {
	font := fonts.System
	lineH := fonts.Height(font)
	ascent := fonts.Ascent(font)
	_, adv := tinyfont.LineWidth(font, "0")
	if lineH <= 0 || adv == 0 {
		return
	}
	cols := w / int(adv)
	if cols <= 0 {
		cols = 1
	}
	fg := color.RGBA{A: 0xFF}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+lineH > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, int16(y+ascent), chunk, fg)
			y += lineH
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
