package hal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI renders the last presented frame with upper-half blocks, two pixel
// rows per text line.
func (f *hostFramebuffer) ANSI() string {
	snap := make([]byte, len(f.front))
	f.snapshotRGB565(snap)

	at := func(x, y int) lipgloss.Color {
		if y >= f.height {
			return lipgloss.Color("#000000")
		}
		off := y*f.stride + x*2
		r, g, b := RGB888From565(uint16(snap[off]) | uint16(snap[off+1])<<8)
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	}

	var sb strings.Builder
	for y := 0; y < f.height; y += 2 {
		for x := 0; x < f.width; x++ {
			style := lipgloss.NewStyle().Foreground(at(x, y)).Background(at(x, y+1))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
