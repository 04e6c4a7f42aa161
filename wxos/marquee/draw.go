package marquee

import "image"

// Draw renders the marquee on s, measuring the text through mt first if
// needed. Empty text draws nothing, not even the background.
//
// When the text overflows, Draw also restarts the cycle once the previous
// copy has scrolled out by more than the gap.
func (m *Marquee) Draw(s Surface, mt Metrics) {
	if m.gone() || len(m.text) == 0 {
		return
	}
	text := string(m.text)
	cfg := m.reg.cfg
	h := m.frame.Dy()
	layerW := m.layer.Dx()

	if m.width < 0 {
		m.width = mt.Measure(text, m.style.Font, ProbeWidth, h)
	}

	s.FillRect(m.Bounds(), m.style.Background)

	if m.fits() {
		s.DrawText(text, m.style.Font, image.Rect(0, 0, layerW-cfg.BoundOffset, h),
			OverflowTrailingEllipsis, AlignCenter, m.style.Text)
		return
	}

	if m.offset > m.width+cfg.Gap {
		m.offset = 0
		m.countdown = cfg.SettleTicks
	}
	if m.offset < m.width {
		x := -m.offset
		s.DrawText(text, m.style.Font, image.Rect(x, 0, x+m.width, h),
			OverflowTrailingEllipsis, AlignLeft, m.style.Text)
	}
	if m.offset > m.width-layerW+cfg.Gap {
		x := -m.offset + m.width + cfg.Gap
		s.DrawText(text, m.style.Font, image.Rect(x, 0, x+m.width, h),
			OverflowTrailingEllipsis, AlignLeft, m.style.Text)
	}

	// Hide whatever was drawn into the margin.
	s.FillRect(image.Rect(-cfg.BoundOffset, 0, 0, h), m.style.Background)
}
