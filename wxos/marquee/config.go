package marquee

// Config holds the marquee constants. They are tuned by eye on the watch and
// have no derivation.
type Config struct {
	// BoundOffset is the margin added to the left of every frame so that
	// glyphs scrolled past the edge are clipped by the layer instead of
	// being drawn at negative text positions.
	BoundOffset int
	// Gap separates the end of one scroll cycle from the copy wrapping in.
	Gap int
	// SettleTicks is the pause before (re)starting a scroll cycle.
	SettleTicks int
	// TextCap is the initial capacity of the owned text storage.
	TextCap int
	// MaxInstances bounds the registry. Zero means unbounded.
	MaxInstances int
}

// DefaultConfig returns the values the watch ships with.
func DefaultConfig() Config {
	return Config{
		BoundOffset:  20,
		Gap:          30,
		SettleTicks:  100,
		TextCap:      128,
		MaxInstances: 32,
	}
}

// ProbeWidth is the width of the rectangle text is measured in. No real
// string on the watch gets truncated at this width.
const ProbeWidth = 1000
