package ui

import (
	"fmt"

	"wristwx/wxos/marquee"

	lru "github.com/hashicorp/golang-lru/v2"
	"tinygo.org/x/tinyfont"
)

// TextMetrics measures text with tinyfont. Text wider than the probe is
// measured as it would be drawn, with a trailing ellipsis.
type TextMetrics struct{}

func (TextMetrics) Measure(text string, font tinyfont.Fonter, probeW, probeH int) int {
	w := TextWidth(font, text)
	if w > probeW {
		w = TextWidth(font, truncateToWidth(font, text, probeW))
	}
	return w
}

type metricsKey struct {
	font           tinyfont.Fonter
	text           string
	probeW, probeH int
}

// CachedMetrics memoises another Metrics. Measure results only depend on
// the key, so entries never go stale.
type CachedMetrics struct {
	inner marquee.Metrics
	cache *lru.Cache[metricsKey, int]

	hits, misses uint64
}

func NewCachedMetrics(inner marquee.Metrics, size int) (*CachedMetrics, error) {
	c, err := lru.New[metricsKey, int](size)
	if err != nil {
		return nil, fmt.Errorf("metrics cache: %w", err)
	}
	return &CachedMetrics{inner: inner, cache: c}, nil
}

func (m *CachedMetrics) Measure(text string, font tinyfont.Fonter, probeW, probeH int) int {
	k := metricsKey{font: font, text: text, probeW: probeW, probeH: probeH}
	if w, ok := m.cache.Get(k); ok {
		m.hits++
		return w
	}
	m.misses++
	w := m.inner.Measure(text, font, probeW, probeH)
	m.cache.Add(k, w)
	return w
}

// Stats returns cache hits and misses so far.
func (m *CachedMetrics) Stats() (hits, misses uint64) { return m.hits, m.misses }
