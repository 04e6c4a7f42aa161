package ui

import (
	"image"

	"wristwx/wxos/marquee"
)

// MarqueeLayer is the display node of a marquee. The layer covers the
// widened frame and its drawing origin sits at the left of the frame that
// was asked for.
type MarqueeLayer struct {
	layer   *Layer
	m       *marquee.Marquee
	metrics marquee.Metrics
}

func NewMarqueeLayer(reg *marquee.Registry, frame image.Rectangle, style marquee.Style, metrics marquee.Metrics) (*MarqueeLayer, error) {
	ml := &MarqueeLayer{metrics: metrics}
	m, err := reg.Create(frame, style, ml)
	if err != nil {
		return nil, err
	}
	ml.m = m
	ml.layer = NewLayer(m.LayerFrame())
	ml.layer.SetBoundsOffset(image.Pt(reg.Config().BoundOffset, 0))
	ml.layer.SetUpdateProc(ml.draw)
	return ml, nil
}

func (ml *MarqueeLayer) Layer() *Layer { return ml.layer }

func (ml *MarqueeLayer) Marquee() *marquee.Marquee { return ml.m }

// MarkDirty implements marquee.Invalidator.
func (ml *MarqueeLayer) MarkDirty() {
	// Create marks dirty before the layer exists.
	if ml.layer != nil {
		ml.layer.MarkDirty()
	}
}

// Destroy releases the marquee and detaches the layer.
func (ml *MarqueeLayer) Destroy() {
	ml.m.Destroy()
	ml.layer.RemoveFromParent()
}

func (ml *MarqueeLayer) draw(_ *Layer, c *Context) {
	ml.m.Draw(c, ml.metrics)
}
