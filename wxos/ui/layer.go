package ui

import "image"

// UpdateProc draws a layer. c is already translated and clipped.
type UpdateProc func(l *Layer, c *Context)

// Layer is a node of the display tree.
type Layer struct {
	frame  image.Rectangle
	offset image.Point
	update UpdateProc
	hidden bool

	parent   *Layer
	children []*Layer
	win      *Window
}

// NewLayer returns a layer at frame, in its parent's drawing coordinates.
func NewLayer(frame image.Rectangle) *Layer {
	return &Layer{frame: frame}
}

func (l *Layer) Frame() image.Rectangle { return l.frame }

func (l *Layer) SetFrame(r image.Rectangle) {
	l.frame = r
	l.MarkDirty()
}

// SetBoundsOffset moves the drawing origin by p relative to the frame's
// top-left corner. Clipping stays at the frame.
func (l *Layer) SetBoundsOffset(p image.Point) {
	l.offset = p
	l.MarkDirty()
}

// Bounds is the frame in the layer's own drawing coordinates.
func (l *Layer) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.frame.Size()}.Sub(l.offset)
}

func (l *Layer) SetUpdateProc(fn UpdateProc) {
	l.update = fn
	l.MarkDirty()
}

func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.MarkDirty()
}

func (l *Layer) Hidden() bool { return l.hidden }

func (l *Layer) AddChild(child *Layer) {
	if child == nil || child == l {
		return
	}
	child.RemoveFromParent()
	child.parent = l
	l.children = append(l.children, child)
	l.MarkDirty()
}

func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == l {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	l.parent = nil
	p.MarkDirty()
}

func (l *Layer) Children() []*Layer { return l.children }

// MarkDirty asks the owning window for a repaint.
func (l *Layer) MarkDirty() {
	root := l
	for root.parent != nil {
		root = root.parent
	}
	if root.win != nil {
		root.win.dirty = true
	}
}

func (l *Layer) render(c *Context) {
	if l.hidden {
		return
	}
	sub := c.Sub(l.frame, l.offset)
	if sub.clip.Empty() {
		return
	}
	if l.update != nil {
		l.update(l, sub)
	}
	for _, child := range l.children {
		child.render(sub)
	}
}
