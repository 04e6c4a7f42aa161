package marquee

import "image"

// Registry tracks live marquees so one tick advances all of them.
//
// Instances are chained from the newest (head) through prev links.
type Registry struct {
	cfg  Config
	head *Marquee
	n    int

	ticking bool
	pending []*Marquee
}

// NewRegistry returns an empty registry using cfg for every marquee it creates.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg}
}

// Config returns the constants the registry was built with.
func (r *Registry) Config() Config { return r.cfg }

// Create registers a marquee for frame and requests its first draw.
// inv may be nil. A zero style font falls back to fonts.System.
func (r *Registry) Create(frame image.Rectangle, style Style, inv Invalidator) (*Marquee, error) {
	if frame.Empty() {
		return nil, ErrInvalidFrame
	}
	if r.cfg.MaxInstances > 0 && r.n >= r.cfg.MaxInstances {
		return nil, ErrRegistryFull
	}
	if style.Font == nil {
		style.Font = DefaultStyle().Font
	}

	layer := frame
	layer.Min.X -= r.cfg.BoundOffset

	m := &Marquee{
		reg:   r,
		frame: frame,
		layer: layer,
		text:  make([]byte, 0, r.cfg.TextCap),
		style: style,
		inv:   inv,
	}
	r.link(m)
	m.MarkDirty()
	return m, nil
}

// Tick advances every live marquee by one step. Settling marquees count
// down whether or not they were measured yet; once settled, only marquees
// whose measured text overflows move one pixel and ask for a redraw.
func (r *Registry) Tick() {
	r.ticking = true
	for m := r.head; m != nil; m = m.prev {
		if m.dead {
			continue
		}
		if m.countdown > 0 {
			m.countdown--
			continue
		}
		if !m.scrolls() {
			continue
		}
		m.offset++
		m.invalidate()
	}
	r.ticking = false
	r.reap()
}

// Each calls fn for live marquees from newest to oldest until fn returns false.
func (r *Registry) Each(fn func(*Marquee) bool) {
	for m := r.head; m != nil; m = m.prev {
		if m.dead {
			continue
		}
		if !fn(m) {
			return
		}
	}
}

// Len returns the number of live marquees.
func (r *Registry) Len() int { return r.n }

func (r *Registry) destroy(m *Marquee) {
	m.dead = true
	r.n--
	if r.ticking {
		r.pending = append(r.pending, m)
		return
	}
	r.release(m)
}

func (r *Registry) reap() {
	for i, m := range r.pending {
		r.release(m)
		r.pending[i] = nil
	}
	r.pending = r.pending[:0]
}

func (r *Registry) release(m *Marquee) {
	r.unlink(m)
	m.text = nil
	m.inv = nil
	m.released = true
}

func (r *Registry) link(m *Marquee) {
	if r.head != nil {
		r.head.next = m
	}
	m.prev = r.head
	m.next = nil
	r.head = m
	r.n++
}

func (r *Registry) unlink(m *Marquee) {
	if m == r.head {
		r.head = m.prev
	}
	if m.next != nil {
		m.next.prev = m.prev
	}
	if m.prev != nil {
		m.prev.next = m.next
	}
	m.prev, m.next = nil, nil
}
