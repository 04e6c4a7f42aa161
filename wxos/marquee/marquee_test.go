package marquee

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"tinygo.org/x/tinyfont"
)

type opKind uint8

const (
	opFill opKind = iota
	opText
)

type op struct {
	Kind  opKind
	Rect  image.Rectangle
	Text  string
	Align Alignment
	Color color.RGBA
}

type fakeSurface struct{ ops []op }

func (s *fakeSurface) FillRect(r image.Rectangle, c color.RGBA) {
	s.ops = append(s.ops, op{Kind: opFill, Rect: r, Color: c})
}

func (s *fakeSurface) DrawText(text string, _ tinyfont.Fonter, r image.Rectangle, _ Overflow, a Alignment, c color.RGBA) {
	s.ops = append(s.ops, op{Kind: opText, Rect: r, Text: text, Align: a, Color: c})
}

func (s *fakeSurface) texts() []op {
	var out []op
	for _, o := range s.ops {
		if o.Kind == opText {
			out = append(out, o)
		}
	}
	return out
}

// fakeMetrics returns a fixed width per string and counts calls.
type fakeMetrics struct {
	widths map[string]int
	calls  int
	probes []image.Point
}

func (m *fakeMetrics) Measure(text string, _ tinyfont.Fonter, probeW, probeH int) int {
	m.calls++
	m.probes = append(m.probes, image.Pt(probeW, probeH))
	return m.widths[text]
}

type counter struct{ n int }

func (c *counter) MarkDirty() { c.n++ }

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

// cityFrame is the city line of the weather screen.
var cityFrame = image.Rect(0, 125, 144, 193)

func newCity(t *testing.T, cfg Config, text string, width int) (*Registry, *Marquee, *fakeMetrics, *counter) {
	t.Helper()
	r := NewRegistry(cfg)
	inv := &counter{}
	m, err := r.Create(cityFrame, DefaultStyle(), inv)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.SetText(text)
	return r, m, &fakeMetrics{widths: map[string]int{text: width}}, inv
}

func TestCreateWidensFrame(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	inv := &counter{}
	m, err := r.Create(cityFrame, DefaultStyle(), inv)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, want := m.LayerFrame(), image.Rect(-20, 125, 144, 193); got != want {
		t.Fatalf("layer frame=%v, want %v", got, want)
	}
	if got, want := m.Bounds(), image.Rect(-20, 0, 144, 68); got != want {
		t.Fatalf("bounds=%v, want %v", got, want)
	}
	if m.Frame() != cityFrame {
		t.Fatalf("frame=%v", m.Frame())
	}
	if m.ContentWidth() != -1 || m.ScrollOffset() != 0 || m.SettleCountdown() != 100 {
		t.Fatalf("fresh state width=%d offset=%d countdown=%d", m.ContentWidth(), m.ScrollOffset(), m.SettleCountdown())
	}
	if inv.n != 1 {
		t.Fatalf("invalidations=%d, want 1", inv.n)
	}
	if r.Len() != 1 {
		t.Fatalf("len=%d", r.Len())
	}
	if cap(m.text) != 128 {
		t.Fatalf("text cap=%d, want 128", cap(m.text))
	}
	st := m.Style()
	if st.Text != black || st.Background != white || st.Font == nil {
		t.Fatalf("default style %+v", st)
	}
}

func TestCreateErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInstances = 2
	r := NewRegistry(cfg)

	if m, err := r.Create(image.Rect(0, 0, 0, 10), DefaultStyle(), nil); !errors.Is(err, ErrInvalidFrame) || m != nil {
		t.Fatalf("empty frame: m=%v err=%v", m, err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Create(cityFrame, DefaultStyle(), nil); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if m, err := r.Create(cityFrame, DefaultStyle(), nil); !errors.Is(err, ErrRegistryFull) || m != nil {
		t.Fatalf("full registry: m=%v err=%v", m, err)
	}
	if r.Len() != 2 {
		t.Fatalf("len=%d after failed create", r.Len())
	}
}

func TestStaticTextIsCentered(t *testing.T) {
	r, m, mt, inv := newCity(t, DefaultConfig(), "Oslo", 60)
	before := inv.n

	var s fakeSurface
	m.Draw(&s, mt)
	want := []op{
		{Kind: opFill, Rect: image.Rect(-20, 0, 144, 68), Color: white},
		{Kind: opText, Rect: image.Rect(0, 0, 144, 68), Text: "Oslo", Align: AlignCenter, Color: black},
	}
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < 500; i++ {
		r.Tick()
		if m.ScrollOffset() != 0 {
			t.Fatalf("tick %d: static text scrolled to %d", i+1, m.ScrollOffset())
		}
	}
	if inv.n != before {
		t.Fatalf("static text requested %d redraws", inv.n-before)
	}
	s.ops = nil
	m.Draw(&s, mt)
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatalf("ops after ticks mismatch (-want +got):\n%s", diff)
	}
	if m.State() != StateStatic {
		t.Fatalf("state=%v", m.State())
	}
}

func TestScrollScenario(t *testing.T) {
	r, m, mt, inv := newCity(t, DefaultConfig(), "St Pebblesburg", 160)

	var s fakeSurface
	m.Draw(&s, mt)
	if m.ContentWidth() != 160 || mt.calls != 1 {
		t.Fatalf("width=%d calls=%d", m.ContentWidth(), mt.calls)
	}
	if diff := cmp.Diff([]image.Point{{1000, 68}}, mt.probes); diff != "" {
		t.Fatalf("probe mismatch (-want +got):\n%s", diff)
	}
	want := []op{
		{Kind: opFill, Rect: image.Rect(-20, 0, 144, 68), Color: white},
		{Kind: opText, Rect: image.Rect(0, 0, 160, 68), Text: "St Pebblesburg", Align: AlignLeft, Color: black},
		{Kind: opFill, Rect: image.Rect(-20, 0, 0, 68), Color: white},
	}
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatalf("first draw mismatch (-want +got):\n%s", diff)
	}

	base := inv.n
	for tick := 1; tick <= 100; tick++ {
		r.Tick()
		if m.SettleCountdown() != 100-tick || m.ScrollOffset() != 0 {
			t.Fatalf("tick %d: countdown=%d offset=%d", tick, m.SettleCountdown(), m.ScrollOffset())
		}
	}
	if inv.n != base {
		t.Fatalf("settling requested %d redraws", inv.n-base)
	}
	if m.State() != StateScrolling {
		t.Fatalf("state after settle=%v", m.State())
	}

	for tick := 101; tick <= 291; tick++ {
		r.Tick()
		offset := tick - 100
		if m.ScrollOffset() != offset {
			t.Fatalf("tick %d: offset=%d, want %d", tick, m.ScrollOffset(), offset)
		}
		s.ops = nil
		m.Draw(&s, mt)
		texts := s.texts()

		switch {
		case tick < 291:
			wantPrimary := offset < 160
			wantWrapIn := offset > 26
			n := 0
			if wantPrimary {
				if texts[n].Rect != image.Rect(-offset, 0, 160-offset, 68) {
					t.Fatalf("tick %d: primary rect %v", tick, texts[n].Rect)
				}
				n++
			}
			if wantWrapIn {
				x := -offset + 190
				if texts[n].Rect != image.Rect(x, 0, x+160, 68) {
					t.Fatalf("tick %d: wrap-in rect %v", tick, texts[n].Rect)
				}
				n++
			}
			if len(texts) != n {
				t.Fatalf("tick %d: %d texts, want %d", tick, len(texts), n)
			}
		default:
			// offset 191 > 160+30: wraps back to settling.
			if m.ScrollOffset() != 0 || m.SettleCountdown() != 100 {
				t.Fatalf("tick %d: no wrap, offset=%d countdown=%d", tick, m.ScrollOffset(), m.SettleCountdown())
			}
			if len(texts) != 1 || texts[0].Rect.Min.X != 0 {
				t.Fatalf("tick %d: texts after wrap %+v", tick, texts)
			}
		}
	}
	if inv.n != base+191 {
		t.Fatalf("redraw requests=%d, want 191", inv.n-base)
	}
	if mt.calls != 1 {
		t.Fatalf("measured %d times, want 1", mt.calls)
	}
	if m.State() != StateSettling {
		t.Fatalf("state after wrap=%v", m.State())
	}
}

func TestStateWrappingWhileSecondCopyVisible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 0
	r, m, mt, _ := newCity(t, cfg, "St Pebblesburg", 160)
	m.Draw(&fakeSurface{}, mt)
	for i := 0; i < 26; i++ {
		r.Tick()
	}
	if m.State() != StateScrolling {
		t.Fatalf("offset %d state=%v", m.ScrollOffset(), m.State())
	}
	r.Tick()
	if m.State() != StateWrapping {
		t.Fatalf("offset %d state=%v", m.ScrollOffset(), m.State())
	}
}

func TestWrapIsPeriodic(t *testing.T) {
	r, m, mt, _ := newCity(t, DefaultConfig(), "St Pebblesburg", 160)
	var s fakeSurface
	m.Draw(&s, mt)

	var wraps []int
	for tick := 1; len(wraps) < 3 && tick < 2000; tick++ {
		before := m.ScrollOffset()
		r.Tick()
		m.Draw(&s, mt)
		if before > 0 && m.ScrollOffset() == 0 {
			wraps = append(wraps, tick)
		}
	}
	// 100 settle ticks plus width+gap+1 scrolling ticks per cycle.
	if diff := cmp.Diff([]int{291, 582, 873}, wraps); diff != "" {
		t.Fatalf("wrap ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestSetTextSameStringRemeasures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 0
	r, m, mt, inv := newCity(t, cfg, "St Pebblesburg", 160)
	var s fakeSurface

	for round := 0; round < 2; round++ {
		m.Draw(&s, mt)
		r.Tick()
		r.Tick()
		before := inv.n
		m.SetText("St Pebblesburg")
		if m.ContentWidth() != -1 || m.ScrollOffset() != 0 || m.SettleCountdown() != 0 || inv.n != before+1 {
			t.Fatalf("round %d: width=%d offset=%d countdown=%d", round, m.ContentWidth(), m.ScrollOffset(), m.SettleCountdown())
		}
	}
	m.Draw(&s, mt)
	if mt.calls != 3 {
		t.Fatalf("measure calls=%d, want 3", mt.calls)
	}
}

func TestSettersResetState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 5
	setters := map[string]func(*Marquee){
		"font":       func(m *Marquee) { m.SetFont(DefaultStyle().Font) },
		"text color": func(m *Marquee) { m.SetTextColor(white) },
		"background": func(m *Marquee) { m.SetBackgroundColor(black) },
		"mark dirty": func(m *Marquee) { m.MarkDirty() },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			r, m, mt, inv := newCity(t, cfg, "St Pebblesburg", 160)
			m.Draw(&fakeSurface{}, mt)
			for i := 0; i < 10; i++ {
				r.Tick()
			}
			if m.ScrollOffset() != 5 {
				t.Fatalf("offset=%d before reset", m.ScrollOffset())
			}
			before := inv.n
			set(m)
			if m.ContentWidth() != -1 || m.ScrollOffset() != 0 || m.SettleCountdown() != 5 {
				t.Fatalf("width=%d offset=%d countdown=%d", m.ContentWidth(), m.ScrollOffset(), m.SettleCountdown())
			}
			if inv.n != before+1 {
				t.Fatalf("invalidations=%d", inv.n-before)
			}
		})
	}
}

func TestColorsReachSurface(t *testing.T) {
	_, m, mt, _ := newCity(t, DefaultConfig(), "Oslo", 40)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	m.SetTextColor(white)
	m.SetBackgroundColor(red)
	var s fakeSurface
	m.Draw(&s, mt)
	if s.ops[0].Color != red || s.ops[1].Color != white {
		t.Fatalf("ops %+v", s.ops)
	}
}

func TestEmptyTextDrawsNothing(t *testing.T) {
	_, m, mt, _ := newCity(t, DefaultConfig(), "St Pebblesburg", 160)
	m.SetText("")
	var s fakeSurface
	m.Draw(&s, mt)
	if len(s.ops) != 0 || mt.calls != 0 {
		t.Fatalf("ops=%v measure calls=%d", s.ops, mt.calls)
	}
}

func TestTextOutgrowsInitialCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextCap = 4
	r := NewRegistry(cfg)
	m, err := r.Create(cityFrame, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.SetText("Llanfairpwllgwyngyll")
	if m.Text() != "Llanfairpwllgwyngyll" {
		t.Fatalf("text=%q", m.Text())
	}
	m.SetText("Ås")
	if m.Text() != "Ås" {
		t.Fatalf("text=%q", m.Text())
	}
}

func TestTickSkipsUnmeasured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 0
	r, m, _, inv := newCity(t, cfg, "St Pebblesburg", 160)
	before := inv.n
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	if m.ScrollOffset() != 0 || inv.n != before || m.State() != StateSettling {
		t.Fatalf("offset=%d redraws=%d state=%v", m.ScrollOffset(), inv.n-before, m.State())
	}
}

func TestSettleCountsDownBeforeMeasure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 3
	r := NewRegistry(cfg)
	m, err := r.Create(cityFrame, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.SetText("Llanfairpwllgwyngyll")
	for i := 0; i < 5; i++ {
		r.Tick()
	}
	if m.SettleCountdown() != 0 || m.ContentWidth() != -1 || m.ScrollOffset() != 0 {
		t.Fatalf("countdown=%d width=%d offset=%d", m.SettleCountdown(), m.ContentWidth(), m.ScrollOffset())
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	r, m, mt, _ := newCity(t, DefaultConfig(), "Oslo", 40)
	other, err := r.Create(cityFrame, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Destroy()
	m.Destroy()
	if r.Len() != 1 || m.Alive() {
		t.Fatalf("len=%d alive=%v", r.Len(), m.Alive())
	}
	checkChain(t, r, []*Marquee{other})

	var s fakeSurface
	m.SetText("ignored")
	m.Draw(&s, mt)
	if len(s.ops) != 0 {
		t.Fatalf("destroyed marquee drew %v", s.ops)
	}
	r.Tick()
}

func TestDestroyDuringTickIsDeferred(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 0
	r := NewRegistry(cfg)
	mt := &fakeMetrics{widths: map[string]int{"St Pebblesburg": 160}}

	older, err := r.Create(cityFrame, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var newer *Marquee
	destroyOlder := InvalidatorFunc(func() {
		if newer != nil && newer.ScrollOffset() > 0 {
			older.Destroy()
			older.Destroy()
			newer.Destroy()
		}
	})
	newer, err = r.Create(cityFrame, DefaultStyle(), destroyOlder)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []*Marquee{older, newer} {
		m.SetText("St Pebblesburg")
		m.Draw(&fakeSurface{}, mt)
	}

	r.Tick()
	if older.ScrollOffset() != 0 {
		t.Fatalf("dead marquee advanced to %d", older.ScrollOffset())
	}
	if r.Len() != 0 || len(r.pending) != 0 {
		t.Fatalf("len=%d pending=%d", r.Len(), len(r.pending))
	}
	checkChain(t, r, nil)
}

func TestEachVisitsNewestFirst(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	var made []*Marquee
	for i := 0; i < 4; i++ {
		m, err := r.Create(cityFrame, DefaultStyle(), nil)
		if err != nil {
			t.Fatal(err)
		}
		made = append(made, m)
	}
	var seen []*Marquee
	r.Each(func(m *Marquee) bool {
		seen = append(seen, m)
		return len(seen) < 3
	})
	if len(seen) != 3 || seen[0] != made[3] || seen[2] != made[1] {
		t.Fatalf("visited %d, order wrong", len(seen))
	}
}

func TestRegistryChainSurvivesAnyRemovalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := DefaultConfig()
	cfg.MaxInstances = 0
	for n := 1; n <= 100; n++ {
		for trial := 0; trial < 3; trial++ {
			r := NewRegistry(cfg)
			live := make([]*Marquee, 0, n)
			for i := 0; i < n; i++ {
				m, err := r.Create(cityFrame, DefaultStyle(), nil)
				if err != nil {
					t.Fatalf("n=%d: Create: %v", n, err)
				}
				live = append(live, m)
			}
			all := append([]*Marquee(nil), live...)
			for _, idx := range rng.Perm(n) {
				victim := all[idx]
				victim.Destroy()
				live = removeHandle(live, victim)
				checkChain(t, r, live)
			}
			if r.Len() != 0 || r.head != nil {
				t.Fatalf("n=%d: registry not empty after removing all", n)
			}
		}
	}
}

func TestCreateDuringTickJoinsNextTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleTicks = 0
	r := NewRegistry(cfg)
	m, err := r.Create(cityFrame, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.width = 500

	var born *Marquee
	m.inv = InvalidatorFunc(func() {
		if born != nil {
			return
		}
		born, err = r.Create(cityFrame, DefaultStyle(), nil)
		if err != nil {
			t.Fatalf("Create during Tick: %v", err)
		}
		born.width = 500
	})
	r.Tick()
	if born == nil {
		t.Fatal("invalidator did not run")
	}
	if r.Len() != 2 {
		t.Fatalf("Len=%d, want 2", r.Len())
	}
	if born.ScrollOffset() != 0 || m.ScrollOffset() != 1 {
		t.Fatalf("offsets new=%d old=%d, want 0 and 1", born.ScrollOffset(), m.ScrollOffset())
	}
	checkChain(t, r, []*Marquee{m, born})

	r.Tick()
	if born.ScrollOffset() != 1 || m.ScrollOffset() != 2 {
		t.Fatalf("offsets new=%d old=%d, want 1 and 2", born.ScrollOffset(), m.ScrollOffset())
	}
}

func removeHandle(live []*Marquee, m *Marquee) []*Marquee {
	for i, x := range live {
		if x == m {
			return append(live[:i], live[i+1:]...)
		}
	}
	return live
}

// checkChain walks from the head and expects exactly want, oldest first.
func checkChain(t *testing.T, r *Registry, want []*Marquee) {
	t.Helper()
	var got []*Marquee
	var newer *Marquee
	for m := r.head; m != nil; m = m.prev {
		if len(got) > len(want) {
			t.Fatalf("chain longer than %d: cycle or dangling link", len(want))
		}
		if m.next != newer {
			t.Fatalf("next link broken at position %d", len(got))
		}
		got = append(got, m)
		newer = m
	}
	if len(got) != len(want) || r.Len() != len(want) {
		t.Fatalf("chain has %d, len=%d, want %d", len(got), r.Len(), len(want))
	}
	for i := range got {
		if got[i] != want[len(want)-1-i] {
			t.Fatalf("chain position %d holds the wrong marquee", i)
		}
	}
}
