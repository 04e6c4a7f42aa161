package hal

import "time"

const hostTickDur = time.Millisecond

// hostTime converts wall-clock progress between runner steps into
// millisecond ticks. Ticks that cannot be delivered are dropped; readers only
// care about the latest sequence number.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return newHostTimeWithClock(time.Now)
}

func newHostTimeWithClock(now func() time.Time) *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step advances by elapsed wall time. The very first step emits n ticks so
// the clock starts moving immediately.
func (t *hostTime) step(n uint64) {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % hostTickDur
	t.stepN(ticks)
}

// stepFixed advances by exactly d regardless of the wall clock.
func (t *hostTime) stepFixed(d time.Duration) {
	t.acc += d
	ticks := uint64(t.acc / hostTickDur)
	t.acc = t.acc % hostTickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
