// Package phone simulates the companion app on the paired phone. It answers
// weather requests from the watch and can play scripted updates.
package phone

import (
	"context"
	"time"

	logclient "wristwx/wxos/client/logger"
	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"
)

const sendRetries = 3

type Config struct {
	// Source answers requests. Nil answers with the script's pending report.
	Source Source
	// Script is played on the tick clock. Nil plays nothing.
	Script *Script
	// Initial is the pending report before any script step ran.
	Initial Report
	// Timeout bounds one fetch.
	Timeout time.Duration
	Debug   bool
}

type Task struct {
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config
	log    logclient.Logger

	watch   kernel.Capability
	pending Report

	pc       int
	resumeAt uint64
	now      uint64
	sent     int
}

// New returns the phone task reading requests from ep.
func New(ep, logCap kernel.Capability, cfg Config) *Task {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Task{ep: ep, logCap: logCap, cfg: cfg, pending: cfg.Initial}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	t.log = logclient.New(ctx, t.logCap, "phone: ", t.cfg.Debug)

	done := make(chan struct{})
	defer close(done)
	var ticks <-chan uint64
	if t.cfg.Script != nil && len(t.cfg.Script.Steps) > 0 {
		ticks = ctx.TickChan(done)
	}
	t.now = ctx.NowTick()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			t.handle(ctx, msg)
		case now := <-ticks:
			t.now = now
			if !t.play(ctx) {
				ticks = nil
			}
		}
	}
}

func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgWeatherRequest:
		if !msg.Cap.Valid() {
			t.log.Printf("request without reply address")
			return
		}
		t.watch = msg.Cap
		t.answer(ctx)
	default:
		t.log.Debugf("ignoring %s", proto.Kind(msg.Kind))
	}
}

// answer replies to a weather request with fresh data.
func (t *Task) answer(ctx *kernel.Context) {
	if t.cfg.Source == nil {
		t.send(ctx, t.pending.Tuples())
		return
	}
	fctx, cancel := context.WithTimeout(context.Background(), t.cfg.Timeout)
	defer cancel()
	r, err := t.cfg.Source.Fetch(fctx)
	if err != nil {
		t.log.Printf("fetch: %v", err)
		t.send(ctx, unavailableTuples())
		return
	}
	t.pending = r
	t.send(ctx, r.Tuples())
}

// play runs script steps due at the current tick and reports whether any
// remain.
func (t *Task) play(ctx *kernel.Context) bool {
	steps := t.cfg.Script.Steps
	for t.pc < len(steps) {
		if t.now < t.resumeAt {
			return true
		}
		st := steps[t.pc]
		switch st.Op {
		case OpIcon:
			t.pending.Icon = uint8(st.Int)
		case OpTemp:
			t.pending.Temperature = st.Str
		case OpCity:
			t.pending.City = st.Str
		case OpSend, OpFail:
			if !t.watch.Valid() {
				// Nobody to talk to until the watch asks.
				return true
			}
			if st.Op == OpSend {
				t.send(ctx, t.pending.Tuples())
			} else {
				t.send(ctx, unavailableTuples())
			}
		case OpWait:
			t.resumeAt = t.now + uint64(st.Int)
		}
		t.log.Debugf("line %d: %s", st.Line, st.Op)
		t.pc++
	}
	return false
}

func (t *Task) send(ctx *kernel.Context, tuples []proto.Tuple) {
	payload, err := proto.DictPayload(tuples, kernel.MaxMessageBytes)
	if err != nil {
		t.log.Printf("encode: %v", err)
		return
	}
	res := ctx.SendToCapRetry(t.watch, uint16(proto.MsgWeatherDict), payload, kernel.Capability{}, sendRetries)
	if res != kernel.SendOK {
		t.log.Printf("send: %s", res)
		return
	}
	t.sent++
}
