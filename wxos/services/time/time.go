package timesvc

import (
	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"
)

const maxSleepers = 32

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service answers MsgSleep requests with MsgWake once the tick clock passes
// the requested deadline. Each request fires once; periodic timers re-arm
// after every wake.
type Service struct {
	ep kernel.Capability

	now      uint64
	sleepers [maxSleepers]sleeper
}

func New(ep kernel.Capability) *Service {
	return &Service{ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	done := make(chan struct{})
	defer close(done)
	ticks := ctx.TickChan(done)
	s.now = ctx.NowTick()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		case now := <-ticks:
			s.now = now
			s.wakeReady(ctx)
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if proto.Kind(msg.Kind) != proto.MsgSleep {
		return
	}
	if !msg.Cap.Valid() {
		return
	}

	timerID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
	if !ok {
		payload := proto.ErrorPayload(proto.ErrBadMessage, proto.MsgSleep, 0, "bad sleep payload")
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
		return
	}
	if dt == 0 {
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgWake), proto.WakePayload(timerID, s.now), kernel.Capability{})
		return
	}
	if ok := s.schedule(s.now+uint64(dt), timerID, msg.Cap); !ok {
		payload := proto.ErrorPayload(proto.ErrOverflow, proto.MsgSleep, timerID, "too many sleepers")
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
	}
}

func (s *Service) schedule(due uint64, timerID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: timerID, reply: reply}
		return true
	}
	return false
}

func (s *Service) wakeReady(ctx *kernel.Context) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > s.now {
			continue
		}
		res := ctx.SendToCapResult(sl.reply, uint16(proto.MsgWake), proto.WakePayload(sl.id, s.now), kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			// Try again on the next tick.
			continue
		}
		*sl = sleeper{}
	}
}
