package time

import (
	"fmt"

	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"
)

// Arm asks the time service to send MsgWake for timerID to reply after dt ticks.
func Arm(ctx *kernel.Context, timeCap, reply kernel.Capability, timerID uint32, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time arm: nil context")
	}
	res := ctx.SendToCapResult(timeCap, uint16(proto.MsgSleep), proto.SleepPayload(timerID, dt), reply)
	if res != kernel.SendOK {
		return fmt.Errorf("time arm: %s", res)
	}
	return nil
}

// Timer is a self-rearming timer: every wake it recognises schedules the next one.
type Timer struct {
	timeCap kernel.Capability
	reply   kernel.Capability
	id      uint32
	period  uint32
	armed   bool
}

// NewTimer returns a stopped timer. reply must carry the send right for the
// endpoint the owning task reads from.
func NewTimer(timeCap, reply kernel.Capability, id uint32, period uint32) *Timer {
	if period == 0 {
		period = 1
	}
	return &Timer{timeCap: timeCap, reply: reply.Restrict(kernel.RightSend), id: id, period: period}
}

// Start arms the first firing.
func (t *Timer) Start(ctx *kernel.Context) error {
	if err := Arm(ctx, t.timeCap, t.reply, t.id, t.period); err != nil {
		return err
	}
	t.armed = true
	return nil
}

// Stop makes the timer ignore its next wake and stop re-arming.
func (t *Timer) Stop() { t.armed = false }

// Armed reports whether a firing is pending.
func (t *Timer) Armed() bool { return t.armed }

// HandleWake reports whether msg is this timer's wake. A recognised wake
// re-arms the timer before returning.
func (t *Timer) HandleWake(ctx *kernel.Context, msg kernel.Message) (bool, error) {
	if proto.Kind(msg.Kind) != proto.MsgWake {
		return false, nil
	}
	id, _, ok := proto.DecodeWakePayload(msg.Payload())
	if !ok || id != t.id || !t.armed {
		return false, nil
	}
	if err := Arm(ctx, t.timeCap, t.reply, t.id, t.period); err != nil {
		t.armed = false
		return true, err
	}
	return true, nil
}
