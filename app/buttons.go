package app

import (
	"sync"

	"wristwx/hal"
	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"
)

// buttonsTask forwards button events to the foreground app and delivers
// the shutdown request.
type buttonsTask struct {
	kbd hal.Keyboard
	to  kernel.Capability

	stop     chan struct{}
	stopOnce sync.Once
}

func newButtonsTask(kbd hal.Keyboard, to kernel.Capability) *buttonsTask {
	return &buttonsTask{kbd: kbd, to: to, stop: make(chan struct{})}
}

func (t *buttonsTask) shutdown() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *buttonsTask) Run(ctx *kernel.Context) {
	var events <-chan hal.KeyEvent
	if t.kbd != nil {
		events = t.kbd.Events()
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			payload := proto.KeyPayload(uint16(ev.Code), ev.Press)
			_ = ctx.SendToCapRetry(t.to, uint16(proto.MsgKey), payload, kernel.Capability{}, 2)
		case <-t.stop:
			_ = ctx.SendToCapRetry(t.to, uint16(proto.MsgAppShutdown), nil, kernel.Capability{}, 5)
			return
		}
	}
}
