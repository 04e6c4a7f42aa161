package app

import (
	"errors"
	"fmt"
	"time"

	"wristwx/hal"
	"wristwx/wxos/kernel"
	"wristwx/wxos/marquee"
	"wristwx/wxos/services/logger"
	timesvc "wristwx/wxos/services/time"
	"wristwx/wxos/tasks/phone"
	"wristwx/wxos/tasks/weather"
)

// ErrPanicked is returned by the step function after a task panicked, when
// Config.ExitOnPanic is set.
var ErrPanicked = errors.New("task panicked")

type Config struct {
	Marquee    marquee.Config
	TickMillis uint32
	Phone      phone.Config
	Debug      bool
	// ExitOnPanic stops the step loop instead of leaving the panic screen up.
	ExitOnPanic bool
}

func DefaultConfig() Config {
	return Config{
		Marquee:    marquee.DefaultConfig(),
		TickMillis: 50,
		Phone: phone.Config{
			Source:  phone.Static(DemoReport),
			Timeout: 15 * time.Second,
		},
	}
}

// DemoReport is what the simulated phone answers with when it has no
// other source.
var DemoReport = phone.Report{
	Icon:        phone.IconRain,
	Temperature: phone.FormatTemperature(285.15),
	City:        "Llanfairpwllgwyngyll",
}

// System is a running watch: kernel, services, the phone simulator and the
// weather app.
type System struct {
	cfg     Config
	weather *weather.Task
	buttons *buttonsTask
}

// New starts the system on h.
func New(h hal.HAL, cfg Config) *System {
	installPanicHandler(h)

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	phoneEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	logCap := logEP.Restrict(kernel.RightSend)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(timeEP.Restrict(kernel.RightRecv)))

	pcfg := cfg.Phone
	pcfg.Debug = pcfg.Debug || cfg.Debug
	k.AddTask(phone.New(phoneEP.Restrict(kernel.RightRecv), logCap, pcfg))

	w := weather.New(h.Display(), appEP, logCap,
		timeEP.Restrict(kernel.RightSend), phoneEP.Restrict(kernel.RightSend),
		weather.Config{Marquee: cfg.Marquee, TickMillis: cfg.TickMillis, Debug: cfg.Debug})
	k.AddTask(w)

	var kbd hal.Keyboard
	if in := h.Input(); in != nil {
		kbd = in.Keyboard()
	}
	b := newButtonsTask(kbd, appEP.Restrict(kernel.RightSend))
	k.AddTask(b)

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &System{cfg: cfg, weather: w, buttons: b}
}

// Step is called once per host frame. It returns hal.ErrExit once the
// weather app has unloaded.
func (s *System) Step() error {
	select {
	case <-s.weather.Done():
		return hal.ErrExit
	default:
	}
	if !s.cfg.ExitOnPanic {
		return nil
	}
	if info, later, ok := kernel.FirstPanic(); ok {
		if later > 0 {
			return fmt.Errorf("%w: %s (and %d more)", ErrPanicked, info, later)
		}
		return fmt.Errorf("%w: %s", ErrPanicked, info)
	}
	return nil
}

// Shutdown asks the weather app to unload and waits up to timeout for it.
func (s *System) Shutdown(timeout time.Duration) error {
	s.buttons.shutdown()
	select {
	case <-s.weather.Done():
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("weather app did not unload within %s", timeout)
	}
}

// Runner adapts New to the hal runners and records the system it started.
func Runner(cfg Config, started func(*System)) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		s := New(h, cfg)
		if started != nil {
			started(s)
		}
		return s.Step
	}
}
