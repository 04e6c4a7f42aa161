package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Fixed advances the tick clock by exactly 1/Hz per step instead of
	// following the wall clock.
	Fixed bool
	// Dump receives an ANSI rendering of the last presented frame on exit.
	Dump io.Writer
	Host HostConfig
}

// RunHeadless runs the OS without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	err := runHeadlessLoop(ctx, h, step, t.C, d, cfg)
	if cfg.Dump != nil {
		if _, werr := io.WriteString(cfg.Dump, h.fb.ANSI()); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func runHeadlessLoop(ctx context.Context, h *hostHAL, step func() error, tick <-chan time.Time, d time.Duration, cfg HeadlessConfig) error {
	var n uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if cfg.Fixed {
				h.t.stepFixed(d)
			} else {
				h.t.step(1)
			}
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			n++
			if cfg.Ticks > 0 && n >= cfg.Ticks {
				return nil
			}
		}
	}
}
