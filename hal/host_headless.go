//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig runs the watch with no window, for CI and servers.
type HeadlessConfig struct {
	Enabled bool
	// Hz is the frame rate. Each frame advances kernel time and runs one step.
	Hz int
	// Ticks stops the run after that many frames. Zero runs until ctx ends.
	Ticks uint64
	// TapEvery taps the Z axis every N frames. Zero never taps.
	TapEvery uint64

	Host HostConfig
}

// RunHeadless drives the app from a ticker until ctx is done, the frame limit
// is reached, or a step fails.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("headless: %d Hz is faster than the clock resolution", cfg.Hz)
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for frame := uint64(1); ; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		h.t.frame()
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		if cfg.TapEvery > 0 && frame%cfg.TapEvery == 0 {
			h.accel.tap(TapEvent{Axis: TapAxisZ, Direction: 1})
		}
		if cfg.Ticks > 0 && frame >= cfg.Ticks {
			return nil
		}
	}
}
