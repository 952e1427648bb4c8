package app

import (
	"time"

	"sensorwatch/hal"
	"sensorwatch/internal/buildinfo"
	"sensorwatch/internal/feed"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/sensors"
	"sensorwatch/sparkos/services/accel"
	"sensorwatch/sparkos/services/logger"
	"sensorwatch/sparkos/services/term"
	timesvc "sensorwatch/sparkos/services/time"
	"sensorwatch/sparkos/tasks/companion"
	"sensorwatch/sparkos/tasks/watchface"
)

type system struct {
	k *kernel.Kernel
}

type Config struct {
	// Fetcher supplies the companion with readings. Nil disables the
	// companion and the face keeps showing the placeholder.
	Fetcher      companion.Fetcher
	FetchTimeout time.Duration
	Metrics      *companion.Metrics

	Slots          int
	Color          bool
	Use24h         bool
	RefreshMinutes int

	// ConsoleHistory is the number of log lines the tap console replays.
	ConsoleHistory int
}

// DefaultConfig mirrors the stock watchface: four slots, 24h clock and a
// refresh every half hour from the built-in sample feed.
func DefaultConfig() Config {
	return Config{
		Fetcher:        companion.StaticFetcher{Readings: feed.SampleReadings()},
		Slots:          sensors.DefaultSlots,
		Use24h:         true,
		RefreshMinutes: watchface.DefaultRefreshMinutes,
		ConsoleHistory: term.DefaultHistory,
	}
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	termEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	watchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	companionEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	if l := h.Logger(); l != nil {
		l.WriteLineString("sensorwatch " + buildinfo.String())
	}

	k.AddTask(term.New(h.Display(), termEP.Restrict(kernel.RightRecv), cfg.ConsoleHistory))
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv), termEP.Restrict(kernel.RightSend)))
	k.AddTask(timesvc.New(h.Clock(), timeEP.Restrict(kernel.RightRecv)))
	if a := h.Accel(); a != nil {
		k.AddTask(accel.New(a, watchEP.Restrict(kernel.RightSend)))
	}

	caps := watchface.Caps{
		Time:    timeEP.Restrict(kernel.RightSend),
		Log:     logEP.Restrict(kernel.RightSend),
		Console: termEP.Restrict(kernel.RightSend),
	}
	if cfg.Fetcher != nil {
		caps.Companion = companionEP.Restrict(kernel.RightSend)
		k.AddTask(companion.New(
			companionEP.Restrict(kernel.RightRecv),
			watchEP.Restrict(kernel.RightSend),
			logEP.Restrict(kernel.RightSend),
			h.Clock(),
			companion.Config{Fetcher: cfg.Fetcher, Timeout: cfg.FetchTimeout, Metrics: cfg.Metrics},
		))
	}
	k.AddTask(watchface.New(h.Display(), watchEP, caps, watchface.Config{
		Slots:          cfg.Slots,
		Color:          cfg.Color,
		Use24h:         cfg.Use24h,
		RefreshMinutes: cfg.RefreshMinutes,
	}))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
