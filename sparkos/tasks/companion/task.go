// Package companion is the phone-side half of the watchface. It fetches the
// latest sensor readings from a feed and pushes them to the watch inbox as
// one app message dictionary, on start-up and whenever the watch asks.
package companion

import (
	"context"
	"errors"
	"time"

	"sensorwatch/hal"
	logclient "sensorwatch/sparkos/client/logger"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
	"sensorwatch/sparkos/sensors"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	Fetcher Fetcher
	Timeout time.Duration
	Metrics *Metrics
}

type Task struct {
	ep     kernel.Capability
	watch  kernel.Capability
	logCap kernel.Capability
	clock  hal.Clock
	cfg    Config
}

// New returns a companion receiving outbox requests on ep and pushing
// sensor batches to watch.
func New(ep, watch, logCap kernel.Capability, clock hal.Clock, cfg Config) *Task {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Task{ep: ep, watch: watch, logCap: logCap, clock: clock, cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	diag := logclient.Diag{Ctx: ctx, Cap: t.logCap}

	diag.Infof("Companion ready")
	t.refresh(ctx, diag)

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgAppOutbox {
			continue
		}
		_, err := proto.DecodeDict(msg.Payload())
		if msg.Cap.Valid() {
			reason := ""
			if err != nil {
				reason = err.Error()
			}
			_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgOutboxResult), proto.OutboxResultPayload(err == nil, reason), kernel.Capability{})
		}
		if err != nil {
			diag.Errorf("Outbox request: %v", err)
			continue
		}
		diag.Infof("AppMessage received!")
		t.refresh(ctx, diag)
	}
}

func (t *Task) refresh(ctx *kernel.Context, diag logclient.Diag) {
	if t.cfg.Fetcher == nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(context.Background(), t.cfg.Timeout)
	readings, err := t.cfg.Fetcher.Fetch(fetchCtx)
	cancel()
	switch {
	case errors.Is(err, ErrEmptyFeed):
		t.cfg.Metrics.fetch("empty")
		diag.Errorf("Sensor feed is empty")
		return
	case err != nil:
		t.cfg.Metrics.fetch("error")
		diag.Errorf("Sensor fetch failed: %v", err)
		return
	}
	t.cfg.Metrics.fetch("ok")
	t.cfg.Metrics.observe(readings)
	if len(readings) > sensors.Capacity {
		diag.Infof("Feed has %d sensors, the watch keeps %d", len(readings), sensors.Capacity)
		readings = readings[:sensors.Capacity]
	}
	diag.Infof("Sending %d sensors data to the watch", len(readings))

	now := time.Now()
	if t.clock != nil {
		now = t.clock.Now()
	}
	payload, err := proto.EncodeDict(BuildDict(readings, now))
	if err != nil || len(payload) > kernel.MaxMessageBytes {
		t.cfg.Metrics.push("dropped")
		diag.Errorf("message dropped: batch of %d sensors does not fit", len(readings))
		return
	}

	res := ctx.SendToCapResult(t.watch, uint16(proto.MsgAppInbox), payload, kernel.Capability{})
	if res != kernel.SendOK {
		t.cfg.Metrics.push("dropped")
		diag.Errorf("message dropped: %s", res)
		return
	}
	t.cfg.Metrics.push("ok")
}
