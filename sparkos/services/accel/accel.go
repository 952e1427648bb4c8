package accel

import (
	"sensorwatch/hal"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

const maxPending = 8

// Service forwards accelerometer taps to a subscriber as MsgTap messages.
// Taps that cannot be delivered are held and retried on the next tick.
type Service struct {
	accel hal.Accel
	out   kernel.Capability

	pending []hal.TapEvent
}

func New(accel hal.Accel, out kernel.Capability) *Service {
	return &Service{accel: accel, out: out}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.accel == nil {
		return
	}
	taps := s.accel.Taps()
	if taps == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := ctx.Ticks(done)

	for {
		select {
		case ev, ok := <-taps:
			if !ok {
				return
			}
			if len(s.pending) >= maxPending {
				s.pending = s.pending[1:]
			}
			s.pending = append(s.pending, ev)
			s.flush(ctx)
		case <-tickCh:
			s.flush(ctx)
		}
	}
}

func (s *Service) flush(ctx *kernel.Context) {
	for len(s.pending) > 0 {
		ev := s.pending[0]
		res := ctx.SendToCapResult(s.out, uint16(proto.MsgTap), proto.TapPayload(proto.Axis(ev.Axis), ev.Direction), kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			return
		}
		s.pending = s.pending[1:]
	}
}
