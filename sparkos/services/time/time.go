package timesvc

import (
	"time"

	"sensorwatch/hal"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

const (
	maxSleepers    = 32
	maxSubscribers = 8
)

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

type subscriber struct {
	units proto.TimeUnits
	reply kernel.Capability
}

// Service wakes sleepers on kernel ticks and publishes wall-clock unit
// changes to tick subscribers.
type Service struct {
	clock hal.Clock
	ep    kernel.Capability

	now      uint64
	sleepers [maxSleepers]sleeper

	subs []subscriber
	last time.Time
}

func New(clock hal.Clock, ep kernel.Capability) *Service {
	return &Service{clock: clock, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := ctx.Ticks(done)

	s.now = ctx.NowTick()
	if s.clock != nil {
		s.last = s.clock.Now()
	}

	for {
		select {
		case now := <-tickCh:
			s.now = now
			s.wakeReady(ctx)
			s.publish(ctx)

		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgSleep:
				s.handleSleep(ctx, msg)
			case proto.MsgTickSubscribe:
				s.handleSubscribe(ctx, msg)
			}
		}
	}
}

func (s *Service) handleSleep(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}

	requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
	if !ok {
		payload := proto.ErrorPayload(
			proto.ErrBadMessage,
			proto.MsgSleep,
			proto.RequestDetail(0, nil),
		)
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
		return
	}
	if dt == 0 {
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgWake), proto.WakePayload(requestID), kernel.Capability{})
		return
	}
	if ok := s.schedule(s.now+uint64(dt), requestID, msg.Cap); !ok {
		payload := proto.ErrorPayload(
			proto.ErrOverflow,
			proto.MsgSleep,
			proto.RequestDetail(requestID, nil),
		)
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
	}
}

// handleSubscribe registers a tick subscriber and sends it one event right
// away so it can draw before the first unit boundary.
func (s *Service) handleSubscribe(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}
	units, ok := proto.DecodeTickSubscribePayload(msg.Payload())
	if !ok || units == 0 || s.clock == nil {
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), proto.ErrorPayload(proto.ErrBadMessage, proto.MsgTickSubscribe, nil), kernel.Capability{})
		return
	}
	if len(s.subs) >= maxSubscribers {
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), proto.ErrorPayload(proto.ErrOverflow, proto.MsgTickSubscribe, nil), kernel.Capability{})
		return
	}
	s.subs = append(s.subs, subscriber{units: units, reply: msg.Cap})

	now := s.clock.Now()
	_, off := now.Zone()
	all := proto.SecondUnit | proto.MinuteUnit | proto.HourUnit | proto.DayUnit | proto.MonthUnit | proto.YearUnit
	_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgTickEvent), proto.TickEventPayload(now.Unix(), int32(off), all), kernel.Capability{})
}

func (s *Service) publish(ctx *kernel.Context) {
	if s.clock == nil || len(s.subs) == 0 {
		if s.clock != nil {
			s.last = s.clock.Now()
		}
		return
	}
	now := s.clock.Now()
	changed := ChangedUnits(s.last, now)
	if changed == 0 {
		return
	}
	s.last = now

	_, off := now.Zone()
	payload := proto.TickEventPayload(now.Unix(), int32(off), changed)
	for _, sub := range s.subs {
		if sub.units&changed == 0 {
			continue
		}
		_ = ctx.SendToCapResult(sub.reply, uint16(proto.MsgTickEvent), payload, kernel.Capability{})
	}
}

// ChangedUnits reports which calendar units differ between two clock reads.
// A larger unit changing implies every smaller unit changed too.
func ChangedUnits(prev, now time.Time) proto.TimeUnits {
	var u proto.TimeUnits
	if prev.Year() != now.Year() {
		u |= proto.YearUnit
	}
	if u != 0 || prev.Month() != now.Month() {
		u |= proto.MonthUnit
	}
	if u != 0 || prev.Day() != now.Day() {
		u |= proto.DayUnit
	}
	if u != 0 || prev.Hour() != now.Hour() {
		u |= proto.HourUnit
	}
	if u != 0 || prev.Minute() != now.Minute() {
		u |= proto.MinuteUnit
	}
	if u != 0 || prev.Second() != now.Second() {
		u |= proto.SecondUnit
	}
	return u
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
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
		_ = ctx.SendToCapResult(sl.reply, uint16(proto.MsgWake), proto.WakePayload(sl.id), kernel.Capability{})
		*sl = sleeper{}
	}
}
