package time

import (
	"fmt"

	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

// Sleeper issues blocking sleep requests against the time service. Each
// task owns its own Sleeper so replies are never shared between tasks.
type Sleeper struct {
	timeCap kernel.Capability
	reply   kernel.Capability
	nextID  uint32
}

func NewSleeper(timeCap kernel.Capability) *Sleeper {
	return &Sleeper{timeCap: timeCap}
}

// Sleep blocks until the time service reports that dt ticks have elapsed.
func (s *Sleeper) Sleep(ctx *kernel.Context, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time sleep: nil context")
	}
	if !s.reply.Valid() {
		s.reply = ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if !s.reply.Valid() {
			return fmt.Errorf("time sleep: allocate reply endpoint")
		}
	}

	s.nextID++
	if s.nextID == 0 {
		s.nextID++
	}
	id := s.nextID

	payload := proto.SleepPayload(id, dt)
	res := ctx.SendToCapRetry(s.timeCap, uint16(proto.MsgSleep), payload, s.reply.Restrict(kernel.RightSend), 16)
	if res != kernel.SendOK {
		return fmt.Errorf("time sleep send: %s", res)
	}

	recv := s.reply.Restrict(kernel.RightRecv)
	for {
		msg, ok := ctx.Recv(recv)
		if !ok {
			return fmt.Errorf("time sleep: reply endpoint closed")
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgWake:
			reqID, ok := proto.DecodeWakePayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time wake: bad payload")
			}
			if reqID == id {
				return nil
			}
		case proto.MsgError:
			code, ref, detail, ok := proto.DecodeErrorPayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time error: bad payload")
			}
			if reqID, _, ok := proto.DecodeRequestDetail(detail); ok && reqID != id {
				continue
			}
			return fmt.Errorf("time error: code=%s ref=%s", code, ref)
		}
	}
}

// Subscribe asks the time service to send MsgTickEvent to reply whenever one
// of units changes. The first event arrives immediately.
func Subscribe(ctx *kernel.Context, timeCap kernel.Capability, units proto.TimeUnits, reply kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapRetry(timeCap, uint16(proto.MsgTickSubscribe), proto.TickSubscribePayload(units), reply, 16)
}
