package accel

import (
	"testing"
	"time"

	"sensorwatch/hal"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

type chanAccel struct{ ch chan hal.TapEvent }

func (a chanAccel) Taps() <-chan hal.TapEvent { return a.ch }

type serviceTask struct{ svc *Service }

func (t *serviceTask) Run(ctx *kernel.Context) { t.svc.Run(ctx) }

type recvTask struct {
	cap kernel.Capability
	out chan<- kernel.Message
}

func (t *recvTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.cap)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

func TestTapForwarded(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	acc := chanAccel{ch: make(chan hal.TapEvent, 1)}
	k.AddTask(&serviceTask{svc: New(acc, ep.Restrict(kernel.RightSend))})

	out := make(chan kernel.Message, 1)
	k.AddTask(&recvTask{cap: ep.Restrict(kernel.RightRecv), out: out})

	acc.ch <- hal.TapEvent{Axis: hal.TapAxisY, Direction: -1}

	select {
	case msg := <-out:
		if proto.Kind(msg.Kind) != proto.MsgTap {
			t.Fatalf("kind = %s, want %s", proto.Kind(msg.Kind), proto.MsgTap)
		}
		axis, dir, ok := proto.DecodeTapPayload(msg.Payload())
		if !ok || axis != proto.AxisY || dir != -1 {
			t.Fatalf("tap = (%s, %d, ok=%v), want (Y, -1, true)", axis, dir, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tap")
	}
}
