package kernel

import (
	"bytes"
	"testing"
	"time"
)

func TestSendRejectsOversizedPayload(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	res := ctx.SendToCapResult(ep, 1, make([]byte, MaxMessageBytes+1), Capability{})
	if res != SendErrPayloadTooLarge {
		t.Fatalf("SendToCapResult() = %s, want %s", res, SendErrPayloadTooLarge)
	}
}

func TestSendTransfersCapability(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	if res := ctx.SendCapResult(reply, ep, 7, []byte("hi"), reply.Restrict(RightSend)); res != SendOK {
		t.Fatalf("SendCapResult() = %s, want ok", res)
	}
	msg, ok := ctx.TryRecv(ep)
	if !ok {
		t.Fatal("expected queued message")
	}
	if msg.Kind != 7 || !bytes.Equal(msg.Payload(), []byte("hi")) {
		t.Fatalf("message = kind %d payload %q, want kind 7 payload %q", msg.Kind, msg.Payload(), "hi")
	}
	if msg.From != reply.ep {
		t.Fatalf("From = %d, want %d", msg.From, reply.ep)
	}
	if !msg.Cap.Valid() || msg.Cap.canRecv() {
		t.Fatalf("Cap = %s, want send-only reply capability", msg.Cap)
	}
}

func TestTickToWakesWaiters(t *testing.T) {
	k := New()
	ctx := &Context{k: k, taskID: 1}

	done := make(chan uint64, 1)
	go func() {
		done <- ctx.WaitTick(0)
	}()

	k.TickTo(0)
	k.TickTo(3)

	select {
	case got := <-done:
		if got != 3 {
			t.Fatalf("WaitTick() = %d, want 3", got)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for tick")
	}

	k.TickTo(2)
	if got := ctx.NowTick(); got != 3 {
		t.Fatalf("NowTick() after stale TickTo = %d, want 3", got)
	}
}

type panicTask struct{}

func (panicTask) Run(*Context) { panic("boom") }

func TestAddTaskRecoversPanic(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })

	k := New()
	id := k.AddTask(panicTask{})

	select {
	case info := <-got:
		if info.TaskID != id || info.Value != "boom" {
			t.Fatalf("PanicInfo = {%d %v}, want {%d boom}", info.TaskID, info.Value, id)
		}
		if len(info.Stack) == 0 {
			t.Fatal("expected captured stack")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
}
