package term

import (
	"strings"
	"testing"
	"time"

	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

type funcTask func(*kernel.Context)

func (f funcTask) Run(ctx *kernel.Context) { f(ctx) }

func TestRequests(t *testing.T) {
	k := kernel.New()
	console := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	reply := k.NewEndpoint(kernel.RightSend)

	got := make(chan []kernel.Message, 1)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		to := console.Restrict(kernel.RightSend)
		WriteLine(ctx, to, []byte(strings.Repeat("x", kernel.MaxMessageBytes)))
		Clear(ctx, to)
		SetActive(ctx, to, true, reply)

		var msgs []kernel.Message
		for {
			msg, ok := ctx.TryRecv(console.Restrict(kernel.RightRecv))
			if !ok {
				break
			}
			msgs = append(msgs, msg)
		}
		got <- msgs
	}))

	var msgs []kernel.Message
	select {
	case msgs = <-got:
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}

	line := msgs[0].Payload()
	if proto.Kind(msgs[0].Kind) != proto.MsgTermWrite || len(line) != kernel.MaxMessageBytes || !strings.HasSuffix(string(line), "x\r\n") {
		t.Fatalf("write = %s len %d", proto.Kind(msgs[0].Kind), len(line))
	}
	if proto.Kind(msgs[1].Kind) != proto.MsgTermClear {
		t.Fatalf("second message = %s, want term_clear", proto.Kind(msgs[1].Kind))
	}
	if active, ok := proto.DecodeAppControlPayload(msgs[2].Payload()); !ok || !active || !msgs[2].Cap.Valid() {
		t.Fatalf("app control = %v ok=%v cap=%s", active, ok, msgs[2].Cap)
	}
}

func TestNilContext(t *testing.T) {
	if res := WriteLine(nil, kernel.Capability{}, nil); res != kernel.SendErrInvalidFromCap {
		t.Fatalf("WriteLine(nil ctx) = %s", res)
	}
}
