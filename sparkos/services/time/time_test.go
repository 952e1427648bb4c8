package timesvc

import (
	"sync"
	"testing"
	"time"

	timeclient "sensorwatch/sparkos/client/time"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

const testTimeout = 1 * time.Second

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type serviceTask struct {
	svc *Service
}

func (t *serviceTask) Run(ctx *kernel.Context) {
	t.svc.Run(ctx)
}

type subscribeTask struct {
	timeCap kernel.Capability
	units   proto.TimeUnits
	out     chan<- kernel.Message
}

func (t *subscribeTask) Run(ctx *kernel.Context) {
	reply := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if res := timeclient.Subscribe(ctx, t.timeCap, t.units, reply.Restrict(kernel.RightSend)); res != kernel.SendOK {
		return
	}
	ch, ok := ctx.RecvChan(reply.Restrict(kernel.RightRecv))
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

type sleepTask struct {
	timeCap kernel.Capability
	dt      uint32
	done    chan<- error
}

func (t *sleepTask) Run(ctx *kernel.Context) {
	t.done <- timeclient.NewSleeper(t.timeCap).Sleep(ctx, t.dt)
}

func recvWithTimeout[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
		var zero T
		return zero
	}
}

func decodeTick(t *testing.T, msg kernel.Message) (int64, proto.TimeUnits) {
	t.Helper()
	if proto.Kind(msg.Kind) != proto.MsgTickEvent {
		t.Fatalf("kind = %s, want %s", proto.Kind(msg.Kind), proto.MsgTickEvent)
	}
	unix, _, changed, ok := proto.DecodeTickEventPayload(msg.Payload())
	if !ok {
		t.Fatal("bad tick event payload")
	}
	return unix, changed
}

func TestSubscribeSendsImmediateEvent(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 29, 0, 0, time.UTC)
	clock := &fakeClock{now: start}

	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(&serviceTask{svc: New(clock, ep.Restrict(kernel.RightRecv))})

	events := make(chan kernel.Message, 4)
	k.AddTask(&subscribeTask{timeCap: ep.Restrict(kernel.RightSend), units: proto.MinuteUnit, out: events})

	unix, changed := decodeTick(t, recvWithTimeout(t, events))
	if unix != start.Unix() {
		t.Fatalf("unix = %d, want %d", unix, start.Unix())
	}
	if changed&proto.MinuteUnit == 0 {
		t.Fatalf("changed = %08b, want minute bit set", changed)
	}

	next := start.Add(time.Minute)
	clock.Set(next)
	k.TickTo(1)

	unix, changed = decodeTick(t, recvWithTimeout(t, events))
	if unix != next.Unix() {
		t.Fatalf("unix = %d, want %d", unix, next.Unix())
	}
	if changed != proto.MinuteUnit|proto.SecondUnit {
		t.Fatalf("changed = %08b, want minute|second", changed)
	}
}

func TestSleepWakesAfterTicks(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(&serviceTask{svc: New(nil, ep.Restrict(kernel.RightRecv))})

	done := make(chan error, 1)
	k.AddTask(&sleepTask{timeCap: ep.Restrict(kernel.RightSend), dt: 3, done: done})

	deadline := time.After(testTimeout)
	for tick := uint64(1); ; tick++ {
		k.TickTo(tick)
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("Sleep: %v", err)
			}
			if tick < 3 {
				t.Fatalf("woke at tick %d, want >= 3", tick)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for wake")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestChangedUnits(t *testing.T) {
	base := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	all := proto.SecondUnit | proto.MinuteUnit | proto.HourUnit | proto.DayUnit | proto.MonthUnit | proto.YearUnit

	cases := []struct {
		name string
		next time.Time
		want proto.TimeUnits
	}{
		{"same", base, 0},
		{"second", base.Add(-time.Second), proto.SecondUnit},
		{"new year", base.Add(time.Second), all},
		{"hour", time.Date(2023, 12, 31, 22, 59, 59, 0, time.UTC), proto.HourUnit | proto.MinuteUnit | proto.SecondUnit},
	}
	for _, tc := range cases {
		if got := ChangedUnits(base, tc.next); got != tc.want {
			t.Fatalf("%s: ChangedUnits = %08b, want %08b", tc.name, got, tc.want)
		}
	}
}
