//go:build !tinygo

package hal

import "time"

// HostTickDuration is one kernel tick on the host.
const HostTickDuration = time.Millisecond

// hostTime turns frame callbacks into kernel ticks: every frame emits as
// many ticks as wall time has passed, carrying the remainder forward.
type hostTime struct {
	ch   chan uint64
	seq  uint64
	last time.Time
	rem  time.Duration
	now  func() time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// frame is called once per host frame. The first frame emits one tick.
func (t *hostTime) frame() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.rem += now.Sub(t.last)
	t.last = now
	n := t.rem / HostTickDuration
	t.rem -= n * HostTickDuration
	t.emit(uint64(n))
}

// emit drops ticks the kernel has not drained. Only the newest number
// matters to it.
func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
