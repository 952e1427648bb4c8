//go:build !tinygo

package hal

type hostAccel struct {
	ch chan TapEvent
}

func newHostAccel() *hostAccel {
	return &hostAccel{ch: make(chan TapEvent, 16)}
}

func (a *hostAccel) Taps() <-chan TapEvent { return a.ch }

func (a *hostAccel) tap(ev TapEvent) {
	select {
	case a.ch <- ev:
	default:
	}
}
