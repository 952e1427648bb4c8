package term

import (
	"image/color"

	"sensorwatch/hal"
	"sensorwatch/sparkos/gfx"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// DefaultHistory is the number of writes kept for replay.
const DefaultHistory = 48

// Service is the diagnostics console. It records every write and only draws
// while active, replaying the recorded history when activated so the log can
// be inspected on the watch itself.
type Service struct {
	disp hal.Display
	ep   kernel.Capability

	d *gfx.Display
	t *tinyterm.Terminal

	active bool
	dirty  bool

	history [][]byte
	next    int
	full    bool
}

func New(disp hal.Display, ep kernel.Capability, history int) *Service {
	if history <= 0 {
		history = DefaultHistory
	}
	return &Service{disp: disp, ep: ep, history: make([][]byte, history)}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.disp != nil {
		if fb := s.disp.Framebuffer(); fb != nil {
			s.d = gfx.New(fb)
		}
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := ctx.Ticks(done)

	for {
		select {
		case <-tickCh:
			s.flush()

		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgTermWrite:
				s.write(msg.Payload())
			case proto.MsgTermClear:
				s.clear()
			case proto.MsgAppControl:
				active, ok := proto.DecodeAppControlPayload(msg.Payload())
				if !ok {
					continue
				}
				s.setActive(active)
				if msg.Cap.Valid() {
					_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgAppControl), proto.AppControlPayload(s.active), kernel.Capability{})
				}
			}
		}
	}
}

func (s *Service) write(b []byte) {
	cp := make([]byte, len(b))
	copy(cp, b)
	s.history[s.next] = cp
	s.next = (s.next + 1) % len(s.history)
	if s.next == 0 {
		s.full = true
	}

	if s.active && s.t != nil {
		_, _ = s.t.Write(cp)
		s.dirty = true
	}
}

func (s *Service) clear() {
	for i := range s.history {
		s.history[i] = nil
	}
	s.next = 0
	s.full = false
	if s.active {
		s.reset()
	}
}

func (s *Service) setActive(active bool) {
	if s.d == nil {
		s.active = false
		return
	}
	if active == s.active {
		return
	}
	s.active = active
	if !active {
		s.t = nil
		s.dirty = false
		return
	}
	s.reset()
	for _, b := range s.replay() {
		_, _ = s.t.Write(b)
	}
	_ = s.d.Display()
}

func (s *Service) replay() [][]byte {
	if !s.full {
		return s.history[:s.next]
	}
	out := make([][]byte, 0, len(s.history))
	out = append(out, s.history[s.next:]...)
	return append(out, s.history[:s.next]...)
}

func (s *Service) flush() {
	if s.dirty && s.t != nil {
		_ = s.d.Display()
		s.dirty = false
	}
}

// reset starts a fresh terminal on a blank screen. A new gfx.Display drops
// the scroll offset left by the previous session.
func (s *Service) reset() {
	s.d = gfx.New(s.d.Framebuffer())
	s.d.Clear(color.RGBA{A: 0xff})
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	_ = s.d.Display()
}
