//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Pebble screen geometry.
const (
	ScreenWidth  = 144
	ScreenHeight = 168
)

// HostConfig tunes the host HAL.
type HostConfig struct {
	// TimeScale speeds up the wall clock; 60 turns minutes into seconds.
	TimeScale float64
	// StartAt pins the wall clock origin. Zero means time.Now().
	StartAt time.Time
	// Location is the wall-clock zone. Nil means time.Local.
	Location *time.Location
	// Log receives log lines. Nil means stdout.
	Log io.Writer
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	accel  *hostAccel
	t      *hostTime
	clock  *hostClock
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(ScreenWidth, ScreenHeight),
		accel:  newHostAccel(),
		t:      newHostTime(),
		clock:  newHostClock(time.Now, cfg.StartAt, cfg.TimeScale, cfg.Location),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Accel() Accel     { return h.accel }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
