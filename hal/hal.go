// Package hal is the boundary between the watch system and whatever runs it:
// an ebiten window or a headless loop on the host.
package hal

import (
	"errors"
	"time"
)

var ErrNotImplemented = errors.New("not implemented")

// HAL bundles the devices the watch uses. Any accessor may return nil when
// the platform lacks that device.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
	Clock() Clock
	Accel() Accel
}

// Logger receives one line per call, without the trailing newline.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

type PixelFormat uint8

// PixelFormatRGB565 packs a pixel in 16 bits as rrrrrggggggbbbbb.
const PixelFormatRGB565 PixelFormat = 1

// Framebuffer is the watch screen memory. Drawing goes into Buffer and
// becomes visible on Present.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

type Display interface {
	Framebuffer() Framebuffer
}

// Time drives the kernel. Each value received is the next tick number;
// the tick rate belongs to the platform.
type Time interface {
	Ticks() <-chan uint64
}

// Clock is the wall clock shown on the face. Host runs may scale it.
type Clock interface {
	Now() time.Time
}

type TapAxis uint8

const (
	TapAxisX TapAxis = iota
	TapAxisY
	TapAxisZ
)

// TapEvent is one accelerometer tap. Direction is +1 or -1 along Axis.
type TapEvent struct {
	Axis      TapAxis
	Direction int8
}

// Accel reports taps. Platforms may drop taps when nobody is reading.
type Accel interface {
	Taps() <-chan TapEvent
}
