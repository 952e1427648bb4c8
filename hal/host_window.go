//go:build !tinygo && cgo

package hal

import (
	"sensorwatch/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	// Scale is the window pixels per watch pixel. Defaults to 3.
	Scale int
	Host  HostConfig
}

// RunWindow shows the watch screen in an ebiten window until it is closed.
// Keys stand in for wrist taps; see hostAccel.poll.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	h := newHost(cfg.Host)
	w := &watchWindow{
		h:     h,
		step:  newApp(h),
		pix:   make([]byte, h.fb.width*h.fb.height*4),
		frame: ebiten.NewImage(h.fb.width, h.fb.height),
	}

	ebiten.SetWindowTitle("Sensor Watch " + buildinfo.Short())
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(w)
}

// watchWindow implements ebiten.Game. Update advances the watch one frame;
// Draw blits the framebuffer at native size and lets ebiten scale it.
type watchWindow struct {
	h     *hostHAL
	step  func() error
	pix   []byte
	frame *ebiten.Image
}

func (w *watchWindow) Update() error {
	w.h.accel.poll()
	w.h.t.frame()
	if w.step == nil {
		return nil
	}
	return w.step()
}

func (w *watchWindow) Draw(screen *ebiten.Image) {
	w.h.fb.copyRGBA(w.pix)
	w.frame.WritePixels(w.pix)
	screen.DrawImage(w.frame, nil)
}

func (w *watchWindow) Layout(int, int) (int, int) {
	return w.h.fb.width, w.h.fb.height
}
