//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll maps keys to taps: space taps Z, arrows tap X and Y.
func (a *hostAccel) poll() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.tap(TapEvent{Axis: TapAxisZ, Direction: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.tap(TapEvent{Axis: TapAxisX, Direction: -1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.tap(TapEvent{Axis: TapAxisX, Direction: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		a.tap(TapEvent{Axis: TapAxisY, Direction: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.tap(TapEvent{Axis: TapAxisY, Direction: -1})
	}
}
