package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// TextWidth returns the advance width of s in font.
func TextWidth(font tinyfont.Fonter, s string) int16 {
	_, outbox := tinyfont.LineWidth(font, s)
	return int16(outbox)
}

// DrawText draws s with its baseline at y.
func (d *Display) DrawText(font tinyfont.Fonter, x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, font, x, y, s, c)
}

// DrawTextCentered draws s horizontally centred with its baseline at y.
func (d *Display) DrawTextCentered(font tinyfont.Fonter, y int16, s string, c color.RGBA) {
	w, _ := d.Size()
	x := (w - TextWidth(font, s)) / 2
	if x < 0 {
		x = 0
	}
	d.DrawText(font, x, y, s, c)
}
