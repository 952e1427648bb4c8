// Package gfx lets tinyfont and tinyterm draw on a hal.Framebuffer by
// implementing the tinygo drivers Displayer contract on top of it.
package gfx

import (
	"encoding/binary"
	"image"
	"image/color"

	"sensorwatch/hal"

	"tinygo.org/x/drivers"
)

// Display draws into an RGB565 framebuffer, clipping to the screen. Nothing
// becomes visible until Display is called.
//
// SetScroll emulates a vertical hardware scroll the way tinyterm expects:
// drawing coordinates are display memory rows, and scroll is the memory row
// shown on the top screen row. The framebuffer always holds the visible
// picture.
type Display struct {
	fb     hal.Framebuffer
	scroll int
}

func New(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

// Clear paints the whole screen c.
func (d *Display) Clear(c color.RGBA) {
	if d.fb != nil {
		d.fb.ClearRGB(c.R, c.G, c.B)
	}
}

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	d.fill(image.Rect(int(x), int(y), int(x)+1, int(y)+1), c)
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), c)
	return nil
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// SetScroll shows memory row line at the top of the screen. The framebuffer
// rows are rotated by the change so earlier drawing moves with the scroll.
func (d *Display) SetScroll(line int16) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	h := d.fb.Height()
	if h <= 0 {
		return
	}
	next := wrap(int(line), h)
	if delta := wrap(next-d.scroll, h); delta != 0 {
		rotateRowsUp(d.fb.Buffer(), d.fb.StrideBytes(), h, delta)
	}
	d.scroll = next
}

// SetRotation is accepted for drivers compatibility. The watch has a fixed
// orientation.
func (d *Display) SetRotation(drivers.Rotation) error { return nil }

// fill paints r clipped to the screen. Framebuffers in any format other
// than RGB565 are left alone.
func (d *Display) fill(r image.Rectangle, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	r = r.Intersect(image.Rect(0, 0, d.fb.Width(), d.fb.Height()))
	if r.Empty() || buf == nil {
		return
	}
	p := rgb565(c)
	stride := d.fb.StrideBytes()
	h := d.fb.Height()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := wrap(y-d.scroll, h) * stride
		for x := r.Min.X; x < r.Max.X; x++ {
			if off := row + x*2; off+1 < len(buf) {
				binary.LittleEndian.PutUint16(buf[off:], p)
			}
		}
	}
}

// rotateRowsUp moves every row of buf n rows up, wrapping the top rows
// around to the bottom.
func rotateRowsUp(buf []byte, stride, rows, n int) {
	size := rows * stride
	if size > len(buf) || n <= 0 || n >= rows {
		return
	}
	top := append([]byte(nil), buf[:n*stride]...)
	copy(buf, buf[n*stride:size])
	copy(buf[size-n*stride:size], top)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
