package app

import (
	"strings"
	"unicode/utf8"

	"sensorwatch/hal"
	"sensorwatch/sparkos/gfx"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/sensors"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicFontHeight = 10
	panicFontOffset = 7
)

// installPanicHandler logs the first task panic and paints it on the watch.
// The screen stays frozen afterwards.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := info.Lines()
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil {
			select {}
		}

		d := gfx.New(fb)
		d.Clear(sensors.ColorWhite)

		font := &proggy.TinySZ8pt7b
		cols := fb.Width()
		if w := int(gfx.TextWidth(font, "0")); w > 0 {
			cols /= w
		}
		y := int16(0)
		for _, line := range lines {
			for _, chunk := range wrapRunes(line, cols) {
				if int(y)+panicFontHeight > fb.Height() {
					_ = d.Display()
					select {}
				}
				tinyfont.WriteLine(d, font, 0, y+panicFontOffset, chunk, sensors.ColorBlack)
				y += panicFontHeight
			}
		}
		_ = d.Display()
		select {}
	})
}

// wrapRunes splits s into chunks of at most n runes.
func wrapRunes(s string, n int) []string {
	if n <= 0 {
		n = 1
	}
	var out []string
	for utf8.RuneCountInString(s) > n {
		i, count := 0, 0
		for count < n {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			count++
		}
		out = append(out, s[:i])
		s = strings.TrimLeft(s[i:], " ")
	}
	return append(out, s)
}
