package hal

import (
	"encoding/binary"
	"image/color"
)

// rgb565 is one framebuffer pixel, stored little-endian.
type rgb565 uint16

func pack565(r, g, b uint8) rgb565 {
	return rgb565(r>>3)<<11 | rgb565(g>>2)<<5 | rgb565(b>>3)
}

// RGBA widens p to 8 bits a channel so that full scale maps to 255.
func (p rgb565) RGBA() color.RGBA {
	r5, g6, b5 := uint32(p>>11), uint32(p>>5)&0x3f, uint32(p)&0x1f
	return color.RGBA{R: uint8(r5 * 255 / 31), G: uint8(g6 * 255 / 63), B: uint8(b5 * 255 / 31), A: 0xff}
}

func (p rgb565) put(b []byte) { binary.LittleEndian.PutUint16(b, uint16(p)) }

// expand565 converts RGB565 framebuffer bytes into RGBA image bytes,
// stopping when either slice runs out.
func expand565(dst, src []byte) {
	for len(src) >= 2 && len(dst) >= 4 {
		c := rgb565(binary.LittleEndian.Uint16(src)).RGBA()
		dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, c.A
		src, dst = src[2:], dst[4:]
	}
}
