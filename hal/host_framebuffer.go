//go:build !tinygo

package hal

import "sync"

// hostFramebuffer is the in-memory watch screen. Tasks draw into it while
// the window copies it out each frame, so whole-buffer operations lock.
type hostFramebuffer struct {
	mu            sync.Mutex
	width, height int
	buf           []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{width: width, height: height, buf: make([]byte, width*height*2)}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	p := pack565(r, g, b)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i+1 < len(f.buf); i += 2 {
		p.put(f.buf[i:])
	}
}

// copyRGBA writes the current screen into dst as RGBA pixels.
func (f *hostFramebuffer) copyRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	expand565(dst, f.buf)
}
