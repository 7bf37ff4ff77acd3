// Package graphics presents finished frames. The core produces 256x240
// palette-index buffers; this package owns the master color table and the
// display backends that turn those buffers into visible pixels.
package graphics

import "famicore/internal/ppu"

// Frame is one finished frame of palette indices (0-63), row-major.
type Frame = [ppu.Width * ppu.Height]uint8

// Source drives the emulated machine one frame at a time and exposes its
// output. The bus satisfies this.
type Source interface {
	StepFrame()
	FrameBuffer() Frame
}

// Backend runs the frame loop against a source until the session ends.
type Backend interface {
	Run(src Source) error
	Name() string
}
