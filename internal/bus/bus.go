// Package bus wires the emulated machine together: one CPU, one address
// space and one graphics register file per loaded program image.
package bus

import (
	"famicore/internal/cartridge"
	"famicore/internal/cpu"
	"famicore/internal/memory"
	"famicore/internal/ppu"
)

// instructionsPerFrame approximates one NTSC frame at instruction
// granularity: ~29781 CPU cycles per frame at an average of three cycles
// per instruction. Exact pacing is a presentation concern; the core only
// needs a consistent frame-sized batch of steps.
const instructionsPerFrame = 29781 / 3

// Bus owns the core components and drives them. The CPU reaches the
// graphics unit and the cartridge only through the address space.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	Memory *memory.AddressSpace

	cart       *cartridge.Cartridge
	frameCount uint64
}

// New creates an empty machine. LoadCartridge must be called before
// execution is meaningful: with no program image the reset vector reads 0.
func New() *Bus {
	b := &Bus{
		PPU: ppu.New(),
	}
	b.Memory = memory.New(b.PPU, nil)
	b.CPU = cpu.New(b.Memory)
	return b
}

// LoadCartridge maps a program image into the machine and resets it. The
// address space and register file are rebuilt around the new image; the
// CPU is re-bound and reset rather than reconstructed.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.Memory = memory.New(b.PPU, cart)
	b.PPU.SetPatternSource(cart)
	b.CPU = cpu.New(b.Memory)
	b.Reset()
}

// Reset restores the machine to its post-power-on state. The loaded
// cartridge stays mapped.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.CPU.Reset()
	b.frameCount = 0
}

// Step executes exactly one CPU instruction. This is the system's unit of
// atomicity; a halted CPU makes it a no-op.
func (b *Bus) Step() {
	b.CPU.Step()
}

// StepFrame runs one frame's worth of instructions, renders the frame and
// enters the vertical blank, raising an NMI if the program enabled it.
func (b *Bus) StepFrame() {
	b.PPU.SetVBlank(false)

	for i := 0; i < instructionsPerFrame; i++ {
		b.CPU.Step()
	}

	b.PPU.RenderFrame()
	b.PPU.SetVBlank(true)
	if b.PPU.NMIEnabled() {
		b.CPU.NMI()
	}
	b.frameCount++
}

// RunFrames advances the machine by n frames.
func (b *Bus) RunFrames(n int) {
	for i := 0; i < n; i++ {
		b.StepFrame()
	}
}

// FrameBuffer returns the current palette-index frame buffer.
func (b *Bus) FrameBuffer() [ppu.Width * ppu.Height]uint8 {
	return b.PPU.FrameBuffer()
}

// FrameCount returns the number of frames completed since the last reset.
func (b *Bus) FrameCount() uint64 {
	return b.frameCount
}

// Cartridge returns the loaded program image, or nil.
func (b *Bus) Cartridge() *cartridge.Cartridge {
	return b.cart
}
