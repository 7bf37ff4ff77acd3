// Package ppu implements the graphics unit's memory-mapped register file and
// its internal memories: nametable RAM, palette RAM, sprite attribute memory
// and the palette-index frame buffer.
package ppu

// Frame buffer dimensions in pixels.
const (
	Width  = 256
	Height = 240
)

// CPU-visible register addresses.
const (
	RegCtrl    = 0x2000
	RegMask    = 0x2001
	RegStatus  = 0x2002
	RegOAMAddr = 0x2003
	RegOAMData = 0x2004
	RegScroll  = 0x2005
	RegAddr    = 0x2006
	RegData    = 0x2007
)

const (
	ctrlIncrement32 = 0x04 // data register auto-increment: +32 instead of +1
	ctrlSpriteTable = 0x08 // sprite pattern table select (8x8 mode)
	ctrlBGTable     = 0x10 // background pattern table select
	ctrlSprite8x16  = 0x20 // 8x16 sprite mode
	ctrlNMIEnable   = 0x80

	maskShowBG      = 0x08
	maskShowSprites = 0x10

	statusVBlank = 0x80

	attrPalette  = 0x03
	attrBehindBG = 0x20
	attrFlipH    = 0x40
	attrFlipV    = 0x80
)

// PatternSource provides pattern table bytes ($0000-$1FFF of the graphics
// address space). Pattern data is owned by the cartridge mapper; the
// register file only forwards accesses when a source is attached.
type PatternSource interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// PPU is the graphics unit's register file and internal state.
type PPU struct {
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// Internal address state. v is the live VRAM address, t the temp
	// address assembled by the two-write protocols, x the fine-X scroll
	// and w the shared write-toggle latch.
	v uint16
	t uint16
	x uint8
	w bool

	// One-byte read-ahead buffer for the data register.
	readBuffer uint8

	nametable [0x800]uint8 // 2KB, mirrored into the 4KB logical window
	palette   [32]uint8    // mirrored every 32 bytes
	oam       [256]uint8

	frame    [Width * Height]uint8 // palette indices, 0-63
	bgOpaque [Width * Height]bool  // background opacity, for sprite priority

	patterns PatternSource
}

// New creates a graphics register file with no pattern source attached.
func New() *PPU {
	return &PPU{}
}

// Reset clears all register and latch state. The internal memories keep
// their contents, as on real hardware.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false
	p.readBuffer = 0
}

// SetPatternSource attaches the cartridge's pattern storage.
func (p *PPU) SetPatternSource(src PatternSource) {
	p.patterns = src
}

// ReadRegister reads a CPU-visible register. Reads carry side effects: the
// status register resets the write latch and clears the VBlank bit, the
// data register runs the buffered-read protocol.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case RegStatus:
		status := p.status
		p.status &^= statusVBlank
		p.w = false
		return status

	case RegOAMData:
		return p.oam[p.oamAddr]

	case RegData:
		return p.readData()

	default:
		// Write-only registers read as 0 in this scope.
		return 0
	}
}

// WriteRegister writes a CPU-visible register.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case RegCtrl:
		p.ctrl = value
		// Low two bits select the nametable, folded into temp bits 10-11.
		p.t = p.t&0xF3FF | uint16(value&0x03)<<10

	case RegMask:
		p.mask = value

	case RegOAMAddr:
		p.oamAddr = value

	case RegOAMData:
		p.oam[p.oamAddr] = value
		p.oamAddr++

	case RegScroll:
		p.writeScroll(value)

	case RegAddr:
		p.writeAddr(value)

	case RegData:
		p.writeData(value)
	}
}

// writeScroll is the two-write scroll protocol over the shared latch:
// first write fine/coarse X, second write fine/coarse Y.
func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = p.t&0xFFE0 | uint16(value)>>3
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = p.t&0x8FFF | uint16(value&0x07)<<12
		p.t = p.t&0xFC1F | uint16(value&0xF8)<<2
		p.w = false
	}
}

// writeAddr is the two-write address protocol: high byte (masked to the
// 14-bit space) then low byte, which commits temp into the live address.
func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = p.t&0x80FF | uint16(value&0x3F)<<8
		p.w = true
	} else {
		p.t = p.t&0xFF00 | uint16(value)
		p.v = p.t
		p.w = false
	}
}

// readData implements the one-read-behind buffer: the returned byte is the
// previous read's fetch, except in palette space where reads are immediate.
// The address increments afterwards either way.
func (p *PPU) readData() uint8 {
	var data uint8
	if p.v&0x3FFF >= 0x3F00 {
		data = p.readVRAM(p.v)
		// The buffer still refills from the nametable underneath.
		p.readBuffer = p.readVRAM(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.readVRAM(p.v)
	}
	p.incrementAddr()
	return data
}

func (p *PPU) writeData(value uint8) {
	p.writeVRAM(p.v, value)
	p.incrementAddr()
}

func (p *PPU) incrementAddr() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

// readVRAM routes an internal graphics address: pattern tables go to the
// attached source, nametable RAM is mirrored every $800, palette RAM every
// $20.
func (p *PPU) readVRAM(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if p.patterns == nil {
			return 0
		}
		return p.patterns.ReadCHR(address)

	case address < 0x3F00:
		return p.nametable[(address-0x2000)%0x800]

	default:
		return p.palette[paletteIndex(address)]
	}
}

func (p *PPU) writeVRAM(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if p.patterns != nil {
			p.patterns.WriteCHR(address, value)
		}

	case address < 0x3F00:
		p.nametable[(address-0x2000)%0x800] = value

	default:
		p.palette[paletteIndex(address)] = value
	}
}

// paletteIndex folds a palette address into the 32-byte RAM. Entries $10,
// $14, $18 and $1C mirror the background entries, so the backdrop color is
// shared between the background and sprite halves.
func paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) % 0x20
	if index >= 0x10 && index%4 == 0 {
		index -= 0x10
	}
	return index
}

// VBlank state. The emulator raises VBlank at the end of each rendered
// frame and clears it before the next; programs observe and clear it
// through the status register.

// SetVBlank sets or clears the VBlank status bit.
func (p *PPU) SetVBlank(on bool) {
	if on {
		p.status |= statusVBlank
	} else {
		p.status &^= statusVBlank
	}
}

// VBlank reports whether the VBlank status bit is set.
func (p *PPU) VBlank() bool {
	return p.status&statusVBlank != 0
}

// NMIEnabled reports whether the control register requests an NMI at the
// start of the vertical blank.
func (p *PPU) NMIEnabled() bool {
	return p.ctrl&ctrlNMIEnable != 0
}

// RenderingEnabled reports whether the mask register shows the background
// or sprites.
func (p *PPU) RenderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// FrameBuffer returns a copy of the palette-index frame buffer. Values are
// indices into the presentation layer's 64-entry color table.
func (p *PPU) FrameBuffer() [Width * Height]uint8 {
	return p.frame
}
