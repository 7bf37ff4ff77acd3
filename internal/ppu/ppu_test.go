package ppu

import (
	"testing"
)

// patternRAM is a writable 8KB pattern source for tests.
type patternRAM struct {
	data [0x2000]uint8
}

func (p *patternRAM) ReadCHR(address uint16) uint8 {
	return p.data[address]
}

func (p *patternRAM) WriteCHR(address uint16, value uint8) {
	p.data[address] = value
}

// setAddr runs the two-write address protocol.
func setAddr(p *PPU, address uint16) {
	p.WriteRegister(RegAddr, uint8(address>>8))
	p.WriteRegister(RegAddr, uint8(address))
}

func TestAddressLatchTwoWrites(t *testing.T) {
	p := New()

	p.WriteRegister(RegAddr, 0x21)
	if p.v != 0 {
		t.Errorf("first address write must not commit, v=0x%04X", p.v)
	}
	p.WriteRegister(RegAddr, 0x08)
	if p.v != 0x2108 {
		t.Errorf("v=0x%04X, want 0x2108", p.v)
	}
}

func TestAddressHighByteMasked(t *testing.T) {
	p := New()

	// High-byte bits above the 14-bit space are dropped.
	setAddr(p, 0xFF00)
	if p.v != 0x3F00 {
		t.Errorf("v=0x%04X, want 0x3F00", p.v)
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := New()
	p.SetVBlank(true)
	p.WriteRegister(RegAddr, 0x21) // half-written address

	status := p.ReadRegister(RegStatus)
	if status&0x80 == 0 {
		t.Error("status read must return the pre-clear VBlank bit")
	}
	if p.VBlank() {
		t.Error("status read must clear VBlank")
	}
	if p.w {
		t.Error("status read must reset the write latch")
	}

	if again := p.ReadRegister(RegStatus); again&0x80 != 0 {
		t.Error("second status read must see VBlank clear")
	}

	// After the latch reset the next address write is a high byte again.
	setAddr(p, 0x2108)
	if p.v != 0x2108 {
		t.Errorf("v=0x%04X after latch reset, want 0x2108", p.v)
	}
}

func TestScrollWritePacking(t *testing.T) {
	p := New()

	p.WriteRegister(RegScroll, 0x7D) // X: coarse 15, fine 5
	if p.t&0x001F != 15 {
		t.Errorf("coarse X=%d, want 15", p.t&0x001F)
	}
	if p.x != 5 {
		t.Errorf("fine X=%d, want 5", p.x)
	}
	if !p.w {
		t.Error("first scroll write must set the latch")
	}

	p.WriteRegister(RegScroll, 0x5E) // Y: coarse 11, fine 6
	if got := p.t >> 5 & 0x001F; got != 11 {
		t.Errorf("coarse Y=%d, want 11", got)
	}
	if got := p.t >> 12 & 0x0007; got != 6 {
		t.Errorf("fine Y=%d, want 6", got)
	}
	if p.w {
		t.Error("second scroll write must clear the latch")
	}
}

func TestCtrlWriteSelectsNametable(t *testing.T) {
	p := New()
	p.WriteRegister(RegCtrl, 0x03)
	if got := p.t >> 10 & 0x03; got != 3 {
		t.Errorf("nametable bits=%d, want 3", got)
	}
}

func TestScrollAndAddrShareLatch(t *testing.T) {
	p := New()

	p.WriteRegister(RegScroll, 0x08) // first write, sets latch
	p.WriteRegister(RegAddr, 0x10)   // acts as the second (low-byte) write
	if p.w {
		t.Error("mixed writes: latch should be clear after two writes")
	}
	if p.v == 0 {
		t.Error("mixed writes: second address write should commit v")
	}
}

func TestDataReadBuffered(t *testing.T) {
	p := New()

	setAddr(p, 0x2100)
	p.WriteRegister(RegData, 0xAA)
	p.WriteRegister(RegData, 0xBB)

	setAddr(p, 0x2100)
	if first := p.ReadRegister(RegData); first != 0x00 {
		t.Errorf("first buffered read = 0x%02X, want stale 0x00", first)
	}
	if second := p.ReadRegister(RegData); second != 0xAA {
		t.Errorf("second read = 0x%02X, want 0xAA", second)
	}
	if third := p.ReadRegister(RegData); third != 0xBB {
		t.Errorf("third read = 0x%02X, want 0xBB", third)
	}
}

func TestDataReadPaletteBypassesBuffer(t *testing.T) {
	p := New()

	setAddr(p, 0x3F00)
	p.WriteRegister(RegData, 0x21)

	setAddr(p, 0x3F00)
	if got := p.ReadRegister(RegData); got != 0x21 {
		t.Errorf("palette read = 0x%02X, want immediate 0x21", got)
	}
}

func TestDataIncrementModes(t *testing.T) {
	p := New()

	setAddr(p, 0x2000)
	p.WriteRegister(RegData, 0x11)
	if p.v != 0x2001 {
		t.Errorf("+1 mode: v=0x%04X, want 0x2001", p.v)
	}

	p.WriteRegister(RegCtrl, 0x04) // +32 mode
	setAddr(p, 0x2000)
	p.WriteRegister(RegData, 0x22)
	if p.v != 0x2020 {
		t.Errorf("+32 mode: v=0x%04X, want 0x2020", p.v)
	}
}

func TestDataAddressWrapsAt3FFF(t *testing.T) {
	p := New()
	setAddr(p, 0x3FFF)
	p.WriteRegister(RegData, 0x33)
	if p.v != 0x0000 {
		t.Errorf("v=0x%04X after increment past 0x3FFF, want 0x0000", p.v)
	}
}

func TestNametableMirroring(t *testing.T) {
	p := New()

	// $2000 and $2800 fold onto the same 2KB cell.
	setAddr(p, 0x2000)
	p.WriteRegister(RegData, 0x42)

	setAddr(p, 0x2800)
	p.ReadRegister(RegData) // prime the buffer
	setAddr(p, 0x2800)
	p.ReadRegister(RegData)
	if got := p.readBuffer; got != 0x42 {
		t.Errorf("nametable mirror read = 0x%02X, want 0x42", got)
	}
	if got := p.readVRAM(0x2800); got != 0x42 {
		t.Errorf("readVRAM($2800) = 0x%02X, want 0x42", got)
	}
}

func TestPaletteBackdropMirrors(t *testing.T) {
	p := New()

	// $3F10 is a mirror of $3F00.
	p.writeVRAM(0x3F10, 0x16)
	if got := p.readVRAM(0x3F00); got != 0x16 {
		t.Errorf("read $3F00 = 0x%02X, want 0x16", got)
	}
	p.writeVRAM(0x3F00, 0x2A)
	if got := p.readVRAM(0x3F10); got != 0x2A {
		t.Errorf("read $3F10 = 0x%02X, want 0x2A", got)
	}

	// Non-backdrop sprite entries are distinct.
	p.writeVRAM(0x3F11, 0x01)
	p.writeVRAM(0x3F01, 0x02)
	if p.readVRAM(0x3F11) != 0x01 || p.readVRAM(0x3F01) != 0x02 {
		t.Error("non-backdrop palette entries must not alias")
	}

	// The window mirrors every 32 bytes.
	if got := p.readVRAM(0x3F20); got != 0x2A {
		t.Errorf("read $3F20 = 0x%02X, want 0x2A", got)
	}
}

func TestOAMAddressAndData(t *testing.T) {
	p := New()

	p.WriteRegister(RegOAMAddr, 0x10)
	p.WriteRegister(RegOAMData, 0xAA)
	p.WriteRegister(RegOAMData, 0xBB)

	if p.oam[0x10] != 0xAA || p.oam[0x11] != 0xBB {
		t.Errorf("OAM write: [0x10]=0x%02X [0x11]=0x%02X", p.oam[0x10], p.oam[0x11])
	}

	// Reads do not increment the address.
	p.WriteRegister(RegOAMAddr, 0x10)
	if got := p.ReadRegister(RegOAMData); got != 0xAA {
		t.Errorf("OAM read = 0x%02X, want 0xAA", got)
	}
	if got := p.ReadRegister(RegOAMData); got != 0xAA {
		t.Errorf("repeated OAM read = 0x%02X, want 0xAA", got)
	}
}

func TestPatternSourceRouting(t *testing.T) {
	p := New()

	// Without a source pattern space reads 0 and discards writes.
	setAddr(p, 0x0000)
	p.WriteRegister(RegData, 0x42)
	if got := p.readVRAM(0x0000); got != 0 {
		t.Errorf("detached pattern read = 0x%02X, want 0", got)
	}

	patterns := &patternRAM{}
	p.SetPatternSource(patterns)
	setAddr(p, 0x0123)
	p.WriteRegister(RegData, 0x55)
	if patterns.data[0x0123] != 0x55 {
		t.Errorf("pattern write did not reach the source")
	}
}

func TestWriteOnlyRegistersReadZero(t *testing.T) {
	p := New()
	p.WriteRegister(RegCtrl, 0xFF)
	p.WriteRegister(RegMask, 0xFF)

	for _, reg := range []uint16{RegCtrl, RegMask, RegOAMAddr, RegScroll, RegAddr} {
		if got := p.ReadRegister(reg); got != 0 {
			t.Errorf("read $%04X = 0x%02X, want 0", reg, got)
		}
	}
}

func TestResetClearsLatchesKeepsMemories(t *testing.T) {
	p := New()
	setAddr(p, 0x2100)
	p.WriteRegister(RegData, 0x42)
	p.WriteRegister(RegCtrl, 0xFF)
	p.WriteRegister(RegAddr, 0x21) // leave the latch half-set

	p.Reset()

	if p.ctrl != 0 || p.v != 0 || p.t != 0 || p.w {
		t.Error("Reset must clear register and latch state")
	}
	if got := p.readVRAM(0x2100); got != 0x42 {
		t.Errorf("Reset must keep nametable contents, got 0x%02X", got)
	}
}
