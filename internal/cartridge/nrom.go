package cartridge

// nrom is mapper 0: no bank switching. A 16KB program image is mirrored
// into both halves of the $8000-$FFFF window, a 32KB image maps directly.
// Graphics storage is a flat 8KB block, writable only when it is CHR RAM.
type nrom struct {
	cart *Cartridge
}

func newNROM(cart *Cartridge) *nrom {
	return &nrom{cart: cart}
}

func (m *nrom) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return 0
	}
	offset := int(address - 0x8000)
	if m.cart.prgBanks == 1 {
		offset %= 0x4000
	}
	if offset >= len(m.cart.prg) {
		return 0
	}
	return m.cart.prg[offset]
}

func (m *nrom) WritePRG(address uint16, value uint8) {
	// Program storage is read-only under NROM.
}

func (m *nrom) ReadCHR(address uint16) uint8 {
	if int(address) >= len(m.cart.chr) {
		return 0
	}
	return m.cart.chr[address]
}

func (m *nrom) WriteCHR(address uint16, value uint8) {
	if m.cart.chrRAM && int(address) < len(m.cart.chr) {
		m.cart.chr[address] = value
	}
}
