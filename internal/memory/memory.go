// Package memory implements the CPU-visible address space of the NES.
package memory

// RegisterFile is the graphics unit's memory-mapped register window.
type RegisterFile interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// PRG is the cartridge side of the bus: program storage selected by the
// mapper. Only addresses at $8000 and above are routed here.
type PRG interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
}

// AddressSpace routes 16-bit addresses to internal RAM, the graphics
// register window and cartridge program storage.
//
//	$0000-$1FFF  2KB internal RAM, mirrored four times
//	$2000-$3FFF  graphics registers, eight of them, mirrored every 8
//	$4000-$7FFF  reserved; reads 0, writes discarded
//	$8000-$FFFF  program storage via the mapper
type AddressSpace struct {
	ram  [0x800]uint8
	regs RegisterFile
	prg  PRG
}

// New creates an address space over the given register file and program
// storage. Either may be nil, in which case its window reads 0 and discards
// writes.
func New(regs RegisterFile, prg PRG) *AddressSpace {
	return &AddressSpace{
		regs: regs,
		prg:  prg,
	}
}

// Read returns the byte at address.
func (a *AddressSpace) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return a.ram[address%0x0800]

	case address < 0x4000:
		if a.regs == nil {
			return 0
		}
		return a.regs.ReadRegister(0x2000 + address%8)

	case address >= 0x8000:
		if a.prg == nil {
			return 0
		}
		return a.prg.ReadPRG(address)

	default:
		// Reserved for future peripherals and mappers.
		return 0
	}
}

// Write stores value at address. Writes to unmapped regions are silently
// discarded, matching the permissive behavior of the real bus.
func (a *AddressSpace) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		a.ram[address%0x0800] = value

	case address < 0x4000:
		if a.regs != nil {
			a.regs.WriteRegister(0x2000+address%8, value)
		}

	case address >= 0x8000:
		if a.prg != nil {
			a.prg.WritePRG(address, value)
		}
	}
}
