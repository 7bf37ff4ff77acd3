// Package cartridge implements iNES image loading and the mapper seam. It
// is a collaborator of the core: the loader produces immutable program and
// graphics byte blocks plus metadata, and the mapper decides how those
// blocks appear in the address space.
package cartridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrInvalidImage = errors.New("cartridge: not an iNES image")

// MirrorMode is the nametable arrangement requested by the image header.
// It is carried as metadata for mapper work; the register file's flat
// nametable fold does not consult it yet.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

// Mapper translates bus addresses into the cartridge's storage blocks.
// Additional bank-switching schemes implement this interface.
type Mapper interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// Cartridge is a loaded program image: two immutable byte blocks and the
// metadata needed to pick and parameterize a mapper.
type Cartridge struct {
	prg []uint8
	chr []uint8

	mapperID   uint8
	prgBanks   uint8 // 16KB units
	chrBanks   uint8 // 8KB units
	mirror     MirrorMode
	hasTrainer bool
	hasBattery bool
	chrRAM     bool

	mapper Mapper
}

// inesHeader is the 16-byte iNES file header.
type inesHeader struct {
	Magic    [4]uint8
	PRGBanks uint8 // 16KB units
	CHRBanks uint8 // 8KB units
	Flags6   uint8
	Flags7   uint8
	_        [8]uint8
}

// LoadFile loads a cartridge from an iNES file on disk.
func LoadFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cart, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cart, nil
}

// Load reads an iNES image: header, optional 512-byte trainer, then the
// program and graphics blocks.
func Load(r io.Reader) (*Cartridge, error) {
	var header inesHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.Magic[:]) != "NES\x1A" {
		return nil, ErrInvalidImage
	}
	if header.PRGBanks == 0 {
		return nil, errors.New("cartridge: image has no program banks")
	}

	cart := &Cartridge{
		mapperID:   header.Flags6>>4 | header.Flags7&0xF0,
		prgBanks:   header.PRGBanks,
		chrBanks:   header.CHRBanks,
		hasTrainer: header.Flags6&0x04 != 0,
		hasBattery: header.Flags6&0x02 != 0,
	}

	switch {
	case header.Flags6&0x08 != 0:
		cart.mirror = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		cart.mirror = MirrorVertical
	default:
		cart.mirror = MirrorHorizontal
	}

	if cart.hasTrainer {
		if _, err := io.CopyN(io.Discard, r, 512); err != nil {
			return nil, fmt.Errorf("cartridge: trainer: %w", err)
		}
	}

	cart.prg = make([]uint8, int(header.PRGBanks)*0x4000)
	if _, err := io.ReadFull(r, cart.prg); err != nil {
		return nil, fmt.Errorf("cartridge: program data: %w", err)
	}

	if header.CHRBanks > 0 {
		cart.chr = make([]uint8, int(header.CHRBanks)*0x2000)
		if _, err := io.ReadFull(r, cart.chr); err != nil {
			return nil, fmt.Errorf("cartridge: graphics data: %w", err)
		}
	} else {
		// No graphics block means the board carries 8KB of CHR RAM.
		cart.chr = make([]uint8, 0x2000)
		cart.chrRAM = true
	}

	cart.mapper = newMapper(cart)
	return cart, nil
}

// New builds a cartridge directly from pre-validated storage blocks and
// metadata, the contract the core consumes. Used by tests and embedders
// that bypass the file format.
func New(prg, chr []uint8, mapperID uint8, mirror MirrorMode) *Cartridge {
	cart := &Cartridge{
		prg:      append([]uint8(nil), prg...),
		chr:      append([]uint8(nil), chr...),
		mapperID: mapperID,
		prgBanks: uint8(len(prg) / 0x4000),
		chrBanks: uint8(len(chr) / 0x2000),
		mirror:   mirror,
	}
	if len(cart.chr) == 0 {
		cart.chr = make([]uint8, 0x2000)
		cart.chrRAM = true
	}
	cart.mapper = newMapper(cart)
	return cart
}

// newMapper selects the mapping scheme for the cartridge's mapper ID.
// Unknown IDs fall back to the fixed NROM mapping so unrecognized images
// still boot; real support for them slots in here.
func newMapper(cart *Cartridge) Mapper {
	switch cart.mapperID {
	case 0:
		return newNROM(cart)
	default:
		return newNROM(cart)
	}
}

// MapperID returns the image's mapper number.
func (c *Cartridge) MapperID() uint8 { return c.mapperID }

// PRGBanks returns the number of 16KB program banks.
func (c *Cartridge) PRGBanks() uint8 { return c.prgBanks }

// CHRBanks returns the number of 8KB graphics banks; 0 means CHR RAM.
func (c *Cartridge) CHRBanks() uint8 { return c.chrBanks }

// Mirror returns the header's nametable mirroring mode.
func (c *Cartridge) Mirror() MirrorMode { return c.mirror }

// HasTrainer reports whether the image carried a trainer block.
func (c *Cartridge) HasTrainer() bool { return c.hasTrainer }

// HasBattery reports whether the header flags battery-backed RAM.
func (c *Cartridge) HasBattery() bool { return c.hasBattery }

// ReadPRG routes a program-storage read through the mapper.
func (c *Cartridge) ReadPRG(address uint16) uint8 {
	return c.mapper.ReadPRG(address)
}

// WritePRG routes a program-storage write through the mapper.
func (c *Cartridge) WritePRG(address uint16, value uint8) {
	c.mapper.WritePRG(address, value)
}

// ReadCHR routes a pattern-table read through the mapper.
func (c *Cartridge) ReadCHR(address uint16) uint8 {
	return c.mapper.ReadCHR(address)
}

// WriteCHR routes a pattern-table write through the mapper.
func (c *Cartridge) WriteCHR(address uint16, value uint8) {
	c.mapper.WriteCHR(address, value)
}
