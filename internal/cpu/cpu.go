// Package cpu implements the 6502 instruction engine used by the NES.
package cpu

import "log"

// AddressingMode selects how an instruction's operand location is computed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	// Status register bit masks
	nFlagMask      = 0x80
	vFlagMask      = 0x40
	unusedFlagMask = 0x20
	bFlagMask      = 0x10
	dFlagMask      = 0x08
	iFlagMask      = 0x04
	zFlagMask      = 0x02
	cFlagMask      = 0x01

	zeroPageMask = 0xFF
	pageMask     = 0xFF00

	// Interrupt vectors
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE

	// The one opcode that intentionally stops the engine.
	haltOpcode = 0x02
)

// Memory is the CPU's view of the address space. The engine never talks to
// RAM, cartridge or the PPU directly; everything goes through this seam.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// instruction is one entry of the dispatch table.
type instruction struct {
	name string
	mode AddressingMode
	exec func(*CPU, uint16)
}

// CPU represents the 6502 processor.
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X index
	Y  uint8  // Y index
	SP uint8  // Stack pointer
	PC uint16 // Program counter

	// Status flags
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal (present but unused on the NES)
	B bool // Break
	V bool // Overflow
	N bool // Negative

	// Halted latches true on the halt opcode; Step is a no-op until Reset.
	Halted bool

	mem   Memory
	table [256]*instruction
}

// New creates a CPU bound to the given address space. Reset must be called
// before stepping so the PC is loaded from the reset vector.
func New(mem Memory) *CPU {
	c := &CPU{
		mem: mem,
		SP:  0xFD,
	}
	c.initTable()
	return c
}

// Reset restores the power-up register state and loads PC from the reset
// vector at $FFFC/$FFFD.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.SetStatus(0x24) // InterruptDisable and Unused set

	lo := uint16(c.mem.Read(resetVector))
	hi := uint16(c.mem.Read(resetVector + 1))
	c.PC = hi<<8 | lo

	c.Halted = false
}

// Step fetches, decodes and executes exactly one instruction. It is the
// atomicity unit the rest of the system relies on: no instruction yields
// mid-execution. A halted CPU does nothing until Reset.
func (c *CPU) Step() {
	if c.Halted {
		return
	}

	pc := c.PC
	opcode := c.mem.Read(c.PC)
	c.PC++

	if opcode == haltOpcode {
		c.Halted = true
		log.Printf("cpu: halt opcode $%02X at $%04X, execution stopped", opcode, pc)
		return
	}

	ins := c.table[opcode]
	if ins == nil {
		// Unimplemented opcode: report and keep going. The operand bytes
		// are not consumed, so decoding may desynchronize; accepted while
		// opcode coverage is incremental.
		log.Printf("cpu: unimplemented opcode $%02X at $%04X", opcode, pc)
		return
	}

	addr := c.operandAddress(ins.mode)
	ins.exec(c, addr)
}

// NMI pushes the current PC and status and jumps through the NMI vector.
// The bus raises this at the start of the vertical blank when the PPU's
// control register has NMI generation enabled.
func (c *CPU) NMI() {
	if c.Halted {
		return
	}
	c.pushWord(c.PC)
	c.push(c.Status() &^ bFlagMask)
	c.I = true
	lo := uint16(c.mem.Read(nmiVector))
	hi := uint16(c.mem.Read(nmiVector + 1))
	c.PC = hi<<8 | lo
}

// operandAddress resolves the operand location for the given mode, consuming
// operand bytes from the instruction stream. PC already points past the
// opcode byte.
func (c *CPU) operandAddress(mode AddressingMode) uint16 {
	switch mode {
	case Implied, Accumulator:
		return 0

	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case ZeroPage:
		addr := uint16(c.mem.Read(c.PC))
		c.PC++
		return addr

	case ZeroPageX:
		base := c.mem.Read(c.PC)
		c.PC++
		return uint16((base + c.X) & zeroPageMask) // wraps within page zero

	case ZeroPageY:
		base := c.mem.Read(c.PC)
		c.PC++
		return uint16((base + c.Y) & zeroPageMask)

	case Relative:
		// The offset byte is consumed whether or not the branch is taken.
		offset := int8(c.mem.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset))

	case Absolute:
		lo := uint16(c.mem.Read(c.PC))
		hi := uint16(c.mem.Read(c.PC + 1))
		c.PC += 2
		return hi<<8 | lo

	case AbsoluteX:
		lo := uint16(c.mem.Read(c.PC))
		hi := uint16(c.mem.Read(c.PC + 1))
		c.PC += 2
		return (hi<<8 | lo) + uint16(c.X)

	case AbsoluteY:
		lo := uint16(c.mem.Read(c.PC))
		hi := uint16(c.mem.Read(c.PC + 1))
		c.PC += 2
		return (hi<<8 | lo) + uint16(c.Y)

	case Indirect: // JMP only
		lo := uint16(c.mem.Read(c.PC))
		hi := uint16(c.mem.Read(c.PC + 1))
		c.PC += 2
		ptr := hi<<8 | lo
		// 6502 quirk: when the pointer sits at the end of a page, the high
		// byte is fetched from the start of that same page, not the next.
		if ptr&zeroPageMask == zeroPageMask {
			return uint16(c.mem.Read(ptr&pageMask))<<8 | uint16(c.mem.Read(ptr))
		}
		return uint16(c.mem.Read(ptr+1))<<8 | uint16(c.mem.Read(ptr))

	case IndexedIndirect: // (zp,X)
		base := c.mem.Read(c.PC)
		c.PC++
		ptr := (base + c.X) & zeroPageMask
		lo := uint16(c.mem.Read(uint16(ptr)))
		hi := uint16(c.mem.Read(uint16((ptr + 1) & zeroPageMask)))
		return hi<<8 | lo

	case IndirectIndexed: // (zp),Y
		ptr := uint16(c.mem.Read(c.PC))
		c.PC++
		lo := uint16(c.mem.Read(ptr))
		hi := uint16(c.mem.Read((ptr + 1) & zeroPageMask))
		return (hi<<8 | lo) + uint16(c.Y)

	default:
		return 0
	}
}

// Stack operations. The stack lives in page one and the pointer wraps at the
// 8-bit boundary with no bounds checking, matching the hardware.

func (c *CPU) push(value uint8) {
	c.mem.Write(stackBase+uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.mem.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value & 0xFF))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// setZN sets the Zero and Negative flags from a result byte.
func (c *CPU) setZN(value uint8) {
	c.Z = value == 0
	c.N = value&nFlagMask != 0
}

// Status returns the status register as a byte. The unused bit reads as 1.
func (c *CPU) Status() uint8 {
	status := uint8(unusedFlagMask)
	if c.N {
		status |= nFlagMask
	}
	if c.V {
		status |= vFlagMask
	}
	if c.B {
		status |= bFlagMask
	}
	if c.D {
		status |= dFlagMask
	}
	if c.I {
		status |= iFlagMask
	}
	if c.Z {
		status |= zFlagMask
	}
	if c.C {
		status |= cFlagMask
	}
	return status
}

// SetStatus sets the flags from a byte. The unused bit is ignored on the way
// in and always reads back as 1.
func (c *CPU) SetStatus(status uint8) {
	c.N = status&nFlagMask != 0
	c.V = status&vFlagMask != 0
	c.B = status&bFlagMask != 0
	c.D = status&dFlagMask != 0
	c.I = status&iFlagMask != 0
	c.Z = status&zFlagMask != 0
	c.C = status&cFlagMask != 0
}

// Load/store

func (c *CPU) lda(addr uint16) {
	c.A = c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) ldx(addr uint16) {
	c.X = c.mem.Read(addr)
	c.setZN(c.X)
}

func (c *CPU) ldy(addr uint16) {
	c.Y = c.mem.Read(addr)
	c.setZN(c.Y)
}

func (c *CPU) sta(addr uint16) {
	c.mem.Write(addr, c.A)
}

func (c *CPU) stx(addr uint16) {
	c.mem.Write(addr, c.X)
}

func (c *CPU) sty(addr uint16) {
	c.mem.Write(addr, c.Y)
}

// Arithmetic. The intermediate sum/difference is kept in a wider integer so
// Carry and Overflow come from the untruncated value.

func (c *CPU) adc(addr uint16) {
	operand := c.mem.Read(addr)
	carry := 0
	if c.C {
		carry = 1
	}

	sum := int(c.A) + int(operand) + carry
	result := uint8(sum)

	c.C = sum > 0xFF
	c.V = ^(c.A^operand)&(c.A^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) sbc(addr uint16) {
	operand := c.mem.Read(addr)
	borrow := 1
	if c.C {
		borrow = 0
	}

	diff := int(c.A) - int(operand) - borrow
	result := uint8(diff)

	c.C = diff >= 0
	c.V = (c.A^operand)&(c.A^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
}

// Logical

func (c *CPU) and(addr uint16) {
	c.A &= c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) ora(addr uint16) {
	c.A |= c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) eor(addr uint16) {
	c.A ^= c.mem.Read(addr)
	c.setZN(c.A)
}

// Shifts and rotates. Carry takes the bit shifted off; rotates shift in the
// previous Carry value, sampled before Carry is overwritten.

func (c *CPU) asl(addr uint16) {
	value := c.mem.Read(addr)
	c.C = value&0x80 != 0
	value <<= 1
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) aslAcc(uint16) {
	c.C = c.A&0x80 != 0
	c.A <<= 1
	c.setZN(c.A)
}

func (c *CPU) lsr(addr uint16) {
	value := c.mem.Read(addr)
	c.C = value&0x01 != 0
	value >>= 1
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) lsrAcc(uint16) {
	c.C = c.A&0x01 != 0
	c.A >>= 1
	c.setZN(c.A)
}

func (c *CPU) rol(addr uint16) {
	value := c.mem.Read(addr)
	oldCarry := c.C
	c.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) rolAcc(uint16) {
	oldCarry := c.C
	c.C = c.A&0x80 != 0
	c.A <<= 1
	if oldCarry {
		c.A |= 0x01
	}
	c.setZN(c.A)
}

func (c *CPU) ror(addr uint16) {
	value := c.mem.Read(addr)
	oldCarry := c.C
	c.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) rorAcc(uint16) {
	oldCarry := c.C
	c.C = c.A&0x01 != 0
	c.A >>= 1
	if oldCarry {
		c.A |= 0x80
	}
	c.setZN(c.A)
}

// Comparisons

func (c *CPU) cmp(addr uint16) {
	value := c.mem.Read(addr)
	c.C = c.A >= value
	c.setZN(c.A - value)
}

func (c *CPU) cpx(addr uint16) {
	value := c.mem.Read(addr)
	c.C = c.X >= value
	c.setZN(c.X - value)
}

func (c *CPU) cpy(addr uint16) {
	value := c.mem.Read(addr)
	c.C = c.Y >= value
	c.setZN(c.Y - value)
}

// Increment/decrement. 8-bit wraparound; Carry and Overflow untouched.

func (c *CPU) inc(addr uint16) {
	value := c.mem.Read(addr) + 1
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) dec(addr uint16) {
	value := c.mem.Read(addr) - 1
	c.mem.Write(addr, value)
	c.setZN(value)
}

func (c *CPU) inx(uint16) {
	c.X++
	c.setZN(c.X)
}

func (c *CPU) dex(uint16) {
	c.X--
	c.setZN(c.X)
}

func (c *CPU) iny(uint16) {
	c.Y++
	c.setZN(c.Y)
}

func (c *CPU) dey(uint16) {
	c.Y--
	c.setZN(c.Y)
}

// Transfers

func (c *CPU) tax(uint16) {
	c.X = c.A
	c.setZN(c.X)
}

func (c *CPU) txa(uint16) {
	c.A = c.X
	c.setZN(c.A)
}

func (c *CPU) tay(uint16) {
	c.Y = c.A
	c.setZN(c.Y)
}

func (c *CPU) tya(uint16) {
	c.A = c.Y
	c.setZN(c.A)
}

func (c *CPU) tsx(uint16) {
	c.X = c.SP
	c.setZN(c.X)
}

func (c *CPU) txs(uint16) {
	c.SP = c.X
}

// Stack instructions

func (c *CPU) pha(uint16) {
	c.push(c.A)
}

func (c *CPU) pla(uint16) {
	c.A = c.pop()
	c.setZN(c.A)
}

func (c *CPU) php(uint16) {
	c.push(c.Status() | bFlagMask)
}

func (c *CPU) plp(uint16) {
	c.SetStatus(c.pop())
}

// Flag instructions

func (c *CPU) clc(uint16) { c.C = false }
func (c *CPU) sec(uint16) { c.C = true }
func (c *CPU) cli(uint16) { c.I = false }
func (c *CPU) sei(uint16) { c.I = true }
func (c *CPU) clv(uint16) { c.V = false }
func (c *CPU) cld(uint16) { c.D = false }
func (c *CPU) sed(uint16) { c.D = true }

// Control flow

func (c *CPU) jmp(addr uint16) {
	c.PC = addr
}

func (c *CPU) jsr(addr uint16) {
	// The pushed value is the address of JSR's last byte; RTS adds one back.
	c.pushWord(c.PC - 1)
	c.PC = addr
}

func (c *CPU) rts(uint16) {
	c.PC = c.popWord() + 1
}

func (c *CPU) rti(uint16) {
	// Pop order is status then address, the reverse of BRK's push order.
	c.SetStatus(c.pop())
	c.PC = c.popWord()
}

func (c *CPU) brk(uint16) {
	// BRK carries a padding byte; the pushed PC points past it.
	c.PC++
	c.pushWord(c.PC)
	c.push(c.Status() | bFlagMask)
	c.I = true

	lo := uint16(c.mem.Read(irqVector))
	hi := uint16(c.mem.Read(irqVector + 1))
	c.PC = hi<<8 | lo
}

// Branches. The target was already computed (and the offset byte consumed)
// during operand resolution; taking the branch is just a PC update.

func (c *CPU) bcc(addr uint16) {
	if !c.C {
		c.PC = addr
	}
}

func (c *CPU) bcs(addr uint16) {
	if c.C {
		c.PC = addr
	}
}

func (c *CPU) bne(addr uint16) {
	if !c.Z {
		c.PC = addr
	}
}

func (c *CPU) beq(addr uint16) {
	if c.Z {
		c.PC = addr
	}
}

func (c *CPU) bpl(addr uint16) {
	if !c.N {
		c.PC = addr
	}
}

func (c *CPU) bmi(addr uint16) {
	if c.N {
		c.PC = addr
	}
}

func (c *CPU) bvc(addr uint16) {
	if !c.V {
		c.PC = addr
	}
}

func (c *CPU) bvs(addr uint16) {
	if c.V {
		c.PC = addr
	}
}

// Miscellaneous

func (c *CPU) bit(addr uint16) {
	value := c.mem.Read(addr)
	c.N = value&nFlagMask != 0
	c.V = value&vFlagMask != 0
	c.Z = c.A&value == 0
}

func (c *CPU) nop(uint16) {}
