package cpu

// initTable populates the dispatch table with the official 6502 opcode set.
// Entries left nil take the unimplemented-opcode path in Step; the halt
// opcode is intercepted before the table is consulted.
func (c *CPU) initTable() {
	set := func(opcode uint8, name string, mode AddressingMode, exec func(*CPU, uint16)) {
		c.table[opcode] = &instruction{name: name, mode: mode, exec: exec}
	}

	// Load/store
	set(0xA9, "LDA", Immediate, (*CPU).lda)
	set(0xA5, "LDA", ZeroPage, (*CPU).lda)
	set(0xB5, "LDA", ZeroPageX, (*CPU).lda)
	set(0xAD, "LDA", Absolute, (*CPU).lda)
	set(0xBD, "LDA", AbsoluteX, (*CPU).lda)
	set(0xB9, "LDA", AbsoluteY, (*CPU).lda)
	set(0xA1, "LDA", IndexedIndirect, (*CPU).lda)
	set(0xB1, "LDA", IndirectIndexed, (*CPU).lda)

	set(0xA2, "LDX", Immediate, (*CPU).ldx)
	set(0xA6, "LDX", ZeroPage, (*CPU).ldx)
	set(0xB6, "LDX", ZeroPageY, (*CPU).ldx)
	set(0xAE, "LDX", Absolute, (*CPU).ldx)
	set(0xBE, "LDX", AbsoluteY, (*CPU).ldx)

	set(0xA0, "LDY", Immediate, (*CPU).ldy)
	set(0xA4, "LDY", ZeroPage, (*CPU).ldy)
	set(0xB4, "LDY", ZeroPageX, (*CPU).ldy)
	set(0xAC, "LDY", Absolute, (*CPU).ldy)
	set(0xBC, "LDY", AbsoluteX, (*CPU).ldy)

	set(0x85, "STA", ZeroPage, (*CPU).sta)
	set(0x95, "STA", ZeroPageX, (*CPU).sta)
	set(0x8D, "STA", Absolute, (*CPU).sta)
	set(0x9D, "STA", AbsoluteX, (*CPU).sta)
	set(0x99, "STA", AbsoluteY, (*CPU).sta)
	set(0x81, "STA", IndexedIndirect, (*CPU).sta)
	set(0x91, "STA", IndirectIndexed, (*CPU).sta)

	set(0x86, "STX", ZeroPage, (*CPU).stx)
	set(0x96, "STX", ZeroPageY, (*CPU).stx)
	set(0x8E, "STX", Absolute, (*CPU).stx)

	set(0x84, "STY", ZeroPage, (*CPU).sty)
	set(0x94, "STY", ZeroPageX, (*CPU).sty)
	set(0x8C, "STY", Absolute, (*CPU).sty)

	// Arithmetic
	set(0x69, "ADC", Immediate, (*CPU).adc)
	set(0x65, "ADC", ZeroPage, (*CPU).adc)
	set(0x75, "ADC", ZeroPageX, (*CPU).adc)
	set(0x6D, "ADC", Absolute, (*CPU).adc)
	set(0x7D, "ADC", AbsoluteX, (*CPU).adc)
	set(0x79, "ADC", AbsoluteY, (*CPU).adc)
	set(0x61, "ADC", IndexedIndirect, (*CPU).adc)
	set(0x71, "ADC", IndirectIndexed, (*CPU).adc)

	set(0xE9, "SBC", Immediate, (*CPU).sbc)
	set(0xE5, "SBC", ZeroPage, (*CPU).sbc)
	set(0xF5, "SBC", ZeroPageX, (*CPU).sbc)
	set(0xED, "SBC", Absolute, (*CPU).sbc)
	set(0xFD, "SBC", AbsoluteX, (*CPU).sbc)
	set(0xF9, "SBC", AbsoluteY, (*CPU).sbc)
	set(0xE1, "SBC", IndexedIndirect, (*CPU).sbc)
	set(0xF1, "SBC", IndirectIndexed, (*CPU).sbc)

	// Logical
	set(0x29, "AND", Immediate, (*CPU).and)
	set(0x25, "AND", ZeroPage, (*CPU).and)
	set(0x35, "AND", ZeroPageX, (*CPU).and)
	set(0x2D, "AND", Absolute, (*CPU).and)
	set(0x3D, "AND", AbsoluteX, (*CPU).and)
	set(0x39, "AND", AbsoluteY, (*CPU).and)
	set(0x21, "AND", IndexedIndirect, (*CPU).and)
	set(0x31, "AND", IndirectIndexed, (*CPU).and)

	set(0x09, "ORA", Immediate, (*CPU).ora)
	set(0x05, "ORA", ZeroPage, (*CPU).ora)
	set(0x15, "ORA", ZeroPageX, (*CPU).ora)
	set(0x0D, "ORA", Absolute, (*CPU).ora)
	set(0x1D, "ORA", AbsoluteX, (*CPU).ora)
	set(0x19, "ORA", AbsoluteY, (*CPU).ora)
	set(0x01, "ORA", IndexedIndirect, (*CPU).ora)
	set(0x11, "ORA", IndirectIndexed, (*CPU).ora)

	set(0x49, "EOR", Immediate, (*CPU).eor)
	set(0x45, "EOR", ZeroPage, (*CPU).eor)
	set(0x55, "EOR", ZeroPageX, (*CPU).eor)
	set(0x4D, "EOR", Absolute, (*CPU).eor)
	set(0x5D, "EOR", AbsoluteX, (*CPU).eor)
	set(0x59, "EOR", AbsoluteY, (*CPU).eor)
	set(0x41, "EOR", IndexedIndirect, (*CPU).eor)
	set(0x51, "EOR", IndirectIndexed, (*CPU).eor)

	// Shifts and rotates
	set(0x0A, "ASL", Accumulator, (*CPU).aslAcc)
	set(0x06, "ASL", ZeroPage, (*CPU).asl)
	set(0x16, "ASL", ZeroPageX, (*CPU).asl)
	set(0x0E, "ASL", Absolute, (*CPU).asl)
	set(0x1E, "ASL", AbsoluteX, (*CPU).asl)

	set(0x4A, "LSR", Accumulator, (*CPU).lsrAcc)
	set(0x46, "LSR", ZeroPage, (*CPU).lsr)
	set(0x56, "LSR", ZeroPageX, (*CPU).lsr)
	set(0x4E, "LSR", Absolute, (*CPU).lsr)
	set(0x5E, "LSR", AbsoluteX, (*CPU).lsr)

	set(0x2A, "ROL", Accumulator, (*CPU).rolAcc)
	set(0x26, "ROL", ZeroPage, (*CPU).rol)
	set(0x36, "ROL", ZeroPageX, (*CPU).rol)
	set(0x2E, "ROL", Absolute, (*CPU).rol)
	set(0x3E, "ROL", AbsoluteX, (*CPU).rol)

	set(0x6A, "ROR", Accumulator, (*CPU).rorAcc)
	set(0x66, "ROR", ZeroPage, (*CPU).ror)
	set(0x76, "ROR", ZeroPageX, (*CPU).ror)
	set(0x6E, "ROR", Absolute, (*CPU).ror)
	set(0x7E, "ROR", AbsoluteX, (*CPU).ror)

	// Comparisons
	set(0xC9, "CMP", Immediate, (*CPU).cmp)
	set(0xC5, "CMP", ZeroPage, (*CPU).cmp)
	set(0xD5, "CMP", ZeroPageX, (*CPU).cmp)
	set(0xCD, "CMP", Absolute, (*CPU).cmp)
	set(0xDD, "CMP", AbsoluteX, (*CPU).cmp)
	set(0xD9, "CMP", AbsoluteY, (*CPU).cmp)
	set(0xC1, "CMP", IndexedIndirect, (*CPU).cmp)
	set(0xD1, "CMP", IndirectIndexed, (*CPU).cmp)

	set(0xE0, "CPX", Immediate, (*CPU).cpx)
	set(0xE4, "CPX", ZeroPage, (*CPU).cpx)
	set(0xEC, "CPX", Absolute, (*CPU).cpx)

	set(0xC0, "CPY", Immediate, (*CPU).cpy)
	set(0xC4, "CPY", ZeroPage, (*CPU).cpy)
	set(0xCC, "CPY", Absolute, (*CPU).cpy)

	// Increment/decrement
	set(0xE6, "INC", ZeroPage, (*CPU).inc)
	set(0xF6, "INC", ZeroPageX, (*CPU).inc)
	set(0xEE, "INC", Absolute, (*CPU).inc)
	set(0xFE, "INC", AbsoluteX, (*CPU).inc)

	set(0xC6, "DEC", ZeroPage, (*CPU).dec)
	set(0xD6, "DEC", ZeroPageX, (*CPU).dec)
	set(0xCE, "DEC", Absolute, (*CPU).dec)
	set(0xDE, "DEC", AbsoluteX, (*CPU).dec)

	set(0xE8, "INX", Implied, (*CPU).inx)
	set(0xCA, "DEX", Implied, (*CPU).dex)
	set(0xC8, "INY", Implied, (*CPU).iny)
	set(0x88, "DEY", Implied, (*CPU).dey)

	// Transfers
	set(0xAA, "TAX", Implied, (*CPU).tax)
	set(0x8A, "TXA", Implied, (*CPU).txa)
	set(0xA8, "TAY", Implied, (*CPU).tay)
	set(0x98, "TYA", Implied, (*CPU).tya)
	set(0xBA, "TSX", Implied, (*CPU).tsx)
	set(0x9A, "TXS", Implied, (*CPU).txs)

	// Stack
	set(0x48, "PHA", Implied, (*CPU).pha)
	set(0x68, "PLA", Implied, (*CPU).pla)
	set(0x08, "PHP", Implied, (*CPU).php)
	set(0x28, "PLP", Implied, (*CPU).plp)

	// Flags
	set(0x18, "CLC", Implied, (*CPU).clc)
	set(0x38, "SEC", Implied, (*CPU).sec)
	set(0x58, "CLI", Implied, (*CPU).cli)
	set(0x78, "SEI", Implied, (*CPU).sei)
	set(0xB8, "CLV", Implied, (*CPU).clv)
	set(0xD8, "CLD", Implied, (*CPU).cld)
	set(0xF8, "SED", Implied, (*CPU).sed)

	// Control flow
	set(0x4C, "JMP", Absolute, (*CPU).jmp)
	set(0x6C, "JMP", Indirect, (*CPU).jmp)
	set(0x20, "JSR", Absolute, (*CPU).jsr)
	set(0x60, "RTS", Implied, (*CPU).rts)
	set(0x40, "RTI", Implied, (*CPU).rti)
	set(0x00, "BRK", Implied, (*CPU).brk)

	// Branches
	set(0x90, "BCC", Relative, (*CPU).bcc)
	set(0xB0, "BCS", Relative, (*CPU).bcs)
	set(0xD0, "BNE", Relative, (*CPU).bne)
	set(0xF0, "BEQ", Relative, (*CPU).beq)
	set(0x10, "BPL", Relative, (*CPU).bpl)
	set(0x30, "BMI", Relative, (*CPU).bmi)
	set(0x50, "BVC", Relative, (*CPU).bvc)
	set(0x70, "BVS", Relative, (*CPU).bvs)

	// Miscellaneous
	set(0x24, "BIT", ZeroPage, (*CPU).bit)
	set(0x2C, "BIT", Absolute, (*CPU).bit)
	set(0xEA, "NOP", Implied, (*CPU).nop)
}
