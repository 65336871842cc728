package cpu

// Opcode is one entry of the 256-entry dispatch table: the operation to
// run, the addressing-mode factory that resolves its operand, the base
// cycle count, whether an indexed mode's page-cross should add a cycle,
// and whether the opcode is an unofficial/illegal one (for disassembly's
// `*` marker).
type Opcode struct {
	Name      string
	mode      modeFactory
	op        opFunc
	cycles    uint8
	pageAware bool
	Illegal   bool
}

// table is the single source of truth for both execution (CPU.step) and
// disassembly: every opcode byte maps to exactly one entry, built once
// at package load.
var table = buildTable()

func buildTable() [256]Opcode {
	var t [256]Opcode

	// default every unassigned slot to a 2-cycle illegal NOP so a fetch
	// of an unmapped opcode still makes forward progress instead of
	// panicking on a nil function field.
	for i := range t {
		t[i] = Opcode{Name: "NOP", mode: implicit, op: nop, cycles: 2, Illegal: true}
	}

	set := func(opcode uint8, name string, mode modeFactory, op opFunc, cycles uint8, pageAware bool) {
		t[opcode] = Opcode{Name: name, mode: mode, op: op, cycles: cycles, pageAware: pageAware}
	}
	setIllegal := func(opcode uint8, name string, mode modeFactory, op opFunc, cycles uint8, pageAware bool) {
		t[opcode] = Opcode{Name: name, mode: mode, op: op, cycles: cycles, pageAware: pageAware, Illegal: true}
	}

	// LDA
	set(0xA9, "LDA", immediate, lda, 2, false)
	set(0xA5, "LDA", zeroPage, lda, 3, false)
	set(0xB5, "LDA", zeroPageX, lda, 4, false)
	set(0xAD, "LDA", absolute, lda, 4, false)
	set(0xBD, "LDA", absoluteX, lda, 4, true)
	set(0xB9, "LDA", absoluteY, lda, 4, true)
	set(0xA1, "LDA", indexedIndirect, lda, 6, false)
	set(0xB1, "LDA", indirectIndexed, lda, 5, true)

	// LDX
	set(0xA2, "LDX", immediate, ldx, 2, false)
	set(0xA6, "LDX", zeroPage, ldx, 3, false)
	set(0xB6, "LDX", zeroPageY, ldx, 4, false)
	set(0xAE, "LDX", absolute, ldx, 4, false)
	set(0xBE, "LDX", absoluteY, ldx, 4, true)

	// LDY
	set(0xA0, "LDY", immediate, ldy, 2, false)
	set(0xA4, "LDY", zeroPage, ldy, 3, false)
	set(0xB4, "LDY", zeroPageX, ldy, 4, false)
	set(0xAC, "LDY", absolute, ldy, 4, false)
	set(0xBC, "LDY", absoluteX, ldy, 4, true)

	// STA
	set(0x85, "STA", zeroPage, sta, 3, false)
	set(0x95, "STA", zeroPageX, sta, 4, false)
	set(0x8D, "STA", absolute, sta, 4, false)
	set(0x9D, "STA", absoluteX, sta, 5, false)
	set(0x99, "STA", absoluteY, sta, 5, false)
	set(0x81, "STA", indexedIndirect, sta, 6, false)
	set(0x91, "STA", indirectIndexed, sta, 6, false)

	// STX / STY
	set(0x86, "STX", zeroPage, stx, 3, false)
	set(0x96, "STX", zeroPageY, stx, 4, false)
	set(0x8E, "STX", absolute, stx, 4, false)
	set(0x84, "STY", zeroPage, sty, 3, false)
	set(0x94, "STY", zeroPageX, sty, 4, false)
	set(0x8C, "STY", absolute, sty, 4, false)

	// ADC
	set(0x69, "ADC", immediate, adc, 2, false)
	set(0x65, "ADC", zeroPage, adc, 3, false)
	set(0x75, "ADC", zeroPageX, adc, 4, false)
	set(0x6D, "ADC", absolute, adc, 4, false)
	set(0x7D, "ADC", absoluteX, adc, 4, true)
	set(0x79, "ADC", absoluteY, adc, 4, true)
	set(0x61, "ADC", indexedIndirect, adc, 6, false)
	set(0x71, "ADC", indirectIndexed, adc, 5, true)

	// SBC (0xEB is the unofficial duplicate of 0xE9)
	set(0xE9, "SBC", immediate, sbc, 2, false)
	setIllegal(0xEB, "SBC", immediate, sbc, 2, false)
	set(0xE5, "SBC", zeroPage, sbc, 3, false)
	set(0xF5, "SBC", zeroPageX, sbc, 4, false)
	set(0xED, "SBC", absolute, sbc, 4, false)
	set(0xFD, "SBC", absoluteX, sbc, 4, true)
	set(0xF9, "SBC", absoluteY, sbc, 4, true)
	set(0xE1, "SBC", indexedIndirect, sbc, 6, false)
	set(0xF1, "SBC", indirectIndexed, sbc, 5, true)

	// AND
	set(0x29, "AND", immediate, and, 2, false)
	set(0x25, "AND", zeroPage, and, 3, false)
	set(0x35, "AND", zeroPageX, and, 4, false)
	set(0x2D, "AND", absolute, and, 4, false)
	set(0x3D, "AND", absoluteX, and, 4, true)
	set(0x39, "AND", absoluteY, and, 4, true)
	set(0x21, "AND", indexedIndirect, and, 6, false)
	set(0x31, "AND", indirectIndexed, and, 5, true)

	// ORA
	set(0x09, "ORA", immediate, ora, 2, false)
	set(0x05, "ORA", zeroPage, ora, 3, false)
	set(0x15, "ORA", zeroPageX, ora, 4, false)
	set(0x0D, "ORA", absolute, ora, 4, false)
	set(0x1D, "ORA", absoluteX, ora, 4, true)
	set(0x19, "ORA", absoluteY, ora, 4, true)
	set(0x01, "ORA", indexedIndirect, ora, 6, false)
	set(0x11, "ORA", indirectIndexed, ora, 5, true)

	// EOR
	set(0x49, "EOR", immediate, eor, 2, false)
	set(0x45, "EOR", zeroPage, eor, 3, false)
	set(0x55, "EOR", zeroPageX, eor, 4, false)
	set(0x4D, "EOR", absolute, eor, 4, false)
	set(0x5D, "EOR", absoluteX, eor, 4, true)
	set(0x59, "EOR", absoluteY, eor, 4, true)
	set(0x41, "EOR", indexedIndirect, eor, 6, false)
	set(0x51, "EOR", indirectIndexed, eor, 5, true)

	// ASL / LSR / ROL / ROR (accumulator + memory)
	set(0x0A, "ASL", accumulator, asl, 2, false)
	set(0x06, "ASL", zeroPage, asl, 5, false)
	set(0x16, "ASL", zeroPageX, asl, 6, false)
	set(0x0E, "ASL", absolute, asl, 6, false)
	set(0x1E, "ASL", absoluteX, asl, 7, false)

	set(0x4A, "LSR", accumulator, lsr, 2, false)
	set(0x46, "LSR", zeroPage, lsr, 5, false)
	set(0x56, "LSR", zeroPageX, lsr, 6, false)
	set(0x4E, "LSR", absolute, lsr, 6, false)
	set(0x5E, "LSR", absoluteX, lsr, 7, false)

	set(0x2A, "ROL", accumulator, rol, 2, false)
	set(0x26, "ROL", zeroPage, rol, 5, false)
	set(0x36, "ROL", zeroPageX, rol, 6, false)
	set(0x2E, "ROL", absolute, rol, 6, false)
	set(0x3E, "ROL", absoluteX, rol, 7, false)

	set(0x6A, "ROR", accumulator, ror, 2, false)
	set(0x66, "ROR", zeroPage, ror, 5, false)
	set(0x76, "ROR", zeroPageX, ror, 6, false)
	set(0x6E, "ROR", absolute, ror, 6, false)
	set(0x7E, "ROR", absoluteX, ror, 7, false)

	// CMP / CPX / CPY
	set(0xC9, "CMP", immediate, cmp, 2, false)
	set(0xC5, "CMP", zeroPage, cmp, 3, false)
	set(0xD5, "CMP", zeroPageX, cmp, 4, false)
	set(0xCD, "CMP", absolute, cmp, 4, false)
	set(0xDD, "CMP", absoluteX, cmp, 4, true)
	set(0xD9, "CMP", absoluteY, cmp, 4, true)
	set(0xC1, "CMP", indexedIndirect, cmp, 6, false)
	set(0xD1, "CMP", indirectIndexed, cmp, 5, true)

	set(0xE0, "CPX", immediate, cpx, 2, false)
	set(0xE4, "CPX", zeroPage, cpx, 3, false)
	set(0xEC, "CPX", absolute, cpx, 4, false)

	set(0xC0, "CPY", immediate, cpy, 2, false)
	set(0xC4, "CPY", zeroPage, cpy, 3, false)
	set(0xCC, "CPY", absolute, cpy, 4, false)

	// INC / DEC and register inc/dec
	set(0xE6, "INC", zeroPage, inc, 5, false)
	set(0xF6, "INC", zeroPageX, inc, 6, false)
	set(0xEE, "INC", absolute, inc, 6, false)
	set(0xFE, "INC", absoluteX, inc, 7, false)

	set(0xC6, "DEC", zeroPage, dec, 5, false)
	set(0xD6, "DEC", zeroPageX, dec, 6, false)
	set(0xCE, "DEC", absolute, dec, 6, false)
	set(0xDE, "DEC", absoluteX, dec, 7, false)

	set(0xE8, "INX", implicit, inx, 2, false)
	set(0xCA, "DEX", implicit, dex, 2, false)
	set(0xC8, "INY", implicit, iny, 2, false)
	set(0x88, "DEY", implicit, dey, 2, false)

	// Transfers
	set(0xAA, "TAX", implicit, tax, 2, false)
	set(0x8A, "TXA", implicit, txa, 2, false)
	set(0xA8, "TAY", implicit, tay, 2, false)
	set(0x98, "TYA", implicit, tya, 2, false)
	set(0xBA, "TSX", implicit, tsx, 2, false)
	set(0x9A, "TXS", implicit, txs, 2, false)

	// Stack
	set(0x48, "PHA", implicit, pha, 3, false)
	set(0x68, "PLA", implicit, pla, 4, false)
	set(0x08, "PHP", implicit, php, 3, false)
	set(0x28, "PLP", implicit, plp, 4, false)

	// Flags
	set(0x18, "CLC", implicit, clc, 2, false)
	set(0x38, "SEC", implicit, sec, 2, false)
	set(0x58, "CLI", implicit, cli, 2, false)
	set(0x78, "SEI", implicit, sei, 2, false)
	set(0xB8, "CLV", implicit, clv, 2, false)
	set(0xD8, "CLD", implicit, cld, 2, false)
	set(0xF8, "SED", implicit, sed, 2, false)

	// Control flow
	set(0x4C, "JMP", absolute, jmp, 3, false)
	set(0x6C, "JMP", indirect, jmp, 5, false)
	set(0x20, "JSR", absolute, jsr, 6, false)
	set(0x60, "RTS", implicit, rts, 6, false)
	set(0x40, "RTI", implicit, rti, 6, false)

	// Branches
	set(0x90, "BCC", relative, bcc, 2, false)
	set(0xB0, "BCS", relative, bcs, 2, false)
	set(0xD0, "BNE", relative, bne, 2, false)
	set(0xF0, "BEQ", relative, beq, 2, false)
	set(0x10, "BPL", relative, bpl, 2, false)
	set(0x30, "BMI", relative, bmi, 2, false)
	set(0x50, "BVC", relative, bvc, 2, false)
	set(0x70, "BVS", relative, bvs, 2, false)

	// Misc
	set(0x24, "BIT", zeroPage, bit, 3, false)
	set(0x2C, "BIT", absolute, bit, 4, false)
	set(0x00, "BRK", implicit, brk, 7, false)

	// Unofficial NOPs: implied, zero page, zero page X, absolute, absolute X
	for _, op := range []uint8{0xEA} {
		set(op, "NOP", implicit, nop, 2, false)
	}
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		setIllegal(op, "NOP", implicit, nop, 2, false)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		setIllegal(op, "NOP", immediate, nop, 2, false)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		setIllegal(op, "NOP", zeroPage, nop, 3, false)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		setIllegal(op, "NOP", zeroPageX, nop, 4, false)
	}
	setIllegal(0x0C, "NOP", absolute, nop, 4, false)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		setIllegal(op, "NOP", absoluteX, nop, 4, true)
	}

	// JAM / KIL: all commonly cited opcodes lock the CPU.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		setIllegal(op, "JAM", implicit, jam, 2, false)
	}

	// LAX
	setIllegal(0xA3, "LAX", indexedIndirect, lax, 6, false)
	setIllegal(0xA7, "LAX", zeroPage, lax, 3, false)
	setIllegal(0xAF, "LAX", absolute, lax, 4, false)
	setIllegal(0xB3, "LAX", indirectIndexed, lax, 5, true)
	setIllegal(0xB7, "LAX", zeroPageY, lax, 4, false)
	setIllegal(0xBF, "LAX", absoluteY, lax, 4, true)

	// SAX
	setIllegal(0x83, "SAX", indexedIndirect, sax, 6, false)
	setIllegal(0x87, "SAX", zeroPage, sax, 3, false)
	setIllegal(0x8F, "SAX", absolute, sax, 4, false)
	setIllegal(0x97, "SAX", zeroPageY, sax, 4, false)

	// DCP
	setIllegal(0xC3, "DCP", indexedIndirect, dcp, 8, false)
	setIllegal(0xC7, "DCP", zeroPage, dcp, 5, false)
	setIllegal(0xCF, "DCP", absolute, dcp, 6, false)
	setIllegal(0xD3, "DCP", indirectIndexed, dcp, 8, false)
	setIllegal(0xD7, "DCP", zeroPageX, dcp, 6, false)
	setIllegal(0xDB, "DCP", absoluteY, dcp, 7, false)
	setIllegal(0xDF, "DCP", absoluteX, dcp, 7, false)

	// ISB
	setIllegal(0xE3, "ISB", indexedIndirect, isb, 8, false)
	setIllegal(0xE7, "ISB", zeroPage, isb, 5, false)
	setIllegal(0xEF, "ISB", absolute, isb, 6, false)
	setIllegal(0xF3, "ISB", indirectIndexed, isb, 8, false)
	setIllegal(0xF7, "ISB", zeroPageX, isb, 6, false)
	setIllegal(0xFB, "ISB", absoluteY, isb, 7, false)
	setIllegal(0xFF, "ISB", absoluteX, isb, 7, false)

	// SLO
	setIllegal(0x03, "SLO", indexedIndirect, slo, 8, false)
	setIllegal(0x07, "SLO", zeroPage, slo, 5, false)
	setIllegal(0x0F, "SLO", absolute, slo, 6, false)
	setIllegal(0x13, "SLO", indirectIndexed, slo, 8, false)
	setIllegal(0x17, "SLO", zeroPageX, slo, 6, false)
	setIllegal(0x1B, "SLO", absoluteY, slo, 7, false)
	setIllegal(0x1F, "SLO", absoluteX, slo, 7, false)

	// RLA
	setIllegal(0x23, "RLA", indexedIndirect, rla, 8, false)
	setIllegal(0x27, "RLA", zeroPage, rla, 5, false)
	setIllegal(0x2F, "RLA", absolute, rla, 6, false)
	setIllegal(0x33, "RLA", indirectIndexed, rla, 8, false)
	setIllegal(0x37, "RLA", zeroPageX, rla, 6, false)
	setIllegal(0x3B, "RLA", absoluteY, rla, 7, false)
	setIllegal(0x3F, "RLA", absoluteX, rla, 7, false)

	// SRE
	setIllegal(0x43, "SRE", indexedIndirect, sre, 8, false)
	setIllegal(0x47, "SRE", zeroPage, sre, 5, false)
	setIllegal(0x4F, "SRE", absolute, sre, 6, false)
	setIllegal(0x53, "SRE", indirectIndexed, sre, 8, false)
	setIllegal(0x57, "SRE", zeroPageX, sre, 6, false)
	setIllegal(0x5B, "SRE", absoluteY, sre, 7, false)
	setIllegal(0x5F, "SRE", absoluteX, sre, 7, false)

	// RRA
	setIllegal(0x63, "RRA", indexedIndirect, rra, 8, false)
	setIllegal(0x67, "RRA", zeroPage, rra, 5, false)
	setIllegal(0x6F, "RRA", absolute, rra, 6, false)
	setIllegal(0x73, "RRA", indirectIndexed, rra, 8, false)
	setIllegal(0x77, "RRA", zeroPageX, rra, 6, false)
	setIllegal(0x7B, "RRA", absoluteY, rra, 7, false)
	setIllegal(0x7F, "RRA", absoluteX, rra, 7, false)

	// Immediate-operand unstable/compound opcodes
	setIllegal(0x0B, "ANC", immediate, anc, 2, false)
	setIllegal(0x2B, "ANC", immediate, anc, 2, false)
	setIllegal(0x4B, "ALR", immediate, alr, 2, false)
	setIllegal(0x6B, "ARR", immediate, arr, 2, false)
	setIllegal(0xCB, "SBX", immediate, sbx, 2, false)
	setIllegal(0x8B, "ANE", immediate, ane, 2, false)
	setIllegal(0xAB, "LXA", immediate, lxa, 2, false)

	// Store/load corner cases
	setIllegal(0x9F, "SHA", absoluteY, sha, 5, false)
	setIllegal(0x93, "SHA", indirectIndexed, sha, 6, false)
	setIllegal(0x9E, "SHX", absoluteY, shx, 5, false)
	setIllegal(0x9C, "SHY", absoluteX, shy, 5, false)
	setIllegal(0x9B, "TAS", absoluteY, tas, 5, false)
	setIllegal(0xBB, "LAS", absoluteY, las, 4, true)

	return t
}
