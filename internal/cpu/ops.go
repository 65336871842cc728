package cpu

// opFunc is the shared operation signature: every legal and illegal
// opcode mutates cpu/bus state through mode and returns any extra cycles
// it discovered beyond the table's base count. Only branches return a
// non-zero count (taken, plus page cross); the page-cross cycle of indexed
// reads is added by CPU.step from the table entry's pageAware flag.
type opFunc func(c *CPU, m Mode) uint8

func lda(c *CPU, m Mode) uint8 {
	c.A = m.Read()
	c.setZN(c.A)
	return 0
}

func ldx(c *CPU, m Mode) uint8 {
	c.X = m.Read()
	c.setZN(c.X)
	return 0
}

func ldy(c *CPU, m Mode) uint8 {
	c.Y = m.Read()
	c.setZN(c.Y)
	return 0
}

func sta(c *CPU, m Mode) uint8 {
	m.Write(c.A)
	return 0
}

func stx(c *CPU, m Mode) uint8 {
	m.Write(c.X)
	return 0
}

func sty(c *CPU, m Mode) uint8 {
	m.Write(c.Y)
	return 0
}

func adc(c *CPU, m Mode) uint8 {
	addWithCarry(c, m.Read())
	return 0
}

// addWithCarry is the shared ADC core, reused by SBC (one's-complement of
// the operand) and by the illegal RRA/ISB compounds.
func addWithCarry(c *CPU, value uint8) {
	carry := uint16(0)
	if c.getFlag(flagC) {
		carry = 1
	}
	result := uint16(c.A) + uint16(value) + carry
	c.setFlag(flagV, (c.A^uint8(result))&(value^uint8(result))&0x80 != 0)
	c.setFlag(flagC, result > 0xFF)
	c.A = uint8(result)
	c.setZN(c.A)
}

func sbc(c *CPU, m Mode) uint8 {
	addWithCarry(c, m.Read()^0xFF)
	return 0
}

func and(c *CPU, m Mode) uint8 {
	c.A &= m.Read()
	c.setZN(c.A)
	return 0
}

func ora(c *CPU, m Mode) uint8 {
	c.A |= m.Read()
	c.setZN(c.A)
	return 0
}

func eor(c *CPU, m Mode) uint8 {
	c.A ^= m.Read()
	c.setZN(c.A)
	return 0
}

func asl(c *CPU, m Mode) uint8 {
	v := m.Read()
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	m.Write(v)
	c.setZN(v)
	return 0
}

func lsr(c *CPU, m Mode) uint8 {
	v := m.Read()
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	m.Write(v)
	c.setZN(v)
	return 0
}

func rol(c *CPU, m Mode) uint8 {
	v := m.Read()
	carry := c.getFlag(flagC)
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	if carry {
		v |= 0x01
	}
	m.Write(v)
	c.setZN(v)
	return 0
}

func ror(c *CPU, m Mode) uint8 {
	v := m.Read()
	carry := c.getFlag(flagC)
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	if carry {
		v |= 0x80
	}
	m.Write(v)
	c.setZN(v)
	return 0
}

func compare(c *CPU, reg, value uint8) {
	result := reg - value
	c.setFlag(flagC, reg >= value)
	c.setZN(result)
}

func cmp(c *CPU, m Mode) uint8 {
	compare(c, c.A, m.Read())
	return 0
}

func cpx(c *CPU, m Mode) uint8 {
	compare(c, c.X, m.Read())
	return 0
}

func cpy(c *CPU, m Mode) uint8 {
	compare(c, c.Y, m.Read())
	return 0
}

func inc(c *CPU, m Mode) uint8 {
	v := m.Read() + 1
	m.Write(v)
	c.setZN(v)
	return 0
}

func dec(c *CPU, m Mode) uint8 {
	v := m.Read() - 1
	m.Write(v)
	c.setZN(v)
	return 0
}

func inx(c *CPU, m Mode) uint8 {
	c.X++
	c.setZN(c.X)
	return 0
}

func dex(c *CPU, m Mode) uint8 {
	c.X--
	c.setZN(c.X)
	return 0
}

func iny(c *CPU, m Mode) uint8 {
	c.Y++
	c.setZN(c.Y)
	return 0
}

func dey(c *CPU, m Mode) uint8 {
	c.Y--
	c.setZN(c.Y)
	return 0
}

func tax(c *CPU, m Mode) uint8 {
	c.X = c.A
	c.setZN(c.X)
	return 0
}

func txa(c *CPU, m Mode) uint8 {
	c.A = c.X
	c.setZN(c.A)
	return 0
}

func tay(c *CPU, m Mode) uint8 {
	c.Y = c.A
	c.setZN(c.Y)
	return 0
}

func tya(c *CPU, m Mode) uint8 {
	c.A = c.Y
	c.setZN(c.A)
	return 0
}

func tsx(c *CPU, m Mode) uint8 {
	c.X = c.SP
	c.setZN(c.X)
	return 0
}

func txs(c *CPU, m Mode) uint8 {
	c.SP = c.X
	return 0
}

func pha(c *CPU, m Mode) uint8 {
	c.push(c.A)
	return 0
}

func pla(c *CPU, m Mode) uint8 {
	c.A = c.pop()
	c.setZN(c.A)
	return 0
}

func php(c *CPU, m Mode) uint8 {
	c.push(c.P | flagB | flagU)
	return 0
}

func plp(c *CPU, m Mode) uint8 {
	status := c.pop()
	c.P = (status &^ flagB) | flagU
	return 0
}

func clc(c *CPU, m Mode) uint8 { c.setFlag(flagC, false); return 0 }
func sec(c *CPU, m Mode) uint8 { c.setFlag(flagC, true); return 0 }
func cli(c *CPU, m Mode) uint8 { c.setFlag(flagI, false); return 0 }
func sei(c *CPU, m Mode) uint8 { c.setFlag(flagI, true); return 0 }
func clv(c *CPU, m Mode) uint8 { c.setFlag(flagV, false); return 0 }
func cld(c *CPU, m Mode) uint8 { c.setFlag(flagD, false); return 0 }
func sed(c *CPU, m Mode) uint8 { c.setFlag(flagD, true); return 0 }

func jmp(c *CPU, m Mode) uint8 {
	addr, _ := m.Address()
	c.PC = addr
	return 0
}

func jsr(c *CPU, m Mode) uint8 {
	addr, _ := m.Address()
	c.pushWord(c.PC - 1)
	c.PC = addr
	return 0
}

func rts(c *CPU, m Mode) uint8 {
	c.PC = c.popWord() + 1
	return 0
}

func rti(c *CPU, m Mode) uint8 {
	status := c.pop()
	c.P = (status &^ flagB) | flagU
	c.PC = c.popWord()
	return 0
}

func branch(c *CPU, m Mode, taken bool) uint8 {
	if !taken {
		return 0
	}
	addr, _ := m.Address()
	c.PC = addr
	extra := uint8(1)
	extra += m.ExtraCycle()
	return extra
}

func bcc(c *CPU, m Mode) uint8 { return branch(c, m, !c.getFlag(flagC)) }
func bcs(c *CPU, m Mode) uint8 { return branch(c, m, c.getFlag(flagC)) }
func bne(c *CPU, m Mode) uint8 { return branch(c, m, !c.getFlag(flagZ)) }
func beq(c *CPU, m Mode) uint8 { return branch(c, m, c.getFlag(flagZ)) }
func bpl(c *CPU, m Mode) uint8 { return branch(c, m, !c.getFlag(flagN)) }
func bmi(c *CPU, m Mode) uint8 { return branch(c, m, c.getFlag(flagN)) }
func bvc(c *CPU, m Mode) uint8 { return branch(c, m, !c.getFlag(flagV)) }
func bvs(c *CPU, m Mode) uint8 { return branch(c, m, c.getFlag(flagV)) }

func bit(c *CPU, m Mode) uint8 {
	v := m.Read()
	c.setFlag(flagN, v&flagN != 0)
	c.setFlag(flagV, v&flagV != 0)
	c.setFlag(flagZ, c.A&v == 0)
	return 0
}

func nop(c *CPU, m Mode) uint8 {
	m.Read() // some unofficial NOP variants still fetch their operand
	return 0
}

// brk pushes PC+2 (the opcode byte plus its padding byte) and status with
// B set, then loads PC from the IRQ/BRK vector. It also marks the CPU as
// "resetting" so a conformance harness can detect end-of-run.
func brk(c *CPU, m Mode) uint8 {
	c.PC++ // padding byte
	c.serviceInterrupt(irqVector, true)
	return 0
}
