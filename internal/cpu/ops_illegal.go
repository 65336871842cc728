package cpu

// jam halts the CPU permanently, matching the KIL/JAM/HLT opcodes that
// real 6502s lock up on.
func jam(c *CPU, m Mode) uint8 {
	c.isJammed = true
	return 0
}

// slo = ASL then ORA A with the shifted value.
func slo(c *CPU, m Mode) uint8 {
	v := m.Read()
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	m.Write(v)
	c.A |= v
	c.setZN(c.A)
	return 0
}

// rla = ROL then AND A with the rotated value.
func rla(c *CPU, m Mode) uint8 {
	v := m.Read()
	carry := c.getFlag(flagC)
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	if carry {
		v |= 0x01
	}
	m.Write(v)
	c.A &= v
	c.setZN(c.A)
	return 0
}

// sre = LSR then EOR A with the shifted value.
func sre(c *CPU, m Mode) uint8 {
	v := m.Read()
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	m.Write(v)
	c.A ^= v
	c.setZN(c.A)
	return 0
}

// rra = ROR then ADC A with the rotated value.
func rra(c *CPU, m Mode) uint8 {
	v := m.Read()
	carry := c.getFlag(flagC)
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	if carry {
		v |= 0x80
	}
	m.Write(v)
	addWithCarry(c, v)
	return 0
}

// dcp = DEC then CMP A with the decremented value.
func dcp(c *CPU, m Mode) uint8 {
	v := m.Read() - 1
	m.Write(v)
	compare(c, c.A, v)
	return 0
}

// isb = INC then SBC A with the incremented value.
func isb(c *CPU, m Mode) uint8 {
	v := m.Read() + 1
	m.Write(v)
	addWithCarry(c, v^0xFF)
	return 0
}

// lax = LDA then LDX, sharing the fetched value.
func lax(c *CPU, m Mode) uint8 {
	c.A = m.Read()
	c.X = c.A
	c.setZN(c.A)
	return 0
}

// sax stores A & X without touching flags.
func sax(c *CPU, m Mode) uint8 {
	m.Write(c.A & c.X)
	return 0
}

// anc is AND followed by copying the result's sign bit into carry, as if
// the value had been rotated through an imaginary bit 8.
func anc(c *CPU, m Mode) uint8 {
	c.A &= m.Read()
	c.setZN(c.A)
	c.setFlag(flagC, c.A&0x80 != 0)
	return 0
}

// alr = AND then LSR on the accumulator.
func alr(c *CPU, m Mode) uint8 {
	c.A &= m.Read()
	c.setFlag(flagC, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
	return 0
}

// arr = AND then ROR on the accumulator, with the documented "weird" flag
// rule: C takes bit 6 of the result, V takes bit 6 XOR bit 5.
func arr(c *CPU, m Mode) uint8 {
	c.A &= m.Read()
	carry := c.getFlag(flagC)
	c.A >>= 1
	if carry {
		c.A |= 0x80
	}
	c.setZN(c.A)
	c.setFlag(flagC, c.A&0x40 != 0)
	c.setFlag(flagV, ((c.A>>6)^(c.A>>5))&1 != 0)
	return 0
}

// sbx computes X = (A & X) - M, setting carry as an unsigned comparison
// (no borrow-from-zero wrap beyond the normal uint8 subtraction).
func sbx(c *CPU, m Mode) uint8 {
	and := c.A & c.X
	value := m.Read()
	c.setFlag(flagC, and >= value)
	c.X = and - value
	c.setZN(c.X)
	return 0
}

// las sets A, X, and SP all to M & SP.
func las(c *CPU, m Mode) uint8 {
	v := m.Read() & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
	return 0
}

// storeHighAnd implements the SHA/SHX/SHY/TAS family: AND the named
// register(s) with (high byte of the target address + 1) and store. The
// analog page-crossing corner case is not modeled; see the repository's
// design notes.
func storeHighAnd(c *CPU, m Mode, reg uint8) {
	addr, _ := m.Address()
	v := reg & uint8((addr>>8)+1)
	m.Write(v)
}

func sha(c *CPU, m Mode) uint8 {
	storeHighAnd(c, m, c.A&c.X)
	return 0
}

func shx(c *CPU, m Mode) uint8 {
	storeHighAnd(c, m, c.X)
	return 0
}

func shy(c *CPU, m Mode) uint8 {
	storeHighAnd(c, m, c.Y)
	return 0
}

func tas(c *CPU, m Mode) uint8 {
	c.SP = c.A & c.X
	storeHighAnd(c, m, c.SP)
	return 0
}

// ane and lxa are the unstable opcodes spec.md documents as having no
// consensus implementation. Both use the commonly cited "magic constant"
// approximation and are excluded from conformance checking.
func ane(c *CPU, m Mode) uint8 {
	const magic = 0xEE
	c.A = (c.A | magic) & c.X & m.Read()
	c.setZN(c.A)
	return 0
}

func lxa(c *CPU, m Mode) uint8 {
	const magic = 0xEE
	v := (c.A | magic) & m.Read()
	c.A, c.X = v, v
	c.setZN(c.A)
	return 0
}
