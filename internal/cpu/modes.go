package cpu

import (
	"fmt"

	"nescore/internal/bus"
)

// Mode is the value an addressing-mode factory produces: a handle on the
// resolved target (register, memory cell, or nothing) plus the
// information the instruction table needs for cycle accounting and the
// information a disassembler needs for display. Reusing one interface
// for both execution and disassembly means there is exactly one encoding
// of what each addressing mode does.
type Mode interface {
	Read() uint8
	Write(uint8)
	Address() (uint16, bool)
	ExtraCycle() uint8
	Disassembly() string
}

// modeFactory consumes operand bytes at cpu.PC (already past the opcode
// byte), advances PC by however many bytes the mode requires, and
// returns the resulting Mode.
type modeFactory func(c *CPU, b *bus.Bus) Mode

type implicitMode struct{}

func implicit(c *CPU, b *bus.Bus) Mode { return implicitMode{} }

func (implicitMode) Read() uint8             { return 0 }
func (implicitMode) Write(uint8)             {}
func (implicitMode) Address() (uint16, bool) { return 0, false }
func (implicitMode) ExtraCycle() uint8       { return 0 }
func (implicitMode) Disassembly() string     { return "" }

type accumulatorMode struct{ cpu *CPU }

func accumulator(c *CPU, b *bus.Bus) Mode { return accumulatorMode{cpu: c} }

func (m accumulatorMode) Read() uint8             { return m.cpu.A }
func (m accumulatorMode) Write(v uint8)           { m.cpu.A = v }
func (m accumulatorMode) Address() (uint16, bool) { return 0, false }
func (m accumulatorMode) ExtraCycle() uint8       { return 0 }
func (m accumulatorMode) Disassembly() string     { return "A" }

// memoryMode backs every mode whose target is a single bus address:
// zero page (and indexed variants), absolute (and indexed variants),
// indirect-indexed forms, and the indirect-JMP target.
type memoryMode struct {
	bus    *bus.Bus
	addr   uint16
	extra  uint8
	disasm string
}

func (m memoryMode) Read() uint8             { return m.bus.Read(m.addr) }
func (m memoryMode) Write(v uint8)           { m.bus.Write(m.addr, v) }
func (m memoryMode) Address() (uint16, bool) { return m.addr, true }
func (m memoryMode) ExtraCycle() uint8       { return m.extra }
func (m memoryMode) Disassembly() string     { return m.disasm }

func immediate(c *CPU, b *bus.Bus) Mode {
	addr := c.PC
	v := b.Read(addr)
	c.PC++
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("#$%02X", v)}
}

func zeroPage(c *CPU, b *bus.Bus) Mode {
	op := b.Read(c.PC)
	c.PC++
	return memoryMode{bus: b, addr: uint16(op), disasm: fmt.Sprintf("$%02X", op)}
}

func zeroPageX(c *CPU, b *bus.Bus) Mode {
	op := b.Read(c.PC)
	c.PC++
	addr := uint16(op + c.X)
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("$%02X,X", op)}
}

func zeroPageY(c *CPU, b *bus.Bus) Mode {
	op := b.Read(c.PC)
	c.PC++
	addr := uint16(op + c.Y)
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("$%02X,Y", op)}
}

func readAbsolute(c *CPU, b *bus.Bus) uint16 {
	lo := uint16(b.Read(c.PC))
	hi := uint16(b.Read(c.PC + 1))
	c.PC += 2
	return hi<<8 | lo
}

func absolute(c *CPU, b *bus.Bus) Mode {
	addr := readAbsolute(c, b)
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("$%04X", addr)}
}

func absoluteX(c *CPU, b *bus.Bus) Mode {
	base := readAbsolute(c, b)
	addr := base + uint16(c.X)
	extra := uint8(0)
	if base&0xFF00 != addr&0xFF00 {
		extra = 1
	}
	return memoryMode{bus: b, addr: addr, extra: extra, disasm: fmt.Sprintf("$%04X,X", base)}
}

func absoluteY(c *CPU, b *bus.Bus) Mode {
	base := readAbsolute(c, b)
	addr := base + uint16(c.Y)
	extra := uint8(0)
	if base&0xFF00 != addr&0xFF00 {
		extra = 1
	}
	return memoryMode{bus: b, addr: addr, extra: extra, disasm: fmt.Sprintf("$%04X,Y", base)}
}

// indirect implements JMP ($xxxx), including the page-wrap bug: when the
// pointer's low byte is 0xFF, the high byte of the target is read from
// the start of the same page rather than the next page.
func indirect(c *CPU, b *bus.Bus) Mode {
	ptr := readAbsolute(c, b)
	var lo, hi uint16
	if ptr&0x00FF == 0x00FF {
		lo = uint16(b.Read(ptr))
		hi = uint16(b.Read(ptr & 0xFF00))
	} else {
		lo = uint16(b.Read(ptr))
		hi = uint16(b.Read(ptr + 1))
	}
	addr := hi<<8 | lo
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("($%04X)", ptr)}
}

// indexedIndirect implements (zp,X): the zero-page pointer is formed by
// adding X to the operand (wrapping within the zero page) before the
// 16-bit indirection.
func indexedIndirect(c *CPU, b *bus.Bus) Mode {
	op := b.Read(c.PC)
	c.PC++
	zp := op + c.X
	lo := uint16(b.Read(uint16(zp)))
	hi := uint16(b.Read(uint16(zp + 1)))
	addr := hi<<8 | lo
	return memoryMode{bus: b, addr: addr, disasm: fmt.Sprintf("($%02X,X)", op)}
}

// indirectIndexed implements (zp),Y: the 16-bit base is read from the
// zero page first, then Y is added to it (no longer confined to the
// zero page), with an extra cycle charged for read-type opcodes when
// that addition crosses a page.
func indirectIndexed(c *CPU, b *bus.Bus) Mode {
	op := b.Read(c.PC)
	c.PC++
	lo := uint16(b.Read(uint16(op)))
	hi := uint16(b.Read(uint16(op + 1)))
	base := hi<<8 | lo
	addr := base + uint16(c.Y)
	extra := uint8(0)
	if base&0xFF00 != addr&0xFF00 {
		extra = 1
	}
	return memoryMode{bus: b, addr: addr, extra: extra, disasm: fmt.Sprintf("($%02X),Y", op)}
}

// relativeMode carries the branch target and whether taking the branch
// would cross a page, which the branch operation folds into its returned
// extra-cycle count only if the branch is actually taken.
type relativeMode struct {
	target    uint16
	pageCross bool
	disasm    string
}

func (m relativeMode) Read() uint8             { return 0 }
func (m relativeMode) Write(uint8)             {}
func (m relativeMode) Address() (uint16, bool) { return m.target, true }
func (m relativeMode) ExtraCycle() uint8 {
	if m.pageCross {
		return 1
	}
	return 0
}
func (m relativeMode) Disassembly() string { return m.disasm }

func relative(c *CPU, b *bus.Bus) Mode {
	offset := int8(b.Read(c.PC))
	c.PC++
	next := c.PC
	target := uint16(int32(next) + int32(offset))
	pageCross := next&0xFF00 != target&0xFF00

	// Displayed as distance from the branch opcode's own address (2 bytes
	// before next), the conventional relative-disassembly form.
	distance := 2 + int(offset)
	var disasm string
	if distance < 0 {
		disasm = fmt.Sprintf("*-$%02X", -distance)
	} else {
		disasm = fmt.Sprintf("*+$%02X", distance)
	}
	return relativeMode{target: target, pageCross: pageCross, disasm: disasm}
}
