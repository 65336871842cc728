package cpu

import "nescore/internal/bus"

// Trace is a snapshot of the instruction about to execute at the CPU's
// current PC, carrying everything a disassembler needs to render a
// conformance-style trace line without reaching into CPU internals. The
// same opcode table that drives execution (table, in table.go) produces
// this snapshot, so there is one description of "what each opcode does",
// not a second one duplicated for display.
type Trace struct {
	PC       uint16
	Bytes    []uint8
	Mnemonic string
	Illegal  bool
	Operand  string
	A, X, Y  uint8
	P        uint8
	SP       uint8
	Cycles   uint64
}

// PeekTrace captures a Trace for the instruction at PC without advancing
// the real CPU: the addressing-mode factory runs against a throwaway
// copy of the CPU so its PC bookkeeping (and the resulting operand byte
// count) can be observed ahead of execution.
func (c *CPU) PeekTrace(b *bus.Bus) Trace {
	pc := c.PC
	opcode := b.Read(pc)
	entry := table[opcode]

	shadow := *c
	shadow.PC = pc + 1
	mode := entry.mode(&shadow, b)

	length := int(shadow.PC - pc)
	raw := make([]uint8, length)
	for i := 0; i < length; i++ {
		raw[i] = b.Read(pc + uint16(i))
	}

	return Trace{
		PC:       pc,
		Bytes:    raw,
		Mnemonic: entry.Name,
		Illegal:  entry.Illegal,
		Operand:  mode.Disassembly(),
		A:        c.A,
		X:        c.X,
		Y:        c.Y,
		P:        c.P,
		SP:       c.SP,
		Cycles:   c.totalCycles,
	}
}
