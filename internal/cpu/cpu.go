// Package cpu implements the MOS 6502 instruction-decode-and-dispatch
// engine used by the NES's 2A03 variant: register/flag state, the
// addressing-mode/operation split, cycle accounting, and the reset/jam
// state machine. Decimal mode is never honored on ADC/SBC, matching the
// NES's disabled BCD hardware.
package cpu

import "nescore/internal/bus"

// Status register bit masks (P register, spec bit layout C(0) Z(1) I(2)
// D(3) B(4) U(5) V(6) N(7)).
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// CPU is the 6502 register/flag state plus the bus it executes against.
type CPU struct {
	A, X, Y uint8
	PC      uint16
	SP      uint8
	P       uint8

	cyclesLeft  uint8
	totalCycles uint64

	isResetting bool
	isJammed    bool

	nmiPending bool
	irqPending bool

	bus *bus.Bus
}

// New constructs a CPU wired to bus. The caller must Reset or
// ResetWithProgramCounter before the first Tick.
func New(b *bus.Bus) *CPU {
	return &CPU{bus: b, SP: 0xFD}
}

// Reset performs a power-on reset, loading PC from the reset vector at
// 0xFFFC.
func (c *CPU) Reset() {
	lo := uint16(c.bus.Read(resetVector))
	hi := uint16(c.bus.Read(resetVector + 1))
	c.ResetWithProgramCounter(lo | hi<<8)
}

// ResetWithProgramCounter performs a power-on reset with an explicit PC,
// bypassing the reset vector. Used by conformance test harnesses that
// start execution at a fixed address (e.g. nestest's 0xC000 entry point).
func (c *CPU) ResetWithProgramCounter(pc uint16) {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagU | flagI
	c.cyclesLeft = 0
	c.totalCycles = 7
	c.isJammed = false
	c.isResetting = false
	c.nmiPending = false
	c.irqPending = false
	c.PC = pc
}

// IsResetting reports whether a BRK has executed since the last reset
// (the conformance harness treats this as "test complete"). The flag is
// cleared only by Reset or ResetWithProgramCounter.
func (c *CPU) IsResetting() bool { return c.isResetting }

// IsJammed reports whether a JAM opcode halted the CPU.
func (c *CPU) IsJammed() bool { return c.isJammed }

// CyclesLeft reports how many cycles remain before the next Tick fetches a
// new instruction. Used by callers that want to observe or trace
// instruction boundaries (e.g. a conformance trace sink) without
// duplicating the CPU's own fetch/decode bookkeeping.
func (c *CPU) CyclesLeft() uint8 { return c.cyclesLeft }

// TotalCycles returns the monotonic cycle counter, initialized to 7 on
// reset to match the reference conformance trace.
func (c *CPU) TotalCycles() uint64 { return c.totalCycles }

// TriggerNMI requests a non-maskable interrupt on the next instruction
// boundary.
func (c *CPU) TriggerNMI() { c.nmiPending = true }

// TriggerIRQ requests a maskable interrupt on the next instruction
// boundary, honored only if the I flag is clear.
func (c *CPU) TriggerIRQ() { c.irqPending = true }

// Tick advances the CPU by exactly one clock cycle. If the current
// instruction still owes cycles, one is drained; otherwise the next
// instruction is fetched and fully executed, and its cycle cost (minus
// the one just spent on the fetch) is queued for subsequent ticks.
func (c *CPU) Tick() {
	if c.isJammed {
		return
	}
	if c.cyclesLeft > 0 {
		c.cyclesLeft--
		c.totalCycles++
		return
	}

	c.step()
	c.totalCycles++
}

// step fetches and executes one instruction, setting cyclesLeft to the
// instruction's total cost minus the one cycle this call itself accounts
// for.
func (c *CPU) step() {
	opcode := c.bus.Read(c.PC)
	c.PC++

	entry := table[opcode]
	mode := entry.mode(c, c.bus)
	extra := entry.op(c, mode)
	if entry.pageAware {
		extra += mode.ExtraCycle()
	}

	total := entry.cycles + extra
	if total == 0 {
		total = 1
	}
	c.cyclesLeft = total - 1

	c.processPendingInterrupts()
}

// processPendingInterrupts runs after every instruction's cycle cost has
// already been queued. NMI/IRQ are hardware events outside the opcode
// table, so their 7-cycle cost is charged directly rather than through
// the normal per-instruction cyclesLeft pipeline.
func (c *CPU) processPendingInterrupts() {
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.serviceInterrupt(nmiVector, false)
		c.totalCycles += 7
	case c.irqPending && !c.getFlag(flagI):
		c.serviceInterrupt(irqVector, false)
		c.totalCycles += 7
	}
}

// serviceInterrupt pushes PC and status (B clear, U set unless brk) and
// loads PC from vector. brk additionally marks isResetting so the
// conformance harness can detect end-of-run; its 7-cycle cost is already
// accounted for by the BRK opcode table entry, so it is not added here.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.pushWord(c.PC)
	status := c.P &^ flagB
	status |= flagU
	if brk {
		status |= flagB
	}
	c.push(status)
	c.setFlag(flagI, true)
	lo := uint16(c.bus.Read(vector))
	hi := uint16(c.bus.Read(vector + 1))
	c.PC = lo | hi<<8
	if brk {
		c.isResetting = true
	}
}

func (c *CPU) getFlag(mask uint8) bool { return c.P&mask != 0 }

func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}
