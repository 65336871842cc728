// Package gones composes the CPU, bus, and cartridge into the top-level
// device a host embeds: load a ROM, reset it, tick it, and optionally
// stream a conformance trace of every instruction it executes.
package gones

import (
	"fmt"
	"io"

	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/disasm"
)

// Device is the CPU + bus + cartridge triad a host drives one cycle at a
// time via Tick.
type Device struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	cart  *cartridge.Cartridge
	trace io.Writer
}

// New constructs a Device with no cartridge inserted. Reset or
// ResetWithProgramCounter must be called before Tick; until a cartridge is
// inserted, reads of the cartridge window return 0.
func New() *Device {
	b := bus.New()
	return &Device{
		CPU: cpu.New(b),
		Bus: b,
	}
}

// InsertCartridge attaches cart to the bus, replacing any prior cartridge.
func (d *Device) InsertCartridge(cart *cartridge.Cartridge) {
	d.cart = cart
	d.Bus.InsertCartridge(cart)
}

// Reset performs a power-on reset, loading PC from the cartridge's reset
// vector.
func (d *Device) Reset() {
	d.CPU.Reset()
}

// ResetWithProgramCounter performs a power-on reset at an explicit PC,
// bypassing the reset vector. Used by conformance harnesses that start
// execution at a fixed address (nestest's 0xC000 entry point).
func (d *Device) ResetWithProgramCounter(pc uint16) {
	d.CPU.ResetWithProgramCounter(pc)
}

// Tick advances the device by one CPU clock cycle. When a new instruction
// is about to be fetched and a trace writer is set, the instruction's
// conformance trace line is written first.
func (d *Device) Tick() {
	if d.trace != nil && d.atInstructionBoundary() {
		line := disasm.Line(d.CPU.PeekTrace(d.Bus))
		fmt.Fprintln(d.trace, line)
	}
	d.CPU.Tick()
}

// atInstructionBoundary reports whether the next Tick will fetch a new
// instruction rather than draining an already-decoded one.
func (d *Device) atInstructionBoundary() bool {
	return !d.CPU.IsJammed() && d.CPU.CyclesLeft() == 0
}

// IsResetting reports whether a BRK has executed since the last reset, the
// signal a conformance harness uses to detect end-of-run.
func (d *Device) IsResetting() bool {
	return d.CPU.IsResetting()
}

// WriteMemory loads data into the bus starting at start, through the
// normal CPU write path (so writes to ROM are silently dropped by the
// mapper, matching real hardware). Intended for test fixtures and tooling,
// not for emulating cartridge behavior.
func (d *Device) WriteMemory(start uint16, data []uint8) {
	d.Bus.WriteBytes(start, data)
}

// SetTraceWriter directs a Nintendulator-style conformance trace line to w
// for every instruction boundary Tick crosses. Pass nil to stop tracing.
func (d *Device) SetTraceWriter(w io.Writer) {
	d.trace = w
}

// Disassemble renders the instruction at addr as a mnemonic-plus-operand
// string (e.g. "LDA #$00"), returning it along with the instruction's
// length in bytes. It does not execute or otherwise mutate CPU state.
func (d *Device) Disassemble(addr uint16) (string, int) {
	saved := d.CPU.PC
	d.CPU.PC = addr
	trace := d.CPU.PeekTrace(d.Bus)
	d.CPU.PC = saved
	return disasm.Mnemonic(trace), len(trace.Bytes)
}
