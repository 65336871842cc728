// Package disasm renders a nescore/internal/cpu.Trace as the
// Nintendulator-style conformance log line used by the nestest harness:
// PC, raw opcode bytes, mnemonic, operand, and register/cycle state, one
// line per executed instruction.
package disasm

import (
	"fmt"
	"strings"

	"nescore/internal/cpu"
)

// Line formats t as a single conformance-trace line.
func Line(t cpu.Trace) string {
	var bytes strings.Builder
	for i := 0; i < 3; i++ {
		if i > 0 {
			bytes.WriteByte(' ')
		}
		if i < len(t.Bytes) {
			fmt.Fprintf(&bytes, "%02X", t.Bytes[i])
		} else {
			bytes.WriteString("  ")
		}
	}

	marker := ' '
	if t.Illegal {
		marker = '*'
	}

	operand := t.Operand
	if operand != "" {
		operand = " " + operand
	}

	return fmt.Sprintf(
		"%04X  %s  %c%-3s%-27s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		t.PC, bytes.String(), marker, t.Mnemonic, operand,
		t.A, t.X, t.Y, t.P, t.SP, t.Cycles,
	)
}

// Mnemonic renders just the instruction's name and operand, e.g. "LDA
// #$00" or "BCC *-$08", with no byte/register columns. Used for linear
// listing-style disassembly rather than the full execution trace.
func Mnemonic(t cpu.Trace) string {
	if t.Operand == "" {
		return t.Mnemonic
	}
	return t.Mnemonic + " " + t.Operand
}
