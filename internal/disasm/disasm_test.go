package disasm

import (
	"testing"

	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
)

func TestMnemonicFibonacciListing(t *testing.T) {
	program := []uint8{
		0xA9, 0x00, 0x85, 0x00, 0xA9, 0x01, 0x85, 0x01,
		0xA2, 0x00, 0xB5, 0x00, 0x18, 0x75, 0x01, 0x95,
		0x02, 0xE8, 0x90, 0xF6, 0xE8,
	}
	want := []string{
		"LDA #$00",
		"STA $00",
		"LDA #$01",
		"STA $01",
		"LDX #$00",
		"LDA $00,X",
		"CLC",
		"ADC $01,X",
		"STA $02,X",
		"INX",
		"BCC *-$08",
		"INX",
	}

	b := bus.New()
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)
	copy(cart.PRG, program)

	c := cpu.New(b)
	c.ResetWithProgramCounter(0x8000)

	for i, exp := range want {
		trace := c.PeekTrace(b)
		got := Mnemonic(trace)
		if got != exp {
			t.Fatalf("line %d: got %q, want %q", i, got, exp)
		}
		c.PC = trace.PC + uint16(len(trace.Bytes))
	}
}
