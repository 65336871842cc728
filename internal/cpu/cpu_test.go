package cpu

import (
	"testing"

	"nescore/internal/bus"
	"nescore/internal/cartridge"
)

// newTestCPU wires a CPU to a bus with a blank 16KiB NROM cartridge so
// tests have a full address space available: RAM is used for test
// programs (writable), PRG ROM for scenarios that specifically need code
// to live at 0x8000+.
func newTestCPU(t *testing.T) (*CPU, *bus.Bus) {
	t.Helper()
	b := bus.New()
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)
	return New(b), b
}

func tickN(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// runInstruction ticks once to fetch and execute the instruction at PC,
// then keeps ticking until its cycles fully drain (cyclesLeft back to 0)
// or the CPU is jammed.
func runInstruction(c *CPU, b *bus.Bus) {
	c.Tick()
	for c.cyclesLeft > 0 && !c.IsJammed() {
		c.Tick()
	}
}

func TestResetInitialState(t *testing.T) {
	c, b := newTestCPU(t)
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)

	// Can't write through the bus into ROM, so poke the reset vector
	// directly into the cartridge's backing array.
	cart.PRG[0x3FFC] = 0x00
	cart.PRG[0x3FFD] = 0x80
	c.Reset()

	if c.PC != 0x8000 {
		t.Fatalf("PC = 0x%04X, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = 0x%02X, want 0xFD", c.SP)
	}
	if c.P != flagU|flagI {
		t.Fatalf("P = 0x%02X, want 0x%02X", c.P, flagU|flagI)
	}
	if c.TotalCycles() != 7 {
		t.Fatalf("TotalCycles = %d, want 7", c.TotalCycles())
	}
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	cases := []struct {
		value    uint8
		wantZero bool
		wantNeg  bool
	}{
		{0x00, true, false},
		{0x01, false, false},
		{0x80, false, true},
	}
	for _, tc := range cases {
		c, b := newTestCPU(t)
		b.WriteBytes(0x0200, []uint8{0xA9, tc.value})
		c.ResetWithProgramCounter(0x0200)
		runInstruction(c, b)

		if c.A != tc.value {
			t.Fatalf("A = 0x%02X, want 0x%02X", c.A, tc.value)
		}
		if c.getFlag(flagZ) != tc.wantZero {
			t.Errorf("value 0x%02X: Z = %v, want %v", tc.value, c.getFlag(flagZ), tc.wantZero)
		}
		if c.getFlag(flagN) != tc.wantNeg {
			t.Errorf("value 0x%02X: N = %v, want %v", tc.value, c.getFlag(flagN), tc.wantNeg)
		}
	}
}

// ADC overflow: A=0x50, M=0x50, C=0 -> A=0xA0, N=1, V=1, C=0, Z=0.
func TestADCOverflow(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0x69, 0x50}) // ADC #$50
	c.ResetWithProgramCounter(0x0200)
	c.A = 0x50
	c.setFlag(flagC, false)
	runInstruction(c, b)

	if c.A != 0xA0 {
		t.Errorf("A = 0x%02X, want 0xA0", c.A)
	}
	if !c.getFlag(flagN) {
		t.Error("N not set")
	}
	if !c.getFlag(flagV) {
		t.Error("V not set")
	}
	if c.getFlag(flagC) {
		t.Error("C unexpectedly set")
	}
	if c.getFlag(flagZ) {
		t.Error("Z unexpectedly set")
	}
}

// SBC borrow: A=0x50, M=0xB0, C=1 -> A=0xA0, N=1, V=1, C=0, Z=0.
func TestSBCBorrow(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0xE9, 0xB0}) // SBC #$B0
	c.ResetWithProgramCounter(0x0200)
	c.A = 0x50
	c.setFlag(flagC, true)
	runInstruction(c, b)

	if c.A != 0xA0 {
		t.Errorf("A = 0x%02X, want 0xA0", c.A)
	}
	if !c.getFlag(flagN) {
		t.Error("N not set")
	}
	if !c.getFlag(flagV) {
		t.Error("V not set")
	}
	if c.getFlag(flagC) {
		t.Error("C unexpectedly set")
	}
	if c.getFlag(flagZ) {
		t.Error("Z unexpectedly set")
	}
}

// Branch page crossing: at PC=0x80FD, BEQ +0x05 with Z=1 costs
// 2 (base) + 1 (taken) + 1 (page cross) = 4 cycles, landing at 0x8104.
func TestBranchPageCrossingCycles(t *testing.T) {
	c, b := newTestCPU(t)
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)

	// Place the BEQ at 0x80FD directly in PRG ROM (can't write through
	// the bus into ROM, so poke the cartridge's backing array).
	cart.PRG[0x80FD-0x8000] = 0xF0 // BEQ
	cart.PRG[0x80FE-0x8000] = 0x05 // +5

	c.ResetWithProgramCounter(0x80FD)
	c.setFlag(flagZ, true)

	before := c.TotalCycles()
	runInstruction(c, b)
	spent := c.TotalCycles() - before

	if spent != 4 {
		t.Errorf("cycles spent = %d, want 4", spent)
	}
	if c.PC != 0x8104 {
		t.Errorf("PC = 0x%04X, want 0x8104", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, b := newTestCPU(t)
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)

	cart.PRG[0x8000-0x8000] = 0x20 // JSR $1234
	cart.PRG[0x8001-0x8000] = 0x34
	cart.PRG[0x8002-0x8000] = 0x12
	b.Write(0x1234, 0x60) // RTS; 0x1234 < 0x2000 lands in mirrored RAM

	c.ResetWithProgramCounter(0x8000)
	spOrig := c.SP

	runInstruction(c, b) // JSR
	if c.PC != 0x1234 {
		t.Fatalf("after JSR: PC = 0x%04X, want 0x1234", c.PC)
	}
	runInstruction(c, b) // RTS
	if c.PC != 0x8003 {
		t.Fatalf("after RTS: PC = 0x%04X, want 0x8003", c.PC)
	}
	if c.SP != spOrig {
		t.Fatalf("SP = 0x%02X, want 0x%02X (restored)", c.SP, spOrig)
	}
}

// JMP ($xxFF) must read its high byte from $xx00, not $(xx+1)00.
func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, b := newTestCPU(t)
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)

	cart.PRG[0x8000-0x8000] = 0x6C // JMP ($81FF)
	cart.PRG[0x8001-0x8000] = 0xFF
	cart.PRG[0x8002-0x8000] = 0x81
	cart.PRG[0x81FF-0x8000] = 0x34 // low byte of target, read from $81FF
	cart.PRG[0x8200-0x8000] = 0x12 // wrong high byte a buggy impl would read
	cart.PRG[0x8100-0x8000] = 0x56 // correct high byte: wraps to $8100

	c.ResetWithProgramCounter(0x8000)
	runInstruction(c, b)

	if c.PC != 0x5634 {
		t.Fatalf("PC = 0x%04X, want 0x5634 (page-wrap high byte from $8100)", c.PC)
	}
}

func TestStackPushPullAccumulator(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0x48, 0xA9, 0x00, 0x68}) // PHA, LDA #$00, PLA
	c.ResetWithProgramCounter(0x0200)
	c.A = 0x42
	spBefore := c.SP

	runInstruction(c, b) // PHA
	runInstruction(c, b) // LDA #$00
	if c.A != 0 {
		t.Fatalf("A after LDA #$00 = 0x%02X, want 0", c.A)
	}
	runInstruction(c, b) // PLA
	if c.A != 0x42 {
		t.Fatalf("A after PLA = 0x%02X, want 0x42", c.A)
	}
	if c.SP != spBefore {
		t.Fatalf("SP = 0x%02X, want 0x%02X", c.SP, spBefore)
	}
}

// After PHP; PLP, SP returns to original and the popped P has B=0, U=1.
func TestStackPushPullStatus(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0x08, 0x28}) // PHP, PLP
	c.ResetWithProgramCounter(0x0200)
	c.P = flagC | flagN
	spBefore := c.SP

	runInstruction(c, b) // PHP
	runInstruction(c, b) // PLP

	if c.SP != spBefore {
		t.Fatalf("SP = 0x%02X, want 0x%02X", c.SP, spBefore)
	}
	if c.P&flagB != 0 {
		t.Error("B set after PLP")
	}
	if c.P&flagU == 0 {
		t.Error("U clear after PLP")
	}
	if c.P&flagC == 0 || c.P&flagN == 0 {
		t.Error("C/N not preserved through PHP/PLP")
	}
}

func TestRAMMirroringObservedThroughCPU(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0xAD, 0x00, 0x18, 0x00, 0x00}) // LDA $1800
	c.ResetWithProgramCounter(0x0200)
	b.Write(0x0000, 0x99)
	runInstruction(c, b)

	if c.A != 0x99 {
		t.Fatalf("A = 0x%02X, want 0x99 (mirrored RAM)", c.A)
	}
}

func TestIllegalOpcodeLAX(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0xA7, 0x10}) // LAX $10
	c.ResetWithProgramCounter(0x0200)
	b.Write(0x0010, 0x77)
	runInstruction(c, b)

	if c.A != 0x77 || c.X != 0x77 {
		t.Fatalf("A=0x%02X X=0x%02X, want both 0x77", c.A, c.X)
	}
}

func TestJAMHaltsCPU(t *testing.T) {
	c, b := newTestCPU(t)
	b.WriteBytes(0x0200, []uint8{0x02}) // JAM
	c.ResetWithProgramCounter(0x0200)
	runInstruction(c, b)

	if !c.IsJammed() {
		t.Fatal("CPU not jammed after JAM opcode")
	}
	pc := c.PC
	cycles := c.TotalCycles()
	tickN(c, 10)
	if c.PC != pc || c.TotalCycles() != cycles {
		t.Fatal("jammed CPU advanced state")
	}
}

func TestBRKSetsResettingAndLoadsIRQVector(t *testing.T) {
	c, b := newTestCPU(t)
	cart, err := cartridge.NewRawPRG(make([]byte, 16384))
	if err != nil {
		t.Fatal(err)
	}
	b.InsertCartridge(cart)

	b.WriteBytes(0x0200, []uint8{0x00}) // BRK

	// Can't write through the bus into ROM, so poke the IRQ/BRK vector
	// directly into the cartridge's backing array.
	cart.PRG[0x3FFE] = 0x00
	cart.PRG[0x3FFF] = 0x90

	c.ResetWithProgramCounter(0x0200)
	runInstruction(c, b)

	if !c.IsResetting() {
		t.Fatal("IsResetting false after BRK")
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC = 0x%04X, want 0x9000 (IRQ vector)", c.PC)
	}
}
