// Package bus implements the CPU-visible NES address decoder: 2KiB of
// mirrored work RAM, stubbed PPU/APU register windows, and the cartridge.
package bus

import "nescore/internal/cartridge"

const (
	ramSize   = 0x0800
	ramMask   = 0x07FF
	ramEnd    = 0x2000
	ppuEnd    = 0x4000
	apuEnd    = 0x4020
)

// Bus is the CPU's view of the NES address space (spec.md §4.2). It is not
// safe for concurrent use; the single-threaded contract belongs to the
// caller (the device's Tick loop).
type Bus struct {
	ram  [ramSize]uint8
	cart *cartridge.Cartridge

	// openBus is the last byte actually driven onto the bus by RAM or the
	// cartridge. Reads of undriven cartridge addresses return this value,
	// modeling the capacitive latch of a real bus (spec.md §5).
	openBus uint8
}

// New creates a bus with no cartridge inserted.
func New() *Bus {
	return &Bus{}
}

// InsertCartridge attaches (or replaces) the cartridge the bus routes
// 0x4020-0xFFFF accesses to.
func (b *Bus) InsertCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// Read dispatches an 8-bit CPU read by address range.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < ramEnd:
		v := b.ram[addr&ramMask]
		b.openBus = v
		return v
	case addr < ppuEnd:
		// PPU registers are out of scope for this module; stubbed to 0.
		return 0
	case addr < apuEnd:
		// APU/IO registers are out of scope for this module; stubbed high,
		// matching open controller/APU status lines on real hardware.
		return 0xFF
	default:
		if b.cart == nil {
			return 0
		}
		if v, ok := b.cart.Read(cartridge.CPUAccess(addr)); ok {
			b.openBus = v
			return v
		}
		return b.openBus
	}
}

// Write dispatches an 8-bit CPU write by address range.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < ramEnd:
		b.ram[addr&ramMask] = value
	case addr < ppuEnd:
		// PPU register writes are discarded (stub).
	case addr < apuEnd:
		// APU/IO register writes are discarded (stub).
	default:
		if b.cart != nil {
			b.cart.Write(cartridge.CPUAccess(addr), value)
		}
	}
}

// ReadU16 reads a little-endian 16-bit value at addr and addr+1.
func (b *Bus) ReadU16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return lo | hi<<8
}

// WriteU16 is used only by test fixtures; it touches RAM directly rather
// than going through the decoder, matching spec.md §4.2's carve-out.
func (b *Bus) WriteU16(addr uint16, value uint16) {
	b.ram[addr&ramMask] = uint8(value)
	b.ram[(addr+1)&ramMask] = uint8(value >> 8)
}

// WriteBytes loads a contiguous block of memory through the normal write
// path, for test and tooling fixtures (spec.md §6's write_memory).
func (b *Bus) WriteBytes(start uint16, data []uint8) {
	for i, v := range data {
		b.Write(start+uint16(i), v)
	}
}
