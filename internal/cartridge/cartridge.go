// Package cartridge implements iNES ROM parsing and the mapper abstraction
// that translates CPU/PPU addresses into flat PRG/CHR ROM offsets.
package cartridge

import (
	"errors"
	"fmt"
)

const (
	prgBankSize = 16384
	chrBankSize = 8192
	headerSize  = 16
	trainerSize = 512
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// Reason identifies the class of error a cartridge load failed with, so
// callers can switch on it with errors.Is.
type Reason int

const (
	// ErrMissingMagic means the first 4 bytes did not match the iNES signature.
	ErrMissingMagic Reason = iota
	// ErrNotEnoughBytes means the supplied data ended before a required
	// section (header, trainer, PRG, or CHR) was fully read.
	ErrNotEnoughBytes
	// ErrUnknownMapper means the derived mapper id has no implementation.
	ErrUnknownMapper
	// ErrRawPrgTooLarge means NewRawPRG was asked to wrap more than 16KiB.
	ErrRawPrgTooLarge
)

func (r Reason) Error() string {
	switch r {
	case ErrMissingMagic:
		return "missing iNES magic"
	case ErrNotEnoughBytes:
		return "not enough bytes"
	case ErrUnknownMapper:
		return "unknown mapper"
	case ErrRawPrgTooLarge:
		return "raw PRG too large"
	default:
		return "unknown cartridge error"
	}
}

// Error is a cartridge load failure. It wraps one of the Reason sentinels
// above together with the detail (a byte count or mapper id) that caused it.
type Error struct {
	Reason Reason
	Detail int
}

func (e *Error) Error() string {
	switch e.Reason {
	case ErrNotEnoughBytes:
		return fmt.Sprintf("cartridge: not enough bytes: needed %d more", e.Detail)
	case ErrUnknownMapper:
		return fmt.Sprintf("cartridge: unknown mapper %d", e.Detail)
	case ErrRawPrgTooLarge:
		return fmt.Sprintf("cartridge: raw PRG too large: %d bytes", e.Detail)
	default:
		return fmt.Sprintf("cartridge: %s", e.Reason)
	}
}

func (e *Error) Unwrap() error { return e.Reason }

func (e *Error) Is(target error) bool {
	var r Reason
	if errors.As(target, &r) {
		return e.Reason == r
	}
	return false
}

// Mirror is the nametable mirroring mode declared by the cartridge header.
// The PPU is out of scope for this module; Mirror is preserved purely as
// header metadata for a future PPU to consult.
type Mirror uint8

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorFourScreen
)

// Header holds the parsed iNES header fields (spec.md §3/§6).
type Header struct {
	PRGBanks   uint8 // number of 16KiB PRG banks
	CHRBanks   uint8 // number of 8KiB CHR banks (0 => CHR RAM)
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	Mirror     Mirror
	Battery    bool
	HasTrainer bool
	MapperID   uint8
}

func parseHeader(raw [headerSize]byte) (Header, error) {
	if raw[0] != inesMagic[0] || raw[1] != inesMagic[1] || raw[2] != inesMagic[2] || raw[3] != inesMagic[3] {
		return Header{}, &Error{Reason: ErrMissingMagic}
	}

	flags6 := raw[6]
	flags7 := raw[7]

	h := Header{
		PRGBanks:   raw[4],
		CHRBanks:   raw[5],
		Flags6:     flags6,
		Flags7:     flags7,
		Flags8:     raw[8],
		Flags9:     raw[9],
		Flags10:    raw[10],
		Battery:    flags6&0x02 != 0,
		HasTrainer: flags6&0x04 != 0,
		MapperID:   (flags7 & 0xF0) | (flags6 >> 4),
	}

	switch {
	case flags6&0x08 != 0:
		h.Mirror = MirrorFourScreen
	case flags6&0x01 != 0:
		h.Mirror = MirrorVertical
	default:
		h.Mirror = MirrorHorizontal
	}

	return h, nil
}

// MemoryAccess discriminates a CPU-side address from a PPU-side address so
// the mapper can route PRG reads separately from CHR reads.
type MemoryAccess struct {
	PPU  bool
	Addr uint16
}

func CPUAccess(addr uint16) MemoryAccess { return MemoryAccess{Addr: addr} }
func PPUAccess(addr uint16) MemoryAccess { return MemoryAccess{PPU: true, Addr: addr} }

// Mapper translates CPU/PPU addresses into offsets within PRG/CHR, and owns
// any interior bank-select state (e.g. UxROM's selected bank register). The
// Read methods report ok=false for an address the mapper declines to serve,
// so the bus can fall back to open bus instead of treating it as a real
// zero.
type Mapper interface {
	ReadPRG(addr uint16) (value uint8, ok bool)
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) (value uint8, ok bool)
	WriteCHR(addr uint16, value uint8)
}

// Cartridge is the immutable-after-load header and PRG/CHR byte arrays, plus
// the mutable mapper bank state.
type Cartridge struct {
	Header Header
	PRG    []uint8
	CHR    []uint8
	SRAM   [0x2000]uint8 // 8KiB PRG RAM window at 0x6000-0x7FFF
	mapper Mapper
}

// ParseINES parses a complete iNES file already read into memory. No file
// I/O happens here — the host is responsible for getting bytes off disk.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, &Error{Reason: ErrNotEnoughBytes, Detail: headerSize - len(data)}
	}

	var raw [headerSize]byte
	copy(raw[:], data[:headerSize])
	header, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	r := data[headerSize:]
	if header.HasTrainer {
		if len(r) < trainerSize {
			return nil, &Error{Reason: ErrNotEnoughBytes, Detail: trainerSize - len(r)}
		}
		r = r[trainerSize:]
	}

	prgSize := int(header.PRGBanks) * prgBankSize
	if len(r) < prgSize {
		return nil, &Error{Reason: ErrNotEnoughBytes, Detail: prgSize - len(r)}
	}
	prg := make([]uint8, prgSize)
	copy(prg, r[:prgSize])
	r = r[prgSize:]

	chrSize := int(header.CHRBanks) * chrBankSize
	var chr []uint8
	if chrSize == 0 {
		// CHR RAM: 8KiB, not part of the file.
		chr = make([]uint8, chrBankSize)
	} else {
		if len(r) < chrSize {
			return nil, &Error{Reason: ErrNotEnoughBytes, Detail: chrSize - len(r)}
		}
		chr = make([]uint8, chrSize)
		copy(chr, r[:chrSize])
	}

	cart := &Cartridge{Header: header, PRG: prg, CHR: chr}
	mapper, err := newMapper(header.MapperID, cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	return cart, nil
}

// NewRawPRG builds a cartridge directly from a PRG byte slice without an
// iNES header, for test fixtures that only care about CPU-visible PRG
// content (mapper 0, no CHR). Rejects more than one 16KiB bank.
func NewRawPRG(prg []uint8) (*Cartridge, error) {
	if len(prg) > prgBankSize {
		return nil, &Error{Reason: ErrRawPrgTooLarge, Detail: len(prg)}
	}
	padded := make([]uint8, prgBankSize)
	copy(padded, prg)

	cart := &Cartridge{
		Header: Header{PRGBanks: 1, CHRBanks: 0},
		PRG:    padded,
		CHR:    make([]uint8, chrBankSize),
	}
	cart.mapper = NewMapper0(cart)
	return cart, nil
}

func newMapper(id uint8, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0:
		return NewMapper0(cart), nil
	case 2:
		return NewMapper2(cart), nil
	default:
		return nil, &Error{Reason: ErrUnknownMapper, Detail: int(id)}
	}
}

// Read services a CPU or PPU access through the mapper. ok is false when the
// mapper declines the address (the bus should fall back to open bus).
func (c *Cartridge) Read(access MemoryAccess) (value uint8, ok bool) {
	if access.PPU {
		if access.Addr >= 0x2000 {
			return 0, false
		}
		return c.mapper.ReadCHR(access.Addr)
	}
	if access.Addr < 0x4020 {
		return 0, false
	}
	return c.mapper.ReadPRG(access.Addr)
}

// Write services a CPU or PPU write through the mapper.
func (c *Cartridge) Write(access MemoryAccess, value uint8) {
	if access.PPU {
		if access.Addr < 0x2000 {
			c.mapper.WriteCHR(access.Addr, value)
		}
		return
	}
	if access.Addr >= 0x4020 {
		c.mapper.WritePRG(access.Addr, value)
	}
}

// chrIsRAM reports whether CHR is writable (no CHR ROM banks in the header).
func (c *Cartridge) chrIsRAM() bool { return c.Header.CHRBanks == 0 }
