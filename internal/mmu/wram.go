package mmu

import "github.com/ioncodes/ayyboy/internal/types"

// WRAM is the 8x4KB work RAM bank set. On DMG only banks 0 and 1 are
// ever selected; on CGB, SVBK (0xFF70) selects which of banks 1-7
// appears at 0xD000-0xDFFF (bank 0 is always fixed at 0xC000-0xCFFF).
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8
}

// NewWRAM returns work RAM with bank 1 selected, matching the
// power-on default.
func NewWRAM() *WRAM {
	return &WRAM{bank: 1}
}

// SetBank selects the switchable bank (SVBK write). A request for bank
// 0 is coerced to bank 1, matching real CGB hardware.
func (w *WRAM) SetBank(bank uint8) {
	bank &= 0x07
	if bank == 0 {
		bank = 1
	}
	w.bank = bank
}

func (w *WRAM) Bank() uint8 {
	return w.bank
}

func (w *WRAM) Read(addr uint16) uint8 {
	switch {
	case addr < 0xD000: // fixed bank 0
		return w.raw[0][addr&0xFFF]
	case addr < 0xE000: // switchable bank
		return w.raw[w.bank][addr&0xFFF]
	case addr < 0xF000: // echo of fixed bank 0
		return w.raw[0][addr&0xFFF]
	default: // echo of switchable bank
		return w.raw[w.bank][addr&0xFFF]
	}
}

func (w *WRAM) Write(addr uint16, v uint8) {
	switch {
	case addr < 0xD000:
		w.raw[0][addr&0xFFF] = v
	case addr < 0xE000:
		w.raw[w.bank][addr&0xFFF] = v
	case addr < 0xF000:
		w.raw[0][addr&0xFFF] = v
	default:
		w.raw[w.bank][addr&0xFFF] = v
	}
}

var _ types.Stater = (*WRAM)(nil)

func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for i := range w.raw {
		s.WriteData(w.raw[i][:])
	}
}

func (w *WRAM) Load(s *types.State) {
	w.bank = s.Read8()
	for i := range w.raw {
		s.ReadData(w.raw[i][:])
	}
}
