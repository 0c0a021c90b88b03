package cartridge

import "github.com/ioncodes/ayyboy/internal/types"

// mbc1Logo is the Nintendo boot logo bytes at header offset 0x0104,
// replicated at the start of every 0x40000-byte quadrant of a multicart
// image. Comparing a bank's copy against this table is the standard
// heuristic for detecting MBC1 multicarts.
var mbc1Logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// MBC1 is the most common banked mapper: up to 125 usable 16KB ROM
// banks and up to 4 8KB RAM banks, with a banking-mode latch that
// decides whether the secondary 2-bit register affects the ROM or the
// RAM/0000-3FFF window.
type MBC1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	bank1      uint8 // 5-bit primary ROM bank select, 0 reads as 1
	bank2      uint8 // 2-bit secondary select: upper ROM bits or RAM bank
	mode       bool  // advanced banking mode

	multicart bool
	romBanks  int
}

// NewMBC1 returns an MBC1 mapper for the given ROM/RAM sizes.
func NewMBC1(rom []byte, ramSize int) *MBC1 {
	m := &MBC1{
		rom:      rom,
		ram:      make([]byte, ramSize),
		bank1:    1,
		romBanks: len(rom) / 0x4000,
	}
	m.detectMulticart()
	return m
}

func (m *MBC1) detectMulticart() {
	if len(m.rom) != 1024*1024 {
		return
	}
	matches := 0
	for bank := 0; bank < 4; bank++ {
		base := bank * 0x40000
		if base+0x0104+48 > len(m.rom) {
			continue
		}
		if string(m.rom[base+0x0104:base+0x0104+48]) == string(mbc1Logo[:]) {
			matches++
		}
	}
	m.multicart = matches > 1
}

// bankShift is the number of bits bank2 is shifted before combining
// with bank1 - multicarts use a narrower 4-bit primary bank field.
func (m *MBC1) bankShift() uint8 {
	if m.multicart {
		return 4
	}
	return 5
}

func (m *MBC1) romBankLow() int {
	b1 := m.bank1
	if m.multicart {
		b1 &= 0x0F
	}
	return int(b1) | int(m.bank2)<<m.bankShift()
}

func (m *MBC1) zeroBank() int {
	if !m.mode {
		return 0
	}
	return int(m.bank2) << m.bankShift()
}

func (m *MBC1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		bank := m.zeroBank() % max(m.romBanks, 1)
		return m.romAt(bank, address)
	case address < 0x8000:
		bank := m.romBankLow() % max(m.romBanks, 1)
		return m.romAt(bank, address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)%uint32(len(m.ram))]
	}
	return 0xFF
}

func (m *MBC1) romAt(bank int, offset uint16) uint8 {
	idx := bank*0x4000 + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *MBC1) ramOffset(address uint16) uint32 {
	bank := uint32(0)
	if m.mode {
		bank = uint32(m.bank2)
	}
	return bank*0x2000 + uint32(address-0xA000)
}

func (m *MBC1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x1F
		if value == 0 {
			value = 1
		}
		m.bank1 = value
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value&0x01 != 0
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)%uint32(len(m.ram))] = value
		}
	}
}

func (m *MBC1) SaveRAM() []byte     { return m.ram }
func (m *MBC1) LoadRAM(data []byte) { copy(m.ram, data) }

var _ types.Stater = (*MBC1)(nil)
var _ RAMPersister = (*MBC1)(nil)

func (m *MBC1) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
	s.WriteBool(m.multicart)
}

func (m *MBC1) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
	m.multicart = s.ReadBool()
}
