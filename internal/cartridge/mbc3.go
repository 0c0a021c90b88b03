package cartridge

import "github.com/ioncodes/ayyboy/internal/types"

// MBC3 supports up to 128 16KB ROM banks, 4 8KB RAM banks, and an
// optional real-time clock mapped into the same RAM-bank select window
// (bank values 0x08-0x0C). The RTC itself is out of core scope (it
// needs a wall-clock source, which is a host concern); registers are
// latched and read back so games see a clock that never advances
// rather than a bus error.
type MBC3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint8
	ramBank    uint8 // 0x00-0x03 selects RAM, 0x08-0x0C selects an RTC register

	rtc        [5]uint8
	rtcLatched [5]uint8
	latchState uint8 // tracks the 0x00-then-0x01 write sequence that latches the RTC

	romBanks int
}

// NewMBC3 returns an MBC3 mapper for the given ROM/RAM sizes.
func NewMBC3(rom []byte, ramSize int) *MBC3 {
	return &MBC3{
		rom:      rom,
		ram:      make([]byte, ramSize),
		romBank:  1,
		romBanks: len(rom) / 0x4000,
	}
}

func (m *MBC3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.romAt(0, address)
	case address < 0x8000:
		return m.romAt(int(m.romBank), address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			return m.rtcLatched[m.ramBank-0x08]
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(address-0xA000)
		if off >= len(m.ram) {
			return 0xFF
		}
		return m.ram[off]
	}
	return 0xFF
}

func (m *MBC3) romAt(bank int, offset uint16) uint8 {
	if m.romBanks > 0 {
		bank %= m.romBanks
	}
	idx := bank*0x4000 + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *MBC3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x7F
		if value == 0 {
			value = 1
		}
		m.romBank = value
	case address < 0x6000:
		m.ramBank = value
	case address < 0x8000:
		if value == 0x00 {
			m.latchState = 0x00
		} else if value == 0x01 && m.latchState == 0x00 {
			m.rtcLatched = m.rtc
			m.latchState = 0x01
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			m.rtc[m.ramBank-0x08] = value
			return
		}
		if len(m.ram) == 0 {
			return
		}
		off := int(m.ramBank)*0x2000 + int(address-0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *MBC3) SaveRAM() []byte     { return m.ram }
func (m *MBC3) LoadRAM(data []byte) { copy(m.ram, data) }

var _ types.Stater = (*MBC3)(nil)
var _ RAMPersister = (*MBC3)(nil)

func (m *MBC3) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteData(m.rtc[:])
	s.WriteData(m.rtcLatched[:])
	s.Write8(m.latchState)
}

func (m *MBC3) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	s.ReadData(m.rtc[:])
	s.ReadData(m.rtcLatched[:])
	m.latchState = s.Read8()
}
