package cartridge

import "github.com/ioncodes/ayyboy/internal/types"

// MBC5 supports up to 512 16KB ROM banks (a 9-bit bank number split
// across two write windows) and up to 16 8KB RAM banks. It is the only
// mapper of the three that's required to support bank 0 as a valid
// switchable-window selection, and optionally drives a rumble motor
// off bit 3 of the RAM bank register (spec.md non-goal: no physical
// rumble output; the bit is tracked and exposed through RumbleActive,
// which the core itself never reads).
type MBC5 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint16 // 9 bits
	ramBank    uint8  // 4 bits; bit 3 doubles as the rumble motor line
	hasRumble  bool

	romBanks int
}

// NewMBC5 returns an MBC5 mapper. hasRumble marks cartridge types
// 0x1C/0x1D/0x1E, where bit 3 of the RAM bank register drives rumble
// instead of selecting a RAM bank.
func NewMBC5(rom []byte, ramSize int, hasRumble bool) *MBC5 {
	return &MBC5{
		rom:       rom,
		ram:       make([]byte, ramSize),
		romBank:   1,
		hasRumble: hasRumble,
		romBanks:  len(rom) / 0x4000,
	}
}

func (m *MBC5) ramBankIndex() uint8 {
	if m.hasRumble {
		return m.ramBank & 0x07
	}
	return m.ramBank & 0x0F
}

// RumbleActive reports the motor line state for hosts that wire up
// haptic feedback; the core itself never reads this.
func (m *MBC5) RumbleActive() bool {
	return m.hasRumble && m.ramBank&0x08 != 0
}

func (m *MBC5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.romAt(0, address)
	case address < 0x8000:
		return m.romAt(int(m.romBank), address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBankIndex())*0x2000 + int(address-0xA000)
		if off >= len(m.ram) {
			return 0xFF
		}
		return m.ram[off]
	}
	return 0xFF
}

func (m *MBC5) romAt(bank int, offset uint16) uint8 {
	if m.romBanks > 0 {
		bank %= m.romBanks
	}
	idx := bank*0x4000 + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *MBC5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBank = (m.romBank & 0x100) | uint16(value)
	case address < 0x4000:
		m.romBank = (m.romBank & 0x0FF) | (uint16(value&0x01) << 8)
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			off := int(m.ramBankIndex())*0x2000 + int(address-0xA000)
			if off < len(m.ram) {
				m.ram[off] = value
			}
		}
	}
}

func (m *MBC5) SaveRAM() []byte     { return m.ram }
func (m *MBC5) LoadRAM(data []byte) { copy(m.ram, data) }

var _ types.Stater = (*MBC5)(nil)
var _ RAMPersister = (*MBC5)(nil)

func (m *MBC5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write16(m.romBank)
	s.Write8(m.ramBank)
}

func (m *MBC5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read16()
	m.ramBank = s.Read8()
}
