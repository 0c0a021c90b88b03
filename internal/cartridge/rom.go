package cartridge

import "github.com/ioncodes/ayyboy/internal/types"

// ROM is the unbanked cartridge type (header byte 0x00) - a flat 32KB
// ROM image with no mapper and no external RAM.
type ROM struct {
	rom []byte
}

// NewROM returns a flat ROM mapper over rom.
func NewROM(rom []byte) *ROM {
	return &ROM{rom: rom}
}

func (r *ROM) Read(address uint16) uint8 {
	if int(address) < len(r.rom) {
		return r.rom[address]
	}
	return 0xFF
}

// Write is a no-op; flat ROM cartridges have no registers to write to
// and no RAM to write into.
func (r *ROM) Write(address uint16, value uint8) {}

var _ types.Stater = (*ROM)(nil)

// Save/Load are no-ops: a flat ROM mapper carries no mutable state
// beyond the ROM image itself, which the cartridge loader already owns.
func (r *ROM) Save(s *types.State) {}
func (r *ROM) Load(s *types.State) {}
