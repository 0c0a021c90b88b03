package cartridge

import "github.com/ioncodes/ayyboy/internal/types"

// Mapper is the interface every cartridge mapper implements - flat ROM
// and the three banked controllers (MBC1/MBC3/MBC5). The MMU routes
// all of 0x0000-0x7FFF and 0xA000-0xBFFF through whichever Mapper the
// cartridge header selected.
type Mapper interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	types.Stater
}

// RAMPersister is implemented by mappers carrying battery-backed
// external RAM, letting a host save/restore it independent of a full
// save state. Mappers without battery-backed RAM don't implement this.
type RAMPersister interface {
	SaveRAM() []byte
	LoadRAM(data []byte)
}
