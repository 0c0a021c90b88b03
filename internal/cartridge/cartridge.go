// Package cartridge parses cartridge headers and provides the Mapper
// implementations (flat ROM, MBC1, MBC3, MBC5) that the MMU routes
// 0x0000-0x7FFF and 0xA000-0xBFFF through.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/ioncodes/ayyboy/internal/types"
)

// Cartridge owns the parsed header and the dispatched Mapper
// implementation for a loaded ROM image.
type Cartridge struct {
	Mapper
	header Header
	digest uint64
}

// New parses rom's header and constructs the matching Mapper. Images
// shorter than a valid header fall back to an empty cartridge reading
// all 0xFF, matching how real hardware behaves with no cartridge
// inserted.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return NewEmpty(), nil
	}
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	var mapper Mapper
	switch header.CartridgeType {
	case TypeROM:
		mapper = NewROM(rom)
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		mapper = NewMBC1(rom, header.RAMSize)
	case TypeMBC3, TypeMBC3RAM, TypeMBC3RAMBattery, TypeMBC3TimerBattery, TypeMBC3TimerRAMBatt:
		mapper = NewMBC3(rom, header.RAMSize)
	case TypeMBC5, TypeMBC5RAM, TypeMBC5RAMBattery:
		mapper = NewMBC5(rom, header.RAMSize, false)
	case TypeMBC5Rumble, TypeMBC5RumbleRAM, TypeMBC5RumbleRAMBatt:
		mapper = NewMBC5(rom, header.RAMSize, true)
	default:
		return nil, fmt.Errorf("cartridge: unsupported cartridge type %#02x", header.CartridgeType)
	}

	return &Cartridge{
		Mapper: mapper,
		header: header,
		digest: xxhash.Sum64(rom),
	}, nil
}

// NewEmpty returns a cartridge-slot-empty stand-in: a 32KB flat ROM
// reading all 0xFF, the state real hardware presents with no cartridge
// inserted.
func NewEmpty() *Cartridge {
	blank := make([]byte, 32*1024)
	for i := range blank {
		blank[i] = 0xFF
	}
	return &Cartridge{Mapper: NewROM(blank), header: Header{Title: "(no cartridge)"}}
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Fingerprint returns the xxhash64 digest of the raw ROM image, used
// by hosts as a stable save-file/save-state key independent of title
// collisions.
func (c *Cartridge) Fingerprint() uint64 {
	return c.digest
}

var _ types.Stater = (*Cartridge)(nil)

func (c *Cartridge) Save(s *types.State) {
	c.Mapper.Save(s)
}

func (c *Cartridge) Load(s *types.State) {
	c.Mapper.Load(s)
}
