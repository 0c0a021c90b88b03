package cartridge

import "fmt"

// GBMode records what a cartridge declares about Game Boy Color support
// via the header byte at 0x0143.
type GBMode uint8

const (
	ModeDMGOnly GBMode = iota
	ModeCGBSupported
	ModeCGBOnly
)

// Type is the cartridge type byte at header offset 0x0147, identifying
// which mapper (if any) the cartridge expects.
type Type uint8

const (
	TypeROM               Type = 0x00
	TypeMBC1              Type = 0x01
	TypeMBC1RAM           Type = 0x02
	TypeMBC1RAMBattery    Type = 0x03
	TypeMBC3TimerBattery  Type = 0x0F
	TypeMBC3TimerRAMBatt  Type = 0x10
	TypeMBC3              Type = 0x11
	TypeMBC3RAM           Type = 0x12
	TypeMBC3RAMBattery    Type = 0x13
	TypeMBC5              Type = 0x19
	TypeMBC5RAM           Type = 0x1A
	TypeMBC5RAMBattery    Type = 0x1B
	TypeMBC5Rumble        Type = 0x1C
	TypeMBC5RumbleRAM     Type = 0x1D
	TypeMBC5RumbleRAMBatt Type = 0x1E
)

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024, // listed in some older header tables, unused by licensed carts
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed cartridge header, occupying 0x0100-0x014F of the
// ROM image.
type Header struct {
	Title           string
	ManufacturerCode string
	Mode            GBMode
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         int
	RAMSize         int
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// ParseHeader parses the 0x0100-0x014F header region of rom. rom must
// be at least 0x150 bytes long.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: rom too short for header: %d bytes", len(rom))
	}
	h := Header{}

	switch rom[0x143] {
	case 0x80:
		h.Mode = ModeCGBSupported
	case 0xC0:
		h.Mode = ModeCGBOnly
	default:
		h.Mode = ModeDMGOnly
	}

	if h.Mode == ModeDMGOnly {
		h.Title = trimTitle(rom[0x134:0x144])
	} else {
		h.Title = trimTitle(rom[0x134:0x143])
	}
	h.ManufacturerCode = string(rom[0x13F:0x143])
	h.NewLicenseeCode = string(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03
	h.CartridgeType = Type(rom[0x147])
	h.ROMSize = (32 * 1024) << rom[0x148]
	h.RAMSize = ramSizes[rom[0x149]]
	h.OldLicenseeCode = rom[0x14B]
	h.MaskROMVersion = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])

	return h, nil
}

// trimTitle cuts the title string at the first NUL, since shorter
// titles leave the remainder of the field zero-padded.
func trimTitle(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}

// CGBCapable reports whether the cartridge declares any CGB support.
func (h Header) CGBCapable() bool {
	return h.Mode == ModeCGBSupported || h.Mode == ModeCGBOnly
}

// RequiresCGB reports whether the cartridge refuses to run on DMG hardware.
func (h Header) RequiresCGB() bool {
	return h.Mode == ModeCGBOnly
}

func (h Header) String() string {
	return fmt.Sprintf("%s (type=%#02x rom=%dKB ram=%dKB)", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
