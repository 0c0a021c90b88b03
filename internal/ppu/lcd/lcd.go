// Package lcd holds the LCDC and STAT register models shared by the
// PPU's rendering and timing logic.
package lcd

import "github.com/ioncodes/ayyboy/pkg/bits"

// Mode is the two-bit STAT mode field.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	Drawing
)

// Controller models LCDC (0xFF40).
type Controller struct {
	Enabled                  bool
	WindowTileMapAddress     uint16 // 0x9800 or 0x9C00
	WindowEnabled            bool
	TileDataAddress          uint16 // 0x8000 or 0x8800
	BackgroundTileMapAddress uint16 // 0x9800 or 0x9C00
	SpriteSize               uint8  // 8 or 16
	SpriteEnabled            bool
	BackgroundEnabled        bool // on CGB this instead means "BG loses priority over OBJ"
}

// NewController returns LCDC at its power-on value (0x91).
func NewController() *Controller {
	c := &Controller{}
	c.Write(0x91)
	return c
}

func (c *Controller) Write(value uint8) {
	c.Enabled = bits.Test(value, 7)
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	} else {
		c.WindowTileMapAddress = 0x9800
	}
	c.WindowEnabled = bits.Test(value, 5)
	if bits.Test(value, 4) {
		c.TileDataAddress = 0x8000
	} else {
		c.TileDataAddress = 0x8800
	}
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	} else {
		c.BackgroundTileMapAddress = 0x9800
	}
	if bits.Test(value, 2) {
		c.SpriteSize = 16
	} else {
		c.SpriteSize = 8
	}
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)
}

func (c *Controller) Read() uint8 {
	var v uint8
	if c.Enabled {
		v |= 1 << 7
	}
	if c.WindowTileMapAddress == 0x9C00 {
		v |= 1 << 6
	}
	if c.WindowEnabled {
		v |= 1 << 5
	}
	if c.TileDataAddress == 0x8000 {
		v |= 1 << 4
	}
	if c.BackgroundTileMapAddress == 0x9C00 {
		v |= 1 << 3
	}
	if c.SpriteSize == 16 {
		v |= 1 << 2
	}
	if c.SpriteEnabled {
		v |= 1 << 1
	}
	if c.BackgroundEnabled {
		v |= 1 << 0
	}
	return v
}

// UsingSignedTileData reports whether tile indices are interpreted as
// signed, relative to 0x9000 (the 0x8800 addressing mode).
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}

// Status models STAT (0xFF41). Coincidence and Mode are maintained by
// the PPU's state machine; the interrupt-enable bits are the only
// genuinely read/write part of the register.
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = value&0x40 != 0
	s.OAMInterrupt = value&0x20 != 0
	s.VBlankInterrupt = value&0x10 != 0
	s.HBlankInterrupt = value&0x08 != 0
}

func (s *Status) Read() uint8 {
	var v uint8 = 0x80 // bit 7 always reads high
	if s.CoincidenceInterrupt {
		v |= 0x40
	}
	if s.OAMInterrupt {
		v |= 0x20
	}
	if s.VBlankInterrupt {
		v |= 0x10
	}
	if s.HBlankInterrupt {
		v |= 0x08
	}
	if s.Coincidence {
		v |= 0x04
	}
	v |= uint8(s.Mode) & 0x03
	return v
}
