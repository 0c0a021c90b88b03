// Package ppu implements the pixel processing unit: the four-phase
// per-scanline state machine (OAM scan, drawing, HBlank, VBlank),
// VRAM/OAM storage, and the background/window/sprite compositor that
// produces one 160x144 frame every 70224 T-cycles.
package ppu

import (
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/ppu/lcd"
	"github.com/ioncodes/ayyboy/internal/ppu/palette"
	"github.com/ioncodes/ayyboy/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	oamScanCycles  = 80
	drawingCycles  = 172
	cyclesPerLine  = 456
	totalScanlines = 154
)

// PPU owns VRAM, OAM, the LCD registers, and the compositor.
type PPU struct {
	LCDC *lcd.Controller
	STAT *lcd.Status

	scy, scx uint8
	ly, lyc  uint8
	wy, wx   uint8
	windowLine uint8

	bgp, obp0, obp1 *palette.DMG
	bgPalette       *palette.CGB
	objPalette      *palette.CGB

	vram     [2][0x2000]uint8
	vramBank uint8
	oamData  [160]byte

	cycleInLine  uint16
	statLineHigh bool

	irq   *interrupts.Service
	isCGB bool

	Framebuffer [ScreenHeight][ScreenWidth]palette.RGB
	frameReady  bool
}

// New returns a PPU wired to the given interrupt service.
func New(irq *interrupts.Service, isCGB bool) *PPU {
	p := &PPU{
		LCDC:       lcd.NewController(),
		STAT:       lcd.NewStatus(),
		bgp:        palette.NewDMG(),
		obp0:       palette.NewDMG(),
		obp1:       palette.NewDMG(),
		bgPalette:  palette.NewCGB(),
		objPalette: palette.NewCGB(),
		irq:        irq,
		isCGB:      isCGB,
	}
	p.STAT.Mode = lcd.OAMScan
	return p
}

// LoadCompatibilityPalette seeds the CGB palette RAM from the DMG
// compatibility table, for a monochrome game run without its own boot
// ROM palette setup (SPEC_FULL.md §4.9).
func (p *PPU) LoadCompatibilityPalette(titleChecksum uint8, fourthTitleByte byte) {
	entry := palette.Lookup(titleChecksum, fourthTitleByte)
	writeTriplet := func(pal *palette.CGB, paletteIndex uint8, colours [4]palette.RGB) {
		for i, c := range colours {
			packed := uint16(c[0]>>3) | uint16(c[1]>>3)<<5 | uint16(c[2]>>3)<<10
			pal.SetIndex(paletteIndex*8 + uint8(i)*2)
			pal.Write(uint8(packed & 0xFF))
			pal.SetIndex(paletteIndex*8 + uint8(i)*2 + 1)
			pal.Write(uint8(packed >> 8))
		}
	}
	writeTriplet(p.bgPalette, 0, entry.Background)
	writeTriplet(p.objPalette, 0, entry.Object0)
	writeTriplet(p.objPalette, 1, entry.Object1)
}

// HasFrame reports whether a full frame is ready for the host to pull.
func (p *PPU) HasFrame() bool {
	return p.frameReady
}

// ClearFrame acknowledges the pulled frame.
func (p *PPU) ClearFrame() {
	p.frameReady = false
}

func (p *PPU) vramLocked() bool {
	return p.STAT.Mode == lcd.Drawing
}

func (p *PPU) oamLocked() bool {
	return p.STAT.Mode == lcd.OAMScan || p.STAT.Mode == lcd.Drawing
}

func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if p.vramLocked() {
			return 0xFF
		}
		return p.vram[p.vramBank][address-0x8000]
	case address >= 0xFE00 && address <= 0xFE9F:
		if p.oamLocked() {
			return 0xFF
		}
		return p.oamData[address-0xFE00]
	case address == types.LCDC:
		return p.LCDC.Read()
	case address == types.STAT:
		return p.STAT.Read()
	case address == types.SCY:
		return p.scy
	case address == types.SCX:
		return p.scx
	case address == types.LY:
		return p.ly
	case address == types.LYC:
		return p.lyc
	case address == types.BGP:
		return p.bgp.Read()
	case address == types.OBP0:
		return p.obp0.Read()
	case address == types.OBP1:
		return p.obp1.Read()
	case address == types.WY:
		return p.wy
	case address == types.WX:
		return p.wx
	case address == types.VBK:
		if !p.isCGB {
			return 0xFF
		}
		return p.vramBank | 0xFE
	case address == types.BCPS:
		return p.bgPalette.Index() | 0x40
	case address == types.BCPD:
		return p.bgPalette.Read()
	case address == types.OCPS:
		return p.objPalette.Index() | 0x40
	case address == types.OCPD:
		return p.objPalette.Read()
	}
	return 0xFF
}

func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if !p.vramLocked() {
			p.vram[p.vramBank][address-0x8000] = value
		}
	case address >= 0xFE00 && address <= 0xFE9F:
		if !p.oamLocked() {
			p.oamData[address-0xFE00] = value
		}
	case address == types.LCDC:
		wasEnabled := p.LCDC.Enabled
		p.LCDC.Write(value)
		if wasEnabled && !p.LCDC.Enabled {
			p.ly = 0
			p.cycleInLine = 0
			p.STAT.Mode = lcd.HBlank
			for y := range p.Framebuffer {
				for x := range p.Framebuffer[y] {
					p.Framebuffer[y][x] = palette.Monochrome[0]
				}
			}
		}
	case address == types.STAT:
		p.STAT.Write(value)
	case address == types.SCY:
		p.scy = value
	case address == types.SCX:
		p.scx = value
	case address == types.LY:
		// read-only; any write resets it, matching real hardware
		p.ly = 0
	case address == types.LYC:
		p.lyc = value
		p.checkLYC()
	case address == types.BGP:
		p.bgp.Write(value)
	case address == types.OBP0:
		p.obp0.Write(value)
	case address == types.OBP1:
		p.obp1.Write(value)
	case address == types.WY:
		p.wy = value
	case address == types.WX:
		p.wx = value
	case address == types.VBK:
		if p.isCGB {
			p.vramBank = value & 0x01
		}
	case address == types.BCPS:
		p.bgPalette.SetIndex(value)
	case address == types.BCPD:
		p.bgPalette.Write(value)
	case address == types.OCPS:
		p.objPalette.SetIndex(value)
	case address == types.OCPD:
		p.objPalette.Write(value)
	}
}

// Tick advances the PPU by the given number of T-cycles.
func (p *PPU) Tick(tCycles uint8) {
	if !p.LCDC.Enabled {
		return
	}
	for i := uint8(0); i < tCycles; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	p.cycleInLine++

	if p.ly < ScreenHeight {
		switch p.cycleInLine {
		case oamScanCycles:
			p.setMode(lcd.Drawing)
		case oamScanCycles + drawingCycles:
			p.renderScanline()
			p.setMode(lcd.HBlank)
		}
	}

	if p.cycleInLine >= cyclesPerLine {
		p.cycleInLine = 0
		p.ly++

		switch {
		case p.ly == ScreenHeight:
			p.setMode(lcd.VBlank)
			p.irq.Request(interrupts.VBlankFlag)
			p.frameReady = true
		case p.ly >= totalScanlines:
			p.ly = 0
			p.windowLine = 0
			p.setMode(lcd.OAMScan)
		case p.ly < ScreenHeight:
			p.setMode(lcd.OAMScan)
		}
		p.checkLYC()
	}
}

func (p *PPU) setMode(mode lcd.Mode) {
	p.STAT.Mode = mode
	p.checkStatInterrupt()
}

func (p *PPU) checkLYC() {
	p.STAT.Coincidence = p.ly == p.lyc
	p.checkStatInterrupt()
}

// checkStatInterrupt requests the LCD STAT interrupt on the rising
// edge of the OR of every STAT-enabled condition, matching the real
// hardware's "STAT interrupt line" behavior (a level-sensitive line
// that can glitch a second request only when it has gone low first).
func (p *PPU) checkStatInterrupt() {
	line := p.STAT.Coincidence && p.STAT.CoincidenceInterrupt
	switch p.STAT.Mode {
	case lcd.HBlank:
		line = line || p.STAT.HBlankInterrupt
	case lcd.VBlank:
		line = line || p.STAT.VBlankInterrupt
	case lcd.OAMScan:
		line = line || p.STAT.OAMInterrupt
	}
	if line && !p.statLineHigh {
		p.irq.Request(interrupts.STATFlag)
	}
	p.statLineHigh = line
}

var _ types.Stater = (*PPU)(nil)

func (p *PPU) Save(s *types.State) {
	s.WriteData(p.vram[0][:])
	s.WriteData(p.vram[1][:])
	s.Write8(p.vramBank)
	s.WriteData(p.oamData[:])
	s.Write8(p.LCDC.Read())
	s.Write8(p.STAT.Read())
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.windowLine)
	s.Write8(p.bgp.Read())
	s.Write8(p.obp0.Read())
	s.Write8(p.obp1.Read())
	s.WriteData(p.bgPalette.RawBytes())
	s.WriteData(p.objPalette.RawBytes())
	s.Write16(p.cycleInLine)
}

func (p *PPU) Load(s *types.State) {
	s.ReadData(p.vram[0][:])
	s.ReadData(p.vram[1][:])
	p.vramBank = s.Read8()
	s.ReadData(p.oamData[:])
	p.LCDC.Write(s.Read8())
	p.STAT.Write(s.Read8())
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.windowLine = s.Read8()
	p.bgp.Write(s.Read8())
	p.obp0.Write(s.Read8())
	p.obp1.Write(s.Read8())
	bg := make([]byte, 64)
	s.ReadData(bg)
	p.bgPalette.LoadRawBytes(bg)
	obj := make([]byte, 64)
	s.ReadData(obj)
	p.objPalette.LoadRawBytes(obj)
	p.cycleInLine = s.Read16()
}
