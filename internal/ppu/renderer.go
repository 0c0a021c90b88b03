package ppu

import "github.com/ioncodes/ayyboy/internal/ppu/palette"

// tileAttributes is the CGB tile-map attribute byte stored in VRAM
// bank 1 at the same offset as the bank-0 tile index.
type tileAttributes struct {
	paletteIndex uint8
	bank         uint8
	flipX, flipY bool
	priority     bool
}

func decodeTileAttributes(b uint8) tileAttributes {
	return tileAttributes{
		paletteIndex: b & 0x07,
		bank:         (b >> 3) & 0x01,
		flipX:        b&0x20 != 0,
		flipY:        b&0x40 != 0,
		priority:     b&0x80 != 0,
	}
}

// tilePixel returns the 2-bit colour index for (row, col) of the tile
// at tileIndex, reading from the given VRAM bank and respecting the
// LCDC tile-data addressing mode.
func (p *PPU) tilePixel(bank uint8, tileIndex uint8, row, col uint8) uint8 {
	var base uint16
	if p.LCDC.UsingSignedTileData() {
		base = 0x9000 + uint16(int16(int8(tileIndex)))*16
	} else {
		base = 0x8000 + uint16(tileIndex)*16
	}
	addr := base + uint16(row)*2 - 0x8000
	lo := p.vram[bank][addr]
	hi := p.vram[bank][addr+1]
	shift := 7 - col
	return (lo>>shift)&0x01 | ((hi>>shift)&0x01)<<1
}

// bgTileEntry reads the tile index (and CGB attributes, if any) for
// tile coordinates (tileX, tileY) in the given 32x32 map.
func (p *PPU) bgTileEntry(mapBase uint16, tileX, tileY uint8) (tileIndex uint8, attrs tileAttributes) {
	offset := uint16(tileY)*32 + uint16(tileX)
	addr := mapBase + offset - 0x8000
	tileIndex = p.vram[0][addr]
	if p.isCGB {
		attrs = decodeTileAttributes(p.vram[1][addr])
	}
	return
}

// renderScanline composes background, window, and sprites for the
// current LY into Framebuffer[ly].
func (p *PPU) renderScanline() {
	var bgColourIndex [ScreenWidth]uint8
	var bgPriority [ScreenWidth]bool

	bgWindowEnabled := p.LCDC.BackgroundEnabled || p.isCGB
	if bgWindowEnabled {
		p.renderBackground(&bgColourIndex, &bgPriority)
	}
	windowDrawn := false
	if p.LCDC.WindowEnabled && bgWindowEnabled && p.wy <= p.ly && p.wx < ScreenWidth+7 {
		p.renderWindow(&bgColourIndex, &bgPriority)
		windowDrawn = true
	}
	if p.LCDC.SpriteEnabled {
		p.renderSprites(&bgColourIndex, &bgPriority)
	}
	if windowDrawn {
		p.windowLine++
	}
}

func (p *PPU) renderBackground(bgColourIndex *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	y := p.ly + p.scy
	tileRow := y / 8
	rowInTile := y % 8

	for x := uint8(0); x < ScreenWidth; x++ {
		px := x + p.scx
		tileCol := px / 8
		colInTile := px % 8

		tileIndex, attrs := p.bgTileEntry(p.LCDC.BackgroundTileMapAddress, tileCol, tileRow)
		row, col := rowInTile, colInTile
		if attrs.flipY {
			row = 7 - row
		}
		if attrs.flipX {
			col = 7 - col
		}
		colourIdx := p.tilePixel(attrs.bank, tileIndex, row, col)
		bgColourIndex[x] = colourIdx
		bgPriority[x] = attrs.priority

		var rgb palette.RGB
		if p.isCGB {
			rgb = p.bgPalette.Colour(attrs.paletteIndex, colourIdx)
		} else {
			rgb = p.bgp.Colour(colourIdx)
		}
		p.Framebuffer[p.ly][x] = rgb
	}
}

func (p *PPU) renderWindow(bgColourIndex *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	if p.wx < 7 {
		return
	}
	windowStartX := p.wx - 7
	tileRow := p.windowLine / 8
	rowInTile := p.windowLine % 8

	for x := windowStartX; x < ScreenWidth; x++ {
		tileCol := (x - windowStartX) / 8
		colInTile := (x - windowStartX) % 8

		tileIndex, attrs := p.bgTileEntry(p.LCDC.WindowTileMapAddress, tileCol, tileRow)
		row, col := rowInTile, colInTile
		if attrs.flipY {
			row = 7 - row
		}
		if attrs.flipX {
			col = 7 - col
		}
		colourIdx := p.tilePixel(attrs.bank, tileIndex, row, col)
		bgColourIndex[x] = colourIdx
		bgPriority[x] = attrs.priority

		var rgb palette.RGB
		if p.isCGB {
			rgb = p.bgPalette.Colour(attrs.paletteIndex, colourIdx)
		} else {
			rgb = p.bgp.Colour(colourIdx)
		}
		p.Framebuffer[p.ly][x] = rgb
	}
}

func (p *PPU) renderSprites(bgColourIndex *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	type visible struct {
		attrs spriteAttrs
		oamIdx int
	}
	var onLine []visible
	size := int16(p.LCDC.SpriteSize)

	for i := 0; i < 40 && len(onLine) < 10; i++ {
		s := decodeSprite(p.oamData[i*4 : i*4+4])
		if int16(p.ly) >= s.Y && int16(p.ly) < s.Y+size {
			onLine = append(onLine, visible{attrs: s, oamIdx: i})
		}
	}

	// DMG priority: lowest X wins, ties by OAM index (already in index
	// order); CGB priority: pure OAM index order, so no sort needed there.
	if !p.isCGB {
		for i := 1; i < len(onLine); i++ {
			for j := i; j > 0 && onLine[j].attrs.X < onLine[j-1].attrs.X; j-- {
				onLine[j], onLine[j-1] = onLine[j-1], onLine[j]
			}
		}
	}

	for x := uint8(0); x < ScreenWidth; x++ {
		for _, v := range onLine {
			s := v.attrs
			if int16(x) < s.X || int16(x) >= s.X+8 {
				continue
			}
			row := uint8(int16(p.ly) - s.Y)
			col := uint8(int16(x) - s.X)
			if s.FlipY {
				row = uint8(size-1) - row
			}
			tileID := s.TileID
			if size == 16 {
				tileID &= 0xFE
				if row >= 8 {
					tileID |= 0x01
					row -= 8
				}
			}
			if s.FlipX {
				col = 7 - col
			}

			bank := uint8(0)
			if p.isCGB {
				bank = s.VRAMBank
			}
			colourIdx := p.tilePixel(bank, tileID, row, col)
			if colourIdx == 0 {
				continue // transparent
			}
			if s.Priority && bgColourIndex[x] != 0 && !(p.isCGB && !p.LCDC.BackgroundEnabled) {
				continue // sprite hidden behind non-zero BG colour
			}
			if bgPriority[x] && p.isCGB && p.LCDC.BackgroundEnabled && bgColourIndex[x] != 0 {
				continue // BG-over-OBJ tile attribute priority (CGB)
			}

			var rgb palette.RGB
			if p.isCGB {
				rgb = p.objPalette.Colour(s.CGBPalette, colourIdx)
			} else if s.DMGPalette == 0 {
				rgb = p.obp0.Colour(colourIdx)
			} else {
				rgb = p.obp1.Colour(colourIdx)
			}
			p.Framebuffer[p.ly][x] = rgb
			break
		}
	}
}
