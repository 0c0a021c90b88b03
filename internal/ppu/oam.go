package ppu

// spriteAttrs decodes the 4-byte OAM entry at the given raw offset.
// Positions are returned already offset by hardware's +16/+8 bias, so
// a raw value of 0 becomes -16/-8, fully off the top/left edge of the
// screen.
type spriteAttrs struct {
	Y, X             int16
	TileID           uint8
	Priority         bool // true: sprite hidden behind BG colours 1-3
	FlipY, FlipX     bool
	DMGPalette       uint8 // 0 or 1, selects OBP0/OBP1
	VRAMBank         uint8 // CGB only
	CGBPalette       uint8 // CGB only, 0-7
}

func decodeSprite(raw []byte) spriteAttrs {
	flags := raw[3]
	return spriteAttrs{
		Y:          int16(raw[0]) - 16,
		X:          int16(raw[1]) - 8,
		TileID:     raw[2],
		Priority:   flags&0x80 != 0,
		FlipY:      flags&0x40 != 0,
		FlipX:      flags&0x20 != 0,
		DMGPalette: (flags >> 4) & 0x01,
		VRAMBank:   (flags >> 3) & 0x01,
		CGBPalette: flags & 0x07,
	}
}
