package display

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/ppu"
	"github.com/ioncodes/ayyboy/internal/ppu/palette"
)

func TestFrameToImage_CopiesPixelsAndDimensions(t *testing.T) {
	var frame [ppu.ScreenHeight][ppu.ScreenWidth]palette.RGB
	frame[0][0] = palette.RGB{0x10, 0x20, 0x30}
	frame[ppu.ScreenHeight-1][ppu.ScreenWidth-1] = palette.RGB{0xAA, 0xBB, 0xCC}

	img := FrameToImage(frame)

	if b := img.Bounds(); b.Dx() != ppu.ScreenWidth || b.Dy() != ppu.ScreenHeight {
		t.Fatalf("bounds = %v, want %dx%d", b, ppu.ScreenWidth, ppu.ScreenHeight)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0x10 || uint8(g>>8) != 0x20 || uint8(b>>8) != 0x30 || uint8(a>>8) != 0xFF {
		t.Fatalf("pixel (0,0) = (%d,%d,%d,%d), want (0x10,0x20,0x30,0xFF)", r>>8, g>>8, b>>8, a>>8)
	}
	r, g, b, _ = img.At(ppu.ScreenWidth-1, ppu.ScreenHeight-1).RGBA()
	if uint8(r>>8) != 0xAA || uint8(g>>8) != 0xBB || uint8(b>>8) != 0xCC {
		t.Fatalf("bottom-right pixel did not carry over correctly")
	}
}

func TestUpscale_MultipliesDimensionsAndHoldsHardEdges(t *testing.T) {
	var frame [ppu.ScreenHeight][ppu.ScreenWidth]palette.RGB
	frame[0][0] = palette.RGB{0xFF, 0x00, 0x00}
	frame[0][1] = palette.RGB{0x00, 0xFF, 0x00}
	img := FrameToImage(frame)

	up := Upscale(img, 3)

	if b := up.Bounds(); b.Dx() != ppu.ScreenWidth*3 || b.Dy() != ppu.ScreenHeight*3 {
		t.Fatalf("bounds = %v, want %dx%d", b, ppu.ScreenWidth*3, ppu.ScreenHeight*3)
	}
	// nearest-neighbour must keep the 3x3 block for pixel (0,0) pure red,
	// with no blending from its green neighbour.
	r, g, _, _ := up.At(1, 1).RGBA()
	if uint8(r>>8) != 0xFF || uint8(g>>8) != 0x00 {
		t.Fatalf("upscaled pixel blended across source pixels: r=%d g=%d", r>>8, g>>8)
	}
}

func TestUpscale_FactorBelowOneClampsToOne(t *testing.T) {
	var frame [ppu.ScreenHeight][ppu.ScreenWidth]palette.RGB
	img := FrameToImage(frame)

	up := Upscale(img, 0)

	if b := up.Bounds(); b.Dx() != ppu.ScreenWidth || b.Dy() != ppu.ScreenHeight {
		t.Fatalf("bounds = %v, want unscaled %dx%d", b, ppu.ScreenWidth, ppu.ScreenHeight)
	}
}
