package ppu

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/ppu/lcd"
	"github.com/ioncodes/ayyboy/internal/ppu/palette"
	"github.com/ioncodes/ayyboy/internal/types"
)

func newTestPPU() *PPU {
	p := New(interrupts.NewService(), false)
	p.Write(types.LCDC, 0x91) // LCD + BG on, tile data 0x8000, tile map 0x9800
	return p
}

// tickCycles advances p by n T-cycles, split into chunks that fit
// Tick's uint8 argument.
func tickCycles(p *PPU, n int) {
	for ; n > 0xFF; n -= 0xFF {
		p.Tick(0xFF)
	}
	p.Tick(uint8(n))
}

func TestPPU_StateMachineTiming(t *testing.T) {
	p := newTestPPU()

	p.Tick(79)
	if p.STAT.Mode != lcd.OAMScan {
		t.Fatalf("expected OAMScan at cycle 79, got %v", p.STAT.Mode)
	}
	p.Tick(1)
	if p.STAT.Mode != lcd.Drawing {
		t.Fatalf("expected Drawing at cycle 80, got %v", p.STAT.Mode)
	}
	p.Tick(171)
	if p.STAT.Mode != lcd.Drawing {
		t.Fatalf("expected still Drawing at cycle 251, got %v", p.STAT.Mode)
	}
	p.Tick(1)
	if p.STAT.Mode != lcd.HBlank {
		t.Fatalf("expected HBlank at cycle 252, got %v", p.STAT.Mode)
	}
	p.Tick(cyclesPerLine - 252)
	if p.ly != 1 {
		t.Fatalf("expected LY=1 after one full line, got %d", p.ly)
	}
}

func TestPPU_VBlankEntryAtLine144(t *testing.T) {
	p := newTestPPU()
	for line := 0; line < ScreenHeight; line++ {
		tickCycles(p, cyclesPerLine)
	}
	if p.ly != ScreenHeight {
		t.Fatalf("expected LY=144, got %d", p.ly)
	}
	if p.STAT.Mode != lcd.VBlank {
		t.Fatalf("expected VBlank mode, got %v", p.STAT.Mode)
	}
	if !p.HasFrame() {
		t.Fatal("expected a frame to be ready at VBlank entry")
	}
	if p.irq.Flag&(1<<interrupts.VBlankFlag) == 0 {
		t.Fatal("expected VBlank interrupt requested")
	}
}

func TestPPU_WrapsAtScanline154(t *testing.T) {
	p := newTestPPU()
	for line := 0; line < totalScanlines; line++ {
		tickCycles(p, cyclesPerLine)
	}
	if p.ly != 0 {
		t.Fatalf("expected LY to wrap to 0, got %d", p.ly)
	}
	if p.STAT.Mode != lcd.OAMScan {
		t.Fatalf("expected OAMScan after wraparound, got %v", p.STAT.Mode)
	}
}

func TestPPU_LYCCoincidenceInterrupt(t *testing.T) {
	p := newTestPPU()
	p.Write(types.STAT, 0x40) // enable coincidence interrupt
	p.Write(types.LYC, 5)

	for line := 0; line < 5; line++ {
		tickCycles(p, cyclesPerLine)
	}
	if !p.STAT.Coincidence {
		t.Fatal("expected coincidence flag set at LY==LYC")
	}
	if p.irq.Flag&(1<<interrupts.STATFlag) == 0 {
		t.Fatal("expected STAT interrupt requested on LYC match")
	}
}

func TestPPU_VRAMLockedDuringDrawing(t *testing.T) {
	p := newTestPPU()
	p.Write(0x8000, 0xAB)
	p.Tick(oamScanCycles + 1) // now in Drawing
	if p.STAT.Mode != lcd.Drawing {
		t.Fatalf("expected Drawing, got %v", p.STAT.Mode)
	}
	p.Write(0x8000, 0xCD) // should be ignored
	if got := p.Read(0x8000); got != 0xFF {
		t.Fatalf("expected locked VRAM read to return 0xFF, got %#x", got)
	}
}

func TestPPU_OAMLockedDuringOAMScanAndDrawing(t *testing.T) {
	p := newTestPPU()
	p.Write(0xFE00, 0x10)
	if p.Read(0xFE00) != 0xFF {
		t.Fatalf("expected locked OAM read to return 0xFF during OAMScan")
	}
	p.Tick(oamScanCycles + drawingCycles + 1) // now HBlank
	if p.STAT.Mode != lcd.HBlank {
		t.Fatalf("expected HBlank, got %v", p.STAT.Mode)
	}
	p.Write(0xFE00, 0x10)
	if p.Read(0xFE00) != 0x10 {
		t.Fatalf("expected OAM writable during HBlank")
	}
}

func TestPPU_BackgroundTileCompositing(t *testing.T) {
	p := newTestPPU()

	// Tile 0 is referenced by the zeroed default tile map (0x9800);
	// fill it with a solid pattern: bit plane 0 set, plane 1 clear,
	// giving colour index 1 for every pixel.
	for row := uint16(0); row < 8; row++ {
		p.Write(0x8000+row*2, 0xFF)
		p.Write(0x8000+row*2+1, 0x00)
	}
	p.Write(types.BGP, 0xE4) // identity shade mapping: 0,1,2,3 -> 0,1,2,3

	p.Tick(oamScanCycles + drawingCycles) // triggers renderScanline for LY=0

	want := palette.Monochrome[1]
	got := p.Framebuffer[0][0]
	if got != want {
		t.Fatalf("expected background pixel shade 1 (%v), got %v", want, got)
	}
}
