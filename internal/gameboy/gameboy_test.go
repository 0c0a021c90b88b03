package gameboy

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/cartridge"
	"github.com/ioncodes/ayyboy/internal/joypad"
	"github.com/ioncodes/ayyboy/internal/types"
)

const p1Register = 0xFF00

// blankROM returns a minimal 32KB flat-ROM image: an all-zero body
// (NOPs everywhere) with just enough header to parse as TypeROM.
func blankROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x0147] = byte(cartridge.TypeROM)
	rom[0x0148] = 0x00 // 32KB, no banking
	rom[0x0149] = 0x00 // no external RAM
	return rom
}

func ramBackedROM() []byte {
	rom := blankROM()
	rom[0x0147] = byte(cartridge.TypeMBC1RAMBattery)
	rom[0x0149] = 0x02 // 8KB RAM
	return rom
}

func TestNew_BootsWithoutBootROM(t *testing.T) {
	gb, err := New(blankROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gb.CPU.PC != 0x0100 {
		t.Fatalf("PC = %#04x, want 0x0100", gb.CPU.PC)
	}
}

func TestStep_AdvancesCPU(t *testing.T) {
	gb, err := New(blankROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := gb.CPU.PC
	gb.Step()
	if gb.CPU.PC == start {
		t.Fatal("Step did not advance PC")
	}
}

func TestRunFrame_ProducesAFrameAndPullFrameClearsIt(t *testing.T) {
	gb, err := New(blankROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gb.RunFrame()
	if !gb.PPU.HasFrame() {
		t.Fatal("expected a frame to be ready after RunFrame")
	}
	gb.PullFrame()
	if gb.PPU.HasFrame() {
		t.Fatal("expected PullFrame to clear the frame-ready latch")
	}
}

func TestUpdateButton_RoundTripsThroughJoypad(t *testing.T) {
	gb, err := New(blankROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gb.UpdateButton(joypad.ButtonA, true)
	gb.Joypad.Write(p1Register, 0x10) // select button keys (bit 5 low)
	if gb.Joypad.Read(p1Register)&0x01 != 0 {
		t.Fatal("expected ButtonA bit to read low (pressed) after UpdateButton")
	}
}

func TestDumpRAM_FalseForFlatROM(t *testing.T) {
	gb, err := New(blankROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := gb.DumpRAM(); ok {
		t.Fatal("expected flat ROM to report no battery-backed RAM")
	}
}

func TestDumpAndLoadRAM_RoundTripsForMBC1(t *testing.T) {
	gb, err := New(ramBackedROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, ok := gb.DumpRAM()
	if !ok {
		t.Fatal("expected MBC1+RAM+battery to report battery-backed RAM")
	}
	data[0] = 0x42

	gb2, err := New(ramBackedROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !gb2.LoadRAM(data) {
		t.Fatal("expected LoadRAM to succeed for MBC1+RAM+battery")
	}
	restored, _ := gb2.DumpRAM()
	if restored[0] != 0x42 {
		t.Fatalf("restored[0] = %#02x, want 0x42", restored[0])
	}
}

func TestSaveLoad_RoundTripsCartridgeState(t *testing.T) {
	gb, err := New(ramBackedROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 1000; i++ {
		gb.Step()
	}
	gb.MMU.Write(0x0000, 0x0A) // enable cartridge RAM
	gb.MMU.Write(0xA000, 0x5A)

	st := types.NewState()
	gb.Save(st)

	gb2, err := New(ramBackedROM(), nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gb2.Load(types.StateFromBytes(st.Bytes()))

	if gb2.CPU.PC != gb.CPU.PC {
		t.Fatalf("PC = %#04x, want %#04x", gb2.CPU.PC, gb.CPU.PC)
	}
	if got := gb2.MMU.Read(0xA000); got != 0x5A {
		t.Fatalf("cartridge RAM[0] = %#02x, want 0x5A", got)
	}
}

func TestFingerprint_StableForSameImage(t *testing.T) {
	rom := blankROM()
	gb1, err := New(rom, nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gb2, err := New(rom, nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gb1.Fingerprint() != gb2.Fingerprint() {
		t.Fatal("expected identical ROM images to produce the same fingerprint")
	}
}
