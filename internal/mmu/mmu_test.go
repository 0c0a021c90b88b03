package mmu

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/apu"
	"github.com/ioncodes/ayyboy/internal/cartridge"
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/joypad"
	"github.com/ioncodes/ayyboy/internal/serial"
	"github.com/ioncodes/ayyboy/internal/timer"
	"github.com/ioncodes/ayyboy/internal/types"
)

// stubVideo is a minimal Video implementation for routing tests that
// don't care about actual pixel state.
type stubVideo struct {
	mem [0x10000]uint8
}

func (s *stubVideo) Read(address uint16) uint8  { return s.mem[address] }
func (s *stubVideo) Write(address uint16, v uint8) { s.mem[address] = v }

func newTestMMU(isCGB bool) *MMU {
	irq := interrupts.NewService()
	cart := cartridge.NewEmpty()
	return New(cart, &stubVideo{}, joypad.New(irq), timer.New(irq), irq, serial.New(), apu.New(), nil, isCGB)
}

func TestMMU_WRAMRoundTrip(t *testing.T) {
	m := newTestMMU(false)
	m.Write(0xC010, 0x99)
	if got := m.Read(0xC010); got != 0x99 {
		t.Fatalf("expected 0x99, got %#02x", got)
	}
	// echo region mirrors bank 0
	if got := m.Read(0xE010); got != 0x99 {
		t.Fatalf("expected echo to mirror wram, got %#02x", got)
	}
}

func TestMMU_ZeroPageRAM(t *testing.T) {
	m := newTestMMU(false)
	m.Write(0xFF90, 0x42)
	if got := m.Read(0xFF90); got != 0x42 {
		t.Fatalf("expected 0x42, got %#02x", got)
	}
}

func TestMMU_OAMDMATransfersOverTime(t *testing.T) {
	m := newTestMMU(false)
	for i := 0; i < 160; i++ {
		m.Write(0xC000+uint16(i), uint8(i))
	}
	m.Write(types.DMA, 0xC0) // source = 0xC000
	if !m.OAMDMA.Active() {
		t.Fatalf("expected DMA to be active right after trigger")
	}
	m.Tick(160) // 160 M-cycles, one byte per cycle
	if m.OAMDMA.Active() {
		t.Fatalf("expected DMA to have completed after 160 M-cycles")
	}
	for i := 0; i < 160; i++ {
		if got := m.Read(0xFE00 + uint16(i)); got != uint8(i) {
			t.Fatalf("OAM byte %d: expected %d, got %d", i, i, got)
		}
	}
}

func TestMMU_SVBK_IgnoredOnDMG(t *testing.T) {
	m := newTestMMU(false)
	m.Write(types.SVBK, 0x05)
	if got := m.Read(types.SVBK); got != 0xFF {
		t.Fatalf("expected SVBK to read 0xFF on DMG, got %#02x", got)
	}
}

func TestMMU_WRAMBankSwitchOnCGB(t *testing.T) {
	m := newTestMMU(true)
	m.Write(0xD000, 0x01)
	m.Write(types.SVBK, 0x02)
	m.Write(0xD000, 0x02)
	m.Write(types.SVBK, 0x01)
	if got := m.Read(0xD000); got != 0x01 {
		t.Fatalf("expected bank 1 value 0x01, got %#02x", got)
	}
	m.Write(types.SVBK, 0x02)
	if got := m.Read(0xD000); got != 0x02 {
		t.Fatalf("expected bank 2 value 0x02, got %#02x", got)
	}
}
