package joypad

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/types"
)

func TestRead_UnselectedRowsReadHigh(t *testing.T) {
	s := New(interrupts.NewService())
	if got := s.Read(types.P1); got != 0x3F {
		t.Fatalf("Read = %#02x, want 0x3F with nothing selected or held", got)
	}
}

func TestRead_PressedButtonPullsBitLow(t *testing.T) {
	s := New(interrupts.NewService())
	s.Press(ButtonA)
	s.Write(types.P1, 0x10) // select button row (bit 5 low, bit 4 high)

	got := s.Read(types.P1)
	if got&0x01 != 0 {
		t.Fatalf("Read = %#02x, want bit 0 (A) low", got)
	}
	if got&0x02 == 0 {
		t.Fatalf("Read = %#02x, want bit 1 (B) to stay high", got)
	}
}

func TestPress_RequestsInterruptOnlyOnPressEdge(t *testing.T) {
	irq := interrupts.NewService()
	s := New(irq)
	s.Write(types.P1, 0x10) // select button row

	s.Press(ButtonA)
	if !irq.Pending() && irq.Flag == 0 {
		t.Fatal("expected a joypad IF bit to be requested on press")
	}
	irq.Clear(interrupts.JoypadFlag)

	s.Press(ButtonA) // already held, no new edge
	if irq.Flag != 0 {
		t.Fatal("expected no interrupt request for an already-held button")
	}
}

func TestRelease_ClearsHeldBit(t *testing.T) {
	s := New(interrupts.NewService())
	s.Press(ButtonDown)
	s.Release(ButtonDown)
	s.Write(types.P1, 0x20) // select direction row (bit 4 low, bit 5 high)

	if got := s.Read(types.P1); got&0x08 == 0 {
		t.Fatalf("Read = %#02x, want bit 3 (Down) high after release", got)
	}
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	s := New(interrupts.NewService())
	s.Press(ButtonStart)
	s.Write(types.P1, 0x10)

	st := types.NewState()
	s.Save(st)

	loaded := New(interrupts.NewService())
	loaded.Load(types.StateFromBytes(st.Bytes()))

	if loaded.Read(types.P1) != s.Read(types.P1) {
		t.Fatal("joypad state did not round-trip through Save/Load")
	}
}
