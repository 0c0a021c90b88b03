// Package interrupts implements the interrupt controller: the IE/IF
// register pair, the master-enable flag with its one-instruction enable
// delay, and vector selection.
package interrupts

import (
	"github.com/ioncodes/ayyboy/internal/emuerr"
	"github.com/ioncodes/ayyboy/internal/types"
)

// Flag identifies one of the five interrupt sources by bit index.
type Flag = uint8

const (
	VBlankFlag Flag = 0
	STATFlag   Flag = 1
	TimerFlag  Flag = 2
	SerialFlag Flag = 3
	JoypadFlag Flag = 4
)

// Vector is the resolved, named interrupt vector - kept as an
// enumerated type rather than a raw address so dispatch can panic
// loudly (unknown-irq-vector) instead of silently picking a wrong bit.
type Vector uint16

const (
	VBlank Vector = 0x0040
	STAT   Vector = 0x0048
	Timer  Vector = 0x0050
	Serial Vector = 0x0058
	Joypad Vector = 0x0060
)

func (v Vector) String() string {
	switch v {
	case VBlank:
		return "VBLANK"
	case STAT:
		return "STAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	default:
		return "UNKNOWN"
	}
}

// Service holds the IE/IF registers and the IME state machine.
type Service struct {
	Flag   uint8 // IF (0xFF0F), only the low 5 bits are meaningful
	Enable uint8 // IE (0xFFFF)

	// IME is the interrupt master enable flag.
	IME bool
	// Enabling is set by EI and is committed into IME by Step at the
	// start of the next CPU step, before that step's interrupt check.
	Enabling bool
}

// NewService returns a Service with interrupts disabled and no pending flags.
func NewService() *Service {
	return &Service{}
}

// Request sets the IF bit for the given source.
func (s *Service) Request(flag Flag) {
	s.Flag |= 1 << flag
}

// Clear clears the IF bit for the given source.
func (s *Service) Clear(flag Flag) {
	s.Flag &^= 1 << flag
}

// Pending reports whether any enabled interrupt source has its flag set,
// independent of IME - HALT/STOP wake on this regardless of IME.
func (s *Service) Pending() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Step commits a pending EI one instruction after it was issued. Call
// once per CPU step, before checking Pending/IME.
func (s *Service) Step() {
	if s.Enabling {
		s.IME = true
		s.Enabling = false
	}
}

// ResolveVector selects the lowest-index pending, enabled interrupt and
// returns its vector and the IF bit to clear; when IE&IF is zero it
// returns vector 0, flag 0 and a nil error. A non-zero pending mask that still fails to resolve to one of
// the five known vectors is an *UnknownIRQVector fault.
func (s *Service) ResolveVector() (Vector, Flag, error) {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0, 0, nil
	}
	switch {
	case pending&(1<<VBlankFlag) != 0:
		return VBlank, VBlankFlag, nil
	case pending&(1<<STATFlag) != 0:
		return STAT, STATFlag, nil
	case pending&(1<<TimerFlag) != 0:
		return Timer, TimerFlag, nil
	case pending&(1<<SerialFlag) != 0:
		return Serial, SerialFlag, nil
	case pending&(1<<JoypadFlag) != 0:
		return Joypad, JoypadFlag, nil
	default:
		return 0, 0, &emuerr.UnknownIRQVector{Pending: pending}
	}
}

// Read implements the memory-mapped IF/IE registers. IF's top 3 bits
// always read back as 1.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return s.Flag&0x1F | 0xE0
	case types.IE:
		return s.Enable
	}
	return 0xFF
}

// Write implements the memory-mapped IF/IE registers.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value
	case types.IE:
		s.Enable = value
	}
}

var _ types.Stater = (*Service)(nil)

func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
	st.WriteBool(s.Enabling)
}

func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
	s.Enabling = st.ReadBool()
}
