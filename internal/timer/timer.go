// Package timer drives DIV at a fixed prescale and TIMA at a
// TAC-selected prescale, raising the timer interrupt on TIMA overflow.
//
// This uses the cycle-accumulator discipline (div_cycles/tima_cycles
// counters advanced by the T-cycles reported from each CPU step),
// grounded on original_source's lr35902/timer.rs, rather than the
// scheduler-event discipline found in one of the teacher's later
// revisions - see DESIGN.md Open Question #1.
package timer

import (
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/types"
)

// timaPrescale maps TAC bits 0-1 to the T-cycle period between TIMA increments.
var timaPrescale = [4]uint16{1024, 16, 64, 256}

// Controller is the timer/divider chain.
type Controller struct {
	div  uint8 // DIV (0xFF04), the high byte of the internal counter
	tima uint8 // TIMA (0xFF05)
	tma  uint8 // TMA (0xFF06)
	tac  uint8 // TAC (0xFF07)

	divCycles  uint16
	timaCycles uint16

	irq *interrupts.Service
}

// New returns a Controller wired to the given interrupt service.
func New(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// enabled reports TAC bit 2.
func (c *Controller) enabled() bool {
	return c.tac&0x04 != 0
}

// prescale returns the current TIMA increment period in T-cycles,
// doubled when running at CGB double speed.
func (c *Controller) prescale(doubleSpeed bool) uint16 {
	p := timaPrescale[c.tac&0x03]
	if doubleSpeed {
		p *= 2
	}
	return p
}

// Tick advances the timer by the given number of T-cycles, as converted
// from each step's M-cycles by the CPU's tick. DIV always runs at the full rate, regardless of
// CGB double speed (§4.2's "timers remain at full cycle counts").
func (c *Controller) Tick(cycles uint8, doubleSpeed bool) {
	c.divCycles += uint16(cycles)
	for c.divCycles >= 256 {
		c.div++
		c.divCycles -= 256
	}

	if !c.enabled() {
		return
	}

	c.timaCycles += uint16(cycles)
	period := c.prescale(doubleSpeed)
	for c.timaCycles >= period {
		c.timaCycles -= period
		c.incrementTIMA()
	}
}

func (c *Controller) incrementTIMA() {
	if c.tima == 0xFF {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	} else {
		c.tima++
	}
}

// Reset zeroes the internal DIV counter, as happens on any write to DIV
// and on the STOP instruction.
func (c *Controller) Reset() {
	c.div = 0
	c.divCycles = 0
}

// Read implements the memory-mapped DIV/TIMA/TMA/TAC registers.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return c.div
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write implements the memory-mapped DIV/TIMA/TMA/TAC registers.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.Reset()
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0x07
	}
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Save(s *types.State) {
	s.Write8(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.Write16(c.divCycles)
	s.Write16(c.timaCycles)
}

func (c *Controller) Load(s *types.State) {
	c.div = s.Read8()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.divCycles = s.Read16()
	c.timaCycles = s.Read16()
}
