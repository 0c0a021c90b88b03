// Package cpu implements the SM83 instruction set: fetch/decode/execute,
// the table-driven opcode sets, flag handling, HALT/STOP semantics, and
// interrupt dispatch.
package cpu

import (
	"github.com/ioncodes/ayyboy/internal/apu"
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/mmu"
	"github.com/ioncodes/ayyboy/internal/ppu"
	"github.com/ioncodes/ayyboy/internal/ppu/lcd"
	"github.com/ioncodes/ayyboy/internal/serial"
	"github.com/ioncodes/ayyboy/internal/timer"
	"github.com/ioncodes/ayyboy/internal/types"
	"github.com/sirupsen/logrus"
)

// mode is the CPU's execution mode, tracking HALT/STOP and the HALT
// bug's one-instruction quirk separately from the IME state machine
// already owned by interrupts.Service.
type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeHaltBug // HALT executed with IME=0 and a pending interrupt: PC fails to advance on the next fetch
	modeStop
)

// CPU is the SM83 core. It owns the 8 general registers, SP/PC, and
// drives the rest of the system's peripherals once per instruction:
// the MMU (and through it OAM/VRAM DMA), the timer, the PPU, serial,
// and the APU all tick off the same M-cycle count an instruction
// consumed.
type CPU struct {
	A, F       uint8
	B, C       uint8
	D, E       uint8
	H, L       uint8
	SP, PC     uint16

	mode mode

	// extraCycles accumulates the extra M-cycles a conditional branch
	// consumes when taken, on top of its Instruction's declared Cycles.
	extraCycles uint8

	mmu    *mmu.MMU
	IRQ    *interrupts.Service
	ppu    *ppu.PPU
	timer  *timer.Controller
	serial *serial.Controller
	apu    *apu.APU

	lastPPUMode lcd.Mode

	Debug           bool
	DebugBreakpoint uint16

	log *logrus.Logger
}

// New returns a CPU wired to the given peripherals. Initial register
// state is zero; callers running without a boot ROM should call
// NewWithPostBootState instead.
func New(bus *mmu.MMU, irq *interrupts.Service, p *ppu.PPU, tmr *timer.Controller, ser *serial.Controller, snd *apu.APU) *CPU {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	return &CPU{
		mmu:    bus,
		IRQ:    irq,
		ppu:    p,
		timer:  tmr,
		serial: ser,
		apu:    snd,
		log:    log,
	}
}

// NewWithPostBootState returns a CPU seeded with the documented
// post-boot-ROM register values for a DMG (or, if isCGB is set, CGB)
// console, for callers with no boot ROM image available.
func NewWithPostBootState(bus *mmu.MMU, irq *interrupts.Service, p *ppu.PPU, tmr *timer.Controller, ser *serial.Controller, snd *apu.APU, isCGB bool) *CPU {
	c := New(bus, irq, p, tmr, ser, snd)
	if isCGB {
		c.setAF(0x1180)
		c.setBC(0x0000)
		c.setDE(0xFF56)
		c.setHL(0x000D)
	} else {
		c.setAF(0x01B0)
		c.setBC(0x0013)
		c.setDE(0x00D8)
		c.setHL(0x014D)
	}
	c.SP = 0xFFFE
	c.PC = 0x0100
	return c
}

// Step executes exactly one instruction (or, in HALT/STOP, one idle
// M-cycle) and returns the number of M-cycles consumed, ticking every
// peripheral for that duration.
func (c *CPU) Step() uint8 {
	c.IRQ.Step()

	if c.serviceInterrupt() {
		c.tick(5)
		return 5
	}

	switch c.mode {
	case modeHalt:
		if c.IRQ.Pending() {
			c.mode = modeNormal
		} else {
			c.tick(1)
			return 1
		}
	case modeStop:
		if c.IRQ.Pending() {
			c.mode = modeNormal
		} else {
			c.tick(1)
			return 1
		}
	}

	opcode := c.fetch8()

	// The HALT bug manifests as a failure to advance PC past the very
	// next opcode fetch: the byte just read gets decoded and executed
	// normally, but PC is walked back so the following fetch reads it
	// (or, for multi-byte instructions, its own operand bytes) again.
	if c.mode == modeHaltBug {
		c.mode = modeNormal
		c.PC--
	}

	var inst Instruction
	var operands []byte
	if opcode == 0xCB {
		cbOpcode := c.fetch8()
		inst = InstructionSetCB[cbOpcode]
	} else {
		inst = InstructionSet[opcode]
		for i := uint8(1); i < inst.Length; i++ {
			operands = append(operands, c.fetch8())
		}
	}

	c.extraCycles = 0
	inst.Execute(c, operands)

	cycles := inst.Cycles + c.extraCycles
	c.tick(cycles)
	return cycles
}

func (c *CPU) fetch8() uint8 {
	v := c.mmu.Read(c.PC)
	c.PC++
	return v
}

// halt enters HALT, reproducing the documented hardware bug where
// HALT executed with IME=0 and an already-pending interrupt causes the
// following instruction's first byte to be fetched twice.
func (c *CPU) halt() {
	if !c.IRQ.IME && c.IRQ.Pending() {
		c.mode = modeHaltBug
		return
	}
	c.mode = modeHalt
}

// handleStop models STOP as the documented 2-byte opcode (0x10 0x00):
// Length already consumes the padding byte via the main decode loop.
// STOP also resets DIV and commits any double-speed switch armed via
// KEY1.
func (c *CPU) handleStop() {
	c.mode = modeStop
	c.timer.Reset()
	c.mmu.CommitSpeedSwitch()
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt if IME is set, pushing PC and jumping to its vector.
func (c *CPU) serviceInterrupt() bool {
	if !c.IRQ.IME {
		return false
	}
	vector, flag, err := c.IRQ.ResolveVector()
	if err != nil {
		panic(err)
	}
	if vector == 0 {
		return false
	}
	c.IRQ.IME = false
	c.IRQ.Clear(flag)
	c.push16(c.PC)
	c.PC = uint16(vector)
	return true
}

// tick drives every peripheral forward by the given number of M-cycles,
// including HDMA's per-HBlank block copy, which has no direct hook of
// its own and is instead driven off the PPU's mode transitions here.
func (c *CPU) tick(mCycles uint8) {
	c.mmu.Tick(mCycles)
	c.serial.Tick(mCycles)
	c.apu.Tick()

	tCycles := mCycles
	if !c.mmu.DoubleSpeed() {
		tCycles *= 4
	} else {
		tCycles *= 2
	}
	c.timer.Tick(tCycles, c.mmu.DoubleSpeed())
	c.ppu.Tick(tCycles)

	mode := c.ppu.STAT.Mode
	if mode != c.lastPPUMode && mode == lcd.HBlank {
		c.mmu.HDMA.OnHBlank()
	}
	c.lastPPUMode = mode
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(uint8(c.mode))
	s.Write8(c.extraCycles)
}

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = mode(s.Read8())
	c.extraCycles = s.Read8()
}
