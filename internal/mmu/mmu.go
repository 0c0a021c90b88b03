// Package mmu routes the Game Boy's 64KB address space to whichever
// component owns a given region: cartridge, boot ROM, video RAM/OAM,
// work RAM, the CPU's high page, and the peripheral register file. The
// MMU itself holds no emulation behavior beyond address decode and the
// OAM/VRAM DMA controllers - every region it doesn't own directly is
// delegated to a Bus-shaped collaborator.
package mmu

import (
	"github.com/ioncodes/ayyboy/internal/apu"
	"github.com/ioncodes/ayyboy/internal/boot"
	"github.com/ioncodes/ayyboy/internal/cartridge"
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/joypad"
	"github.com/ioncodes/ayyboy/internal/serial"
	"github.com/ioncodes/ayyboy/internal/timer"
	"github.com/ioncodes/ayyboy/internal/types"
	"github.com/sirupsen/logrus"
)

// Video is the surface the PPU exposes to the MMU: VRAM (0x8000-0x9FFF),
// OAM (0xFE00-0xFE9F), and its own register block (0xFF40-0xFF4B,
// 0xFF68-0xFF6B).
type Video interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit. It does not know how to execute
// instructions or render pixels - it only knows where a given address
// lives.
type MMU struct {
	log *logrus.Logger

	Cart   *cartridge.Cartridge
	Video  Video
	Joypad *joypad.State
	Timer  *timer.Controller
	IRQ    *interrupts.Service
	Serial *serial.Controller
	APU    *apu.APU

	wram *WRAM
	zram [0x7F]uint8

	bootROM      *boot.ROM
	bootDisabled bool

	OAMDMA *OAMDMA
	HDMA   *HDMA

	isCGB              bool
	doubleSpeedPending bool
	doubleSpeed        bool
}

// New wires an MMU around the given cartridge and peripherals. bootROM
// may be nil, in which case the MMU behaves as if BOOT (0xFF50) was
// already written - the caller is responsible for seeding CPU/PPU
// registers with their post-boot values in that case (SPEC_FULL.md §6).
func New(cart *cartridge.Cartridge, video Video, jp *joypad.State, tmr *timer.Controller, irq *interrupts.Service, ser *serial.Controller, snd *apu.APU, bootROM *boot.ROM, isCGB bool) *MMU {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	m := &MMU{
		log:          log,
		Cart:         cart,
		Video:        video,
		Joypad:       jp,
		Timer:        tmr,
		IRQ:          irq,
		Serial:       ser,
		APU:          snd,
		wram:         NewWRAM(),
		bootROM:      bootROM,
		bootDisabled: bootROM == nil,
		isCGB:        isCGB,
	}
	m.OAMDMA = NewOAMDMA(m)
	m.HDMA = NewHDMA(m)
	return m
}

// IsCGB reports whether this MMU is wired for Game Boy Color mode.
func (m *MMU) IsCGB() bool {
	return m.isCGB
}

// RequestSpeedSwitch arms a pending double-speed toggle, committed the
// next time STOP executes (KEY1 bit 0).
func (m *MMU) RequestSpeedSwitch() {
	m.doubleSpeedPending = true
}

// CommitSpeedSwitch flips double-speed mode if a switch was armed,
// called by the CPU on STOP.
func (m *MMU) CommitSpeedSwitch() {
	if m.doubleSpeedPending {
		m.doubleSpeed = !m.doubleSpeed
		m.doubleSpeedPending = false
	}
}

func (m *MMU) DoubleSpeed() bool {
	return m.doubleSpeed
}

// Tick advances the OAM DMA controller by the given number of M-cycles,
// called once per CPU step alongside Timer.Tick/PPU.Tick. HBlank HDMA
// is driven from the CPU's tick instead.
func (m *MMU) Tick(mCycles uint8) {
	m.OAMDMA.Tick(mCycles)
}

func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		if !m.bootDisabled && m.bootROM.Contains(address) {
			return m.bootROM.Read(address)
		}
		return m.Cart.Read(address)
	case address <= 0x9FFF:
		return m.Video.Read(address)
	case address <= 0xBFFF:
		return m.Cart.Read(address)
	case address <= 0xDFFF, address >= 0xE000 && address <= 0xFDFF:
		return m.wram.Read(address)
	case address <= 0xFE9F:
		return m.Video.Read(address)
	case address <= 0xFEFF:
		return 0xFF // unusable region
	case address == types.P1:
		return m.Joypad.Read(address)
	case address == types.SB || address == types.SC:
		return m.Serial.Read(address)
	case address == types.DIV || address == types.TIMA || address == types.TMA || address == types.TAC:
		return m.Timer.Read(address)
	case address == types.IF:
		return m.IRQ.Read(address)
	case address >= 0xFF10 && address <= 0xFF3F:
		return m.APU.Read(address)
	case address == types.DMA:
		return m.OAMDMA.Value()
	case address >= 0xFF40 && address <= 0xFF4B:
		return m.Video.Read(address)
	case address == types.KEY1:
		if !m.isCGB {
			return 0xFF
		}
		v := uint8(0x7E)
		if m.doubleSpeed {
			v |= 0x80
		}
		if m.doubleSpeedPending {
			v |= 0x01
		}
		return v
	case address == types.VBK:
		return m.Video.Read(address)
	case address == types.BOOT:
		if m.bootDisabled {
			return 0x01
		}
		return 0x00
	case address >= types.HDMA1 && address <= types.HDMA5:
		return m.HDMA.Read(address)
	case address == types.BCPS || address == types.BCPD || address == types.OCPS || address == types.OCPD:
		return m.Video.Read(address)
	case address == types.SVBK:
		if !m.isCGB {
			return 0xFF
		}
		return m.wram.Bank() | 0xF8
	case address == types.IE:
		return m.IRQ.Read(address)
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.zram[address-0xFF80]
	default:
		return 0xFF
	}
}

func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		m.Cart.Write(address, value)
	case address <= 0x9FFF:
		m.Video.Write(address, value)
	case address <= 0xBFFF:
		m.Cart.Write(address, value)
	case address <= 0xDFFF, address >= 0xE000 && address <= 0xFDFF:
		m.wram.Write(address, value)
	case address <= 0xFE9F:
		m.Video.Write(address, value)
	case address <= 0xFEFF:
		return // unusable region, writes are dropped
	case address == types.P1:
		m.Joypad.Write(address, value)
	case address == types.SB || address == types.SC:
		m.Serial.Write(address, value)
	case address == types.DIV || address == types.TIMA || address == types.TMA || address == types.TAC:
		m.Timer.Write(address, value)
	case address == types.IF:
		m.IRQ.Write(address, value)
	case address >= 0xFF10 && address <= 0xFF3F:
		m.APU.Write(address, value)
	case address == types.DMA:
		m.OAMDMA.Start(value)
	case address >= 0xFF40 && address <= 0xFF4B:
		m.Video.Write(address, value)
	case address == types.KEY1:
		if m.isCGB {
			m.doubleSpeedPending = value&0x01 != 0
		}
	case address == types.VBK:
		m.Video.Write(address, value)
	case address == types.BOOT:
		m.bootDisabled = true
	case address >= types.HDMA1 && address <= types.HDMA5:
		m.HDMA.Write(address, value)
	case address == types.BCPS || address == types.BCPD || address == types.OCPS || address == types.OCPD:
		m.Video.Write(address, value)
	case address == types.SVBK:
		if m.isCGB {
			m.wram.SetBank(value)
		}
	case address == types.IE:
		m.IRQ.Write(address, value)
	case address >= 0xFF80 && address <= 0xFFFE:
		m.zram[address-0xFF80] = value
	default:
		m.log.Debugf("unhandled write 0x%02X -> 0x%04X", value, address)
	}
}

var _ types.Stater = (*MMU)(nil)

func (m *MMU) Save(s *types.State) {
	m.wram.Save(s)
	s.WriteData(m.zram[:])
	s.WriteBool(m.bootDisabled)
	s.WriteBool(m.doubleSpeed)
	s.WriteBool(m.doubleSpeedPending)
	m.Cart.Save(s)
}

func (m *MMU) Load(s *types.State) {
	m.wram.Load(s)
	s.ReadData(m.zram[:])
	m.bootDisabled = s.ReadBool()
	m.doubleSpeed = s.ReadBool()
	m.doubleSpeedPending = s.ReadBool()
	m.Cart.Load(s)
}
