// Package gameboy wires the CPU, MMU, PPU, and every peripheral into a
// single runnable unit and exposes the small surface a host (CLI,
// debugger, future UI) drives: step the system forward, pull the last
// rendered frame, and feed button state in.
package gameboy

import (
	"fmt"

	"github.com/ioncodes/ayyboy/internal/apu"
	"github.com/ioncodes/ayyboy/internal/boot"
	"github.com/ioncodes/ayyboy/internal/cartridge"
	"github.com/ioncodes/ayyboy/internal/cpu"
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/joypad"
	"github.com/ioncodes/ayyboy/internal/mmu"
	"github.com/ioncodes/ayyboy/internal/ppu"
	"github.com/ioncodes/ayyboy/internal/ppu/palette"
	"github.com/ioncodes/ayyboy/internal/serial"
	"github.com/ioncodes/ayyboy/internal/timer"
	"github.com/ioncodes/ayyboy/internal/types"
)

// ClockSpeed is the Game Boy's fixed system clock, used by hosts that
// want to pace Step calls against wall-clock time.
const ClockSpeed = 4194304 // 4.194304 MHz

// GameBoy owns every core component and drives them together one CPU
// instruction at a time.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	APU        *apu.APU
	Serial     *serial.Controller

	cart *cartridge.Cartridge
}

// New constructs a GameBoy for the given cartridge image. bootROM may
// be nil, in which case the CPU is seeded with post-boot register
// values instead of actually executing a boot ROM (SPEC_FULL.md §6) and
// the CGB compatibility palette is loaded from the title checksum.
// isCGB forces CGB mode, as does a CGB boot ROM; the cartridge header's
// CGB-support flag is not consulted.
func New(romImage []byte, bootROM []byte, isCGB bool) (*GameBoy, error) {
	cart, err := cartridge.New(romImage)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	var bootRom *boot.ROM
	if bootROM != nil {
		bootRom, err = boot.New(bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		if bootRom.IsCGB() {
			isCGB = true
		}
	}

	irq := interrupts.NewService()
	p := ppu.New(irq, isCGB)
	tmr := timer.New(irq)
	jp := joypad.New(irq)
	ser := serial.New()
	snd := apu.New()

	bus := mmu.New(cart, p, jp, tmr, irq, ser, snd, bootRom, isCGB)

	var core *cpu.CPU
	if bootRom != nil {
		core = cpu.New(bus, irq, p, tmr, ser, snd)
	} else {
		core = cpu.NewWithPostBootState(bus, irq, p, tmr, ser, snd, isCGB)
		checksum, fourthByte := titleChecksum(romImage)
		p.LoadCompatibilityPalette(checksum, fourthByte)
	}

	return &GameBoy{
		CPU:        core,
		MMU:        bus,
		PPU:        p,
		Timer:      tmr,
		Joypad:     jp,
		Interrupts: irq,
		APU:        snd,
		Serial:     ser,
		cart:       cart,
	}, nil
}

// titleChecksum reproduces the real boot ROM's compatibility-palette
// key: the sum of the 16 title bytes at 0x0134-0x0143, and the fourth
// of those bytes, both read straight from the raw image so a cartridge
// too short to carry a valid header still degrades to DefaultEntry
// rather than panicking.
func titleChecksum(rom []byte) (checksum uint8, fourthByte byte) {
	for addr := 0x0134; addr <= 0x0143; addr++ {
		if addr < len(rom) {
			checksum += rom[addr]
		}
	}
	if len(rom) > 0x0137 {
		fourthByte = rom[0x0137]
	}
	return checksum, fourthByte
}

// Step executes exactly one CPU instruction (ticking every peripheral
// along with it) and returns the number of M-cycles it consumed.
func (g *GameBoy) Step() uint8 {
	return g.CPU.Step()
}

// RunFrame steps the system until the PPU has produced a new frame,
// returning the number of M-cycles consumed.
func (g *GameBoy) RunFrame() uint {
	var cycles uint
	for !g.PPU.HasFrame() {
		cycles += uint(g.Step())
	}
	return cycles
}

// PullFrame returns the most recently completed framebuffer and clears
// the PPU's frame-ready latch.
func (g *GameBoy) PullFrame() [ppu.ScreenHeight][ppu.ScreenWidth]palette.RGB {
	frame := g.PPU.Framebuffer
	g.PPU.ClearFrame()
	return frame
}

// UpdateButton presses or releases a physical button.
func (g *GameBoy) UpdateButton(button joypad.Button, pressed bool) {
	g.Joypad.Update(button, pressed)
}

// DumpRAM returns the cartridge's battery-backed external RAM, for
// mappers that carry one, for a host to persist as a save file.
func (g *GameBoy) DumpRAM() ([]byte, bool) {
	persister, ok := g.cart.Mapper.(cartridge.RAMPersister)
	if !ok {
		return nil, false
	}
	return persister.SaveRAM(), true
}

// LoadRAM restores previously dumped battery-backed external RAM.
func (g *GameBoy) LoadRAM(data []byte) bool {
	persister, ok := g.cart.Mapper.(cartridge.RAMPersister)
	if !ok {
		return false
	}
	persister.LoadRAM(data)
	return true
}

// Fingerprint returns the loaded cartridge's content hash, suitable
// for keying a save-RAM filename.
func (g *GameBoy) Fingerprint() uint64 {
	return g.cart.Fingerprint()
}

var _ types.Stater = (*GameBoy)(nil)

// Save serializes every stateful component in a fixed order.
func (g *GameBoy) Save(s *types.State) {
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.PPU.Save(s)
	g.Timer.Save(s)
	g.Joypad.Save(s)
	g.Interrupts.Save(s)
	g.APU.Save(s)
	g.Serial.Save(s)
	g.cart.Save(s)
}

// Load restores every stateful component in the same order Save wrote
// them.
func (g *GameBoy) Load(s *types.State) {
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.PPU.Load(s)
	g.Timer.Load(s)
	g.Joypad.Load(s)
	g.Interrupts.Load(s)
	g.APU.Load(s)
	g.Serial.Load(s)
	g.cart.Load(s)
}
