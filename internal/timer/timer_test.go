package timer

import (
	"testing"

	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/types"
)

func newTestController() (*Controller, *interrupts.Service) {
	irq := interrupts.NewService()
	return New(irq), irq
}

// tickCycles advances c by n T-cycles at single speed, split into
// chunks that fit Tick's uint8 argument.
func tickCycles(c *Controller, n int) {
	for ; n > 0xFF; n -= 0xFF {
		c.Tick(0xFF, false)
	}
	c.Tick(uint8(n), false)
}

func TestDiv_AdvancesEvery256Cycles(t *testing.T) {
	c, _ := newTestController()

	for i := 0; i < 255; i++ {
		c.Tick(1, false)
	}
	if got := c.Read(types.DIV); got != 0 {
		t.Fatalf("expected DIV to still be 0 after 255 cycles, got %d", got)
	}
	c.Tick(1, false)
	if got := c.Read(types.DIV); got != 1 {
		t.Fatalf("expected DIV to be 1 after 256 cycles, got %d", got)
	}
}

func TestDiv_WriteResets(t *testing.T) {
	c, _ := newTestController()
	tickCycles(c, 256*10)
	if c.Read(types.DIV) == 0 {
		t.Fatalf("expected DIV to have advanced")
	}
	c.Write(types.DIV, 0x42) // any value resets DIV to 0
	if got := c.Read(types.DIV); got != 0 {
		t.Fatalf("expected DIV write to reset to 0, got %d", got)
	}
}

func TestTima_OverflowReloadsAndRequestsInterrupt(t *testing.T) {
	c, irq := newTestController()
	c.Write(types.TAC, 0b101) // enabled, prescale 16
	c.Write(types.TMA, 0x7A)
	c.Write(types.TIMA, 0xFF)

	c.Tick(15, false)
	if c.Read(types.TIMA) != 0xFF {
		t.Fatalf("expected TIMA to not yet have incremented")
	}
	c.Tick(1, false)
	if got := c.Read(types.TIMA); got != 0x7A {
		t.Fatalf("expected TIMA to reload to TMA (0x7A), got %02x", got)
	}
	if irq.Flag&(1<<interrupts.TimerFlag) == 0 {
		t.Fatalf("expected timer interrupt flag to be set")
	}
}

func TestTima_DisabledDoesNotIncrement(t *testing.T) {
	c, _ := newTestController()
	c.Write(types.TAC, 0b001) // prescale 16, disabled
	tickCycles(c, 1000)
	if c.Read(types.TIMA) != 0 {
		t.Fatalf("expected TIMA to stay at 0 while disabled")
	}
}
