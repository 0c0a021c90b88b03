// Package serial is a minimal stand-in for the serial link, out of
// scope per spec.md §1 ("Non-goals: serial link"). It exists only
// because the MMU's routing table needs something to own 0xFF01/0xFF02
// and the CPU's tick loop needs a collaborator to call into, matching
// the shape of the teacher's internal/serial.Controller without any of
// its transfer-clock timing.
package serial

import "github.com/ioncodes/ayyboy/internal/types"

// Controller owns the SB/SC registers. No data is ever actually
// transferred; writes are latched and read back, SC with its unused
// bits 1-6 reading as 1.
type Controller struct {
	data    uint8
	control uint8
}

// New returns a disconnected serial controller.
func New() *Controller {
	return &Controller{}
}

// Tick is a no-op; kept so the CPU's per-cycle tick fan-out has a
// uniform shape across all peripherals.
func (c *Controller) Tick(uint8) {}

func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		return c.control | 0x7E
	}
	return 0xFF
}

func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.control = value
	}
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
}

func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
}
