package cpu

import "github.com/ioncodes/ayyboy/pkg/bits"

// Flag identifies one of the four meaningful bits of the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

func (c *CPU) setFlag(flag Flag) {
	c.F = bits.Set(c.F, flag) & 0xF0
}

func (c *CPU) clearFlag(flag Flag) {
	c.F = bits.Reset(c.F, flag) & 0xF0
}

func (c *CPU) setFlagTo(flag Flag, v bool) {
	if v {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

func (c *CPU) isFlagSet(flag Flag) bool {
	return bits.Test(c.F, flag)
}

// shouldZeroFlag sets FlagZero iff value is 0.
func (c *CPU) shouldZeroFlag(value uint8) {
	c.setFlagTo(FlagZero, value == 0)
}
