package cpu

import "github.com/ioncodes/ayyboy/internal/emuerr"

func d16(operands []byte) uint16 {
	return uint16(operands[0]) | uint16(operands[1])<<8
}

// rpGet/rpSet address the "group 1" register-pair encoding (BC, DE, HL, SP)
// used by LD rr,d16 / INC rr / DEC rr / ADD HL,rr.
func (c *CPU) rpGet(index uint8) uint16 {
	switch index {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) rpSet(index uint8, v uint16) {
	switch index {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// rp2Get/rp2Set address the "group 2" register-pair encoding (BC, DE, HL, AF)
// used by PUSH rr / POP rr.
func (c *CPU) rp2Get(index uint8) uint16 {
	if index == 3 {
		return c.af()
	}
	return c.rpGet(index)
}

func (c *CPU) rp2Set(index uint8, v uint16) {
	if index == 3 {
		c.setAF(v)
		return
	}
	c.rpSet(index, v)
}

var rpNames = [4]string{"BC", "DE", "HL", "SP"}
var rp2Names = [4]string{"BC", "DE", "HL", "AF"}
var ccNames = [4]string{"NZ", "Z", "NC", "C"}

func illegal(opcode uint8) Instruction {
	return Instruction{Name: "ILLEGAL", Length: 1, Cycles: 1, Execute: func(c *CPU, operands []byte) {
		panic(&emuerr.IllegalOpcode{Opcode: opcode})
	}}
}

func buildInstructionSet() {
	for i := range InstructionSet {
		InstructionSet[i] = illegal(uint8(i))
	}

	InstructionSet[0x00] = Instruction{"NOP", 1, 1, func(c *CPU, operands []byte) {}}
	InstructionSet[0x08] = Instruction{"LD (a16), SP", 3, 5, func(c *CPU, operands []byte) {
		addr := d16(operands)
		c.mmu.Write(addr, uint8(c.SP))
		c.mmu.Write(addr+1, uint8(c.SP>>8))
	}}
	InstructionSet[0x10] = Instruction{"STOP", 2, 1, func(c *CPU, operands []byte) {
		c.handleStop()
	}}
	InstructionSet[0x18] = Instruction{"JR r8", 2, 3, func(c *CPU, operands []byte) {
		c.jumpRelative(operands[0])
	}}
	InstructionSet[0x76] = Instruction{"HALT", 1, 1, func(c *CPU, operands []byte) {
		c.halt()
	}}
	InstructionSet[0xC3] = Instruction{"JP a16", 3, 4, func(c *CPU, operands []byte) {
		c.jumpAbsolute(d16(operands))
	}}
	InstructionSet[0xC9] = Instruction{"RET", 1, 4, func(c *CPU, operands []byte) {
		c.ret()
	}}
	InstructionSet[0xCD] = Instruction{"CALL a16", 3, 6, func(c *CPU, operands []byte) {
		c.call(d16(operands))
	}}
	InstructionSet[0xD9] = Instruction{"RETI", 1, 4, func(c *CPU, operands []byte) {
		c.retInterrupt()
	}}
	InstructionSet[0xE0] = Instruction{"LDH (a8), A", 2, 3, func(c *CPU, operands []byte) {
		c.mmu.Write(0xFF00+uint16(operands[0]), c.A)
	}}
	InstructionSet[0xE2] = Instruction{"LD (C), A", 1, 2, func(c *CPU, operands []byte) {
		c.mmu.Write(0xFF00+uint16(c.C), c.A)
	}}
	InstructionSet[0xE8] = Instruction{"ADD SP, r8", 2, 4, func(c *CPU, operands []byte) {
		c.SP = c.addSPSigned(operands[0])
	}}
	InstructionSet[0xE9] = Instruction{"JP (HL)", 1, 1, func(c *CPU, operands []byte) {
		c.PC = c.hl()
	}}
	InstructionSet[0xEA] = Instruction{"LD (a16), A", 3, 4, func(c *CPU, operands []byte) {
		c.mmu.Write(d16(operands), c.A)
	}}
	InstructionSet[0xF0] = Instruction{"LDH A, (a8)", 2, 3, func(c *CPU, operands []byte) {
		c.A = c.mmu.Read(0xFF00 + uint16(operands[0]))
	}}
	InstructionSet[0xF2] = Instruction{"LD A, (C)", 1, 2, func(c *CPU, operands []byte) {
		c.A = c.mmu.Read(0xFF00 + uint16(c.C))
	}}
	InstructionSet[0xF3] = Instruction{"DI", 1, 1, func(c *CPU, operands []byte) {
		c.IRQ.IME = false
		c.IRQ.Enabling = false
	}}
	InstructionSet[0xF8] = Instruction{"LD HL, SP+r8", 2, 3, func(c *CPU, operands []byte) {
		c.setHL(c.addSPSigned(operands[0]))
	}}
	InstructionSet[0xF9] = Instruction{"LD SP, HL", 1, 2, func(c *CPU, operands []byte) {
		c.SP = c.hl()
	}}
	InstructionSet[0xFA] = Instruction{"LD A, (a16)", 3, 4, func(c *CPU, operands []byte) {
		c.A = c.mmu.Read(d16(operands))
	}}
	InstructionSet[0xFB] = Instruction{"EI", 1, 1, func(c *CPU, operands []byte) {
		c.IRQ.Enabling = true
	}}
	InstructionSet[0x27] = Instruction{"DAA", 1, 1, func(c *CPU, operands []byte) { c.daa() }}
	InstructionSet[0x2F] = Instruction{"CPL", 1, 1, func(c *CPU, operands []byte) { c.complementA() }}
	InstructionSet[0x37] = Instruction{"SCF", 1, 1, func(c *CPU, operands []byte) { c.setCarryFlag() }}
	InstructionSet[0x3F] = Instruction{"CCF", 1, 1, func(c *CPU, operands []byte) { c.complementCarryFlag() }}
	InstructionSet[0x07] = Instruction{"RLCA", 1, 1, func(c *CPU, operands []byte) { c.rotateLeftAccumulator() }}
	InstructionSet[0x0F] = Instruction{"RRCA", 1, 1, func(c *CPU, operands []byte) { c.rotateRightAccumulator() }}
	InstructionSet[0x17] = Instruction{"RLA", 1, 1, func(c *CPU, operands []byte) { c.rotateLeftAccumulatorThroughCarry() }}
	InstructionSet[0x1F] = Instruction{"RRA", 1, 1, func(c *CPU, operands []byte) { c.rotateRightAccumulatorThroughCarry() }}

	buildRegisterPairGroup()
	buildLoadImmediate8()
	buildIncDec8()
	buildLoadRegisterToRegister()
	buildALUGroup()
	buildConditionalBranches()
	buildStackAndRST()
}

// buildRegisterPairGroup fills LD rr,d16 / INC rr / DEC rr / ADD HL,rr /
// PUSH rr / POP rr / LD (BC/DE),A / LD A,(BC/DE) / LD (HL+/-),A / LD A,(HL+/-).
func buildRegisterPairGroup() {
	for i := uint8(0); i < 4; i++ {
		i := i
		InstructionSet[0x01+i*0x10] = Instruction{"LD " + rpNames[i] + ", d16", 3, 3, func(c *CPU, operands []byte) {
			c.rpSet(i, d16(operands))
		}}
		InstructionSet[0x03+i*0x10] = Instruction{"INC " + rpNames[i], 1, 2, func(c *CPU, operands []byte) {
			c.rpSet(i, c.rpGet(i)+1)
		}}
		InstructionSet[0x0B+i*0x10] = Instruction{"DEC " + rpNames[i], 1, 2, func(c *CPU, operands []byte) {
			c.rpSet(i, c.rpGet(i)-1)
		}}
		InstructionSet[0x09+i*0x10] = Instruction{"ADD HL, " + rpNames[i], 1, 2, func(c *CPU, operands []byte) {
			c.setHL(c.addUint16(c.hl(), c.rpGet(i)))
		}}
		InstructionSet[0xC1+i*0x10] = Instruction{"POP " + rp2Names[i], 1, 3, func(c *CPU, operands []byte) {
			c.rp2Set(i, c.pop16())
		}}
		InstructionSet[0xC5+i*0x10] = Instruction{"PUSH " + rp2Names[i], 1, 4, func(c *CPU, operands []byte) {
			c.push16(c.rp2Get(i))
		}}
	}

	InstructionSet[0x02] = Instruction{"LD (BC), A", 1, 2, func(c *CPU, operands []byte) { c.mmu.Write(c.bc(), c.A) }}
	InstructionSet[0x12] = Instruction{"LD (DE), A", 1, 2, func(c *CPU, operands []byte) { c.mmu.Write(c.de(), c.A) }}
	InstructionSet[0x22] = Instruction{"LD (HL+), A", 1, 2, func(c *CPU, operands []byte) {
		c.mmu.Write(c.hl(), c.A)
		c.setHL(c.hl() + 1)
	}}
	InstructionSet[0x32] = Instruction{"LD (HL-), A", 1, 2, func(c *CPU, operands []byte) {
		c.mmu.Write(c.hl(), c.A)
		c.setHL(c.hl() - 1)
	}}
	InstructionSet[0x0A] = Instruction{"LD A, (BC)", 1, 2, func(c *CPU, operands []byte) { c.A = c.mmu.Read(c.bc()) }}
	InstructionSet[0x1A] = Instruction{"LD A, (DE)", 1, 2, func(c *CPU, operands []byte) { c.A = c.mmu.Read(c.de()) }}
	InstructionSet[0x2A] = Instruction{"LD A, (HL+)", 1, 2, func(c *CPU, operands []byte) {
		c.A = c.mmu.Read(c.hl())
		c.setHL(c.hl() + 1)
	}}
	InstructionSet[0x3A] = Instruction{"LD A, (HL-)", 1, 2, func(c *CPU, operands []byte) {
		c.A = c.mmu.Read(c.hl())
		c.setHL(c.hl() - 1)
	}}
}

// buildLoadImmediate8 fills LD r, d8 for all 8 register-field values.
func buildLoadImmediate8() {
	for i := uint8(0); i < 8; i++ {
		i := i
		opcode := 0x06 + i*0x08
		if i == 6 {
			InstructionSet[opcode] = Instruction{"LD (HL), d8", 2, 3, func(c *CPU, operands []byte) {
				c.mmu.Write(c.hl(), operands[0])
			}}
			continue
		}
		InstructionSet[opcode] = Instruction{"LD " + r8Names[i] + ", d8", 2, 2, func(c *CPU, operands []byte) {
			*c.regPtr(i) = operands[0]
		}}
	}
}

// buildIncDec8 fills INC r / DEC r for all 8 register-field values.
func buildIncDec8() {
	for i := uint8(0); i < 8; i++ {
		i := i
		if i == 6 {
			InstructionSet[0x34] = Instruction{"INC (HL)", 1, 3, func(c *CPU, operands []byte) {
				c.mmu.Write(c.hl(), c.increment(c.mmu.Read(c.hl())))
			}}
			InstructionSet[0x35] = Instruction{"DEC (HL)", 1, 3, func(c *CPU, operands []byte) {
				c.mmu.Write(c.hl(), c.decrement(c.mmu.Read(c.hl())))
			}}
			continue
		}
		InstructionSet[0x04+i*0x08] = Instruction{"INC " + r8Names[i], 1, 1, func(c *CPU, operands []byte) {
			r := c.regPtr(i)
			*r = c.increment(*r)
		}}
		InstructionSet[0x05+i*0x08] = Instruction{"DEC " + r8Names[i], 1, 1, func(c *CPU, operands []byte) {
			r := c.regPtr(i)
			*r = c.decrement(*r)
		}}
	}
}

// buildLoadRegisterToRegister fills the 0x40-0x7F block: LD r, r', with
// 0x76 (which would be LD (HL),(HL)) already overridden as HALT.
func buildLoadRegisterToRegister() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			dst, src := dst, src
			name := "LD " + r8Names[dst] + ", " + r8Names[src]
			switch {
			case dst == 6:
				InstructionSet[opcode] = Instruction{name, 1, 2, func(c *CPU, operands []byte) {
					c.mmu.Write(c.hl(), *c.regPtr(src))
				}}
			case src == 6:
				InstructionSet[opcode] = Instruction{name, 1, 2, func(c *CPU, operands []byte) {
					*c.regPtr(dst) = c.mmu.Read(c.hl())
				}}
			default:
				InstructionSet[opcode] = Instruction{name, 1, 1, func(c *CPU, operands []byte) {
					*c.regPtr(dst) = *c.regPtr(src)
				}}
			}
		}
	}
}

// aluOps is the 0x80-0xBF block's 8 operations, in encoding order, plus
// their immediate (d8) counterparts at 0xC6-0xFE in steps of 0x08.
var aluOps = [8]struct {
	name string
	op   func(c *CPU, value uint8)
}{
	{"ADD A,", func(c *CPU, v uint8) { c.addN(v) }},
	{"ADC A,", func(c *CPU, v uint8) { c.addNCarry(v) }},
	{"SUB", func(c *CPU, v uint8) { c.subtractN(v) }},
	{"SBC A,", func(c *CPU, v uint8) { c.subtractNCarry(v) }},
	{"AND", func(c *CPU, v uint8) { c.A = c.and(c.A, v) }},
	{"XOR", func(c *CPU, v uint8) { c.A = c.xor(c.A, v) }},
	{"OR", func(c *CPU, v uint8) { c.A = c.or(c.A, v) }},
	{"CP", func(c *CPU, v uint8) { c.compare(v) }},
}

func buildALUGroup() {
	for i := uint8(0); i < 8; i++ {
		op := aluOps[i].op
		for r := uint8(0); r < 8; r++ {
			r := r
			opcode := 0x80 + i*8 + r
			if r == 6 {
				InstructionSet[opcode] = Instruction{aluOps[i].name + " (HL)", 1, 2, func(c *CPU, operands []byte) {
					op(c, c.mmu.Read(c.hl()))
				}}
				continue
			}
			InstructionSet[opcode] = Instruction{aluOps[i].name + " " + r8Names[r], 1, 1, func(c *CPU, operands []byte) {
				op(c, *c.regPtr(r))
			}}
		}
		InstructionSet[0xC6+i*8] = Instruction{aluOps[i].name + " d8", 2, 2, func(c *CPU, operands []byte) {
			op(c, operands[0])
		}}
	}
}

// buildConditionalBranches fills JR/JP/CALL/RET cc and the RST family.
func buildConditionalBranches() {
	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		InstructionSet[0x20+cc*8] = Instruction{"JR " + ccNames[cc] + ", r8", 2, 2, func(c *CPU, operands []byte) {
			c.jumpRelativeConditional(c.conditionFromOpcode(cc), operands[0])
		}}
		InstructionSet[0xC2+cc*8] = Instruction{"JP " + ccNames[cc] + ", a16", 3, 3, func(c *CPU, operands []byte) {
			c.jumpAbsoluteConditional(c.conditionFromOpcode(cc), d16(operands))
		}}
		InstructionSet[0xC4+cc*8] = Instruction{"CALL " + ccNames[cc] + ", a16", 3, 3, func(c *CPU, operands []byte) {
			c.callConditional(c.conditionFromOpcode(cc), d16(operands))
		}}
		InstructionSet[0xC0+cc*8] = Instruction{"RET " + ccNames[cc], 1, 2, func(c *CPU, operands []byte) {
			c.retConditional(c.conditionFromOpcode(cc))
		}}
	}
}

func buildStackAndRST() {
	for i := uint8(0); i < 8; i++ {
		i := i
		vector := uint16(i) * 0x08
		InstructionSet[0xC7+i*8] = Instruction{"RST", 1, 4, func(c *CPU, operands []byte) {
			c.rst(vector)
		}}
	}
}
