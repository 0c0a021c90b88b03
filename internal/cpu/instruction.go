package cpu

// Instruction is a single decoded opcode's metadata and behavior. Length
// and Cycles describe the unconditional case; conditional branches add
// their taken-branch cost through the CPU's extraCycles counter, and
// (HL)-indirect instructions carry their full cost in Cycles.
type Instruction struct {
	Name    string
	Length  uint8
	Cycles  uint8
	Execute func(c *CPU, operands []byte)
}

// InstructionSet is the main, non-prefixed 256-entry opcode table.
var InstructionSet [0x100]Instruction

// InstructionSetCB is the CB-prefixed 256-entry opcode table.
var InstructionSetCB [0x100]Instruction

func init() {
	buildInstructionSet()
	buildCBInstructionSet()
}
