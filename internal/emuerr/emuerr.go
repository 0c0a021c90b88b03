// Package emuerr is the typed error taxonomy for the core, mirroring
// the original implementation's AyyError enum. The three "recovered
// locally" kinds (WriteToROM, WriteToDisabledRAM, OutOfBounds) are
// never returned from the MMU read/write path, and nothing in the core
// constructs or logs them: the mappers and the MMU drop such writes and
// answer such reads with a fixed byte. Every other kind is fatal and
// should propagate to the frame driver.
package emuerr

import "fmt"

// DecoderFailure means the opcode byte matched no pattern in either
// opcode table - a bug in the decoder tables, not a runtime condition.
type DecoderFailure struct {
	Opcode  uint8
	Address uint16
}

func (e *DecoderFailure) Error() string {
	return fmt.Sprintf("failed to decode instruction (%02x) at address: $%04x", e.Opcode, e.Address)
}

// IllegalOpcode is panicked by the CPU whenever one of the known-illegal
// opcodes executes; no build treats them as NOPs.
type IllegalOpcode struct {
	Opcode uint8
}

func (e *IllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode: %02x", e.Opcode)
}

// UnknownConditionBits means a condition field decoded to a value the
// decoder tables don't recognize - decoder malformation.
type UnknownConditionBits struct {
	Data uint8
}

func (e *UnknownConditionBits) Error() string {
	return fmt.Sprintf("unknown condition bits: %08b", e.Data)
}

// UnknownRegisterBits means a register field decoded to a value the
// decoder tables don't recognize - decoder malformation.
type UnknownRegisterBits struct {
	Data uint8
}

func (e *UnknownRegisterBits) Error() string {
	return fmt.Sprintf("unknown register bits: %08b", e.Data)
}

// UnimplementedInstruction means the decoder emitted an opcode kind
// with no handler registered for it.
type UnimplementedInstruction struct {
	Instruction string
}

func (e *UnimplementedInstruction) Error() string {
	return fmt.Sprintf("unimplemented instruction: %s", e.Instruction)
}

// InvalidHandler is a debug-only operand shape assertion: a handler
// was invoked with operands that don't match its expected shape.
type InvalidHandler struct {
	Instruction string
}

func (e *InvalidHandler) Error() string {
	return fmt.Sprintf("invalid instruction handler implementation: %s", e.Instruction)
}

// UnresolvedTarget means an operand's addressing mode wasn't
// recognized by the executor.
type UnresolvedTarget struct {
	Target string
}

func (e *UnresolvedTarget) Error() string {
	return fmt.Sprintf("unresolved target: %s", e.Target)
}

// UnknownIRQVector means IE&IF was non-zero but none of the five known
// vectors matched it.
type UnknownIRQVector struct {
	Pending uint8
}

func (e *UnknownIRQVector) Error() string {
	return fmt.Sprintf("unknown interrupt vector: %08b", e.Pending)
}

// WriteToROM is recovered locally: log a warning, ignore the write.
type WriteToROM struct {
	Address uint16
	Value   uint8
}

func (e *WriteToROM) Error() string {
	return fmt.Sprintf("write to read-only memory at $%04x: %02x", e.Address, e.Value)
}

// WriteToDisabledRAM is recovered locally: log a warning, ignore the write.
type WriteToDisabledRAM struct {
	Address uint16
	Value   uint8
}

func (e *WriteToDisabledRAM) Error() string {
	return fmt.Sprintf("write to disabled external RAM at $%04x: %02x", e.Address, e.Value)
}

// OutOfBounds is recovered locally: reads return a fixed fallback byte,
// writes are dropped.
type OutOfBounds struct {
	Address uint16
	Mapper  string
}

func (e *OutOfBounds) Error() string {
	return fmt.Sprintf("out of bounds memory access at $%04x (%s)", e.Address, e.Mapper)
}
