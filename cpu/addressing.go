package cpu

import "fmt"

// operand is the resolved location of an instruction's operand: nowhere, the
// accumulator, or a bus address. Instruction semantics go through get/set and
// stay agnostic of the addressing mode that produced the location.
type operand struct {
	kind operandKind
	addr uint16
}

type operandKind int

const (
	// operandInvalid marks an instruction with no addressable operand.
	// Reading or writing it means the dispatch table paired a semantic
	// function with the wrong addressing mode.
	operandInvalid operandKind = iota
	operandAccumulator
	operandAddress
)

func (o operand) get(c *CPU) byte {
	switch o.kind {
	case operandAccumulator:
		return c.A
	case operandAddress:
		return c.bus.Read8(o.addr)
	}
	panic("cpu: read from an invalid operand location")
}

func (o operand) set(c *CPU, v byte) {
	switch o.kind {
	case operandAccumulator:
		c.A = v
	case operandAddress:
		c.bus.Write8(o.addr, v)
	default:
		panic("cpu: write to an invalid operand location")
	}
}

// addrMode selects how an instruction locates its operand. The enumeration is
// open: a new mode only has to produce the same three outputs from resolve.
type addrMode int

const (
	modeNone addrMode = iota
	modeImplied
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
)

// resolve locates the operand for the instruction being fetched. It reports
// the operand location, the instruction's total cycle budget and how many
// bytes past the opcode the program counter must advance.
func (m addrMode) resolve(c *CPU) (operand, int, uint16) {
	switch m {
	case modeNone:
		return operand{kind: operandInvalid}, 1, 0
	case modeImplied:
		return operand{kind: operandInvalid}, 2, 0
	case modeAccumulator:
		return operand{kind: operandAccumulator}, 2, 0
	case modeImmediate:
		return operand{kind: operandAddress, addr: c.PC}, 2, 1
	case modeZeroPage:
		return operand{kind: operandAddress, addr: uint16(c.bus.Read8(c.PC))}, 3, 1
	case modeZeroPageX:
		// The index is added in 16-bit arithmetic and the sum is not masked
		// back into the zero page, so indexing can cross out of it.
		return operand{kind: operandAddress, addr: uint16(c.bus.Read8(c.PC)) + uint16(c.X)}, 4, 1
	case modeZeroPageY:
		return operand{kind: operandAddress, addr: uint16(c.bus.Read8(c.PC)) + uint16(c.Y)}, 4, 1
	case modeAbsolute:
		return operand{kind: operandAddress, addr: c.bus.Read16(c.PC)}, 4, 2
	}
	panic(fmt.Sprintf("cpu: unknown addressing mode %d", m))
}
