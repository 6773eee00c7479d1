package cpu

// Bus defines the interface for the CPU to interact with the bus.
type Bus interface {
	Read8(addr uint16) byte
	Write8(addr uint16, data byte)
	Read16(addr uint16) uint16
	Write16(addr uint16, data uint16)
}

// operation is an instruction in flight: its semantic effect, its resolved
// operand location and the cycle budget it still has to burn.
type operation struct {
	effect      func(*CPU, operand)
	operand     operand
	cycle       int
	totalCycles int
}

// newOperation resolves mode against the current CPU state, advances PC past
// any operand bytes and fixes the instruction's total cycle budget. After
// this point nothing can change what the instruction will do or how long it
// takes.
func newOperation(c *CPU, effect func(*CPU, operand), mode addrMode) *operation {
	opnd, cycles, size := mode.resolve(c)
	c.PC += size
	return &operation{effect: effect, operand: opnd, totalCycles: cycles}
}

// tick burns one cycle and reports whether the instruction completed. The
// semantic effect commits on the final cycle of the budget and nowhere else.
func (op *operation) tick(c *CPU) bool {
	op.cycle++
	if op.cycle < op.totalCycles {
		return false
	}
	op.effect(c, op.operand)
	return true
}

// CPU represents the 6502 CPU.
type CPU struct {
	// Program Counter
	PC uint16

	// Stack Pointer
	SP byte

	// Accumulator
	A byte

	// Index Register X
	X byte

	// Index Register Y
	Y byte

	// Processor Status
	P byte

	bus Bus

	// in-flight instruction, nil while idle
	op *operation

	clock uint64
}

// New creates a new CPU attached to the given bus.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset returns the CPU to its power-on state and discards any in-flight
// instruction. Execution restarts at address 0; the hardware reset vector
// lives in cartridge space, which this bus does not implement.
func (c *CPU) Reset() {
	c.PC = 0
	c.SP = 0
	c.A = 0
	c.X = 0
	c.Y = 0
	c.P = FlagU
	c.op = nil
	c.clock = 0
}

// Tick advances the CPU by exactly one clock cycle. While idle it fetches the
// opcode at PC and constructs the in-flight instruction; that fetch counts as
// the instruction's first cycle. While executing it burns one cycle of the
// current instruction, committing its effect only on the last one.
func (c *CPU) Tick() {
	if c.op == nil {
		c.op = c.fetch()
	}
	if c.op.tick(c) {
		c.op = nil
	}
	c.clock++
}

// Ticks advances the CPU by n consecutive clock cycles. There is no fast
// path: a driver observing the CPU mid-instruction sees the same state either
// way.
func (c *CPU) Ticks(n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// Executing reports whether an instruction is in flight.
func (c *CPU) Executing() bool {
	return c.op != nil
}

// Clock returns the number of cycles ticked since power-on or reset.
func (c *CPU) Clock() uint64 {
	return c.clock
}

func (c *CPU) fetch() *operation {
	opcode := c.bus.Read8(c.PC)
	c.PC++
	return opcodes[opcode](c)
}
