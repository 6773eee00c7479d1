package cpu

// ctor builds an in-flight instruction from the current CPU state. Dispatch
// runs at fetch time: the constructor resolves the addressing mode, which
// advances PC and fixes the cycle budget.
type ctor func(*CPU) *operation

// opcodes maps every possible opcode byte to a constructor. Slots that are
// never assigned fall back to an undefined-opcode no-op (1 cycle, no
// operand), so the table has no gaps.
var opcodes = buildOpcodeTable()

func buildOpcodeTable() [256]ctor {
	var t [256]ctor

	for i := range t {
		t[i] = entry(nop, modeNone)
	}

	set := func(code byte, effect func(*CPU, operand), mode addrMode) {
		t[code] = entry(effect, mode)
	}

	// Arithmetic
	set(0x69, adc, modeImmediate)
	set(0x65, adc, modeZeroPage)
	set(0x75, adc, modeZeroPageX)
	set(0x6D, adc, modeAbsolute)
	set(0xE9, sbc, modeImmediate)
	set(0xE5, sbc, modeZeroPage)
	set(0xF5, sbc, modeZeroPageX)
	set(0xED, sbc, modeAbsolute)

	// Logical
	set(0x29, and, modeImmediate)
	set(0x25, and, modeZeroPage)
	set(0x35, and, modeZeroPageX)
	set(0x2D, and, modeAbsolute)
	set(0x09, ora, modeImmediate)
	set(0x05, ora, modeZeroPage)
	set(0x15, ora, modeZeroPageX)
	set(0x0D, ora, modeAbsolute)
	set(0x49, eor, modeImmediate)
	set(0x45, eor, modeZeroPage)
	set(0x55, eor, modeZeroPageX)
	set(0x4D, eor, modeAbsolute)
	set(0x24, bit, modeZeroPage)
	set(0x2C, bit, modeAbsolute)

	// Loads
	set(0xA9, lda, modeImmediate)
	set(0xA5, lda, modeZeroPage)
	set(0xB5, lda, modeZeroPageX)
	set(0xAD, lda, modeAbsolute)
	set(0xA2, ldx, modeImmediate)
	set(0xA6, ldx, modeZeroPage)
	set(0xB6, ldx, modeZeroPageY)
	set(0xAE, ldx, modeAbsolute)
	set(0xA0, ldy, modeImmediate)
	set(0xA4, ldy, modeZeroPage)
	set(0xB4, ldy, modeZeroPageX)
	set(0xAC, ldy, modeAbsolute)

	// Stores
	set(0x85, sta, modeZeroPage)
	set(0x95, sta, modeZeroPageX)
	set(0x8D, sta, modeAbsolute)
	set(0x86, stx, modeZeroPage)
	set(0x96, stx, modeZeroPageY)
	set(0x8E, stx, modeAbsolute)
	set(0x84, sty, modeZeroPage)
	set(0x94, sty, modeZeroPageX)
	set(0x8C, sty, modeAbsolute)

	// Comparisons
	set(0xC9, cmp, modeImmediate)
	set(0xC5, cmp, modeZeroPage)
	set(0xD5, cmp, modeZeroPageX)
	set(0xCD, cmp, modeAbsolute)
	set(0xE0, cpx, modeImmediate)
	set(0xE4, cpx, modeZeroPage)
	set(0xEC, cpx, modeAbsolute)
	set(0xC0, cpy, modeImmediate)
	set(0xC4, cpy, modeZeroPage)
	set(0xCC, cpy, modeAbsolute)

	// Increments and decrements
	set(0xE6, inc, modeZeroPage)
	set(0xF6, inc, modeZeroPageX)
	set(0xEE, inc, modeAbsolute)
	set(0xC6, dec, modeZeroPage)
	set(0xD6, dec, modeZeroPageX)
	set(0xCE, dec, modeAbsolute)
	set(0xE8, inx, modeImplied)
	set(0xC8, iny, modeImplied)
	set(0xCA, dex, modeImplied)
	set(0x88, dey, modeImplied)

	// Shifts and rotates
	set(0x0A, asl, modeAccumulator)
	set(0x06, asl, modeZeroPage)
	set(0x16, asl, modeZeroPageX)
	set(0x0E, asl, modeAbsolute)
	set(0x4A, lsr, modeAccumulator)
	set(0x46, lsr, modeZeroPage)
	set(0x56, lsr, modeZeroPageX)
	set(0x4E, lsr, modeAbsolute)
	set(0x2A, rol, modeAccumulator)
	set(0x26, rol, modeZeroPage)
	set(0x36, rol, modeZeroPageX)
	set(0x2E, rol, modeAbsolute)
	set(0x6A, ror, modeAccumulator)
	set(0x66, ror, modeZeroPage)
	set(0x76, ror, modeZeroPageX)
	set(0x6E, ror, modeAbsolute)

	// Register transfers
	set(0xAA, tax, modeImplied)
	set(0x8A, txa, modeImplied)
	set(0xA8, tay, modeImplied)
	set(0x98, tya, modeImplied)
	set(0xBA, tsx, modeImplied)
	set(0x9A, txs, modeImplied)

	// Flag operations
	set(0x18, clc, modeImplied)
	set(0x38, sec, modeImplied)
	set(0x58, cli, modeImplied)
	set(0x78, sei, modeImplied)
	set(0xB8, clv, modeImplied)
	set(0xD8, cld, modeImplied)
	set(0xF8, sed, modeImplied)

	set(0xEA, nop, modeImplied)

	return t
}

func entry(effect func(*CPU, operand), mode addrMode) ctor {
	return func(c *CPU) *operation {
		return newOperation(c, effect, mode)
	}
}

func nop(_ *CPU, _ operand) {}

// addWithCarry is the shared ADC/SBC core: a wide sum with carry in, carry
// out beyond 8 bits, and the canonical two's-complement overflow rule
// (operand ^ result) & (result ^ old accumulator) & 0x80.
func addWithCarry(c *CPU, m byte) {
	sum := uint16(c.A) + uint16(m)
	if c.Flag(FlagC) {
		sum++
	}
	r := byte(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (m^r)&(r^c.A)&0x80 != 0)
	c.setZN(r)
	c.A = r
}

func adc(c *CPU, o operand) { addWithCarry(c, o.get(c)) }

// sbc is ADC of the operand's ones' complement: A - M - (1-C) and
// A + ^M + C are the same sum, flags included.
func sbc(c *CPU, o operand) { addWithCarry(c, ^o.get(c)) }

func and(c *CPU, o operand) {
	c.A &= o.get(c)
	c.setZN(c.A)
}

func ora(c *CPU, o operand) {
	c.A |= o.get(c)
	c.setZN(c.A)
}

func eor(c *CPU, o operand) {
	c.A ^= o.get(c)
	c.setZN(c.A)
}

// bit tests memory against the accumulator: Z from the AND, V and N copied
// straight from bits 6 and 7 of the operand.
func bit(c *CPU, o operand) {
	m := o.get(c)
	c.setFlag(FlagZ, c.A&m == 0)
	c.setFlag(FlagV, m&0x40 != 0)
	c.setFlag(FlagN, m&0x80 != 0)
}

func lda(c *CPU, o operand) {
	c.A = o.get(c)
	c.setZN(c.A)
}

func ldx(c *CPU, o operand) {
	c.X = o.get(c)
	c.setZN(c.X)
}

func ldy(c *CPU, o operand) {
	c.Y = o.get(c)
	c.setZN(c.Y)
}

func sta(c *CPU, o operand) { o.set(c, c.A) }
func stx(c *CPU, o operand) { o.set(c, c.X) }
func sty(c *CPU, o operand) { o.set(c, c.Y) }

func compare(c *CPU, reg byte, o operand) {
	m := o.get(c)
	c.setFlag(FlagC, reg >= m)
	c.setZN(reg - m)
}

func cmp(c *CPU, o operand) { compare(c, c.A, o) }
func cpx(c *CPU, o operand) { compare(c, c.X, o) }
func cpy(c *CPU, o operand) { compare(c, c.Y, o) }

func inc(c *CPU, o operand) {
	v := o.get(c) + 1
	o.set(c, v)
	c.setZN(v)
}

func dec(c *CPU, o operand) {
	v := o.get(c) - 1
	o.set(c, v)
	c.setZN(v)
}

func inx(c *CPU, _ operand) { c.X++; c.setZN(c.X) }
func iny(c *CPU, _ operand) { c.Y++; c.setZN(c.Y) }
func dex(c *CPU, _ operand) { c.X--; c.setZN(c.X) }
func dey(c *CPU, _ operand) { c.Y--; c.setZN(c.Y) }

func asl(c *CPU, o operand) {
	v := o.get(c)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	o.set(c, v)
	c.setZN(v)
}

func lsr(c *CPU, o operand) {
	v := o.get(c)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	o.set(c, v)
	c.setZN(v)
}

func rol(c *CPU, o operand) {
	v := o.get(c)
	carry := c.Flag(FlagC)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	if carry {
		v |= 0x01
	}
	o.set(c, v)
	c.setZN(v)
}

func ror(c *CPU, o operand) {
	v := o.get(c)
	carry := c.Flag(FlagC)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	if carry {
		v |= 0x80
	}
	o.set(c, v)
	c.setZN(v)
}

func tax(c *CPU, _ operand) { c.X = c.A; c.setZN(c.X) }
func txa(c *CPU, _ operand) { c.A = c.X; c.setZN(c.A) }
func tay(c *CPU, _ operand) { c.Y = c.A; c.setZN(c.Y) }
func tya(c *CPU, _ operand) { c.A = c.Y; c.setZN(c.A) }
func tsx(c *CPU, _ operand) { c.X = c.SP; c.setZN(c.X) }

// txs is the one transfer that sets no flags.
func txs(c *CPU, _ operand) { c.SP = c.X }

func clc(c *CPU, _ operand) { c.setFlag(FlagC, false) }
func sec(c *CPU, _ operand) { c.setFlag(FlagC, true) }
func cli(c *CPU, _ operand) { c.setFlag(FlagI, false) }
func sei(c *CPU, _ operand) { c.setFlag(FlagI, true) }
func clv(c *CPU, _ operand) { c.setFlag(FlagV, false) }
func cld(c *CPU, _ operand) { c.setFlag(FlagD, false) }
func sed(c *CPU, _ operand) { c.setFlag(FlagD, true) }
