package cpu

// Status flag masks for the P register. Each flag owns exactly one bit; flag
// reads and writes never touch unrelated bits.
const (
	FlagC byte = 1 << 0 // carry
	FlagZ byte = 1 << 1 // zero
	FlagI byte = 1 << 2 // interrupt disable
	FlagD byte = 1 << 3 // decimal
	FlagB byte = 1 << 4 // break
	FlagU byte = 1 << 5 // unused, hardwired set
	FlagV byte = 1 << 6 // overflow
	FlagN byte = 1 << 7 // negative
)

// Flag reports whether the given status flag is set.
func (c *CPU) Flag(flag byte) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag byte, set bool) {
	if set {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// setZN updates the zero and negative flags from a result byte, the common
// tail of most instructions.
func (c *CPU) setZN(v byte) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}
