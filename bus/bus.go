package bus

import "fmt"

// Hardware address map, in decode priority order.
const (
	ramSize   = 0x0800
	ramEnd    = 0x2000
	ppuSize   = 8
	ppuEnd    = 0x4000
	apuSize   = 0x18
	apuEnd    = 0x4018
	testEnd   = 0x4020
	spaceSize = 0x10000
)

// Bus represents the system bus. RAM and the PPU/APU register blocks are the
// only populated regions; the CPU test-mode registers and cartridge space are
// intentionally unimplemented and accessing them is fatal.
type Bus struct {
	ram [ramSize]byte
	ppu [ppuSize]byte
	apu [apuSize]byte
}

// New creates a new Bus instance.
func New() *Bus {
	return &Bus{}
}

// Read8 reads a byte from the bus.
func (b *Bus) Read8(addr uint16) byte {
	a := int(addr)

	// RAM, mirrored every 0x800 bytes
	if a < ramEnd {
		return b.ram[a%ramSize]
	}

	// PPU registers, 8 registers mirrored across the whole range
	if a < ppuEnd {
		return b.ppu[(a-ramEnd)%ppuSize]
	}

	// APU & I/O registers, flat
	if a < apuEnd {
		return b.apu[a-ppuEnd]
	}

	if a < testEnd {
		panic(fmt.Sprintf("bus: CPU test mode registers are not implemented (read at $%04X)", addr))
	}

	panic(fmt.Sprintf("bus: cartridge space is not implemented (read at $%04X)", addr))
}

// Write8 writes a byte to the bus.
func (b *Bus) Write8(addr uint16, data byte) {
	a := int(addr)

	// RAM, mirrored every 0x800 bytes
	if a < ramEnd {
		b.ram[a%ramSize] = data
		return
	}

	// PPU registers, 8 registers mirrored across the whole range
	if a < ppuEnd {
		b.ppu[(a-ramEnd)%ppuSize] = data
		return
	}

	// APU & I/O registers, flat
	if a < apuEnd {
		b.apu[a-ppuEnd] = data
		return
	}

	if a < testEnd {
		panic(fmt.Sprintf("bus: CPU test mode registers are not implemented (write at $%04X)", addr))
	}

	panic(fmt.Sprintf("bus: cartridge space is not implemented (write at $%04X)", addr))
}

// Read16 reads a little-endian word as two independent byte reads. The high
// byte address is computed in 16 bits, so a read at $FFFF wraps to $0000.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr + 1))
	return lo | hi<<8
}

// Write16 writes a little-endian word as two independent byte writes.
func (b *Bus) Write16(addr uint16, data uint16) {
	b.Write8(addr, byte(data&0xFF))
	b.Write8(addr+1, byte(data>>8))
}

// ReadBuffer fills buf with consecutive bytes starting at addr. Every byte
// goes through Read8 so mirroring applies per byte.
func (b *Bus) ReadBuffer(addr uint16, buf []byte) {
	for i := range buf {
		buf[i] = b.Read8(addr + uint16(i))
	}
}

// WriteBuffer writes buf to consecutive addresses starting at addr.
func (b *Bus) WriteBuffer(addr uint16, buf []byte) {
	for i := range buf {
		b.Write8(addr+uint16(i), buf[i])
	}
}

// ReadString reads a null-terminated string starting at addr. The terminator
// is not part of the result. Running off the top of the address space before
// finding a terminator is an error.
func (b *Bus) ReadString(addr uint16) (string, error) {
	var buf []byte
	for a := int(addr); ; a++ {
		if a >= spaceSize {
			return "", fmt.Errorf("bus: no null terminator for string at $%04X", addr)
		}
		c := b.Read8(uint16(a))
		if c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return string(buf), nil
}
