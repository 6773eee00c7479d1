package bus

import (
	"testing"
)

func TestReadWrite(t *testing.T) {
	b := New()
	b.Write8(0x100, 42)
	if b.Read8(0x100) != 42 {
		t.Error("read back failed")
	}
}

func TestRAMMirrors(t *testing.T) {
	b := New()

	for a := uint16(0); a < 0x800; a += 0x41 {
		b.Write8(a, byte(a))
		for _, mirror := range []uint16{a, a + 0x800, a + 0x1000, a + 0x1800} {
			if got := b.Read8(mirror); got != byte(a) {
				t.Errorf("RAM mirror at $%04X: got %02X, want %02X", mirror, got, byte(a))
			}
		}
	}

	// Writes through a mirror land in the same storage.
	b.Write8(0x100+0x1800, 0x55)
	if b.Read8(0x100) != 0x55 {
		t.Error("write through RAM mirror not visible at base address")
	}
}

func TestPPUMirrors(t *testing.T) {
	b := New()
	b.Write8(0x2002, 42)

	for addr := uint16(0x2002); addr < 0x4000; addr += 8 {
		if got := b.Read8(addr); got != 42 {
			t.Errorf("PPU mirror at $%04X: got %02X, want 42", addr, got)
		}
	}

	// And back the other way: a write high in the range reads at the base.
	b.Write8(0x3FF9, 0x17)
	if b.Read8(0x2001) != 0x17 {
		t.Error("write through PPU mirror not visible at base register")
	}
}

func TestAPUFlat(t *testing.T) {
	b := New()
	for addr := uint16(0x4000); addr < 0x4018; addr++ {
		b.Write8(addr, byte(addr))
	}
	for addr := uint16(0x4000); addr < 0x4018; addr++ {
		if b.Read8(addr) != byte(addr) {
			t.Errorf("APU register at $%04X not flat", addr)
		}
	}
}

func TestRead16(t *testing.T) {
	b := New()
	b.Write16(0x400, 0x1234)
	if b.Read16(0x400) != 0x1234 {
		t.Error("Read16 round trip failed")
	}
}

func TestWrite16(t *testing.T) {
	b := New()
	b.Write16(0x400, 0x1234)
	if b.Read8(0x400) != 0x34 {
		t.Error("low byte not at addr")
	}
	if b.Read8(0x401) != 0x12 {
		t.Error("high byte not at addr+1")
	}
}

func TestReadString(t *testing.T) {
	b := New()
	b.WriteBuffer(0x200, append([]byte("Hello world!"), 0))

	s, err := b.ReadString(0x200)
	if err != nil {
		t.Fatal(err)
	}
	if s != "Hello world!" {
		t.Errorf("got %q", s)
	}
}

func TestReadStringUnterminated(t *testing.T) {
	b := New()
	// The APU registers are the last implemented bytes of the map. A scan
	// that does not find a terminator before leaving them hits the fatal
	// unimplemented-region contract.
	b.Write8(0x4017, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected the scan to fail past the APU registers")
		}
	}()
	b.ReadString(0x4017)
}

func TestWriteBufferMirrors(t *testing.T) {
	b := New()
	b.WriteBuffer(0x600, []byte{0x01, 0x02, 0x03})

	out := make([]byte, 3)
	for _, base := range []uint16{0x600, 0x600 + 0x800, 0x600 + 0x1000, 0x600 + 0x1800} {
		b.ReadBuffer(base, out)
		if out[0] != 0x01 || out[1] != 0x02 || out[2] != 0x03 {
			t.Errorf("buffer read through mirror $%04X: got % X", base, out)
		}
	}
}

func TestUnimplementedRegionsPanic(t *testing.T) {
	for _, addr := range []uint16{0x4018, 0x401F, 0x4020, 0x8000, 0xFFFF} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("read at $%04X did not panic", addr)
				}
			}()
			New().Read8(addr)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("write at $%04X did not panic", addr)
				}
			}()
			New().Write8(addr, 1)
		}()
	}
}
