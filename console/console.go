// Package console wires the CPU to the bus and drives the global clock. The
// core stays single-threaded: the run loop and the debug service are both
// serialized through the console mutex, so exactly one execution context
// ever touches the CPU or the bus.
package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/halfcarry/famicore/bus"
	"github.com/halfcarry/famicore/cartridge"
	"github.com/halfcarry/famicore/cpu"
)

// busTop is the first address past the implemented bus regions. The debug
// surface refuses ranges beyond it instead of tripping the core's fatal
// unimplemented-region contract.
const busTop = 0x4018

// ramWindow is the span of work RAM, the only region that can hold cartridge
// code on this decode map.
const ramWindow = 0x800

// Console owns the bus, the CPU and the pause state of the clock.
type Console struct {
	mu  sync.Mutex
	bus *bus.Bus
	cpu *cpu.CPU

	paused bool
}

// New creates a console with a fresh bus and CPU, paused until Resume or a
// running clock loop picks it up.
func New() *Console {
	b := bus.New()
	return &Console{
		bus:    b,
		cpu:    cpu.New(b),
		paused: true,
	}
}

// Run drives the clock at the given rate until ctx is cancelled. Cycles are
// delivered in batches per timer wakeup; within a batch every cycle is an
// ordinary Tick, so mid-instruction state stays observable between batches.
func (c *Console) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		return fmt.Errorf("console: invalid clock rate %d", hz)
	}

	const wakeupsPerSecond = 100
	batch := hz / wakeupsPerSecond
	if batch == 0 {
		batch = 1
	}

	ticker := time.NewTicker(time.Second / wakeupsPerSecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.mu.Lock()
			if !c.paused {
				c.cpu.Ticks(batch)
			}
			c.mu.Unlock()
		}
	}
}

// SetPaused stops or restarts the clock loop. Pausing between wakeups may
// leave an instruction in flight; that is fine, ticking resumes where it
// stopped.
func (c *Console) SetPaused(paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = paused
}

// StepInstruction runs the CPU to the end of the next instruction: it
// finishes any instruction already in flight, or fetches and completes a new
// one.
func (c *Console) StepInstruction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cpu.Tick()
	for c.cpu.Executing() {
		c.cpu.Tick()
	}
}

// Reset returns the CPU to its power-on state. Bus contents are untouched,
// matching a hardware reset line.
func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cpu.Reset()
}

// CPUState returns a snapshot of the processor registers and cycle count.
func (c *Console) CPUState() (a, x, y, sp, p byte, pc uint16, cycles uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cpu.A, c.cpu.X, c.cpu.Y, c.cpu.SP, c.cpu.P, c.cpu.PC, c.cpu.Clock()
}

// ReadBlock copies size bytes of bus memory starting at addr. Ranges that
// leave the implemented regions are rejected rather than made fatal, since
// a debugger probing the map is an expected condition.
func (c *Console) ReadBlock(addr uint16, size int) ([]byte, error) {
	if size < 0 || int(addr)+size > busTop {
		return nil, fmt.Errorf("console: range $%04X+%d leaves the implemented bus regions", addr, size)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, size)
	c.bus.ReadBuffer(addr, buf)
	return buf, nil
}

// LoadCartridge seeds the bus from a loaded cartridge container: the trainer
// when present, otherwise the start of the first PRG bank. Cartridge space is
// not mapped, so the image lands at $0000 and is clamped to the work-RAM
// window; writing further would spray the PPU register block instead of
// reaching more code.
func (c *Console) LoadCartridge(rom *cartridge.ROM) error {
	image := rom.Trainer
	if image == nil {
		image = rom.PRGBank(0)
	}
	if image == nil {
		return fmt.Errorf("console: cartridge has no trainer and no PRG banks")
	}
	if len(image) > ramWindow {
		image = image[:ramWindow]
	}
	return c.LoadProgram(0, image)
}

// LoadProgram writes raw program bytes to the bus at addr. This is how ROM
// contents reach the live bus image: pre-sliced banks in, byte writes with
// full mirroring semantics out.
func (c *Console) LoadProgram(addr uint16, data []byte) error {
	if int(addr)+len(data) > busTop {
		return fmt.Errorf("console: program of %d bytes does not fit at $%04X", len(data), addr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bus.WriteBuffer(addr, data)
	return nil
}
