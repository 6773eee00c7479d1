package console

import (
	"context"
	"testing"
	"time"

	"github.com/halfcarry/famicore/cartridge"
)

func TestStepInstruction(t *testing.T) {
	c := New()
	if err := c.LoadProgram(0, []byte{
		0x69, 0x02, // ADC #$02
		0x69, 0x03, // ADC #$03
	}); err != nil {
		t.Fatal(err)
	}

	c.StepInstruction()
	a, _, _, _, _, pc, cycles := c.CPUState()
	if a != 2 || pc != 2 || cycles != 2 {
		t.Errorf("after one step: A=%02X PC=%04X cycles=%d", a, pc, cycles)
	}

	c.StepInstruction()
	a, _, _, _, _, _, _ = c.CPUState()
	if a != 5 {
		t.Errorf("after two steps: A=%02X, want 05", a)
	}
}

func TestLoadProgramBounds(t *testing.T) {
	c := New()
	if err := c.LoadProgram(0x4010, make([]byte, 16)); err == nil {
		t.Error("program crossing into unimplemented regions must be rejected")
	}
	if err := c.LoadProgram(0x4010, make([]byte, 8)); err != nil {
		t.Errorf("program filling the last APU bytes rejected: %v", err)
	}
}

func TestLoadCartridgePRGBank(t *testing.T) {
	bank := make([]byte, cartridge.PRGBankSize)
	bank[0] = 0x69 // ADC #$02
	bank[1] = 0x02
	bank[0x7FF] = 0xAB
	bank[0x800] = 0xCD // past the work-RAM window, must not land anywhere

	c := New()
	if err := c.LoadCartridge(&cartridge.ROM{PRGBanks: [][]byte{bank}}); err != nil {
		t.Fatal(err)
	}

	c.StepInstruction()
	if a, _, _, _, _, _, _ := c.CPUState(); a != 2 {
		t.Errorf("A=%02X after running seeded code, want 02", a)
	}

	data, err := c.ReadBlock(0x7FF, 1)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 0xAB {
		t.Error("end of the RAM window not seeded from the bank")
	}

	// The byte past the window must not have wrapped onto the mirrors or
	// reached the PPU registers.
	if data, err = c.ReadBlock(0x2000, 8); err != nil {
		t.Fatal(err)
	}
	for i, b := range data {
		if b != 0 {
			t.Errorf("PPU register %d = %02X, want 00", i, b)
		}
	}
}

func TestLoadCartridgePrefersTrainer(t *testing.T) {
	trainer := make([]byte, cartridge.TrainerSize)
	trainer[0] = 0x11
	bank := make([]byte, cartridge.PRGBankSize)
	bank[0] = 0x22

	c := New()
	rom := &cartridge.ROM{Trainer: trainer, PRGBanks: [][]byte{bank}}
	if err := c.LoadCartridge(rom); err != nil {
		t.Fatal(err)
	}

	data, err := c.ReadBlock(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 0x11 {
		t.Errorf("RAM[0] = %02X, want the trainer byte 11", data[0])
	}
}

func TestLoadCartridgeEmpty(t *testing.T) {
	if err := New().LoadCartridge(&cartridge.ROM{}); err == nil {
		t.Error("cartridge with no trainer and no PRG banks must be rejected")
	}
}

func TestReadBlock(t *testing.T) {
	c := New()
	if err := c.LoadProgram(0x200, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	// Reading through a RAM mirror sees the same bytes.
	data, err := c.ReadBlock(0x200+0x800, 3)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 1 || data[1] != 2 || data[2] != 3 {
		t.Errorf("got % X", data)
	}

	if _, err := c.ReadBlock(0x4017, 2); err == nil {
		t.Error("block leaving the implemented regions must be rejected")
	}
}

func TestReset(t *testing.T) {
	c := New()
	if err := c.LoadProgram(0, []byte{0x69, 0x07}); err != nil {
		t.Fatal(err)
	}
	c.StepInstruction()
	c.Reset()

	a, _, _, _, _, pc, cycles := c.CPUState()
	if a != 0 || pc != 0 || cycles != 0 {
		t.Error("reset did not clear CPU state")
	}

	// RAM survives a reset, so the program runs again.
	c.StepInstruction()
	if a, _, _, _, _, _, _ := c.CPUState(); a != 7 {
		t.Errorf("A=%02X after re-running the program, want 07", a)
	}
}

func TestRunHonorsPause(t *testing.T) {
	c := New()
	if err := c.LoadProgram(0, []byte{0x69, 0x01}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, 1789773) }()

	if err := <-done; err != context.DeadlineExceeded {
		t.Errorf("Run returned %v", err)
	}

	// The console starts paused, so the clock must not have advanced.
	if _, _, _, _, _, _, cycles := c.CPUState(); cycles != 0 {
		t.Errorf("cycles=%d while paused, want 0", cycles)
	}
}

func TestRunRejectsBadRate(t *testing.T) {
	if err := New().Run(context.Background(), 0); err == nil {
		t.Error("zero clock rate must be rejected")
	}
}
