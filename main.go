package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/halfcarry/famicore/cartridge"
	"github.com/halfcarry/famicore/console"
	"github.com/halfcarry/famicore/server"
)

func main() {
	romPath := flag.String("rom", "", "iNES cartridge file to inspect")
	programPath := flag.String("program", "", "raw program binary to load")
	loadAddr := flag.Uint("addr", 0, "load address for -program")
	port := flag.Int("port", 50051, "debug server port")
	hz := flag.Int("hz", 1789773, "CPU clock rate")
	flag.Parse()

	c := console.New()

	if *romPath != "" {
		rom, err := cartridge.Open(*romPath)
		if err != nil {
			log.Fatalf("Error loading ROM from %s: %v", *romPath, err)
		}
		h := rom.Header
		log.Printf("Loaded %s: mapper %d, %d PRG bank(s), %d CHR bank(s), mirroring %v, trainer %v",
			*romPath, h.Mapper(), h.PRGBanks, h.CHRBanks, h.Mirroring(), h.HasTrainer())
		if err := c.LoadCartridge(rom); err != nil {
			log.Fatalf("Error seeding RAM from cartridge: %v", err)
		}
		log.Printf("Seeded work RAM from the cartridge image")
		c.SetPaused(false)
	}

	if *programPath != "" {
		data, err := os.ReadFile(*programPath)
		if err != nil {
			log.Fatalf("Error reading program from %s: %v", *programPath, err)
		}
		if *loadAddr > 0xFFFF {
			log.Fatalf("Load address $%X outside the 16-bit bus", *loadAddr)
		}
		if err := c.LoadProgram(uint16(*loadAddr), data); err != nil {
			log.Fatalf("Error loading program: %v", err)
		}
		log.Printf("Loaded %d program bytes at $%04X", len(data), *loadAddr)
		c.SetPaused(false)
	}

	srv := server.NewDebugServer(c)
	if err := srv.Start(*port); err != nil {
		log.Fatalf("Error starting debug server: %v", err)
	}
	defer srv.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := c.Run(ctx, *hz); err != nil && err != context.Canceled {
		log.Fatalf("Clock loop error: %v", err)
	}
}
