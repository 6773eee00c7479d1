package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/halfcarry/famicore/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	target := flag.String("target", "localhost:50051", "debug server address")
	flag.Parse()

	fmt.Println("FDB - Famicore DeBugger")
	fmt.Printf("Connecting to emulator on %s...\n", *target)

	conn, err := grpc.NewClient(*target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	client := api.NewDebugClient(conn)
	fmt.Println("Connected. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("(fdb) ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch {
		case cmd == "help" || cmd == "h":
			fmt.Println("Commands:")
			fmt.Println("  run, c           - Resume execution")
			fmt.Println("  pause, p         - Pause execution")
			fmt.Println("  step, s          - Step one instruction")
			fmt.Println("  regs, i r        - Print CPU registers")
			fmt.Println("  x <addr>         - Examine memory (e.g. x 0200 or x/16 0200)")
			fmt.Println("  load <file> [at] - Load a raw binary at an address (default 0)")
			fmt.Println("  reset            - Reset the CPU")
			fmt.Println("  quit, q          - Exit debugger")
		case cmd == "quit" || cmd == "q" || cmd == "exit":
			return
		case cmd == "pause" || cmd == "p":
			if _, err := client.Pause(context.Background(), &api.Empty{}); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Println("Emulator paused.")
				printRegs(client)
			}
		case cmd == "run" || cmd == "c" || cmd == "continue":
			if _, err := client.Resume(context.Background(), &api.Empty{}); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Println("Emulator running...")
			}
		case cmd == "step" || cmd == "s":
			state, err := client.Step(context.Background(), &api.Empty{})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				printState(state)
			}
		case cmd == "regs" || (cmd == "i" && len(parts) > 1 && parts[1] == "r"):
			printRegs(client)
		case cmd == "reset":
			if _, err := client.Reset(context.Background(), &api.Empty{}); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				printRegs(client)
			}
		case cmd == "load":
			if len(parts) < 2 {
				fmt.Println("Usage: load <file> [hex addr]")
				continue
			}
			data, err := os.ReadFile(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			addr := uint64(0)
			if len(parts) > 2 {
				addr, err = parseAddr(parts[2])
				if err != nil {
					fmt.Printf("Invalid address: %s\n", parts[2])
					continue
				}
			}
			_, err = client.LoadProgram(context.Background(), &api.LoadProgramRequest{
				Address: uint32(addr),
				Data:    data,
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Printf("Loaded %d bytes at $%04X\n", len(data), addr)
			}
		case cmd == "x" || strings.HasPrefix(cmd, "x/"):
			if len(parts) < 2 {
				fmt.Println("Usage: x <addr> or x/<count> <addr>")
				continue
			}
			count := 1
			if countStr, ok := strings.CutPrefix(cmd, "x/"); ok {
				if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 {
					count = parsed
				}
			}
			addr, err := parseAddr(parts[1])
			if err != nil {
				fmt.Printf("Invalid address: %s\n", parts[1])
				continue
			}
			res, err := client.ReadMemoryBlock(context.Background(), &api.MemoryBlockRequest{
				Address: uint32(addr),
				Size:    uint32(count),
			})
			if err != nil {
				fmt.Printf("Error reading memory: %v\n", err)
			} else {
				printHexDump(uint16(addr), res.Data)
			}
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}

func parseAddr(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "$")
	return strconv.ParseUint(s, 16, 16)
}

func printRegs(client api.DebugClient) {
	state, err := client.GetCPUState(context.Background(), &api.Empty{})
	if err != nil {
		fmt.Printf("Error getting CPU state: %v\n", err)
		return
	}
	printState(state)
}

func printState(state *api.CPUState) {
	fmt.Printf("A: %02X  X: %02X  Y: %02X  SP: %02X  PC: %04X  Status: %08b  Cycles: %d\n",
		state.A, state.X, state.Y, state.SP, state.PC, state.Status, state.Cycles)
}

func printHexDump(startAddr uint16, data []byte) {
	for i := 0; i < len(data); i += 16 {
		fmt.Printf("%04X:", startAddr+uint16(i))
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		for j := i; j < end; j++ {
			fmt.Printf(" %02X", data[j])
		}
		fmt.Println()
	}
}
